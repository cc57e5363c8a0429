package handler

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/domain"
	"github.com/fastygo/homeplanner/pkg/httpcontext"
)

var (
	areaSchema = Schema{
		Entity:       "area",
		Plural:       "areas",
		Invalid:      "Area name is required",
		DeleteFailed: "Failed to delete Area",
	}
	weeklyTaskSchema = Schema{
		Entity:  "weekly task",
		Plural:  "weekly tasks",
		Invalid: "Weekly task with a valid start and end is required",
	}
	contactSchema = Schema{
		Entity:  "contact",
		Plural:  "contacts",
		Invalid: "Contact name is required",
	}
)

type (
	AreaService       = collectionService[domain.Area, domain.AreaCreation]
	WeeklyTaskService = collectionService[domain.WeeklyTask, domain.WeeklyTaskCreation]
	ContactService    = collectionService[domain.Contact, domain.ContactCreation]
)

// AreaHandler serves /areas.
type AreaHandler struct {
	*collectionHandler[domain.Area, domain.AreaCreation, transport.AreaRequest]
}

func NewAreaHandler(svc AreaService, validate *validator.Validate, adapter *httpcontext.Adapter, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{
		newCollectionHandler[domain.Area, domain.AreaCreation, transport.AreaRequest](areaSchema, svc, validate, adapter, logger),
	}
}

// WeeklyTaskHandler serves /weekly-tasks.
type WeeklyTaskHandler struct {
	*collectionHandler[domain.WeeklyTask, domain.WeeklyTaskCreation, transport.WeeklyTaskRequest]
}

func NewWeeklyTaskHandler(svc WeeklyTaskService, validate *validator.Validate, adapter *httpcontext.Adapter, logger *zap.Logger) *WeeklyTaskHandler {
	return &WeeklyTaskHandler{
		newCollectionHandler[domain.WeeklyTask, domain.WeeklyTaskCreation, transport.WeeklyTaskRequest](weeklyTaskSchema, svc, validate, adapter, logger),
	}
}

// ContactHandler serves /contacts.
type ContactHandler struct {
	*collectionHandler[domain.Contact, domain.ContactCreation, transport.ContactRequest]
}

func NewContactHandler(svc ContactService, validate *validator.Validate, adapter *httpcontext.Adapter, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		newCollectionHandler[domain.Contact, domain.ContactCreation, transport.ContactRequest](contactSchema, svc, validate, adapter, logger),
	}
}
