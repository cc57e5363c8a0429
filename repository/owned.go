package repository

import (
	"context"

	"github.com/fastygo/homeplanner/domain"
)

// Collection names shared by every storage driver.
const (
	CollectionAreas       = "areas"
	CollectionWeeklyTasks = "weeklyTasks"
	CollectionContacts    = "contacts"
)

// OwnedRepository is the data-access contract for a collection of user-owned
// records. Every operation is scoped by owner.
//
// ListByOwner never returns a nil slice. DeleteByOwnerAndID is idempotent: a
// missing, foreign or malformed id completes without error and deletes nothing.
type OwnedRepository[T any, C domain.Creation[T]] interface {
	ListByOwner(ctx context.Context, owner domain.UserID) ([]T, error)
	Create(ctx context.Context, owner domain.UserID, payload C) (domain.ID, error)
	DeleteByOwnerAndID(ctx context.Context, owner domain.UserID, id domain.ID) error
}

type (
	AreaRepository       = OwnedRepository[domain.Area, domain.AreaCreation]
	WeeklyTaskRepository = OwnedRepository[domain.WeeklyTask, domain.WeeklyTaskCreation]
	ContactRepository    = OwnedRepository[domain.Contact, domain.ContactCreation]
)
