package transport

import (
	"strings"
	"time"

	"github.com/fastygo/homeplanner/domain"
)

// CreateRequest is implemented by every create body. Creation is only called
// after the body passed validation.
type CreateRequest[C any] interface {
	Creation() C
}

type AreaRequest struct {
	AreaName string `json:"areaName" validate:"notblank"`
}

func (r AreaRequest) Creation() domain.AreaCreation {
	return domain.AreaCreation{Area: strings.TrimSpace(r.AreaName)}
}

type ContactRequest struct {
	Name string `json:"name" validate:"notblank"`
}

func (r ContactRequest) Creation() domain.ContactCreation {
	return domain.ContactCreation{Name: strings.TrimSpace(r.Name)}
}

// TaskUserRequest assigns a contact to an area.
type TaskUserRequest struct {
	Name string `json:"name" validate:"notblank"`
	Area string `json:"area" validate:"notblank"`
}

// WeeklyTaskBody carries the week bounds as Unix epoch milliseconds.
type WeeklyTaskBody struct {
	Start int64             `json:"start" validate:"required,gt=0"`
	End   int64             `json:"end" validate:"required,gtefield=Start"`
	Users []TaskUserRequest `json:"users" validate:"dive"`
}

type WeeklyTaskRequest struct {
	WeeklyTask *WeeklyTaskBody `json:"weeklyTask" validate:"required"`
}

func (r WeeklyTaskRequest) Creation() domain.WeeklyTaskCreation {
	body := r.WeeklyTask
	users := make([]domain.TaskUser, 0, len(body.Users))
	for _, u := range body.Users {
		users = append(users, domain.TaskUser{
			Name: strings.TrimSpace(u.Name),
			Area: strings.TrimSpace(u.Area),
		})
	}
	return domain.WeeklyTaskCreation{
		Start: time.UnixMilli(body.Start).UTC(),
		End:   time.UnixMilli(body.End).UTC(),
		Users: users,
	}
}
