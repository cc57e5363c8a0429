package domain

import "time"

// TaskUser assigns a person to an area within a weekly task.
type TaskUser struct {
	Name string `json:"name" bson:"name"`
	Area string `json:"area" bson:"area"`
}

// WeeklyTask is a rota for one week: who takes care of which area between Start and End.
type WeeklyTask struct {
	ID     ID         `json:"_id" bson:"_id,omitempty"`
	UserID UserID     `json:"userId" bson:"userId"`
	Start  time.Time  `json:"start" bson:"start"`
	End    time.Time  `json:"end" bson:"end"`
	Users  []TaskUser `json:"users" bson:"users"`
}

// WeeklyTaskCreation is the payload accepted when a weekly task is created.
type WeeklyTaskCreation struct {
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Users []TaskUser `json:"users"`
}

func (c WeeklyTaskCreation) Record(id ID, owner UserID) WeeklyTask {
	users := make([]TaskUser, len(c.Users))
	copy(users, c.Users)
	return WeeklyTask{
		ID:     id,
		UserID: owner,
		Start:  c.Start,
		End:    c.End,
		Users:  users,
	}
}
