package domain

// Contact is a person the user shares home duties with.
type Contact struct {
	ID     ID     `json:"_id" bson:"_id,omitempty"`
	UserID UserID `json:"userId" bson:"userId"`
	Name   string `json:"name" bson:"name"`
}

type ContactCreation struct {
	Name string `json:"name"`
}

func (c ContactCreation) Record(id ID, owner UserID) Contact {
	return Contact{ID: id, UserID: owner, Name: c.Name}
}
