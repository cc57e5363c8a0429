package domain

// Area is a named part of the home (kitchen, garden, ...) that weekly tasks refer to.
type Area struct {
	ID     ID     `json:"_id" bson:"_id,omitempty"`
	UserID UserID `json:"userId" bson:"userId"`
	Area   string `json:"area" bson:"area"`
}

// AreaCreation is the payload accepted when an area is created.
type AreaCreation struct {
	Area string `json:"area"`
}

func (c AreaCreation) Record(id ID, owner UserID) Area {
	return Area{ID: id, UserID: owner, Area: c.Area}
}
