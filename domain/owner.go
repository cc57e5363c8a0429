package domain

// ID is the store-assigned identifier of a record. It is opaque to every
// layer above the repository.
type ID string

// UserID references the owner of a record.
type UserID string

func (id ID) String() string { return string(id) }

func (u UserID) String() string { return string(u) }

// Creation is implemented by every create payload. Record materializes the
// stored shape for the given identity; repositories call it with an empty id
// when the store assigns one itself.
type Creation[T any] interface {
	Record(id ID, owner UserID) T
}
