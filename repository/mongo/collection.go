package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fastygo/homeplanner/domain"
	"github.com/fastygo/homeplanner/repository"
)

// ownerField is the document field holding the owner reference.
const ownerField = "userId"

type collection[T any, C domain.Creation[T]] struct {
	coll *mongo.Collection
}

// NewCollection wraps a Mongo collection as an owner-scoped repository. The
// record type T must map its id to "_id" (omitempty) and its owner to "userId".
func NewCollection[T any, C domain.Creation[T]](coll *mongo.Collection) repository.OwnedRepository[T, C] {
	return &collection[T, C]{coll: coll}
}

// NewAreaRepository creates a Mongo-backed area repository.
func NewAreaRepository(db *mongo.Database) repository.AreaRepository {
	return NewCollection[domain.Area, domain.AreaCreation](db.Collection(repository.CollectionAreas))
}

// NewWeeklyTaskRepository creates a Mongo-backed weekly task repository.
func NewWeeklyTaskRepository(db *mongo.Database) repository.WeeklyTaskRepository {
	return NewCollection[domain.WeeklyTask, domain.WeeklyTaskCreation](db.Collection(repository.CollectionWeeklyTasks))
}

// NewContactRepository creates a Mongo-backed contact repository.
func NewContactRepository(db *mongo.Database) repository.ContactRepository {
	return NewCollection[domain.Contact, domain.ContactCreation](db.Collection(repository.CollectionContacts))
}

func (r *collection[T, C]) ListByOwner(ctx context.Context, owner domain.UserID) ([]T, error) {
	cursor, err := r.coll.Find(ctx, bson.M{ownerField: string(owner)})
	if err != nil {
		return nil, domain.StorageError("find "+r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, domain.StorageError("decode "+r.coll.Name(), err)
	}
	return records, nil
}

func (r *collection[T, C]) Create(ctx context.Context, owner domain.UserID, payload C) (domain.ID, error) {
	doc := payload.Record("", owner)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", domain.StorageError("insert "+r.coll.Name(), err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return domain.ID(id.Hex()), nil
	case string:
		return domain.ID(id), nil
	default:
		return "", domain.StorageError("insert "+r.coll.Name(), fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
}

func (r *collection[T, C]) DeleteByOwnerAndID(ctx context.Context, owner domain.UserID, id domain.ID) error {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		// not an id this store could have assigned, so nothing to delete
		return nil
	}

	filter := bson.M{"_id": oid, ownerField: string(owner)}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return domain.StorageError("delete "+r.coll.Name(), err)
	}
	return nil
}
