package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fastygo/homeplanner/domain"
	"github.com/fastygo/homeplanner/repository"
)

type entry[C any] struct {
	id      domain.ID
	owner   domain.UserID
	payload C
}

// Store keeps one collection in process memory. Records are returned in
// insertion order.
type Store[T any, C domain.Creation[T]] struct {
	mu      sync.RWMutex
	entries []entry[C]
	// fail, when set, is returned by every operation. Used to simulate a store outage.
	fail error
}

// NewStore creates an empty in-memory collection.
func NewStore[T any, C domain.Creation[T]]() *Store[T, C] {
	return &Store[T, C]{}
}

// NewAreaRepository returns an in-memory area collection.
func NewAreaRepository() repository.AreaRepository {
	return NewStore[domain.Area, domain.AreaCreation]()
}

// NewWeeklyTaskRepository returns an in-memory weekly task collection.
func NewWeeklyTaskRepository() repository.WeeklyTaskRepository {
	return NewStore[domain.WeeklyTask, domain.WeeklyTaskCreation]()
}

// NewContactRepository returns an in-memory contact collection.
func NewContactRepository() repository.ContactRepository {
	return NewStore[domain.Contact, domain.ContactCreation]()
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Store[T, C]) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *Store[T, C]) ListByOwner(ctx context.Context, owner domain.UserID) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StorageError("list", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fail != nil {
		return nil, domain.StorageError("list", s.fail)
	}

	records := make([]T, 0)
	for _, e := range s.entries {
		if e.owner == owner {
			records = append(records, e.payload.Record(e.id, e.owner))
		}
	}
	return records, nil
}

func (s *Store[T, C]) Create(ctx context.Context, owner domain.UserID, payload C) (domain.ID, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.StorageError("create", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", domain.StorageError("create", s.fail)
	}

	id := domain.ID(uuid.NewString())
	s.entries = append(s.entries, entry[C]{id: id, owner: owner, payload: payload})
	return id, nil
}

func (s *Store[T, C]) DeleteByOwnerAndID(ctx context.Context, owner domain.UserID, id domain.ID) error {
	if err := ctx.Err(); err != nil {
		return domain.StorageError("delete", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return domain.StorageError("delete", s.fail)
	}

	for i, e := range s.entries {
		if e.id == id && e.owner == owner {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// Ping reports the configured failure, if any.
func (s *Store[T, C]) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fail
}

// Len returns the number of records across all owners.
func (s *Store[T, C]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var (
	_ repository.AreaRepository       = (*Store[domain.Area, domain.AreaCreation])(nil)
	_ repository.WeeklyTaskRepository = (*Store[domain.WeeklyTask, domain.WeeklyTaskCreation])(nil)
	_ repository.ContactRepository    = (*Store[domain.Contact, domain.ContactCreation])(nil)
)
