package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/homeplanner/domain"
	"github.com/fastygo/homeplanner/repository"
)

// Table names, one per collection.
const (
	TableAreas       = "areas"
	TableWeeklyTasks = "weekly_tasks"
	TableContacts    = "contacts"
)

// DB is the subset of *pgxpool.Pool used by the repositories.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type table[T any, C domain.Creation[T]] struct {
	db          DB
	name        string
	listQuery   string
	insertQuery string
	deleteQuery string
}

// NewTable returns a repository storing each record's create payload as jsonb
// next to its id and owner columns.
func NewTable[T any, C domain.Creation[T]](db DB, name string) repository.OwnedRepository[T, C] {
	return &table[T, C]{
		db:          db,
		name:        name,
		listQuery:   fmt.Sprintf(`SELECT id::text, user_id, data FROM %s WHERE user_id = $1 ORDER BY created_at`, name),
		insertQuery: fmt.Sprintf(`INSERT INTO %s (id, user_id, data) VALUES ($1, $2, $3)`, name),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, name),
	}
}

// NewAreaRepository returns a Postgres-backed area repository.
func NewAreaRepository(db DB) repository.AreaRepository {
	return NewTable[domain.Area, domain.AreaCreation](db, TableAreas)
}

// NewWeeklyTaskRepository returns a Postgres-backed weekly task repository.
func NewWeeklyTaskRepository(db DB) repository.WeeklyTaskRepository {
	return NewTable[domain.WeeklyTask, domain.WeeklyTaskCreation](db, TableWeeklyTasks)
}

// NewContactRepository returns a Postgres-backed contact repository.
func NewContactRepository(db DB) repository.ContactRepository {
	return NewTable[domain.Contact, domain.ContactCreation](db, TableContacts)
}

func (r *table[T, C]) ListByOwner(ctx context.Context, owner domain.UserID) ([]T, error) {
	rows, err := r.db.Query(ctx, r.listQuery, string(owner))
	if err != nil {
		return nil, domain.StorageError("select "+r.name, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		var (
			id, userID string
			data       []byte
		)
		if err := rows.Scan(&id, &userID, &data); err != nil {
			return nil, domain.StorageError("scan "+r.name, err)
		}

		var payload C
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, domain.StorageError("decode "+r.name, err)
		}
		records = append(records, payload.Record(domain.ID(id), domain.UserID(userID)))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("select "+r.name, err)
	}
	return records, nil
}

func (r *table[T, C]) Create(ctx context.Context, owner domain.UserID, payload C) (domain.ID, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInvalid, "encode payload", err)
	}

	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, r.insertQuery, id, string(owner), data); err != nil {
		return "", domain.StorageError("insert "+r.name, err)
	}
	return domain.ID(id), nil
}

func (r *table[T, C]) DeleteByOwnerAndID(ctx context.Context, owner domain.UserID, id domain.ID) error {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return nil
	}

	if _, err := r.db.Exec(ctx, r.deleteQuery, parsed.String(), string(owner)); err != nil {
		return domain.StorageError("delete "+r.name, err)
	}
	return nil
}
