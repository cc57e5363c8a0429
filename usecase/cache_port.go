package usecase

import (
	"context"

	"github.com/fastygo/homeplanner/domain"
)

// ListCache abstracts the per-owner listing cache so use cases stay storage-agnostic.
type ListCache interface {
	Get(ctx context.Context, collection string, owner domain.UserID, dest any) (bool, error)
	Set(ctx context.Context, collection string, owner domain.UserID, value any) error
	Invalidate(ctx context.Context, collection string, owner domain.UserID) error
}
