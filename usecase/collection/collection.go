package collection

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/domain"
	appLogger "github.com/fastygo/homeplanner/pkg/logger"
	"github.com/fastygo/homeplanner/repository"
	"github.com/fastygo/homeplanner/usecase"
)

// UseCase serves one owner-scoped collection. A single instance is built at
// startup and shared by all requests.
type UseCase[T any, C domain.Creation[T]] struct {
	name   string
	repo   repository.OwnedRepository[T, C]
	cache  usecase.ListCache
	logger *zap.Logger
}

// New builds a use case for the named collection. cache may be nil.
func New[T any, C domain.Creation[T]](name string, repo repository.OwnedRepository[T, C], cache usecase.ListCache, logger *zap.Logger) *UseCase[T, C] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase[T, C]{
		name:   name,
		repo:   repo,
		cache:  cache,
		logger: logger.With(zap.String("collection", name)),
	}
}

// Name returns the collection name.
func (uc *UseCase[T, C]) Name() string {
	return uc.name
}

func (uc *UseCase[T, C]) List(ctx context.Context, owner domain.UserID) ([]T, error) {
	if owner == "" {
		return nil, domain.ErrMissingOwner
	}

	if uc.cache != nil {
		var cached []T
		hit, err := uc.cache.Get(ctx, uc.name, owner, &cached)
		switch {
		case err != nil:
			uc.log(ctx).Warn("list cache read failed", zap.Error(err))
		case hit && cached != nil:
			return cached, nil
		}
	}

	records, err := uc.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, uc.name, owner, records); err != nil {
			uc.log(ctx).Warn("list cache write failed", zap.Error(err))
		}
	}
	return records, nil
}

func (uc *UseCase[T, C]) Create(ctx context.Context, owner domain.UserID, payload C) (domain.ID, error) {
	if owner == "" {
		return "", domain.ErrMissingOwner
	}

	id, err := uc.repo.Create(ctx, owner, payload)
	if err != nil {
		return "", err
	}
	uc.invalidate(ctx, owner)
	return id, nil
}

func (uc *UseCase[T, C]) Delete(ctx context.Context, owner domain.UserID, id domain.ID) error {
	if owner == "" {
		return domain.ErrMissingOwner
	}
	if id == "" {
		return domain.ErrInvalidPayload
	}

	if err := uc.repo.DeleteByOwnerAndID(ctx, owner, id); err != nil {
		return err
	}
	uc.invalidate(ctx, owner)
	return nil
}

func (uc *UseCase[T, C]) invalidate(ctx context.Context, owner domain.UserID) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, uc.name, owner); err != nil {
		uc.log(ctx).Warn("list cache invalidation failed", zap.Error(err))
	}
}

func (uc *UseCase[T, C]) log(ctx context.Context) *zap.Logger {
	return appLogger.FromContext(ctx, uc.logger)
}
