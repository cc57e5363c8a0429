package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/domain"
	"github.com/fastygo/homeplanner/pkg/httpcontext"
)

// Schema names a collection in responses and declares the message returned
// when a create body fails validation.
type Schema struct {
	// Entity is the lower-case singular name, e.g. "area".
	Entity string
	// Plural is the lower-case collection name used in messages, e.g. "areas".
	Plural string
	// Invalid is the 400 message for a body that fails validation.
	Invalid string
	// DeleteFailed overrides the 500 message of a failed delete.
	DeleteFailed string
}

func (s Schema) deleteFailed() string {
	if s.DeleteFailed != "" {
		return s.DeleteFailed
	}
	return "Failed to delete " + s.Entity
}

// collectionService is satisfied by usecase/collection.UseCase.
type collectionService[T any, C domain.Creation[T]] interface {
	List(ctx context.Context, owner domain.UserID) ([]T, error)
	Create(ctx context.Context, owner domain.UserID, payload C) (domain.ID, error)
	Delete(ctx context.Context, owner domain.UserID, id domain.ID) error
}

// collectionHandler serves list, create and delete for one collection. R is
// the create body; it is decoded, validated, then converted to C.
type collectionHandler[T any, C domain.Creation[T], R transport.CreateRequest[C]] struct {
	baseHandler
	schema   Schema
	svc      collectionService[T, C]
	validate *validator.Validate
}

func newCollectionHandler[T any, C domain.Creation[T], R transport.CreateRequest[C]](
	schema Schema,
	svc collectionService[T, C],
	validate *validator.Validate,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *collectionHandler[T, C, R] {
	if validate == nil {
		validate = transport.NewValidator()
	}
	h := &collectionHandler[T, C, R]{
		baseHandler: newBaseHandler(adapter, logger),
		schema:      schema,
		svc:         svc,
		validate:    validate,
	}
	h.logger = h.logger.With(zap.String("entity", schema.Entity))
	return h
}

// List answers with every record the caller owns.
func (h *collectionHandler[T, C, R]) List(ctx *fasthttp.RequestCtx) {
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	records, err := h.svc.List(stdCtx, domain.UserID(owner))
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			h.respondError(ctx, http.StatusNotFound, capitalize(h.schema.Plural)+" not found")
			return
		}
		h.log(stdCtx).Error(h.schema.Plural+" for user not fetched", zap.Error(err))
		h.respondError(ctx, http.StatusInternalServerError, "Failed to fetch "+h.schema.Plural)
		return
	}
	h.respondJSON(ctx, http.StatusOK, records)
}

// Create stores a record owned by the caller and answers with its id.
func (h *collectionHandler[T, C, R]) Create(ctx *fasthttp.RequestCtx) {
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var req R
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.log(stdCtx).Debug("create body not decoded", zap.Error(err))
		h.respondError(ctx, http.StatusBadRequest, h.schema.Invalid)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.log(stdCtx).Debug("create body rejected", zap.Error(err))
		h.respondError(ctx, http.StatusBadRequest, h.schema.Invalid)
		return
	}

	id, err := h.svc.Create(stdCtx, domain.UserID(owner), req.Creation())
	if err != nil {
		h.log(stdCtx).Error(h.schema.Entity+" not created", zap.Error(err))
		h.respondError(ctx, http.StatusInternalServerError, "Failed to create "+h.schema.Entity)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.InsertedBody{InsertedID: id})
}

// Delete removes the caller's record with the id from the path.
func (h *collectionHandler[T, C, R]) Delete(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondError(ctx, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	owner, ok := h.owner(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.svc.Delete(stdCtx, domain.UserID(owner), domain.ID(id)); err != nil {
		h.log(stdCtx).Error(h.schema.Entity+" not deleted", zap.String("id", id), zap.Error(err))
		h.respondError(ctx, http.StatusInternalServerError, h.schema.deleteFailed())
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.MessageBody{
		Msg: capitalize(h.schema.Entity) + " deleted id: " + id,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
