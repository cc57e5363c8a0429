package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/pkg/httpcontext"
	appLogger "github.com/fastygo/homeplanner/pkg/logger"
)

// msgInvalidRequest answers a request without an owner or a required path parameter.
const msgInvalidRequest = "Invalid request"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("response encoding failed", zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Internal server error"}`)
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, status int, message string) {
	h.respondJSON(ctx, status, transport.NewError(message))
}

// owner returns the authenticated owner, answering 400 when there is none.
func (h baseHandler) owner(ctx *fasthttp.RequestCtx) (string, bool) {
	owner := httpcontext.Owner(ctx)
	if owner == "" {
		h.respondError(ctx, http.StatusBadRequest, msgInvalidRequest)
		return "", false
	}
	return owner, true
}

func (h baseHandler) log(stdCtx context.Context) *zap.Logger {
	return appLogger.FromContext(stdCtx, h.logger)
}
