package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/internal/infrastructure/monitor"
	"github.com/fastygo/homeplanner/pkg/httpcontext"
)

// StatusSource reports dependency health. *monitor.Monitor implements it.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
}

func NewHealthHandler(mon StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// Check answers 200 when every dependency is reachable, 503 otherwise.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	body := transport.HealthBody{
		Status:   "ok",
		Services: status.Services,
	}
	if !status.LastCheck.IsZero() {
		body.LastCheck = status.LastCheck.UTC().Format(time.RFC3339)
	}

	if status.Healthy() {
		h.respondJSON(ctx, http.StatusOK, body)
		return
	}
	body.Status = "degraded"
	h.respondJSON(ctx, http.StatusServiceUnavailable, body)
}
