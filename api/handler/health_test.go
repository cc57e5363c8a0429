package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/internal/infrastructure/monitor"
)

type staticStatus monitor.Status

func (s staticStatus) GetStatus() monitor.Status { return monitor.Status(s) }

func TestHealthHandler_Check(t *testing.T) {
	h := NewHealthHandler(staticStatus{
		Services:  map[string]bool{"mongo": true, "redis": true},
		LastCheck: time.Now(),
	}, nil, nil)

	ctx := &fasthttp.RequestCtx{}
	h.Check(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	body := decode[transport.HealthBody](t, ctx)
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.Services["mongo"])
	assert.NotEmpty(t, body.LastCheck)
}

func TestHealthHandler_Degraded(t *testing.T) {
	h := NewHealthHandler(staticStatus{
		Services:  map[string]bool{"mongo": false},
		LastCheck: time.Now(),
	}, nil, nil)

	ctx := &fasthttp.RequestCtx{}
	h.Check(ctx)

	assert.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.Equal(t, "degraded", decode[transport.HealthBody](t, ctx).Status)
}

func TestHealthHandler_NeverChecked(t *testing.T) {
	h := NewHealthHandler(staticStatus{}, nil, nil)

	ctx := &fasthttp.RequestCtx{}
	h.Check(ctx)

	assert.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
}
