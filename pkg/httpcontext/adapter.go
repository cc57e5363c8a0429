package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/homeplanner/pkg/logger"
)

// ownerValue is the fasthttp user value holding the authenticated owner. Only
// the auth middleware writes it; request headers are never consulted.
const ownerValue = "homeplanner.owner"

// HeaderRequestID is read from incoming requests and echoed on every response.
const HeaderRequestID = "X-Request-ID"

// SetOwner records the authenticated owner on the request.
func SetOwner(ctx *fasthttp.RequestCtx, owner string) {
	ctx.SetUserValue(ownerValue, owner)
}

// Owner returns the authenticated owner, or "" when the request carries none.
func Owner(ctx *fasthttp.RequestCtx) string {
	owner, _ := ctx.UserValue(ownerValue).(string)
	return owner
}

// Adapter converts fasthttp.RequestCtx into a stdlib context with deadlines and metadata.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Timeout returns the deadline applied to each request context.
func (a *Adapter) Timeout() time.Duration {
	return a.timeout
}

// Attach creates a context with timeout derived from the adapter and enriches it with request metadata.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := RequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)

	if owner := Owner(ctx); owner != "" {
		stdCtx = appLogger.ContextWithOwner(stdCtx, owner)
	}
	var remoteAddr string
	if addr := ctx.RemoteAddr(); addr != nil {
		remoteAddr = addr.String()
	}
	stdCtx = appLogger.ContextWithClient(stdCtx, remoteAddr, string(ctx.Request.Header.UserAgent()))

	return stdCtx, cancel
}

// RequestID returns the id of the request, generating and echoing one when the
// client did not send it.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if id := string(ctx.Response.Header.Peek(HeaderRequestID)); id != "" {
		return id
	}
	id := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID)))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Response.Header.Set(HeaderRequestID, id)
	return id
}
