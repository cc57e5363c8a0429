package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/homeplanner/api/handler"
)

type Handlers struct {
	Areas       *apiHandler.AreaHandler
	WeeklyTasks *apiHandler.WeeklyTaskHandler
	Contacts    *apiHandler.ContactHandler
	Health      *apiHandler.HealthHandler
}

// Middleware wraps a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

type collectionRoutes interface {
	List(ctx *fasthttp.RequestCtx)
	Create(ctx *fasthttp.RequestCtx)
	Delete(ctx *fasthttp.RequestCtx)
}

// New registers every route. Collection routes are served both at the root and
// under /api/v1.
func New(handlers Handlers, authMiddleware Middleware, logger *zap.Logger) *router.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := router.New()
	r.PanicHandler = func(ctx *fasthttp.RequestCtx, recovered interface{}) {
		logger.Error("handler panic", zap.Any("panic", recovered), zap.ByteString("path", ctx.Path()))
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
	}

	r.GET("/health", handlers.Health.Check)

	collections := map[string]collectionRoutes{
		"/areas":        handlers.Areas,
		"/weekly-tasks": handlers.WeeklyTasks,
		"/contacts":     handlers.Contacts,
	}
	for _, prefix := range []string{"", "/api/v1"} {
		for path, h := range collections {
			r.GET(prefix+path, authMiddleware(h.List))
			r.POST(prefix+path, authMiddleware(h.Create))
			r.DELETE(prefix+path+"/{id}", authMiddleware(h.Delete))
		}
	}

	return r
}
