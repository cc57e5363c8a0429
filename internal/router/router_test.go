package router

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	apiHandler "github.com/fastygo/homeplanner/api/handler"
	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/domain"
	"github.com/fastygo/homeplanner/internal/infrastructure/monitor"
	"github.com/fastygo/homeplanner/internal/middleware"
	"github.com/fastygo/homeplanner/pkg/client"
	"github.com/fastygo/homeplanner/pkg/httpcontext"
	"github.com/fastygo/homeplanner/repository"
	"github.com/fastygo/homeplanner/repository/memory"
	"github.com/fastygo/homeplanner/usecase/collection"
)

const secret = "router-secret"

type app struct {
	areas *memory.Store[domain.Area, domain.AreaCreation]
	mon   *monitor.Monitor
	dial  func(string) (net.Conn, error)
}

func startApp(t *testing.T) *app {
	t.Helper()
	areas := memory.NewStore[domain.Area, domain.AreaCreation]()
	mon := monitor.New([]monitor.Probe{monitor.NewProbe("memory", areas.Ping)}, time.Minute, nil)
	mon.Refresh()

	adapter := httpcontext.NewAdapter(time.Second)
	validate := transport.NewValidator()
	handlers := Handlers{
		Areas: apiHandler.NewAreaHandler(
			collection.New(repository.CollectionAreas, repository.AreaRepository(areas), nil, nil),
			validate, adapter, nil),
		WeeklyTasks: apiHandler.NewWeeklyTaskHandler(
			collection.New(repository.CollectionWeeklyTasks, memory.NewWeeklyTaskRepository(), nil, nil),
			validate, adapter, nil),
		Contacts: apiHandler.NewContactHandler(
			collection.New(repository.CollectionContacts, memory.NewContactRepository(), nil, nil),
			validate, adapter, nil),
		Health: apiHandler.NewHealthHandler(mon, adapter, nil),
	}
	auth := middleware.JWTAuth(middleware.AuthConfig{Secret: secret}, nil)
	r := New(handlers, auth, nil)

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: r.Handler}
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	return &app{
		areas: areas,
		mon:   mon,
		dial:  func(string) (net.Conn, error) { return ln.Dial() },
	}
}

func (a *app) client(t *testing.T, owner, prefix string) *client.Client {
	t.Helper()
	token := ""
	if owner != "" {
		var err error
		token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": owner}).SignedString([]byte(secret))
		require.NoError(t, err)
	}
	return client.New("http://homeplanner.test"+prefix, token, client.WithDoer(&fasthttp.Client{Dial: a.dial}))
}

func (a *app) raw(t *testing.T, method, uri, authorization string) *fasthttp.Response {
	t.Helper()
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(method)
	req.SetRequestURI("http://homeplanner.test" + uri)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := &fasthttp.Response{}
	require.NoError(t, (&fasthttp.Client{Dial: a.dial}).DoTimeout(req, resp, time.Second))
	return resp
}

func apiStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	return apiErr.Status, apiErr.Message
}

func TestRouter_AreaScenarios(t *testing.T) {
	a := startApp(t)
	ctx := context.Background()
	u1 := a.client(t, "u1", "").Areas()

	// no owner
	_, err := a.client(t, "", "").Areas().List(ctx)
	status, msg := apiStatus(t, err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid request", msg)

	// missing areaName
	_, err = u1.Create(ctx, transport.AreaRequest{})
	status, msg = apiStatus(t, err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Area name is required", msg)

	// create then list
	id, err := u1.Create(ctx, transport.AreaRequest{AreaName: "Kitchen"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	areas, err := u1.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Area{{ID: id, UserID: "u1", Area: "Kitchen"}}, areas)

	// foreign delete reports success but leaves the record
	msg, err = a.client(t, "u2", "").Areas().Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Area deleted id: "+string(id), msg)
	areas, err = u1.List(ctx)
	require.NoError(t, err)
	assert.Len(t, areas, 1)

	// storage fault
	a.areas.FailWith(errors.New("connection reset"))
	_, err = u1.List(ctx)
	status, msg = apiStatus(t, err)
	assert.Equal(t, 500, status)
	assert.Equal(t, "Failed to fetch areas", msg)
}

func TestRouter_VersionedPrefix(t *testing.T) {
	a := startApp(t)
	ctx := context.Background()
	contacts := a.client(t, "u1", "/api/v1").Contacts()

	id, err := contacts.Create(ctx, transport.ContactRequest{Name: "Ana"})
	require.NoError(t, err)

	list, err := a.client(t, "u1", "").Contacts().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{{ID: id, UserID: "u1", Name: "Ana"}}, list)

	_, err = contacts.Delete(ctx, id)
	require.NoError(t, err)
	list, err = contacts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRouter_WeeklyTasks(t *testing.T) {
	a := startApp(t)
	ctx := context.Background()
	tasks := a.client(t, "u1", "").WeeklyTasks()

	start := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	id, err := tasks.Create(ctx, transport.WeeklyTaskRequest{WeeklyTask: &transport.WeeklyTaskBody{
		Start: start.UnixMilli(),
		End:   start.Add(2 * time.Hour).UnixMilli(),
		Users: []transport.TaskUserRequest{{Name: "Ana", Area: "Kitchen"}},
	}})
	require.NoError(t, err)

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.True(t, start.Equal(list[0].Start))
	assert.True(t, start.Add(2*time.Hour).Equal(list[0].End))
	assert.Equal(t, []domain.TaskUser{{Name: "Ana", Area: "Kitchen"}}, list[0].Users)

	_, err = tasks.Create(ctx, transport.WeeklyTaskRequest{})
	status, _ := apiStatus(t, err)
	assert.Equal(t, 400, status)
}

func TestRouter_InvalidTokenUnauthorized(t *testing.T) {
	a := startApp(t)

	resp := a.raw(t, fasthttp.MethodGet, "/areas", "Bearer not-a-token")
	assert.Equal(t, fasthttp.StatusUnauthorized, resp.StatusCode())
	assert.JSONEq(t, `{"error":"Unauthorized"}`, string(resp.Body()))
}

func TestRouter_Health(t *testing.T) {
	a := startApp(t)

	resp := a.raw(t, fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"memory":true`)

	a.areas.FailWith(errors.New("down"))
	a.mon.Refresh()
	resp = a.raw(t, fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusServiceUnavailable, resp.StatusCode())
}

func TestRouter_UnknownRoute(t *testing.T) {
	a := startApp(t)

	resp := a.raw(t, fasthttp.MethodGet, "/tasks", "")
	assert.Equal(t, fasthttp.StatusNotFound, resp.StatusCode())
}
