// Package client is a typed HTTP client for the homeplanner collection endpoints.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/homeplanner/api/transport"
	"github.com/fastygo/homeplanner/domain"
)

// Doer is implemented by *fasthttp.Client and *fasthttp.HostClient.
type Doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("homeplanner: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	doer    Doer
}

type Option func(*Client)

// WithDoer replaces the default fasthttp client.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithTimeout bounds calls made with a context that has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for the server at baseURL, authenticating with the bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &fasthttp.Client{Name: "homeplanner-client"}
	}
	return c
}

// Collection is the typed view of one entity endpoint. B is the create body.
type Collection[T any, B any] struct {
	c    *Client
	path string
}

func (c *Client) Areas() *Collection[domain.Area, transport.AreaRequest] {
	return &Collection[domain.Area, transport.AreaRequest]{c: c, path: "/areas"}
}

func (c *Client) WeeklyTasks() *Collection[domain.WeeklyTask, transport.WeeklyTaskRequest] {
	return &Collection[domain.WeeklyTask, transport.WeeklyTaskRequest]{c: c, path: "/weekly-tasks"}
}

func (c *Client) Contacts() *Collection[domain.Contact, transport.ContactRequest] {
	return &Collection[domain.Contact, transport.ContactRequest]{c: c, path: "/contacts"}
}

func (col *Collection[T, B]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := col.c.do(ctx, fasthttp.MethodGet, col.path, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (col *Collection[T, B]) Create(ctx context.Context, body B) (domain.ID, error) {
	var out transport.InsertedBody
	if err := col.c.do(ctx, fasthttp.MethodPost, col.path, body, &out); err != nil {
		return "", err
	}
	return out.InsertedID, nil
}

// Delete removes the record and returns the server's confirmation message.
func (col *Collection[T, B]) Delete(ctx context.Context, id domain.ID) (string, error) {
	var out transport.MessageBody
	path := col.path + "/" + url.PathEscape(string(id))
	if err := col.c.do(ctx, fasthttp.MethodDelete, path, nil, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.doer.DoDeadline(req, resp, deadline); err != nil {
		return err
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		var e transport.ErrorBody
		if err := json.Unmarshal(resp.Body(), &e); err != nil || e.Error == "" {
			e.Error = http.StatusText(status)
		}
		return &APIError{Status: status, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}
