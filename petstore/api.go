package petstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/s0up4200/apictl/client"
	"github.com/s0up4200/apictl/response"
)

// Caller is the subset of *client.Client the API needs
type Caller interface {
	Call(ctx context.Context, req client.Request) (any, *response.Response, error)
}

// API wraps the petstore endpoints
type API struct {
	caller      Caller
	logger      zerolog.Logger
	concurrency int
}

// APIOption configures an API
type APIOption func(*API)

// WithConcurrency bounds the number of in-flight requests for batch calls
func WithConcurrency(n int) APIOption {
	return func(a *API) {
		if n > 0 {
			a.concurrency = min(n, MaxConcurrency)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) APIOption {
	return func(a *API) {
		a.logger = logger
	}
}

// NewAPI registers the petstore models on c and returns the API
func NewAPI(c *client.Client, opts ...APIOption) (*API, error) {
	if err := Register(c.Registry()); err != nil {
		return nil, fmt.Errorf("failed to register petstore models: %w", err)
	}
	return newAPI(c, opts...), nil
}

func newAPI(caller Caller, opts ...APIOption) *API {
	a := &API{
		caller:      caller,
		logger:      zerolog.Nop(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetPetByID returns a single pet
func (a *API) GetPetByID(ctx context.Context, id int64) (*Pet, error) {
	v, _, err := a.caller.Call(ctx, client.Request{
		Path:       "/pet/" + strconv.FormatInt(id, 10),
		ReturnType: "Pet",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get pet %d: %w", id, err)
	}
	return as[*Pet](v)
}

// FindPetsByStatus returns pets matching any of the given statuses
func (a *API) FindPetsByStatus(ctx context.Context, statuses ...string) ([]*Pet, error) {
	if len(statuses) == 0 {
		statuses = []string{StatusAvailable}
	}

	v, _, err := a.caller.Call(ctx, client.Request{
		Path:       "/pet/findByStatus",
		Query:      url.Values{"status": statuses},
		ReturnType: "Array<Pet>",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find pets: %w", err)
	}
	return response.SliceOf[*Pet](v)
}

// AddPet creates a pet and returns the stored version
func (a *API) AddPet(ctx context.Context, pet *Pet) (*Pet, error) {
	v, _, err := a.caller.Call(ctx, client.Request{
		Method:     http.MethodPost,
		Path:       "/pet",
		Body:       pet,
		ReturnType: "Pet",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add pet: %w", err)
	}
	return as[*Pet](v)
}

// GetInventory returns pet counts keyed by status
func (a *API) GetInventory(ctx context.Context) (map[string]int64, error) {
	v, _, err := a.caller.Call(ctx, client.Request{
		Path:       "/store/inventory",
		ReturnType: "Hash<String, Integer>",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return response.MapOf[int64](v)
}

// GetOrderByID returns a purchase order
func (a *API) GetOrderByID(ctx context.Context, id int64) (*Order, error) {
	v, _, err := a.caller.Call(ctx, client.Request{
		Path:       "/store/order/" + strconv.FormatInt(id, 10),
		ReturnType: "Order",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return as[*Order](v)
}

// GetUserByName returns a user
func (a *API) GetUserByName(ctx context.Context, username string) (*User, error) {
	v, _, err := a.caller.Call(ctx, client.Request{
		Path:       "/user/" + url.PathEscape(username),
		ReturnType: "User",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return as[*User](v)
}

// Session is the result of a login
type Session struct {
	Message      string
	RateLimit    string
	ExpiresAfter string
}

// LoginUser logs a user in. The server answers with a plain string and
// reports limits in the X-Rate-Limit and X-Expires-After headers.
func (a *API) LoginUser(ctx context.Context, username, password string) (*Session, error) {
	v, resp, err := a.caller.Call(ctx, client.Request{
		Path:       "/user/login",
		Query:      url.Values{"username": {username}, "password": {password}},
		ReturnType: "String",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log in %s: %w", username, err)
	}

	msg, err := as[string](v)
	if err != nil {
		return nil, err
	}
	return &Session{
		Message:      msg,
		RateLimit:    resp.Header().Get("X-Rate-Limit"),
		ExpiresAfter: resp.Header().Get("X-Expires-After"),
	}, nil
}

// DownloadPetImage saves the pet's image into the temp directory
func (a *API) DownloadPetImage(ctx context.Context, id int64) (*response.File, error) {
	v, _, err := a.caller.Call(ctx, client.Request{
		Path:       "/pet/" + strconv.FormatInt(id, 10) + "/image",
		ReturnType: "File",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download image for pet %d: %w", id, err)
	}
	return as[*response.File](v)
}

// as asserts v to T. A nil value yields T's zero value.
func as[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: expected %T, got %T", response.ErrTypeMismatch, zero, v)
	}
	return t, nil
}
