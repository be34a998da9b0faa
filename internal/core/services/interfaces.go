package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"susu-dashboard/internal/adapters/backend"
	"susu-dashboard/internal/pkg/pagination"
)

// Doer executes backend requests. *backend.Client implements it.
type Doer interface {
	Do(ctx context.Context, req backend.Request) (*backend.Response, error)
}

func get(path string, query url.Values) backend.Request {
	return backend.Request{Method: http.MethodGet, Path: path, Query: query}
}

func paged(path string, p pagination.Params) backend.Request {
	return get(path, p.Query())
}

func post(path string, body any) backend.Request {
	return backend.Request{Method: http.MethodPost, Path: path, Body: body}
}

func put(path string, body any) backend.Request {
	return backend.Request{Method: http.MethodPut, Path: path, Body: body}
}

func del(path string) backend.Request {
	return backend.Request{Method: http.MethodDelete, Path: path}
}

func pathf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// fetch runs req and decodes the reply into a T
func fetch[T any](ctx context.Context, api Doer, req backend.Request) (*T, error) {
	resp, err := api.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := resp.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchPage runs a list request and normalizes either response shape
func fetchPage[T any](ctx context.Context, api Doer, req backend.Request, p pagination.Params) (pagination.Page[T], error) {
	resp, err := api.Do(ctx, req)
	if err != nil {
		return pagination.Page[T]{}, err
	}
	return pagination.Normalize[T](resp.Body, p)
}

// fetchAll runs an unpaginated list request
func fetchAll[T any](ctx context.Context, api Doer, req backend.Request) ([]T, error) {
	page, err := fetchPage[T](ctx, api, req, pagination.All)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func send(ctx context.Context, api Doer, req backend.Request) error {
	_, err := api.Do(ctx, req)
	return err
}
