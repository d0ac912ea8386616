package api

import (
	"context"
	"net/http"
	"net/url"
	"reflect"

	"github.com/danielolaszy/boardctl/internal/logging"
)

// Query performs a read-many GET. It never fails: on any error, or when the
// server sends no body, empty is returned.
func Query[T any](ctx context.Context, c *Client, path string, params url.Values, empty T) T {
	var out T
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		logging.Warn("query failed, rendering empty result", "path", path, "error", err)
		return empty
	}
	if isNil(out) {
		logging.Warn("response missing data, rendering empty result", "path", path)
		return empty
	}
	return out
}

// Command performs a single-entity read or a mutation and decodes the
// response into T. Errors are returned unchanged.
func Command[T any](ctx context.Context, c *Client, method, path string, params url.Values, body any) (T, error) {
	var out T
	if err := c.do(ctx, method, path, params, body, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Exec is Command for calls whose response body is ignored.
func Exec(ctx context.Context, c *Client, method, path string, params url.Values, body any) error {
	return c.do(ctx, method, path, params, body, nil)
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
