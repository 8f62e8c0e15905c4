// Package netx wraps the plain HTTP GET calls the tracker client makes
// against the processing API and the storage behind its download URLs.
package netx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response body is kept for
// diagnostics.
const maxErrorBody = 4 << 10

// ErrDecode marks a 2xx body that could not be decoded.
var ErrDecode = errors.New("decode json")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// IsSuccess reports whether code is in the 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// ReadErrorBody drains up to maxErrorBody bytes of r for an error message.
func ReadErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return string(b)
}

// Open issues a GET to url and returns the body of a 2xx response. The
// caller must close it. Other statuses come back as *StatusError.
func Open(ctx context.Context, c *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	if !IsSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Body: ReadErrorBody(resp.Body)}
	}
	return resp.Body, nil
}

// GetJSON issues a GET to url and decodes a 2xx JSON body into v.
func GetJSON(ctx context.Context, c *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !IsSuccess(resp.StatusCode) {
		return &StatusError{Code: resp.StatusCode, Body: ReadErrorBody(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
