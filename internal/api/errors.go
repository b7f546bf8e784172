package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable indicates the API server is unreachable.
	ErrUnavailable = errors.New("api server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("api request timed out")
)

// StatusError is a non-2xx API response, keeping the status code so callers
// can tell not-found apart from validation and server errors.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
