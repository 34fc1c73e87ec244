package gateway

import (
	"errors"
	"fmt"
)

// ErrMissingCSRF is returned before any network call when a mutating
// request has no csrftoken cookie to echo.
var ErrMissingCSRF = errors.New("csrf token not found")

// APIError carries a non-2xx response back to the caller.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api error: HTTP %d: %s", e.Status, e.Body)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
