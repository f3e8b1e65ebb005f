package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated is matched by responses that say the session is missing or expired.
var ErrUnauthenticated = errors.New("not authenticated")

const maxErrorBodyBytes = 512

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is(err, ErrUnauthenticated) match 401 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthenticated && e.StatusCode == http.StatusUnauthorized
}
