package llm

import (
	"errors"
	"fmt"
)

// dependencyUnavailableError signals a missing external dependency (e.g., llama.cpp)
// so the HTTP layer can return 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var de dependencyUnavailableError
	return errors.As(err, &de)
}

// backendHTTPError is a non-2xx answer from a remote backend.
type backendHTTPError struct {
	backend string
	status  string
	body    string
}

func (e backendHTTPError) Error() string {
	return fmt.Sprintf("%s backend http error: %s: %s", e.backend, e.status, e.body)
}
