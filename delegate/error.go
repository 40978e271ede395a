package delegate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tarantool/go-datastore/driver"
)

var (
	// ErrUnavailable is returned when the datastore entry cannot be resolved at call time.
	ErrUnavailable = errors.New("datastore is not available")
	// ErrContract is returned when a driver does not implement the contract an operation needs.
	ErrContract = errors.New("driver does not implement the required contract")
	// ErrNoRoutine is returned when no During routine is given.
	ErrNoRoutine = errors.New("during routine is required")
	// ErrUnique is matched by query errors caused by uniqueness violations.
	ErrUnique = errors.New("uniqueness constraint violated")
)

// QueryError is returned when a native query fails. It carries the
// footprint the driver classified the error with.
type QueryError struct {
	Footprint driver.Footprint
	Err       error
}

func newQueryError(footprint driver.Footprint, err error) *QueryError {
	return &QueryError{Footprint: footprint, Err: err}
}

// Error returns the error message.
func (e *QueryError) Error() string {
	if e.Footprint.Identity == driver.IdentityNotUnique {
		return fmt.Sprintf("would violate a uniqueness constraint on [%s]: %s",
			strings.Join(e.Footprint.Keys, ", "), e.Err)
	}

	return fmt.Sprintf("native query failed: %s", e.Err)
}

// Unwrap returns the driver error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches ErrUnique for uniqueness violations.
func (e *QueryError) Is(target error) bool {
	return target == ErrUnique && e.Footprint.Identity == driver.IdentityNotUnique //nolint:errorlint
}
