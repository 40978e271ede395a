package adapter

import (
	"errors"
	"fmt"

	"github.com/coreos/go-semver/semver"
)

// HostAPIVersion is the adapter API version this module implements.
const HostAPIVersion = "1.0.0"

var (
	// ErrIncompatible is returned when an adapter cannot be used with the host.
	ErrIncompatible = errors.New("incompatible adapter")
)

// IncompatibleError describes why an adapter was rejected.
type IncompatibleError struct {
	Adapter  string
	Version  string
	Expected string
	Reason   string
	Err      error
}

// Error returns the error message.
func (e *IncompatibleError) Error() string {
	msg := fmt.Sprintf("adapter %q declares API version %q, host expects %s: %s",
		e.Adapter, e.Version, e.Expected, e.Reason)

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is matches ErrIncompatible.
func (e *IncompatibleError) Is(target error) bool {
	return target == ErrIncompatible //nolint:errorlint
}

// Unwrap returns the underlying parse error, if any.
func (e *IncompatibleError) Unwrap() error {
	return e.Err
}

// CheckCompatibility verifies that the adapter implements a version of the
// adapter API the host understands: same major version and not older than
// host. An empty host version means HostAPIVersion.
func CheckCompatibility(a Adapter, host string) error {
	if host == "" {
		host = HostAPIVersion
	}

	expected, err := semver.NewVersion(host)
	if err != nil {
		return fmt.Errorf("invalid host API version %q: %w", host, err)
	}

	if a == nil {
		return &IncompatibleError{
			Adapter: "", Version: "", Expected: host, Reason: "adapter is nil", Err: nil,
		}
	}

	declared := a.APIVersion()

	newErr := func(reason string, err error) error {
		return &IncompatibleError{
			Adapter:  a.Identity(),
			Version:  declared,
			Expected: "^" + expected.String(),
			Reason:   reason,
			Err:      err,
		}
	}

	if declared == "" {
		return newErr("adapter does not declare an API version", nil)
	}

	actual, err := semver.NewVersion(declared)
	if err != nil {
		return newErr("API version is not a semantic version", err)
	}

	switch {
	case actual.Major != expected.Major:
		return newErr("major versions differ", nil)
	case actual.LessThan(*expected):
		return newErr("adapter API is older than the host", nil)
	}

	return nil
}
