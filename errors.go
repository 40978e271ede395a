package datastore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tarantool/go-datastore/capability"
)

// CodeNotSupported is the error code of every NotSupportedError.
const CodeNotSupported = "E_NOT_SUPPORTED"

var (
	// ErrNotSupported is matched by every *NotSupportedError.
	ErrNotSupported = errors.New("operation is not supported by the adapter")
)

// Kind tells whether an operation is unsupported because of the adapter's
// structure or because of a missing capability tier.
type Kind int

const (
	// KindStructural means the adapter gives no usable access to the datastore.
	// Every operation of the datastore fails with the same error.
	KindStructural Kind = iota
	// KindTier means the driver lacks the tier the operation requires.
	KindTier
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindTier:
		return "tier"
	default:
		return "unknown"
	}
}

// remediation is appended to every NotSupportedError message.
const remediation = "If there is a newer or older version of this adapter, " +
	"make sure the adapter and the datastore are configured for the same adapter API version. " +
	"Otherwise, the adapter does not provide this functionality"

// NotSupportedError is returned by datastore operations the adapter cannot serve.
// Callers should branch on the error with errors.Is(err, ErrNotSupported) or
// on Kind; the message is guidance only.
type NotSupportedError struct {
	Datastore string
	Kind      Kind
	// Layer and Method are set for KindTier errors.
	Layer  capability.Tier
	Method string

	reason string
}

// Code returns CodeNotSupported.
func (e *NotSupportedError) Code() string {
	return CodeNotSupported
}

// Error returns the error message.
func (e *NotSupportedError) Error() string {
	return e.reason + ". " + remediation
}

// Is matches ErrNotSupported.
func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported //nolint:errorlint
}

func errNoInstances(name string) *NotSupportedError {
	return &NotSupportedError{
		Datastore: name,
		Kind:      KindStructural,
		Layer:     capability.TierNone,
		Method:    "",
		reason: fmt.Sprintf("the adapter used by the %q datastore "+
			"does not support direct access to its internal datastore instances", name),
	}
}

func errMissingReference(name string) *NotSupportedError {
	return &NotSupportedError{
		Datastore: name,
		Kind:      KindStructural,
		Layer:     capability.TierNone,
		Method:    "",
		reason: fmt.Sprintf("the adapter used by the %q datastore "+
			"does not support direct access to it: the adapter holds no reference to this datastore", name),
	}
}

func errIncompleteReference(name string, missing []string) *NotSupportedError {
	return &NotSupportedError{
		Datastore: name,
		Kind:      KindStructural,
		Layer:     capability.TierNone,
		Method:    "",
		reason: fmt.Sprintf("the adapter used by the %q datastore "+
			"does not support direct access to it: the adapter holds an incomplete reference "+
			"to this datastore (missing %s)", name, strings.Join(missing, ", ")),
	}
}

func errTier(name string, layer capability.Tier, method string) *NotSupportedError {
	return &NotSupportedError{
		Datastore: name,
		Kind:      KindTier,
		Layer:     layer,
		Method:    method,
		reason: fmt.Sprintf("the adapter used by the %q datastore "+
			"does not support the %s interface layer required by %s()", name, layer, method),
	}
}
