// Package kvquery defines the native query format shared by key-value
// drivers: a conditional transaction of predicates and operations.
package kvquery

import (
	"errors"
	"fmt"
	"strings"
)

// KeyValue is a key-value pair with revision metadata.
type KeyValue struct {
	// Key is the serialized representation of the key.
	Key []byte
	// Value is the serialized representation of the value.
	Value []byte
	// ModRevision is the revision number of the last modification to this key.
	ModRevision int64
}

// OpType is the type of a key-value operation.
type OpType int

const (
	// OpGet reads a key, or every key under a prefix.
	OpGet OpType = iota
	// OpPut writes a key.
	OpPut
	// OpDelete deletes a key, or every key under a prefix.
	OpDelete
	// OpMerge merges a msgpack-encoded record into the stored one.
	OpMerge
)

func (t OpType) String() string {
	switch t {
	case OpGet:
		return "Get"
	case OpPut:
		return "Put"
	case OpDelete:
		return "Delete"
	case OpMerge:
		return "Merge"
	default:
		return "Unknown"
	}
}

// Operation is a single operation of a query.
// A key ending with "/" addresses every key under that prefix.
type Operation struct {
	Type  OpType
	Key   []byte
	Value []byte
}

// Get returns a read operation.
func Get(key []byte) Operation {
	return Operation{Type: OpGet, Key: key, Value: nil}
}

// Put returns a write operation.
func Put(key, value []byte) Operation {
	return Operation{Type: OpPut, Key: key, Value: value}
}

// Delete returns a delete operation.
func Delete(key []byte) Operation {
	return Operation{Type: OpDelete, Key: key, Value: nil}
}

// Merge returns a merge operation.
func Merge(key, value []byte) Operation {
	return Operation{Type: OpMerge, Key: key, Value: value}
}

// IsPrefix reports whether key addresses a prefix.
func IsPrefix(key []byte) bool {
	return len(key) == 0 || key[len(key)-1] == '/'
}

// Target is the aspect of a key a predicate compares.
type Target int

const (
	// TargetVersion compares the modification revision; missing keys have revision 0.
	TargetVersion Target = iota
	// TargetValue compares the stored value.
	TargetValue
)

// Compare is a predicate comparison.
type Compare int

const (
	// CompareEqual requires equality.
	CompareEqual Compare = iota
	// CompareNotEqual requires inequality.
	CompareNotEqual
	// CompareGreater requires the stored revision to be greater.
	CompareGreater
	// CompareLess requires the stored revision to be less.
	CompareLess
)

// Predicate is a condition checked before running a query's operations.
type Predicate struct {
	Key     []byte
	Target  Target
	Compare Compare
	// Value is an int64 for TargetVersion and []byte for TargetValue.
	Value any
}

// VersionEqual requires the key's revision to equal rev.
// VersionEqual(key, 0) requires the key to be absent.
func VersionEqual(key []byte, rev int64) Predicate {
	return Predicate{Key: key, Target: TargetVersion, Compare: CompareEqual, Value: rev}
}

// VersionNotEqual requires the key's revision to differ from rev.
// VersionNotEqual(key, 0) requires the key to exist.
func VersionNotEqual(key []byte, rev int64) Predicate {
	return Predicate{Key: key, Target: TargetVersion, Compare: CompareNotEqual, Value: rev}
}

// ValueEqual requires the key's value to equal value.
func ValueEqual(key, value []byte) Predicate {
	return Predicate{Key: key, Target: TargetValue, Compare: CompareEqual, Value: value}
}

// Query is a conditional transaction: Then runs when every predicate
// holds, Else otherwise.
type Query struct {
	If   []Predicate
	Then []Operation
	Else []Operation
	// Strict turns a failed condition into a *PreconditionError.
	Strict bool
}

// Response is the raw result of a query.
type Response struct {
	// Succeeded reports whether the predicates held.
	Succeeded bool
	// Results holds one entry per executed operation.
	Results [][]KeyValue
	// Revision is the store revision after the query.
	Revision int64
}

var (
	// ErrPrecondition is matched by every *PreconditionError.
	ErrPrecondition = errors.New("precondition failed")
	// ErrUnexpectedResult is returned when parsing a raw result that is not a Response.
	ErrUnexpectedResult = errors.New("unexpected key-value result")
)

// PreconditionError is returned for strict queries whose condition failed.
type PreconditionError struct {
	Keys []string
}

// NewPreconditionError builds the error for the predicates of a failed query.
func NewPreconditionError(predicates []Predicate) *PreconditionError {
	keys := make([]string, 0, len(predicates))
	for _, predicate := range predicates {
		keys = append(keys, string(predicate.Key))
	}

	return &PreconditionError{Keys: keys}
}

// Error returns the error message.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed on keys [%s]", strings.Join(e.Keys, ", "))
}

// Is matches ErrPrecondition.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition //nolint:errorlint
}
