// Package capability declares the operations a storage driver may support
// and classifies a declared operation set into cumulative tiers.
package capability

import (
	"slices"
	"sort"
)

// Operation is the name of a single driver operation.
type Operation string

const (
	// CreateManager creates a live resource pool for a datastore.
	CreateManager Operation = "createManager"
	// DestroyManager destroys a live resource pool.
	DestroyManager Operation = "destroyManager"
	// GetConnection leases a connection from a manager.
	GetConnection Operation = "getConnection"
	// ReleaseConnection returns a leased connection to its manager.
	ReleaseConnection Operation = "releaseConnection"

	// SendNativeQuery sends a native query over a connection.
	SendNativeQuery Operation = "sendNativeQuery"
	// CompileStatement compiles a structured statement into a native query.
	CompileStatement Operation = "compileStatement"
	// ParseNativeQueryResult converts a raw native result into records.
	ParseNativeQueryResult Operation = "parseNativeQueryResult"
	// ParseNativeQueryError converts a raw native error into a footprint.
	ParseNativeQueryError Operation = "parseNativeQueryError"

	// BeginTransaction starts a transaction on a connection.
	BeginTransaction Operation = "beginTransaction"
	// CommitTransaction commits the transaction running on a connection.
	CommitTransaction Operation = "commitTransaction"
	// RollbackTransaction rolls back the transaction running on a connection.
	RollbackTransaction Operation = "rollbackTransaction"
)

// Tier is a cumulative capability layer.
type Tier int

const (
	// TierNone means the driver supports no tier at all.
	TierNone Tier = iota
	// TierConnectable means connections can be created, leased and released.
	TierConnectable
	// TierQueryable means native queries and statements can be sent.
	TierQueryable
	// TierTransactional means transactions can be run.
	TierTransactional
)

// String returns the name of the interface layer.
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierConnectable:
		return "connectable"
	case TierQueryable:
		return "queryable"
	case TierTransactional:
		return "transactional"
	default:
		return "unknown"
	}
}

// layers lists the operations each tier adds on top of the previous one.
var layers = map[Tier][]Operation{
	TierConnectable: {
		CreateManager,
		DestroyManager,
		GetConnection,
		ReleaseConnection,
	},
	TierQueryable: {
		SendNativeQuery,
		CompileStatement,
		ParseNativeQueryResult,
		ParseNativeQueryError,
	},
	TierTransactional: {
		BeginTransaction,
		CommitTransaction,
		RollbackTransaction,
	},
}

// Layer returns the operations a tier adds on top of the tier below it.
func Layer(t Tier) []Operation {
	return slices.Clone(layers[t])
}

// All returns every known operation, ordered by tier.
func All() []Operation {
	return Of(TierTransactional).Operations()
}

// Set is a statically declared set of supported operations.
type Set map[Operation]struct{}

// NewSet creates a set from the given operations.
func NewSet(ops ...Operation) Set {
	set := make(Set, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}

	return set
}

// Of returns the full set of operations required to reach the given tier.
func Of(t Tier) Set {
	set := NewSet()

	for tier := TierConnectable; tier <= t && tier <= TierTransactional; tier++ {
		for _, op := range layers[tier] {
			set[op] = struct{}{}
		}
	}

	return set
}

// With returns a copy of the set extended with ops.
func (s Set) With(ops ...Operation) Set {
	out := make(Set, len(s)+len(ops))
	for op := range s {
		out[op] = struct{}{}
	}

	for _, op := range ops {
		out[op] = struct{}{}
	}

	return out
}

// Has reports whether op is in the set. A nil set has nothing.
func (s Set) Has(op Operation) bool {
	_, ok := s[op]
	return ok
}

// HasAll reports whether every op is in the set.
func (s Set) HasAll(ops ...Operation) bool {
	for _, op := range ops {
		if !s.Has(op) {
			return false
		}
	}

	return true
}

// Operations returns the members of the set in a stable order:
// known operations by tier first, then unknown ones sorted by name.
func (s Set) Operations() []Operation {
	out := make([]Operation, 0, len(s))
	known := make(map[Operation]struct{}, len(s))

	for tier := TierConnectable; tier <= TierTransactional; tier++ {
		for _, op := range layers[tier] {
			if s.Has(op) {
				out = append(out, op)
				known[op] = struct{}{}
			}
		}
	}

	var rest []Operation

	for op := range s {
		if _, ok := known[op]; !ok {
			rest = append(rest, op)
		}
	}

	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	return append(out, rest...)
}
