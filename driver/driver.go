// Package driver defines the contracts storage drivers implement.
// A driver declares the operations it supports through Capabilities and
// implements the matching contract: Connectable, Queryable or Transactional.
package driver

import (
	"context"

	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/statement"
)

// Manager is an opaque live resource pool created by a driver.
type Manager any

// Connection is an opaque connection leased from a Manager.
type Connection any

// NativeQuery is a query in the driver's own format.
type NativeQuery any

// Meta carries driver-specific per-call settings.
type Meta map[string]any

// Driver is the interface every storage driver implements.
type Driver interface {
	// Capabilities returns the statically declared set of supported operations.
	Capabilities() capability.Set
}

// Connectable is implemented by drivers that manage connections.
type Connectable interface {
	Driver

	// CreateManager creates a live resource pool for the datastore.
	CreateManager(ctx context.Context, cfg *config.Instance, meta Meta) (Manager, error)
	// DestroyManager closes a resource pool created by CreateManager.
	DestroyManager(ctx context.Context, manager Manager, meta Meta) error
	// GetConnection leases a connection from the manager.
	GetConnection(ctx context.Context, manager Manager, meta Meta) (Connection, error)
	// ReleaseConnection returns a leased connection.
	ReleaseConnection(ctx context.Context, conn Connection, meta Meta) error
}

// Queryable is implemented by drivers that can run queries.
type Queryable interface {
	Connectable

	// CompileStatement compiles a structured statement into a native query.
	CompileStatement(stmt statement.Statement, meta Meta) (NativeQuery, error)
	// SendNativeQuery runs a native query over the connection and returns the raw result.
	SendNativeQuery(ctx context.Context, conn Connection, query NativeQuery, meta Meta) (any, error)
	// ParseNativeQueryResult converts the raw result of a compiled statement.
	ParseNativeQueryResult(stmt statement.Statement, raw any, meta Meta) (statement.Result, error)
	// ParseNativeQueryError classifies an error returned by SendNativeQuery.
	ParseNativeQueryError(err error, meta Meta) Footprint
}

// Transactional is implemented by drivers that can run transactions.
type Transactional interface {
	Queryable

	// BeginTransaction starts a transaction on the connection.
	BeginTransaction(ctx context.Context, conn Connection, meta Meta) error
	// CommitTransaction commits the transaction running on the connection.
	CommitTransaction(ctx context.Context, conn Connection, meta Meta) error
	// RollbackTransaction rolls back the transaction running on the connection.
	RollbackTransaction(ctx context.Context, conn Connection, meta Meta) error
}
