package testing

import (
	"context"

	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/statement"
)

// DeclaringDriver only declares capabilities and implements no contract.
type DeclaringDriver struct {
	Declared capability.Set
}

// Capabilities returns the declared set.
func (d *DeclaringDriver) Capabilities() capability.Set {
	return d.Declared
}

// ConnectableDriver implements driver.Connectable with no-op methods.
// Connections are the manager itself.
type ConnectableDriver struct {
	DeclaringDriver
}

// NewConnectableDriver returns a connectable driver declaring set.
func NewConnectableDriver(set capability.Set) *ConnectableDriver {
	return &ConnectableDriver{DeclaringDriver: DeclaringDriver{Declared: set}}
}

// CreateManager returns the instance name.
func (d *ConnectableDriver) CreateManager(_ context.Context, cfg *config.Instance, _ driver.Meta) (driver.Manager, error) {
	return cfg.Name, nil
}

// DestroyManager does nothing.
func (d *ConnectableDriver) DestroyManager(_ context.Context, _ driver.Manager, _ driver.Meta) error {
	return nil
}

// GetConnection returns the manager.
func (d *ConnectableDriver) GetConnection(_ context.Context, m driver.Manager, _ driver.Meta) (driver.Connection, error) {
	return m, nil
}

// ReleaseConnection does nothing.
func (d *ConnectableDriver) ReleaseConnection(_ context.Context, _ driver.Connection, _ driver.Meta) error {
	return nil
}

// QueryableDriver implements driver.Queryable. Native queries are echoed back.
type QueryableDriver struct {
	ConnectableDriver
}

// NewQueryableDriver returns a queryable driver declaring set.
func NewQueryableDriver(set capability.Set) *QueryableDriver {
	return &QueryableDriver{ConnectableDriver: *NewConnectableDriver(set)}
}

// CompileStatement returns the statement itself.
func (d *QueryableDriver) CompileStatement(stmt statement.Statement, _ driver.Meta) (driver.NativeQuery, error) {
	return stmt, nil
}

// SendNativeQuery returns the query.
func (d *QueryableDriver) SendNativeQuery(
	_ context.Context,
	_ driver.Connection,
	query driver.NativeQuery,
	_ driver.Meta,
) (any, error) {
	return query, nil
}

// ParseNativeQueryResult returns an empty result.
func (d *QueryableDriver) ParseNativeQueryResult(_ statement.Statement, _ any, _ driver.Meta) (statement.Result, error) {
	return statement.Result{Records: []statement.Record{}, Affected: 0}, nil
}

// ParseNativeQueryError classifies every error as catchall.
func (d *QueryableDriver) ParseNativeQueryError(_ error, _ driver.Meta) driver.Footprint {
	return driver.Catchall()
}

// TransactionalDriver implements driver.Transactional with no-op transactions.
type TransactionalDriver struct {
	QueryableDriver
}

// NewTransactionalDriver returns a transactional driver declaring set.
func NewTransactionalDriver(set capability.Set) *TransactionalDriver {
	return &TransactionalDriver{QueryableDriver: *NewQueryableDriver(set)}
}

// BeginTransaction does nothing.
func (d *TransactionalDriver) BeginTransaction(_ context.Context, _ driver.Connection, _ driver.Meta) error {
	return nil
}

// CommitTransaction does nothing.
func (d *TransactionalDriver) CommitTransaction(_ context.Context, _ driver.Connection, _ driver.Meta) error {
	return nil
}

// RollbackTransaction does nothing.
func (d *TransactionalDriver) RollbackTransaction(_ context.Context, _ driver.Connection, _ driver.Meta) error {
	return nil
}

var (
	_ driver.Driver        = &DeclaringDriver{}     //nolint:exhaustruct
	_ driver.Connectable   = &ConnectableDriver{}   //nolint:exhaustruct
	_ driver.Queryable     = &QueryableDriver{}     //nolint:exhaustruct
	_ driver.Transactional = &TransactionalDriver{} //nolint:exhaustruct
)
