package delegate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/statement"
)

// Helpers runs delegated operations against the drivers of adapters.
// It holds no per-call state and is safe for concurrent use.
type Helpers struct {
	logger *zap.Logger
}

// New creates helpers that log through logger. A nil logger disables logging.
func New(logger *zap.Logger) *Helpers {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Helpers{logger: logger}
}

func resolve(a adapter.Adapter, name string) (adapter.Entry, error) {
	entry, status := adapter.Lookup(a, name)
	if status != adapter.LookupFound {
		return adapter.Entry{}, fmt.Errorf("%w: %q", ErrUnavailable, name)
	}

	return entry, nil
}

func connectable(a adapter.Adapter, name string) (adapter.Entry, driver.Connectable, error) {
	entry, err := resolve(a, name)
	if err != nil {
		return adapter.Entry{}, nil, err
	}

	drv, ok := entry.Driver.(driver.Connectable)
	if !ok {
		return adapter.Entry{}, nil, fmt.Errorf("%w: %T is not connectable", ErrContract, entry.Driver)
	}

	return entry, drv, nil
}

func queryable(a adapter.Adapter, name string) (adapter.Entry, driver.Queryable, error) {
	entry, err := resolve(a, name)
	if err != nil {
		return adapter.Entry{}, nil, err
	}

	drv, ok := entry.Driver.(driver.Queryable)
	if !ok {
		return adapter.Entry{}, nil, fmt.Errorf("%w: %T is not queryable", ErrContract, entry.Driver)
	}

	return entry, drv, nil
}

func transactional(a adapter.Adapter, name string) (adapter.Entry, driver.Transactional, error) {
	entry, err := resolve(a, name)
	if err != nil {
		return adapter.Entry{}, nil, err
	}

	drv, ok := entry.Driver.(driver.Transactional)
	if !ok {
		return adapter.Entry{}, nil, fmt.Errorf("%w: %T is not transactional", ErrContract, entry.Driver)
	}

	return entry, drv, nil
}

// withConnection leases a connection, runs fn and releases the connection.
// A release failure is returned only when fn succeeded.
func (h *Helpers) withConnection(
	ctx context.Context,
	drv driver.Connectable,
	manager driver.Manager,
	meta driver.Meta,
	fn During,
) (result any, err error) { //nolint:nonamedreturns
	conn, err := drv.GetConnection(ctx, manager, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to lease connection: %w", err)
	}

	defer func() {
		releaseErr := drv.ReleaseConnection(context.WithoutCancel(ctx), conn, meta)

		switch {
		case releaseErr == nil:
		case err == nil:
			result, err = nil, fmt.Errorf("failed to release connection: %w", releaseErr)
		default:
			h.logger.Warn("failed to release connection", zap.Error(releaseErr))
		}
	}()

	return fn(ctx, conn)
}

// LeaseConnection runs the During routine with a freshly leased connection.
func (h *Helpers) LeaseConnection(ctx context.Context, opts LeaseOptions) (any, error) {
	if opts.During == nil {
		return nil, ErrNoRoutine
	}

	entry, drv, err := connectable(opts.Adapter, opts.Datastore)
	if err != nil {
		return nil, err
	}

	return h.withConnection(ctx, drv, entry.Manager, opts.Meta, opts.During)
}

// sendOn sends a native query on conn and classifies its error.
func sendOn(
	ctx context.Context,
	drv driver.Queryable,
	conn driver.Connection,
	query driver.NativeQuery,
	meta driver.Meta,
) (any, error) {
	raw, err := drv.SendNativeQuery(ctx, conn, query, meta)
	if err != nil {
		return nil, newQueryError(drv.ParseNativeQueryError(err, meta), err)
	}

	return raw, nil
}

// send runs the native query on the given connection, or on a
// connection leased for this query only.
func (h *Helpers) send(
	ctx context.Context,
	entry adapter.Entry,
	drv driver.Queryable,
	query driver.NativeQuery,
	meta driver.Meta,
	using driver.Connection,
) (any, error) {
	if using != nil {
		return sendOn(ctx, drv, using, query, meta)
	}

	return h.withConnection(ctx, drv, entry.Manager, meta, func(ctx context.Context, conn driver.Connection) (any, error) {
		return sendOn(ctx, drv, conn, query, meta)
	})
}

// SendNativeQuery sends a native query and returns the raw driver result.
func (h *Helpers) SendNativeQuery(ctx context.Context, opts NativeQueryOptions) (any, error) {
	entry, drv, err := queryable(opts.Adapter, opts.Datastore)
	if err != nil {
		return nil, err
	}

	return h.send(ctx, entry, drv, opts.NativeQuery, opts.Meta, opts.UsingConnection.UnwrapOr(nil))
}

// SendStatement compiles the statement, sends it and parses the result.
func (h *Helpers) SendStatement(ctx context.Context, opts StatementOptions) (statement.Result, error) {
	entry, drv, err := queryable(opts.Adapter, opts.Datastore)
	if err != nil {
		return statement.Result{}, err
	}

	query, err := drv.CompileStatement(opts.Statement, opts.Meta)
	if err != nil {
		return statement.Result{}, err //nolint:wrapcheck
	}

	raw, err := h.send(ctx, entry, drv, query, opts.Meta, opts.UsingConnection.UnwrapOr(nil))
	if err != nil {
		return statement.Result{}, err
	}

	result, err := drv.ParseNativeQueryResult(opts.Statement, raw, opts.Meta)
	if err != nil {
		return statement.Result{}, fmt.Errorf("failed to parse native query result: %w", err)
	}

	return result, nil
}

// Transaction runs the During routine inside a transaction on a leased
// connection. The transaction is committed when the routine succeeds and
// rolled back when it fails or panics.
func (h *Helpers) Transaction(ctx context.Context, opts TransactionOptions) (any, error) {
	if opts.During == nil {
		return nil, ErrNoRoutine
	}

	entry, drv, err := transactional(opts.Adapter, opts.Datastore)
	if err != nil {
		return nil, err
	}

	return h.withConnection(ctx, drv, entry.Manager, opts.Meta, func(ctx context.Context, conn driver.Connection) (any, error) {
		return h.inTransaction(ctx, drv, conn, opts.Meta, opts.During)
	})
}

func (h *Helpers) inTransaction(
	ctx context.Context,
	drv driver.Transactional,
	conn driver.Connection,
	meta driver.Meta,
	during During,
) (any, error) {
	if err := drv.BeginTransaction(ctx, conn, meta); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			h.rollback(ctx, drv, conn, meta)
			panic(r)
		}
	}()

	result, err := during(ctx, conn)
	if err != nil {
		h.rollback(ctx, drv, conn, meta)
		return nil, err
	}

	if err := drv.CommitTransaction(ctx, conn, meta); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

func (h *Helpers) rollback(ctx context.Context, drv driver.Transactional, conn driver.Connection, meta driver.Meta) {
	if err := drv.RollbackTransaction(context.WithoutCancel(ctx), conn, meta); err != nil {
		h.logger.Warn("failed to roll back transaction", zap.Error(err))
	}
}
