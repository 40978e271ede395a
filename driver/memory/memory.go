// Package memory provides an in-memory, fully transactional storage driver.
// It is intended for tests, examples and single-process deployments.
package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/kvquery"
	"github.com/tarantool/go-datastore/statement"
)

var (
	// ErrClosed is returned when using a destroyed store.
	ErrClosed = errors.New("memory store is closed")
	// ErrReleased is returned when using a released connection.
	ErrReleased = errors.New("connection is released")
	// ErrTxActive is returned when beginning a transaction twice on a connection.
	ErrTxActive = errors.New("transaction is already active")
	// ErrNoTx is returned when committing or rolling back without a transaction.
	ErrNoTx = errors.New("no active transaction")
	// ErrUnexpectedType is returned when a driver argument has an unexpected type.
	ErrUnexpectedType = errors.New("unexpected type")
)

// Driver is the in-memory implementation of the driver contracts.
type Driver struct {
	layout kvquery.Layout
}

var (
	_ driver.Transactional = &Driver{} //nolint:exhaustruct
)

// Option configures the driver.
type Option func(*Driver)

// WithLayout sets the key layout statements are compiled with.
func WithLayout(layout kvquery.Layout) Option {
	return func(d *Driver) {
		d.layout = layout
	}
}

// New creates a new memory driver.
func New(opts ...Option) *Driver {
	d := &Driver{layout: kvquery.DefaultLayout()}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Capabilities implements driver.Driver.
func (d *Driver) Capabilities() capability.Set {
	return capability.Of(capability.TierTransactional)
}

// CreateManager creates a new empty store.
func (d *Driver) CreateManager(ctx context.Context, _ *config.Instance, _ driver.Meta) (driver.Manager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return NewStore(), nil
}

// DestroyManager closes the store and drops its data.
func (d *Driver) DestroyManager(_ context.Context, manager driver.Manager, _ driver.Meta) error {
	store, err := asStore(manager)
	if err != nil {
		return err
	}

	if !store.close() {
		return ErrClosed
	}

	return nil
}

// GetConnection leases a new connection to the store.
func (d *Driver) GetConnection(ctx context.Context, manager driver.Manager, _ driver.Meta) (driver.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	store, err := asStore(manager)
	if err != nil {
		return nil, err
	}

	if store.isClosed() {
		return nil, ErrClosed
	}

	return &Conn{store: store, mu: sync.Mutex{}, released: false, tx: nil}, nil
}

// ReleaseConnection releases the connection. A transaction left open is discarded.
func (d *Driver) ReleaseConnection(_ context.Context, conn driver.Connection, _ driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrReleased
	}

	c.released = true
	c.tx = nil

	return nil
}

// CompileStatement compiles the statement into a kvquery.Query.
func (d *Driver) CompileStatement(stmt statement.Statement, _ driver.Meta) (driver.NativeQuery, error) {
	query, err := d.layout.Compile(stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile statement: %w", err)
	}

	return query, nil
}

// SendNativeQuery runs a kvquery.Query and returns a kvquery.Response.
func (d *Driver) SendNativeQuery(
	ctx context.Context,
	conn driver.Connection,
	query driver.NativeQuery,
	_ driver.Meta,
) (any, error) {
	c, err := asConn(conn)
	if err != nil {
		return nil, err
	}

	var q kvquery.Query

	switch value := query.(type) {
	case kvquery.Query:
		q = value
	case *kvquery.Query:
		q = *value
	default:
		return nil, fmt.Errorf("%w: native query %T", ErrUnexpectedType, query)
	}

	return c.execute(ctx, q)
}

// ParseNativeQueryResult converts a kvquery.Response into a statement result.
func (d *Driver) ParseNativeQueryResult(stmt statement.Statement, raw any, _ driver.Meta) (statement.Result, error) {
	return d.layout.Parse(stmt, raw) //nolint:wrapcheck
}

// ParseNativeQueryError classifies failed strict queries as uniqueness violations.
func (d *Driver) ParseNativeQueryError(err error, _ driver.Meta) driver.Footprint {
	var precondition *kvquery.PreconditionError
	if errors.As(err, &precondition) {
		return driver.NotUnique(precondition.Keys...)
	}

	return driver.Catchall()
}

// BeginTransaction starts staging writes on the connection.
func (d *Driver) BeginTransaction(ctx context.Context, conn driver.Connection, _ driver.Meta) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	c, err := asConn(conn)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.released:
		return ErrReleased
	case c.tx != nil:
		return ErrTxActive
	}

	c.tx = newTxView(c.store)

	return nil
}

// CommitTransaction atomically applies the staged writes. Strict predicates
// checked during the transaction are checked again against the committed
// data, and a conflict fails the commit with a *kvquery.PreconditionError.
func (d *Driver) CommitTransaction(_ context.Context, conn driver.Connection, _ driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tx == nil {
		return ErrNoTx
	}

	tx := c.tx
	c.tx = nil

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	_, err = tx.applyLocked()

	return err
}

// RollbackTransaction discards the staged writes.
func (d *Driver) RollbackTransaction(_ context.Context, conn driver.Connection, _ driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tx == nil {
		return ErrNoTx
	}

	c.tx = nil

	return nil
}

// Conn is a connection to a Store. It runs one query at a time.
type Conn struct {
	store    *Store
	mu       sync.Mutex
	released bool
	tx       *txView
}

// InTransaction reports whether a transaction is active on the connection.
func (c *Conn) InTransaction() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tx != nil
}

func (c *Conn) execute(ctx context.Context, query kvquery.Query) (kvquery.Response, error) {
	if err := ctx.Err(); err != nil {
		return kvquery.Response{}, err //nolint:wrapcheck
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return kvquery.Response{}, ErrReleased
	}

	if c.tx != nil {
		c.store.mu.RLock()
		defer c.store.mu.RUnlock()

		if c.store.closed {
			return kvquery.Response{}, ErrClosed
		}

		guards := c.tx.committedPredicates(query)

		resp, err := run(c.tx, query)
		if err == nil {
			c.tx.guards = append(c.tx.guards, guards...)
		}

		resp.Revision = c.store.revision

		return resp, err
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.closed {
		return kvquery.Response{}, ErrClosed
	}

	view := newTxView(c.store)

	resp, err := run(view, query)
	if err != nil {
		return kvquery.Response{}, err
	}

	revision, err := view.applyLocked()
	if err != nil {
		return kvquery.Response{}, err
	}

	for _, values := range resp.Results {
		for i := range values {
			if values[i].ModRevision == stagedRevision {
				values[i].ModRevision = revision
			}
		}
	}

	resp.Revision = c.store.revision

	return resp, nil
}

func run(view *txView, query kvquery.Query) (kvquery.Response, error) {
	ops := query.Else

	success := checkPredicates(view, query.If)
	if success {
		ops = query.Then
	} else if query.Strict {
		return kvquery.Response{}, kvquery.NewPreconditionError(query.If)
	}

	results, err := executeOps(view, ops)
	if err != nil {
		return kvquery.Response{}, err
	}

	return kvquery.Response{
		Succeeded: success,
		Results:   results,
		Revision:  0,
	}, nil
}

// checkPredicates checks if the given predicates are satisfied by
// the current state of the view.
func checkPredicates(view *txView, predicates []kvquery.Predicate) bool {
	for _, pred := range predicates {
		val, exists := view.get(string(pred.Key))

		switch pred.Target {
		case kvquery.TargetVersion:
			version, ok := pred.Value.(int64)
			if !ok {
				return false
			}

			current := int64(0)
			if exists {
				current = val.ModRevision
			}

			switch pred.Compare {
			case kvquery.CompareEqual:
				if current != version {
					return false
				}
			case kvquery.CompareNotEqual:
				if current == version {
					return false
				}
			case kvquery.CompareGreater:
				if !exists || current <= version {
					return false
				}
			case kvquery.CompareLess:
				if !exists || current >= version {
					return false
				}
			default:
				return false
			}
		case kvquery.TargetValue:
			var value []byte

			switch v := pred.Value.(type) {
			case []byte:
				value = v
			case string:
				value = []byte(v)
			default:
				return false
			}

			switch pred.Compare { //nolint:exhaustive
			case kvquery.CompareEqual:
				if !exists || !bytes.Equal(val.Value, value) {
					return false
				}
			case kvquery.CompareNotEqual:
				if exists && bytes.Equal(val.Value, value) {
					return false
				}
			default:
				return false
			}
		default:
			return false
		}
	}

	return true
}

func executeOps(view *txView, ops []kvquery.Operation) ([][]kvquery.KeyValue, error) {
	results := make([][]kvquery.KeyValue, 0, len(ops))

	for _, op := range ops {
		key := string(op.Key)

		switch op.Type {
		case kvquery.OpGet:
			var values []kvquery.KeyValue

			if kvquery.IsPrefix(op.Key) {
				values = view.scan(key)
			} else if val, ok := view.get(key); ok {
				values = []kvquery.KeyValue{val}
			}

			results = append(results, values)
		case kvquery.OpPut:
			view.put(key, op.Value)

			results = append(results, nil)
		case kvquery.OpDelete:
			var values []kvquery.KeyValue

			if kvquery.IsPrefix(op.Key) {
				values = view.scan(key)
				for _, val := range values {
					view.delete(string(val.Key))
				}
			} else if val, ok := view.delete(key); ok {
				values = []kvquery.KeyValue{val}
			}

			results = append(results, values)
		case kvquery.OpMerge:
			current, ok := view.get(key)
			if !ok {
				results = append(results, nil)
				continue
			}

			merged, err := kvquery.MergeValues(current.Value, op.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to merge %q: %w", key, err)
			}

			results = append(results, []kvquery.KeyValue{view.put(key, merged)})
		default:
			return nil, fmt.Errorf("%w: operation %s", ErrUnexpectedType, op.Type)
		}
	}

	return results, nil
}

func asStore(manager driver.Manager) (*Store, error) {
	store, ok := manager.(*Store)
	if !ok || store == nil {
		return nil, fmt.Errorf("%w: manager %T", ErrUnexpectedType, manager)
	}

	return store, nil
}

func asConn(conn driver.Connection) (*Conn, error) {
	c, ok := conn.(*Conn)
	if !ok || c == nil {
		return nil, fmt.Errorf("%w: connection %T", ErrUnexpectedType, conn)
	}

	return c, nil
}
