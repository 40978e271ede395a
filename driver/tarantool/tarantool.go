// Package tarantool provides a Tarantool implementation of the driver
// contracts. Connections are IPROTO streams opened on a connection pool,
// so the driver supports interactive transactions.
//
// Native queries are either a Query (a Lua expression or a stored function
// call) or a kvquery.Query, which is sent to the config storage
// transaction function.
package tarantool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"
	"github.com/tarantool/go-tarantool/v2/pool"

	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/kvquery"
	"github.com/tarantool/go-datastore/statement"
)

const (
	defaultTimeout = "1s"

	// MetaTxnTimeout is the meta key of a time.Duration bounding a transaction.
	MetaTxnTimeout = "txn_timeout"
)

var (
	// ErrUnexpectedType is returned when a driver argument has an unexpected type.
	ErrUnexpectedType = errors.New("unexpected type")
	// ErrReleased is returned when using a released connection.
	ErrReleased = errors.New("connection is released")
	// ErrNoAddrs is returned when the instance has no addresses.
	ErrNoAddrs = errors.New("no tarantool addresses configured")
)

// Query is the native query of the driver: a Lua expression evaluated
// with Args, or a stored function called with Args.
type Query struct {
	Expr string
	Func string
	Args []any
}

// Eval returns a query evaluating expr.
func Eval(expr string, args ...any) Query {
	return Query{Expr: expr, Func: "", Args: args}
}

// Call returns a query calling the stored function fn.
func Call(fn string, args ...any) Query {
	return Query{Expr: "", Func: fn, Args: args}
}

func (q Query) request(ctx context.Context) tarantool.Request {
	args := q.Args
	if args == nil {
		args = []any{}
	}

	if q.Func != "" {
		return tarantool.NewCallRequest(q.Func).Args(args).Context(ctx)
	}

	return tarantool.NewEvalRequest(q.Expr).Args(args).Context(ctx)
}

// Manager opens streams on a connection pool.
type Manager struct {
	open  func() (tarantool.Doer, error)
	close func() error
}

// NewManager creates a manager opening connections with open and
// closing the underlying pool with closeFn.
func NewManager(open func() (tarantool.Doer, error), closeFn func() error) *Manager {
	return &Manager{open: open, close: closeFn}
}

// Connector creates the manager of a datastore instance.
type Connector func(ctx context.Context, cfg *config.Instance) (*Manager, error)

// Connect creates a connection pool to the instance addresses: Addrs, or
// the comma-separated URL. Connections are streams opened on writable
// instances. The "timeout" setting bounds requests.
func Connect(ctx context.Context, cfg *config.Instance) (*Manager, error) {
	addrs := cfg.Addrs
	if len(addrs) == 0 && cfg.URL != "" {
		addrs = strings.Split(cfg.URL, ",")
	}

	if len(addrs) == 0 {
		return nil, ErrNoAddrs
	}

	timeout, err := time.ParseDuration(cfg.Setting("timeout", defaultTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}

	instances := make([]pool.Instance, 0, len(addrs))
	for i, addr := range addrs {
		instances = append(instances, pool.Instance{
			Name: fmt.Sprintf("%s-%d", cfg.Name, i),
			Dialer: &tarantool.NetDialer{
				Address:  strings.TrimSpace(addr),
				User:     cfg.User,
				Password: cfg.Password,
				RequiredProtocolInfo: tarantool.ProtocolInfo{
					Auth:     tarantool.AutoAuth,
					Version:  tarantool.ProtocolVersion(0),
					Features: []iproto.Feature{iproto.IPROTO_FEATURE_STREAMS, iproto.IPROTO_FEATURE_TRANSACTIONS},
				},
			},
			Opts: tarantool.Opts{ //nolint:exhaustruct
				Timeout: timeout,
			},
		})
	}

	connPool, err := pool.Connect(ctx, instances)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to tarantool pool: %w", err)
	}

	open := func() (tarantool.Doer, error) {
		stream, err := connPool.NewStream(pool.RW)
		if err != nil {
			return nil, fmt.Errorf("failed to open stream: %w", err)
		}

		return stream, nil
	}

	closeFn := func() error {
		return errors.Join(connPool.Close()...)
	}

	return NewManager(open, closeFn), nil
}

// Driver is the Tarantool implementation of the driver contracts.
type Driver struct {
	connect Connector
}

var (
	_ driver.Transactional = &Driver{} //nolint:exhaustruct
)

// Option configures the driver.
type Option func(*Driver)

// WithConnector replaces the function creating managers.
func WithConnector(connect Connector) Option {
	return func(d *Driver) {
		d.connect = connect
	}
}

// New creates a new Tarantool driver.
func New(opts ...Option) *Driver {
	d := &Driver{connect: Connect}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Capabilities implements driver.Driver.
func (d *Driver) Capabilities() capability.Set {
	return capability.Of(capability.TierTransactional)
}

// CreateManager connects to the instance.
func (d *Driver) CreateManager(ctx context.Context, cfg *config.Instance, _ driver.Meta) (driver.Manager, error) {
	return d.connect(ctx, cfg)
}

// DestroyManager closes the connection pool.
func (d *Driver) DestroyManager(_ context.Context, manager driver.Manager, _ driver.Meta) error {
	m, ok := manager.(*Manager)
	if !ok || m == nil {
		return fmt.Errorf("%w: manager %T", ErrUnexpectedType, manager)
	}

	if m.close == nil {
		return nil
	}

	return m.close()
}

// GetConnection opens a new stream.
func (d *Driver) GetConnection(ctx context.Context, manager driver.Manager, _ driver.Meta) (driver.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m, ok := manager.(*Manager)
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: manager %T", ErrUnexpectedType, manager)
	}

	doer, err := m.open()
	if err != nil {
		return nil, err
	}

	return &Conn{mu: sync.Mutex{}, doer: doer, released: false, inTx: false}, nil
}

// ReleaseConnection releases the stream. A transaction left open is rolled back.
func (d *Driver) ReleaseConnection(ctx context.Context, conn driver.Connection, _ driver.Meta) error {
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

	if c.inTx {
		c.inTx = false

		if _, err := c.doer.Do(tarantool.NewRollbackRequest().Context(ctx)).Get(); err != nil {
			return fmt.Errorf("failed to roll back abandoned transaction: %w", err)
		}
	}

	return nil
}

// CompileStatement compiles the statement into a Lua Query over box.space.
func (d *Driver) CompileStatement(stmt statement.Statement, _ driver.Meta) (driver.NativeQuery, error) {
	query, err := compileStatement(stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile statement: %w", err)
	}

	return query, nil
}

// SendNativeQuery sends a Query and returns the decoded result values,
// or sends a kvquery.Query and returns a kvquery.Response.
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

	switch q := query.(type) {
	case Query:
		return c.eval(ctx, q)
	case *Query:
		return c.eval(ctx, *q)
	case kvquery.Query:
		return c.txn(ctx, q)
	case *kvquery.Query:
		return c.txn(ctx, *q)
	default:
		return nil, fmt.Errorf("%w: native query %T", ErrUnexpectedType, query)
	}
}

// ParseNativeQueryResult converts the result of a compiled statement.
func (d *Driver) ParseNativeQueryResult(stmt statement.Statement, raw any, _ driver.Meta) (statement.Result, error) {
	return parseStatementResult(stmt, raw)
}

// ParseNativeQueryError classifies duplicate key errors and failed strict
// key-value queries as uniqueness violations.
func (d *Driver) ParseNativeQueryError(err error, _ driver.Meta) driver.Footprint {
	return footprint(err)
}

// BeginTransaction begins a stream transaction. A time.Duration under
// MetaTxnTimeout bounds the transaction.
func (d *Driver) BeginTransaction(ctx context.Context, conn driver.Connection, meta driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	req := tarantool.NewBeginRequest().Context(ctx)
	if timeout, ok := meta[MetaTxnTimeout].(time.Duration); ok {
		req = req.Timeout(timeout)
	}

	return c.control(req, true)
}

// CommitTransaction commits the stream transaction.
func (d *Driver) CommitTransaction(ctx context.Context, conn driver.Connection, _ driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	return c.control(tarantool.NewCommitRequest().Context(ctx), false)
}

// RollbackTransaction rolls the stream transaction back.
func (d *Driver) RollbackTransaction(ctx context.Context, conn driver.Connection, _ driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	return c.control(tarantool.NewRollbackRequest().Context(ctx), false)
}

// Conn is a stream leased from a Manager.
type Conn struct {
	mu       sync.Mutex
	doer     tarantool.Doer
	released bool
	inTx     bool
}

// NewConn wraps doer into a connection. Useful with custom managers and in tests.
func NewConn(doer tarantool.Doer) *Conn {
	return &Conn{mu: sync.Mutex{}, doer: doer, released: false, inTx: false}
}

// InTransaction reports whether a transaction is active on the connection.
func (c *Conn) InTransaction() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inTx
}

func (c *Conn) do(req tarantool.Request) *tarantool.Future {
	return c.doer.Do(req)
}

func (c *Conn) usable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrReleased
	}

	return nil
}

func (c *Conn) eval(ctx context.Context, q Query) ([]any, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}

	result, err := c.do(q.request(ctx)).Get()
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return result, nil
}

func (c *Conn) txn(ctx context.Context, q kvquery.Query) (kvquery.Response, error) {
	if err := c.usable(); err != nil {
		return kvquery.Response{}, err
	}

	req := tarantool.NewCallRequest(txnFunc).Args([]any{newTxnRequest(q)}).Context(ctx)

	var result []txnResponse

	switch err := c.do(req).GetTyped(&result); {
	case err != nil:
		return kvquery.Response{}, fmt.Errorf("failed to execute transaction: %w", err)
	case len(result) != 1:
		return kvquery.Response{}, fmt.Errorf("%w: expected 1 response, got %d", ErrUnexpectedResponse, len(result))
	}

	resp := result[0].asResponse()
	if !resp.Succeeded && q.Strict {
		return kvquery.Response{}, kvquery.NewPreconditionError(q.If)
	}

	return resp, nil
}

// control sends a transaction control request and records whether a
// transaction is active afterwards.
func (c *Conn) control(req tarantool.Request, begin bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrReleased
	}

	if _, err := c.doer.Do(req).Get(); err != nil {
		return fmt.Errorf("transaction control request failed: %w", err)
	}

	c.inTx = begin

	return nil
}

func asConn(conn driver.Connection) (*Conn, error) {
	c, ok := conn.(*Conn)
	if !ok || c == nil {
		return nil, fmt.Errorf("%w: connection %T", ErrUnexpectedType, conn)
	}

	return c, nil
}
