// Package postgres provides a PostgreSQL implementation of the driver
// contracts on top of a pgx connection pool. Statements compile into
// parameterized SQL and connections support interactive transactions.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/statement"
)

const (
	// MetaIsolation is the meta key of a pgx.TxIsoLevel used by BeginTransaction.
	MetaIsolation = "isolation"
)

var (
	// ErrUnexpectedType is returned when a driver argument has an unexpected type.
	ErrUnexpectedType = errors.New("unexpected type")
	// ErrReleased is returned when using a released connection.
	ErrReleased = errors.New("connection is released")
	// ErrNoURL is returned when the instance has no connection string.
	ErrNoURL = errors.New("no postgres url configured")
)

// Query is the native query of the driver.
type Query struct {
	SQL  string
	Args []any
}

// SQL returns a query running sql with args.
func SQL(sql string, args ...any) Query {
	return Query{SQL: sql, Args: args}
}

// Rows is the raw result of a query: the returned rows keyed by column
// name and the command tag reported by the server.
type Rows struct {
	Records []map[string]any
	Tag     pgconn.CommandTag
}

// Querier is the part of a pgx connection the driver uses.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Manager leases connections from a pool.
type Manager struct {
	acquire func(ctx context.Context) (Querier, func(), error)
	close   func()
}

// NewManager creates a manager leasing connections with acquire. The
// function returned by acquire puts the connection back.
func NewManager(acquire func(ctx context.Context) (Querier, func(), error), closeFn func()) *Manager {
	return &Manager{acquire: acquire, close: closeFn}
}

// Connector creates the manager of a datastore instance.
type Connector func(ctx context.Context, cfg *config.Instance) (*Manager, error)

// Connect creates a pool for the instance URL. User and Password override
// the credentials of the URL. The "max_conns" setting caps the pool size.
func Connect(ctx context.Context, cfg *config.Instance) (*Manager, error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}

	if cfg.User != "" {
		poolCfg.ConnConfig.User = cfg.User
	}

	if cfg.Password != "" {
		poolCfg.ConnConfig.Password = cfg.Password
	}

	if raw := cfg.Setting("max_conns", ""); raw != "" {
		maxConns, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid max_conns: %w", err)
		}

		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	acquire := func(ctx context.Context) (Querier, func(), error) {
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to acquire connection: %w", err)
		}

		return conn, conn.Release, nil
	}

	return NewManager(acquire, pool.Close), nil
}

// Driver is the PostgreSQL implementation of the driver contracts.
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

// New creates a new PostgreSQL driver.
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

// CreateManager creates the connection pool.
func (d *Driver) CreateManager(ctx context.Context, cfg *config.Instance, _ driver.Meta) (driver.Manager, error) {
	return d.connect(ctx, cfg)
}

// DestroyManager closes the connection pool.
func (d *Driver) DestroyManager(_ context.Context, manager driver.Manager, _ driver.Meta) error {
	m, err := asManager(manager)
	if err != nil {
		return err
	}

	if m.close != nil {
		m.close()
	}

	return nil
}

// GetConnection acquires a connection from the pool.
func (d *Driver) GetConnection(ctx context.Context, manager driver.Manager, _ driver.Meta) (driver.Connection, error) {
	m, err := asManager(manager)
	if err != nil {
		return nil, err
	}

	querier, release, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return &Conn{mu: sync.Mutex{}, querier: querier, release: release, released: false, inTx: false}, nil
}

// ReleaseConnection puts the connection back. A transaction left open is rolled back.
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

	defer func() {
		if c.release != nil {
			c.release()
		}
	}()

	if c.inTx {
		c.inTx = false

		if _, err := c.querier.Exec(ctx, "ROLLBACK"); err != nil {
			return fmt.Errorf("failed to roll back abandoned transaction: %w", err)
		}
	}

	return nil
}

// CompileStatement compiles the statement into a parameterized Query.
func (d *Driver) CompileStatement(stmt statement.Statement, _ driver.Meta) (driver.NativeQuery, error) {
	query, err := compileStatement(stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile statement: %w", err)
	}

	return query, nil
}

// SendNativeQuery runs a Query and returns its Rows.
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
		return c.query(ctx, q)
	case *Query:
		return c.query(ctx, *q)
	case string:
		return c.query(ctx, SQL(q))
	default:
		return nil, fmt.Errorf("%w: native query %T", ErrUnexpectedType, query)
	}
}

// ParseNativeQueryResult converts the Rows of a compiled statement.
func (d *Driver) ParseNativeQueryResult(stmt statement.Statement, raw any, _ driver.Meta) (statement.Result, error) {
	return parseStatementResult(stmt, raw)
}

// ParseNativeQueryError classifies unique_violation errors.
func (d *Driver) ParseNativeQueryError(err error, _ driver.Meta) driver.Footprint {
	return footprint(err)
}

// BeginTransaction begins a transaction, with the isolation level under
// MetaIsolation when one is given.
func (d *Driver) BeginTransaction(ctx context.Context, conn driver.Connection, meta driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	sql := "BEGIN"
	if level, ok := meta[MetaIsolation].(pgx.TxIsoLevel); ok && level != "" {
		sql += " ISOLATION LEVEL " + string(level)
	}

	return c.control(ctx, sql, true)
}

// CommitTransaction commits the transaction.
func (d *Driver) CommitTransaction(ctx context.Context, conn driver.Connection, _ driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	return c.control(ctx, "COMMIT", false)
}

// RollbackTransaction rolls the transaction back.
func (d *Driver) RollbackTransaction(ctx context.Context, conn driver.Connection, _ driver.Meta) error {
	c, err := asConn(conn)
	if err != nil {
		return err
	}

	return c.control(ctx, "ROLLBACK", false)
}

// Conn is a connection leased from a Manager.
type Conn struct {
	mu       sync.Mutex
	querier  Querier
	release  func()
	released bool
	inTx     bool
}

// NewConn wraps querier into a connection. Useful with custom managers and in tests.
func NewConn(querier Querier) *Conn {
	return &Conn{mu: sync.Mutex{}, querier: querier, release: nil, released: false, inTx: false}
}

// InTransaction reports whether a transaction is active on the connection.
func (c *Conn) InTransaction() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inTx
}

func (c *Conn) query(ctx context.Context, q Query) (Rows, error) {
	c.mu.Lock()
	released := c.released
	c.mu.Unlock()

	if released {
		return Rows{}, ErrReleased
	}

	rows, err := c.querier.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return Rows{}, fmt.Errorf("failed to execute query: %w", err)
	}

	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := make([]map[string]any, 0)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return Rows{}, fmt.Errorf("failed to read row: %w", err)
		}

		record := make(map[string]any, len(fields))
		for i, field := range fields {
			if i < len(values) {
				record[field.Name] = values[i]
			}
		}

		records = append(records, record)
	}

	rows.Close()

	if err := rows.Err(); err != nil {
		return Rows{}, fmt.Errorf("failed to execute query: %w", err)
	}

	return Rows{Records: records, Tag: rows.CommandTag()}, nil
}

func (c *Conn) control(ctx context.Context, sql string, begin bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrReleased
	}

	if _, err := c.querier.Exec(ctx, sql); err != nil {
		return fmt.Errorf("transaction control statement %s failed: %w", sql, err)
	}

	c.inTx = begin

	return nil
}

func asManager(manager driver.Manager) (*Manager, error) {
	m, ok := manager.(*Manager)
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: manager %T", ErrUnexpectedType, manager)
	}

	return m, nil
}

func asConn(conn driver.Connection) (*Conn, error) {
	c, ok := conn.(*Conn)
	if !ok || c == nil {
		return nil, fmt.Errorf("%w: connection %T", ErrUnexpectedType, conn)
	}

	return c, nil
}
