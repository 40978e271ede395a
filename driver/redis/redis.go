// Package redis provides a Redis implementation of the queryable driver
// contract. Statements run as Lua scripts over records kept in hashes,
// and native queries are raw commands or scripts.
//
// Redis has no interactive transactions, so the driver does not declare
// the transactional tier.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/statement"
)

const defaultIDColumn = "id"

var (
	// ErrUnexpectedType is returned when a driver argument has an unexpected type.
	ErrUnexpectedType = errors.New("unexpected type")
	// ErrReleased is returned when using a released connection.
	ErrReleased = errors.New("connection is released")
	// ErrNoAddrs is returned when the instance has neither an url nor addresses.
	ErrNoAddrs = errors.New("no redis url or addresses configured")
)

// Command is a native query sending a raw command, e.g. {"GET", "key"}.
type Command struct {
	Args []any
}

// Do returns a command query.
func Do(args ...any) Command {
	return Command{Args: args}
}

// Script is a native query running a Lua script.
type Script struct {
	Source string
	Keys   []string
	Args   []any
}

// Eval returns a script query.
func Eval(source string, keys []string, args ...any) Script {
	return Script{Source: source, Keys: keys, Args: args}
}

// Commander is the part of a redis client a connection uses.
type Commander interface {
	Process(ctx context.Context, cmd redis.Cmder) error
	redis.Scripter
}

// Manager leases connections of a datastore client.
type Manager struct {
	open  func() (Commander, func() error)
	close func() error
}

// NewManager creates a manager leasing connections with open. The
// function returned by open releases the connection and may be nil.
func NewManager(open func() (Commander, func() error), closeFn func() error) *Manager {
	return &Manager{open: open, close: closeFn}
}

// ClientManager creates a manager over client. A single-node client leases
// dedicated connections. Cluster and failover clients are shared, since
// they route commands per key.
func ClientManager(client redis.UniversalClient) *Manager {
	open := func() (Commander, func() error) {
		if single, ok := client.(*redis.Client); ok {
			conn := single.Conn()
			return conn, conn.Close
		}

		return client, nil
	}

	return NewManager(open, client.Close)
}

// Connector creates the manager of a datastore instance.
type Connector func(ctx context.Context, cfg *config.Instance) (*Manager, error)

// Connect creates a client for the instance: from URL when set, otherwise
// a universal client over Addrs. User and Password override the URL
// credentials.
func Connect(ctx context.Context, cfg *config.Instance) (*Manager, error) {
	var client redis.UniversalClient

	switch {
	case cfg.URL != "":
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}

		if cfg.User != "" {
			opts.Username = cfg.User
		}

		if cfg.Password != "" {
			opts.Password = cfg.Password
		}

		client = redis.NewClient(opts)
	case len(cfg.Addrs) > 0:
		addrs := make([]string, 0, len(cfg.Addrs))
		for _, addr := range cfg.Addrs {
			addrs = append(addrs, strings.TrimSpace(addr))
		}

		client = redis.NewUniversalClient(&redis.UniversalOptions{ //nolint:exhaustruct
			Addrs:    addrs,
			Username: cfg.User,
			Password: cfg.Password,
		})
	default:
		return nil, ErrNoAddrs
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return ClientManager(client), nil
}

// Driver is the Redis implementation of the driver contracts.
type Driver struct {
	connect  Connector
	idColumn string
}

var (
	_ driver.Queryable = &Driver{} //nolint:exhaustruct
)

// Option configures the driver.
type Option func(*Driver)

// WithConnector replaces the function creating managers.
func WithConnector(connect Connector) Option {
	return func(d *Driver) {
		d.connect = connect
	}
}

// WithIDColumn sets the column identifying records, "id" by default.
func WithIDColumn(column string) Option {
	return func(d *Driver) {
		d.idColumn = column
	}
}

// New creates a new Redis driver.
func New(opts ...Option) *Driver {
	d := &Driver{connect: Connect, idColumn: defaultIDColumn}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Capabilities implements driver.Driver.
func (d *Driver) Capabilities() capability.Set {
	return capability.Of(capability.TierQueryable)
}

// CreateManager creates the client.
func (d *Driver) CreateManager(ctx context.Context, cfg *config.Instance, _ driver.Meta) (driver.Manager, error) {
	return d.connect(ctx, cfg)
}

// DestroyManager closes the client.
func (d *Driver) DestroyManager(_ context.Context, manager driver.Manager, _ driver.Meta) error {
	m, err := asManager(manager)
	if err != nil {
		return err
	}

	if m.close == nil {
		return nil
	}

	if err := m.close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

// GetConnection leases a connection from the manager.
func (d *Driver) GetConnection(ctx context.Context, manager driver.Manager, _ driver.Meta) (driver.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m, err := asManager(manager)
	if err != nil {
		return nil, err
	}

	cmd, closeFn := m.open()

	return &Conn{mu: sync.Mutex{}, cmd: cmd, close: closeFn, released: false}, nil
}

// ReleaseConnection releases the connection.
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

	if c.close == nil {
		return nil
	}

	if err := c.close(); err != nil {
		return fmt.Errorf("failed to release redis connection: %w", err)
	}

	return nil
}

// CompileStatement compiles the statement into a Script.
func (d *Driver) CompileStatement(stmt statement.Statement, _ driver.Meta) (driver.NativeQuery, error) {
	script, err := compileStatement(stmt, d.idColumn)
	if err != nil {
		return nil, fmt.Errorf("failed to compile statement: %w", err)
	}

	return script, nil
}

// SendNativeQuery sends a Command or runs a Script and returns the reply.
// A nil reply is returned as nil without an error.
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

	if err := c.usable(); err != nil {
		return nil, err
	}

	var cmd *redis.Cmd

	switch q := query.(type) {
	case Command:
		cmd = c.do(ctx, q.Args)
	case *Command:
		cmd = c.do(ctx, q.Args)
	case Script:
		cmd = redis.NewScript(q.Source).Run(ctx, c.cmd, q.Keys, q.Args...)
	case *Script:
		cmd = redis.NewScript(q.Source).Run(ctx, c.cmd, q.Keys, q.Args...)
	default:
		return nil, fmt.Errorf("%w: native query %T", ErrUnexpectedType, query)
	}

	result, err := cmd.Result()

	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil //nolint:nilnil
	case err != nil:
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return result, nil
}

// ParseNativeQueryResult converts the reply of a compiled statement.
// Hash fields are strings, so record values are returned as strings.
func (d *Driver) ParseNativeQueryResult(stmt statement.Statement, raw any, _ driver.Meta) (statement.Result, error) {
	return parseStatementResult(stmt, raw)
}

// ParseNativeQueryError classifies duplicate record ids as uniqueness violations.
func (d *Driver) ParseNativeQueryError(err error, _ driver.Meta) driver.Footprint {
	return footprint(err)
}

// Conn is a connection leased from a Manager.
type Conn struct {
	mu       sync.Mutex
	cmd      Commander
	close    func() error
	released bool
}

// NewConn wraps a commander into a connection that is not closed on release.
func NewConn(cmd Commander) *Conn {
	return &Conn{mu: sync.Mutex{}, cmd: cmd, close: nil, released: false}
}

func (c *Conn) do(ctx context.Context, args []any) *redis.Cmd {
	cmd := redis.NewCmd(ctx, args...)
	_ = c.cmd.Process(ctx, cmd)

	return cmd
}

func (c *Conn) usable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrReleased
	}

	return nil
}

func asManager(manager driver.Manager) (*Manager, error) {
	m, ok := manager.(*Manager)
	if !ok || m == nil || m.open == nil {
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
