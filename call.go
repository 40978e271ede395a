package datastore

import (
	"context"
	"sync"

	"github.com/tarantool/go-option"

	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/internal/options"
)

// callSettings holds the optional fields of a call-options record.
type callSettings struct {
	meta driver.Meta
	conn option.Generic[driver.Connection]
}

func defaultCallSettings() callSettings {
	return callSettings{
		meta: nil,
		conn: option.None[driver.Connection](),
	}
}

// CallOption configures a single dispatched call.
type CallOption = options.OptionCallback[callSettings]

// WithMeta sets the driver metadata passed along with the call.
func WithMeta(meta driver.Meta) CallOption {
	return func(s *callSettings) {
		s.meta = meta
	}
}

// WithConnection makes a query call run on conn instead of a connection
// leased for the call. It is ignored by LeaseConnection and Transaction.
func WithConnection(conn driver.Connection) CallOption {
	return func(s *callSettings) {
		s.conn = option.Some(conn)
	}
}

type runFunc[T any] func(ctx context.Context, settings callSettings) (T, error)

// call is the state shared by Call and QueryCall.
type call[T any] struct {
	mu       sync.Mutex
	executed bool
	settings callSettings
	run      runFunc[T]
}

func newCall[T any](run runFunc[T], opts []CallOption) *Call[T] {
	return &Call[T]{c: call[T]{
		mu:       sync.Mutex{},
		executed: false,
		settings: options.ApplyOptions(defaultCallSettings, opts),
		run:      run,
	}}
}

func newQueryCall[T any](run runFunc[T], opts []CallOption) *QueryCall[T] {
	return &QueryCall[T]{c: call[T]{
		mu:       sync.Mutex{},
		executed: false,
		settings: options.ApplyOptions(defaultCallSettings, opts),
		run:      run,
	}}
}

func (c *call[T]) configure(opts ...CallOption) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.executed {
		panic("datastore: call configured after execution")
	}

	options.Apply(&c.settings, opts...)
}

func (c *call[T]) start() callSettings {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.executed {
		panic("datastore: call executed twice")
	}

	c.executed = true

	return c.settings
}

func (c *call[T]) exec(ctx context.Context) (T, error) {
	return c.run(ctx, c.start())
}

func (c *call[T]) then(ctx context.Context, cb func(T, error)) {
	if cb == nil {
		panic("datastore: nil callback")
	}

	settings := c.start()

	go func() {
		cb(c.run(ctx, settings))
	}()
}

// Call is a configurable, not yet started datastore operation.
// Nothing runs until Exec or Then is called, and a Call runs at most once.
type Call[T any] struct {
	c call[T]
}

// Meta sets the driver metadata of the call.
func (c *Call[T]) Meta(meta driver.Meta) *Call[T] {
	c.c.configure(WithMeta(meta))
	return c
}

// Exec runs the call and waits for its result.
func (c *Call[T]) Exec(ctx context.Context) (T, error) {
	return c.c.exec(ctx)
}

// Then runs the call in a new goroutine and passes its result to cb.
func (c *Call[T]) Then(ctx context.Context, cb func(T, error)) {
	c.c.then(ctx, cb)
}

// QueryCall is a Call that can also be bound to an existing connection.
type QueryCall[T any] struct {
	c call[T]
}

// Meta sets the driver metadata of the call.
func (c *QueryCall[T]) Meta(meta driver.Meta) *QueryCall[T] {
	c.c.configure(WithMeta(meta))
	return c
}

// UsingConnection makes the call run on conn instead of a connection
// leased for the call.
func (c *QueryCall[T]) UsingConnection(conn driver.Connection) *QueryCall[T] {
	c.c.configure(WithConnection(conn))
	return c
}

// Exec runs the call and waits for its result.
func (c *QueryCall[T]) Exec(ctx context.Context) (T, error) {
	return c.c.exec(ctx)
}

// Then runs the call in a new goroutine and passes its result to cb.
func (c *QueryCall[T]) Then(ctx context.Context, cb func(T, error)) {
	c.c.then(ctx, cb)
}
