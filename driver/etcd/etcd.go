// Package etcd provides an etcd implementation of the driver contracts.
// Statements and native queries run as single etcd transactions, so the
// driver is queryable but not transactional.
package etcd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/etcd/api/v3/etcdserverpb"
	etcd "go.etcd.io/etcd/client/v3"

	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/kvquery"
	"github.com/tarantool/go-datastore/statement"
)

// Client defines the minimal interface needed for etcd operations.
// *etcd.Client implements it.
type Client interface {
	// Txn creates a new transaction.
	Txn(ctx context.Context) etcd.Txn
	// Close closes the client.
	Close() error
}

// Dialer creates a client for a datastore instance.
type Dialer func(ctx context.Context, cfg *config.Instance) (Client, error)

const (
	defaultDialTimeout   = "5s"
	defaultMergeAttempts = 5
)

var (
	// ErrUnexpectedType is returned when a driver argument has an unexpected type.
	ErrUnexpectedType = errors.New("unexpected type")
	// ErrConflict is returned when a merge keeps losing races with concurrent writers.
	ErrConflict = errors.New("concurrent modification")

	// Static error definitions to avoid dynamic errors.
	errUnsupportedPredicateTarget  = errors.New("unsupported predicate target")
	errValuePredicateRequiresBytes = errors.New("value predicate requires []byte value")
	errUnsupportedValueOperation   = errors.New("unsupported operation for value predicate")
	errVersionPredicateRequiresInt = errors.New("version predicate requires int64 value")
	errUnsupportedVersionOperation = errors.New("unsupported operation for version predicate")
	errUnsupportedOperationType    = errors.New("unsupported operation type")
	errNoEndpoints                 = errors.New("no etcd endpoints configured")
)

// Driver is an etcd implementation of the driver contracts.
type Driver struct {
	layout        kvquery.Layout
	dial          Dialer
	mergeAttempts int
}

var (
	_ driver.Queryable = &Driver{} //nolint:exhaustruct
)

// Option configures the driver.
type Option func(*Driver)

// WithLayout sets the key layout statements are compiled with.
func WithLayout(layout kvquery.Layout) Option {
	return func(d *Driver) {
		d.layout = layout
	}
}

// WithDialer replaces the function creating etcd clients.
func WithDialer(dial Dialer) Option {
	return func(d *Driver) {
		d.dial = dial
	}
}

// WithMergeAttempts sets how many times a merging query is retried
// after losing a race with a concurrent writer.
func WithMergeAttempts(n int) Option {
	return func(d *Driver) {
		d.mergeAttempts = max(n, 1)
	}
}

// New creates a new etcd driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		layout:        kvquery.DefaultLayout(),
		dial:          Dial,
		mergeAttempts: defaultMergeAttempts,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Dial connects to the endpoints of the instance: Addrs, or the
// comma-separated URL. The "dial_timeout" setting bounds the connection.
func Dial(_ context.Context, cfg *config.Instance) (Client, error) {
	endpoints := cfg.Addrs
	if len(endpoints) == 0 && cfg.URL != "" {
		endpoints = strings.Split(cfg.URL, ",")
	}

	if len(endpoints) == 0 {
		return nil, errNoEndpoints
	}

	timeout, err := time.ParseDuration(cfg.Setting("dial_timeout", defaultDialTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid dial_timeout: %w", err)
	}

	client, err := etcd.New(etcd.Config{ //nolint:exhaustruct
		Endpoints:   endpoints,
		Username:    cfg.User,
		Password:    cfg.Password,
		DialTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	return client, nil
}

// Capabilities implements driver.Driver.
func (d *Driver) Capabilities() capability.Set {
	return capability.Of(capability.TierQueryable)
}

// CreateManager dials the etcd cluster of the instance.
func (d *Driver) CreateManager(ctx context.Context, cfg *config.Instance, _ driver.Meta) (driver.Manager, error) {
	client, err := d.dial(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Manager{client: client}, nil
}

// DestroyManager closes the client.
func (d *Driver) DestroyManager(_ context.Context, manager driver.Manager, _ driver.Meta) error {
	m, err := asManager(manager)
	if err != nil {
		return err
	}

	if err := m.client.Close(); err != nil {
		return fmt.Errorf("failed to close etcd client: %w", err)
	}

	return nil
}

// GetConnection returns the manager's client. etcd clients multiplex
// requests, so every lease shares it.
func (d *Driver) GetConnection(ctx context.Context, manager driver.Manager, _ driver.Meta) (driver.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m, err := asManager(manager)
	if err != nil {
		return nil, err
	}

	return m.client, nil
}

// ReleaseConnection does nothing.
func (d *Driver) ReleaseConnection(_ context.Context, _ driver.Connection, _ driver.Meta) error {
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

// SendNativeQuery runs a kvquery.Query as an etcd transaction and
// returns a kvquery.Response.
func (d *Driver) SendNativeQuery(
	ctx context.Context,
	conn driver.Connection,
	query driver.NativeQuery,
	_ driver.Meta,
) (any, error) {
	client, ok := conn.(Client)
	if !ok || client == nil {
		return nil, fmt.Errorf("%w: connection %T", ErrUnexpectedType, conn)
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

	resp, err := d.execute(ctx, client, q)
	if err != nil {
		return nil, err
	}

	if !resp.Succeeded && q.Strict {
		return nil, kvquery.NewPreconditionError(q.If)
	}

	return resp, nil
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

func (d *Driver) execute(ctx context.Context, client Client, q kvquery.Query) (kvquery.Response, error) {
	cmps, err := predicatesToCmps(q.If)
	if err != nil {
		return kvquery.Response{}, fmt.Errorf("failed to convert predicates: %w", err)
	}

	if !hasMerge(q) {
		return commit(ctx, client, cmps, q.Then, q.Else)
	}

	for range d.mergeAttempts {
		resp, retry, err := d.executeMerge(ctx, client, cmps, q)
		if err != nil || !retry {
			return resp, err
		}
	}

	return kvquery.Response{}, fmt.Errorf("%w: merge retried %d times", ErrConflict, d.mergeAttempts)
}

// commit runs a plain transaction.
func commit(ctx context.Context, client Client, cmps []etcd.Cmp, thenOps, elseOps []kvquery.Operation) (
	kvquery.Response, error,
) {
	thenEtcdOps, err := operationsToEtcdOps(thenOps)
	if err != nil {
		return kvquery.Response{}, fmt.Errorf("failed to convert then operations: %w", err)
	}

	elseEtcdOps, err := operationsToEtcdOps(elseOps)
	if err != nil {
		return kvquery.Response{}, fmt.Errorf("failed to convert else operations: %w", err)
	}

	resp, err := client.Txn(ctx).If(cmps...).Then(thenEtcdOps...).Else(elseEtcdOps...).Commit()
	if err != nil {
		return kvquery.Response{}, fmt.Errorf("transaction failed: %w", err)
	}

	pbResp := (*etcdserverpb.TxnResponse)(resp)
	ops := thenOps

	if !pbResp.GetSucceeded() {
		ops = elseOps
	}

	return toResponse(pbResp, pbResp.GetHeader().GetRevision(), ops, nil), nil
}

// toResponse converts an etcd transaction response. merged holds the
// values written by resolved merge operations, by operation index.
func toResponse(
	resp *etcdserverpb.TxnResponse,
	revision int64,
	ops []kvquery.Operation,
	merged map[int][]byte,
) kvquery.Response {
	results := make([][]kvquery.KeyValue, 0, len(resp.GetResponses()))

	for i, etcdResp := range resp.GetResponses() {
		var values []kvquery.KeyValue

		switch {
		case etcdResp.GetResponseRange() != nil:
			for _, etcdKv := range etcdResp.GetResponseRange().GetKvs() {
				values = append(values, kvquery.KeyValue{
					Key:         etcdKv.Key,
					Value:       etcdKv.Value,
					ModRevision: etcdKv.ModRevision,
				})
			}
		case etcdResp.GetResponsePut() != nil:
			if value, ok := merged[i]; ok && i < len(ops) {
				values = append(values, kvquery.KeyValue{
					Key:         ops[i].Key,
					Value:       value,
					ModRevision: etcdResp.GetResponsePut().GetHeader().GetRevision(),
				})
			}
		case etcdResp.GetResponseDeleteRange() != nil:
			for _, etcdKv := range etcdResp.GetResponseDeleteRange().GetPrevKvs() {
				values = append(values, kvquery.KeyValue{
					Key:         etcdKv.Key,
					Value:       etcdKv.Value,
					ModRevision: etcdKv.ModRevision,
				})
			}
		}

		results = append(results, values)
	}

	return kvquery.Response{
		Succeeded: resp.GetSucceeded(),
		Results:   results,
		Revision:  revision,
	}
}

// Manager holds the etcd client of a datastore.
type Manager struct {
	client Client
}

// Client returns the etcd client.
func (m *Manager) Client() Client {
	return m.client
}

func asManager(manager driver.Manager) (*Manager, error) {
	m, ok := manager.(*Manager)
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: manager %T", ErrUnexpectedType, manager)
	}

	return m, nil
}
