package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/delegate"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/internal/options"
	"github.com/tarantool/go-datastore/metrics"
	"github.com/tarantool/go-datastore/statement"
)

// Method names reported in errors, logs and metrics.
const (
	MethodLeaseConnection = "leaseConnection"
	MethodSendStatement   = "sendStatement"
	MethodSendNativeQuery = "sendNativeQuery"
	MethodTransaction     = "transaction"
)

//go:generate go tool minimock -i github.com/tarantool/go-datastore.Delegator -o internal/mocks -n DelegatorMock

// Delegator runs operations against the driver of a datastore.
// *delegate.Helpers is the default implementation.
type Delegator interface {
	LeaseConnection(ctx context.Context, opts delegate.LeaseOptions) (any, error)
	SendStatement(ctx context.Context, opts delegate.StatementOptions) (statement.Result, error)
	SendNativeQuery(ctx context.Context, opts delegate.NativeQueryOptions) (any, error)
	Transaction(ctx context.Context, opts delegate.TransactionOptions) (any, error)
}

type buildOptions struct {
	logger    *zap.Logger
	delegator Delegator
	metrics   *metrics.Collector
	host      string
}

func defaultBuildOptions() buildOptions {
	return buildOptions{
		logger:    nil,
		delegator: nil,
		metrics:   nil,
		host:      adapter.HostAPIVersion,
	}
}

// Option configures Build.
type Option = options.OptionCallback[buildOptions]

// WithLogger sets the logger of the datastore. The default discards logs.
func WithLogger(logger *zap.Logger) Option {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// WithDelegator replaces the helpers the datastore delegates operations to.
func WithDelegator(d Delegator) Option {
	return func(o *buildOptions) {
		o.delegator = d
	}
}

// WithMetrics makes the datastore report its calls to c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *buildOptions) {
		o.metrics = c
	}
}

// WithHostAPIVersion overrides the adapter API version the host expects.
func WithHostAPIVersion(version string) Option {
	return func(o *buildOptions) {
		o.host = version
	}
}

// Datastore is a handle over a datastore managed by an adapter.
// It is immutable and safe for concurrent use.
type Datastore struct {
	name    string
	cfg     *config.Instance
	adapter adapter.Adapter
	verdict Verdict
	// gates maps a method name to the error its calls fail with, if any.
	gates map[string]error

	delegator Delegator
	logger    *zap.Logger
	metrics   *metrics.Collector
}

// Build checks that the adapter is compatible with the host, probes it
// for the named datastore and returns the datastore handle.
//
// An incompatible adapter is a fatal error and yields no handle. Missing
// structure or capabilities are not: the handle is returned and the
// affected operations fail with a *NotSupportedError.
func Build(name string, cfg *config.Instance, a adapter.Adapter, opts ...Option) (*Datastore, error) {
	o := options.ApplyOptions(defaultBuildOptions, opts)

	if err := adapter.CheckCompatibility(a, o.host); err != nil {
		return nil, fmt.Errorf("failed to build datastore %q: %w", name, err)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if o.delegator == nil {
		o.delegator = delegate.New(o.logger)
	}

	verdict := Probe(name, a)

	ds := &Datastore{
		name:      name,
		cfg:       cfg,
		adapter:   a,
		verdict:   verdict,
		gates:     gates(name, verdict),
		delegator: o.delegator,
		logger:    o.logger.With(zap.String("datastore", name), zap.String("adapter", a.Identity())),
		metrics:   o.metrics,
	}

	if verdict.Err != nil {
		ds.logger.Info("datastore is not accessible", zap.Error(verdict.Err))
	} else {
		ds.logger.Info("datastore is accessible", zap.Stringer("capabilities", verdict.Tiers))
	}

	return ds, nil
}

func gates(name string, verdict Verdict) map[string]error {
	required := map[string]capability.Tier{
		MethodLeaseConnection: capability.TierConnectable,
		MethodSendStatement:   capability.TierQueryable,
		MethodSendNativeQuery: capability.TierQueryable,
		MethodTransaction:     capability.TierTransactional,
	}

	out := make(map[string]error, len(required))

	for method, tier := range required {
		switch {
		case verdict.Err != nil:
			out[method] = verdict.Err
		case !verdict.Tiers.Supports(tier):
			out[method] = errTier(name, tier, method)
		default:
			out[method] = nil
		}
	}

	return out
}

// Name returns the datastore name.
func (d *Datastore) Name() string {
	return d.name
}

// Config returns the instance configuration the datastore was built with.
func (d *Datastore) Config() *config.Instance {
	return d.cfg
}

// Adapter returns the adapter managing the datastore.
func (d *Datastore) Adapter() adapter.Adapter {
	return d.adapter
}

// Capabilities returns the capability tiers granted to the datastore.
func (d *Datastore) Capabilities() capability.Tiers {
	return d.verdict.Tiers
}

// Err returns the structural error every operation fails with, or nil.
func (d *Datastore) Err() error {
	return d.verdict.Err
}

// LeaseConnection runs during with a connection leased from the
// datastore's manager. Requires the connectable tier.
func (d *Datastore) LeaseConnection(during delegate.During, opts ...CallOption) *Call[any] {
	return newCall(func(ctx context.Context, s callSettings) (any, error) {
		return dispatch(ctx, d, MethodLeaseConnection, func(ctx context.Context) (any, error) {
			return d.delegator.LeaseConnection(ctx, delegate.LeaseOptions{
				Datastore: d.name,
				Adapter:   d.adapter,
				During:    during,
				Meta:      s.meta,
			})
		})
	}, opts)
}

// SendStatement compiles stmt into a native query, sends it and parses
// the result. Requires the queryable tier.
func (d *Datastore) SendStatement(stmt statement.Statement, opts ...CallOption) *QueryCall[statement.Result] {
	return newQueryCall(func(ctx context.Context, s callSettings) (statement.Result, error) {
		return dispatch(ctx, d, MethodSendStatement, func(ctx context.Context) (statement.Result, error) {
			return d.delegator.SendStatement(ctx, delegate.StatementOptions{
				Datastore:       d.name,
				Adapter:         d.adapter,
				Statement:       stmt,
				Meta:            s.meta,
				UsingConnection: s.conn,
			})
		})
	}, opts)
}

// SendNativeQuery sends a query in the driver's native format and
// returns the raw result. Requires the queryable tier.
func (d *Datastore) SendNativeQuery(query driver.NativeQuery, opts ...CallOption) *QueryCall[any] {
	return newQueryCall(func(ctx context.Context, s callSettings) (any, error) {
		return dispatch(ctx, d, MethodSendNativeQuery, func(ctx context.Context) (any, error) {
			return d.delegator.SendNativeQuery(ctx, delegate.NativeQueryOptions{
				Datastore:       d.name,
				Adapter:         d.adapter,
				NativeQuery:     query,
				Meta:            s.meta,
				UsingConnection: s.conn,
			})
		})
	}, opts)
}

// Transaction runs during inside a transaction. Requires the
// transactional tier.
func (d *Datastore) Transaction(during delegate.During, opts ...CallOption) *Call[any] {
	return newCall(func(ctx context.Context, s callSettings) (any, error) {
		return dispatch(ctx, d, MethodTransaction, func(ctx context.Context) (any, error) {
			return d.delegator.Transaction(ctx, delegate.TransactionOptions{
				Datastore: d.name,
				Adapter:   d.adapter,
				During:    during,
				Meta:      s.meta,
			})
		})
	}, opts)
}

// dispatch fails with the method's gate error, if any, and otherwise
// returns whatever fn returns.
func dispatch[T any](ctx context.Context, d *Datastore, method string, fn func(context.Context) (T, error)) (T, error) {
	logger := d.logger.With(zap.String("method", method), zap.String("call_id", uuid.NewString()))

	if err := d.gates[method]; err != nil {
		var zero T

		d.metrics.Observe(d.name, method, metrics.OutcomeNotSupported, 0)
		logger.Debug("call rejected", zap.Error(err))

		return zero, err
	}

	started := time.Now()
	result, err := fn(ctx)
	elapsed := time.Since(started)

	if err != nil {
		d.metrics.Observe(d.name, method, metrics.OutcomeError, elapsed)
		logger.Debug("call failed", zap.Duration("elapsed", elapsed), zap.Error(err))

		return result, err
	}

	d.metrics.Observe(d.name, method, metrics.OutcomeOK, elapsed)
	logger.Debug("call succeeded", zap.Duration("elapsed", elapsed))

	return result, nil
}
