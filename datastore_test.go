package datastore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gojuno/minimock/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarantool/go-option"

	datastore "github.com/tarantool/go-datastore"
	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/delegate"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/internal/mocks"
	testingx "github.com/tarantool/go-datastore/internal/testing"
	"github.com/tarantool/go-datastore/metrics"
	"github.com/tarantool/go-datastore/statement"
)

const name = "default"

func instance() *config.Instance {
	return &config.Instance{ //nolint:exhaustruct
		Name:    name,
		Adapter: "fake",
		URL:     "fake://localhost",
	}
}

func entry(drv driver.Driver) adapter.Entry {
	return adapter.Entry{Manager: "manager", Driver: drv, Config: map[string]any{}}
}

func provider(entries map[string]adapter.Entry) *testingx.ProviderAdapter {
	return testingx.NewProviderAdapter(adapter.HostAPIVersion, entries)
}

func build(t *testing.T, a adapter.Adapter, delegator datastore.Delegator) *datastore.Datastore {
	t.Helper()

	ds, err := datastore.Build(name, instance(), a, datastore.WithDelegator(delegator))
	require.NoError(t, err)
	require.NotNil(t, ds)

	return ds
}

// expectOnce expects method to be delegated exactly once.
func expectOnce(delegator *mocks.DelegatorMock, method string) {
	switch method {
	case datastore.MethodLeaseConnection:
		delegator.LeaseConnectionMock.Times(1).Return(nil, nil)
	case datastore.MethodSendStatement:
		delegator.SendStatementMock.Times(1).Return(statement.Result{Records: nil, Affected: 0}, nil)
	case datastore.MethodSendNativeQuery:
		delegator.SendNativeQueryMock.Times(1).Return(nil, nil)
	case datastore.MethodTransaction:
		delegator.TransactionMock.Times(1).Return(nil, nil)
	}
}

type outcome struct {
	result any
	err    error
}

// runAll executes every operation of ds once.
func runAll(ctx context.Context, ds *datastore.Datastore) map[string]outcome {
	during := func(context.Context, driver.Connection) (any, error) { return "during", nil }
	out := make(map[string]outcome, 4) //nolint:mnd

	result, err := ds.LeaseConnection(during).Exec(ctx)
	out[datastore.MethodLeaseConnection] = outcome{result: result, err: err}

	stmtResult, err := ds.SendStatement(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodFind,
		Table:  "users",
	}).Exec(ctx)
	out[datastore.MethodSendStatement] = outcome{result: stmtResult, err: err}

	result, err = ds.SendNativeQuery("SELECT 1").Exec(ctx)
	out[datastore.MethodSendNativeQuery] = outcome{result: result, err: err}

	result, err = ds.Transaction(during).Exec(ctx)
	out[datastore.MethodTransaction] = outcome{result: result, err: err}

	return out
}

func TestBuild_Structural(t *testing.T) {
	t.Parallel()

	full := testingx.NewTransactionalDriver(capability.Of(capability.TierTransactional))

	tests := []struct {
		name    string
		adapter adapter.Adapter
		message string
	}{
		{
			name:    "no instance provider",
			adapter: testingx.NewAdapter(adapter.HostAPIVersion),
			message: "does not support direct access to its internal datastore instances",
		},
		{
			name:    "nil datastores map",
			adapter: provider(nil),
			message: "does not support direct access to its internal datastore instances",
		},
		{
			name:    "missing entry",
			adapter: provider(map[string]adapter.Entry{"other": entry(full)}),
			message: "the adapter holds no reference to this datastore",
		},
		{
			name: "missing manager",
			adapter: provider(map[string]adapter.Entry{
				name: {Manager: nil, Driver: full, Config: map[string]any{}},
			}),
			message: "incomplete reference to this datastore (missing manager)",
		},
		{
			name: "missing driver",
			adapter: provider(map[string]adapter.Entry{
				name: {Manager: "manager", Driver: nil, Config: map[string]any{}},
			}),
			message: "(missing driver)",
		},
		{
			name: "missing config",
			adapter: provider(map[string]adapter.Entry{
				name: {Manager: "manager", Driver: full, Config: nil},
			}),
			message: "(missing config)",
		},
		{
			name: "missing everything",
			adapter: provider(map[string]adapter.Entry{
				name: {Manager: nil, Driver: nil, Config: nil},
			}),
			message: "(missing manager, driver, config)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mc := minimock.NewController(t)
			ds := build(t, tc.adapter, mocks.NewDelegatorMock(mc))

			structural := ds.Err()
			require.ErrorIs(t, structural, datastore.ErrNotSupported)
			assert.Contains(t, structural.Error(), tc.message)
			assert.Contains(t, structural.Error(), `"default" datastore`)
			assert.Equal(t, capability.Tiers{}, ds.Capabilities()) //nolint:exhaustruct

			var notSupported *datastore.NotSupportedError
			require.ErrorAs(t, structural, &notSupported)
			assert.Equal(t, datastore.KindStructural, notSupported.Kind)
			assert.Equal(t, datastore.CodeNotSupported, notSupported.Code())

			for method, got := range runAll(context.Background(), ds) {
				assert.Same(t, structural, got.err, "method %s", method)
			}
		})
	}
}

func TestBuild_Tiers(t *testing.T) {
	t.Parallel()

	gapped := capability.NewSet(capability.Of(capability.TierTransactional).Operations()...)
	delete(gapped, capability.GetConnection)

	tests := []struct {
		name      string
		driver    driver.Driver
		delegated []string
		rejected  map[string]capability.Tier
	}{
		{
			name:      "declares nothing",
			driver:    testingx.NewTransactionalDriver(capability.NewSet()),
			delegated: nil,
			rejected: map[string]capability.Tier{
				datastore.MethodLeaseConnection: capability.TierConnectable,
				datastore.MethodSendStatement:   capability.TierQueryable,
				datastore.MethodSendNativeQuery: capability.TierQueryable,
				datastore.MethodTransaction:     capability.TierTransactional,
			},
		},
		{
			name:      "connectable",
			driver:    testingx.NewConnectableDriver(capability.Of(capability.TierConnectable)),
			delegated: []string{datastore.MethodLeaseConnection},
			rejected: map[string]capability.Tier{
				datastore.MethodSendStatement:   capability.TierQueryable,
				datastore.MethodSendNativeQuery: capability.TierQueryable,
				datastore.MethodTransaction:     capability.TierTransactional,
			},
		},
		{
			name:      "declares more than it implements",
			driver:    testingx.NewConnectableDriver(capability.Of(capability.TierTransactional)),
			delegated: []string{datastore.MethodLeaseConnection},
			rejected: map[string]capability.Tier{
				datastore.MethodSendStatement:   capability.TierQueryable,
				datastore.MethodSendNativeQuery: capability.TierQueryable,
				datastore.MethodTransaction:     capability.TierTransactional,
			},
		},
		{
			name:   "queryable",
			driver: testingx.NewQueryableDriver(capability.Of(capability.TierQueryable)),
			delegated: []string{
				datastore.MethodLeaseConnection,
				datastore.MethodSendStatement,
				datastore.MethodSendNativeQuery,
			},
			rejected: map[string]capability.Tier{
				datastore.MethodTransaction: capability.TierTransactional,
			},
		},
		{
			name:      "gap in declared tiers",
			driver:    testingx.NewTransactionalDriver(gapped),
			delegated: nil,
			rejected: map[string]capability.Tier{
				datastore.MethodLeaseConnection: capability.TierConnectable,
				datastore.MethodSendStatement:   capability.TierQueryable,
				datastore.MethodSendNativeQuery: capability.TierQueryable,
				datastore.MethodTransaction:     capability.TierTransactional,
			},
		},
		{
			name:   "transactional",
			driver: testingx.NewTransactionalDriver(capability.Of(capability.TierTransactional)),
			delegated: []string{
				datastore.MethodLeaseConnection,
				datastore.MethodSendStatement,
				datastore.MethodSendNativeQuery,
				datastore.MethodTransaction,
			},
			rejected: map[string]capability.Tier{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mc := minimock.NewController(t)
			delegator := mocks.NewDelegatorMock(mc)

			for _, method := range tc.delegated {
				expectOnce(delegator, method)
			}

			ds := build(t, provider(map[string]adapter.Entry{name: entry(tc.driver)}), delegator)
			require.NoError(t, ds.Err())

			outcomes := runAll(context.Background(), ds)

			for _, method := range tc.delegated {
				assert.NoError(t, outcomes[method].err, "method %s", method)
			}

			for method, layer := range tc.rejected {
				err := outcomes[method].err
				require.ErrorIs(t, err, datastore.ErrNotSupported, "method %s", method)

				var notSupported *datastore.NotSupportedError
				require.ErrorAs(t, err, &notSupported)
				assert.Equal(t, datastore.KindTier, notSupported.Kind)
				assert.Equal(t, layer, notSupported.Layer)
				assert.Equal(t, method, notSupported.Method)
				assert.Contains(t, err.Error(), "the "+layer.String()+" interface layer required by "+method+"()")
				assert.Contains(t, err.Error(), "same adapter API version")
			}
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	queryable := testingx.NewQueryableDriver(capability.Of(capability.TierQueryable))

	tests := []struct {
		name    string
		adapter adapter.Adapter
	}{
		{
			name:    "structural",
			adapter: provider(map[string]adapter.Entry{"other": entry(queryable)}),
		},
		{
			name:    "tiered",
			adapter: provider(map[string]adapter.Entry{name: entry(queryable)}),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := instance()

			first, err := datastore.Build(name, cfg, tc.adapter)
			require.NoError(t, err)

			second, err := datastore.Build(name, cfg, tc.adapter)
			require.NoError(t, err)

			assert.Equal(t, first.Capabilities(), second.Capabilities())
			assert.Equal(t, first.Err() != nil, second.Err() != nil)

			if first.Err() != nil {
				assert.Equal(t, first.Err().Error(), second.Err().Error())
			}
		})
	}
}

func TestBuild_Incompatible(t *testing.T) {
	t.Parallel()

	full := testingx.NewTransactionalDriver(capability.Of(capability.TierTransactional))

	for _, version := range []string{"", "garbage", "0.9.0", "2.0.0"} {
		a := testingx.NewProviderAdapter(version, map[string]adapter.Entry{name: entry(full)})

		ds, err := datastore.Build(name, instance(), a)
		require.ErrorIs(t, err, adapter.ErrIncompatible, "version %q", version)
		assert.Nil(t, ds)
	}

	ds, err := datastore.Build(name, instance(), nil)
	require.ErrorIs(t, err, adapter.ErrIncompatible)
	assert.Nil(t, ds)
}

func TestBuild_HostAPIVersion(t *testing.T) {
	t.Parallel()

	a := testingx.NewAdapter("1.4.0")

	_, err := datastore.Build(name, instance(), a, datastore.WithHostAPIVersion("1.5.0"))
	require.ErrorIs(t, err, adapter.ErrIncompatible)

	ds, err := datastore.Build(name, instance(), a, datastore.WithHostAPIVersion("1.2.0"))
	require.NoError(t, err)
	assert.Equal(t, name, ds.Name())
	assert.Equal(t, instance(), ds.Config())
	assert.Same(t, a, ds.Adapter())
}

func TestDatastore_CallOptions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mc := minimock.NewController(t)
	delegator := mocks.NewDelegatorMock(mc)

	var (
		leases        []delegate.LeaseOptions
		statements    []delegate.StatementOptions
		nativeQueries []delegate.NativeQueryOptions
		transactions  []delegate.TransactionOptions
	)

	delegator.LeaseConnectionMock.
		Inspect(func(_ context.Context, opts delegate.LeaseOptions) { leases = append(leases, opts) }).
		Times(1).Return(nil, nil)
	delegator.SendStatementMock.
		Inspect(func(_ context.Context, opts delegate.StatementOptions) { statements = append(statements, opts) }).
		Times(2).Return(statement.Result{Records: nil, Affected: 0}, nil) //nolint:mnd
	delegator.SendNativeQueryMock.
		Inspect(func(_ context.Context, opts delegate.NativeQueryOptions) { nativeQueries = append(nativeQueries, opts) }).
		Times(1).Return(nil, nil)
	delegator.TransactionMock.
		Inspect(func(_ context.Context, opts delegate.TransactionOptions) { transactions = append(transactions, opts) }).
		Times(1).Return(nil, nil)

	drv := testingx.NewTransactionalDriver(capability.Of(capability.TierTransactional))
	ds := build(t, provider(map[string]adapter.Entry{name: entry(drv)}), delegator)

	meta := driver.Meta{"timeout": "1s"}
	stmt := statement.Statement{Method: statement.MethodCount, Table: "users"} //nolint:exhaustruct

	_, err := ds.LeaseConnection(nil).Meta(meta).Exec(ctx)
	require.NoError(t, err)

	_, err = ds.SendStatement(stmt).Meta(meta).UsingConnection("conn").Exec(ctx)
	require.NoError(t, err)

	_, err = ds.SendStatement(stmt, datastore.WithMeta(meta), datastore.WithConnection("conn-2")).Exec(ctx)
	require.NoError(t, err)

	_, err = ds.SendNativeQuery("PING").Exec(ctx)
	require.NoError(t, err)

	_, err = ds.Transaction(nil, datastore.WithMeta(meta), datastore.WithConnection("ignored")).Exec(ctx)
	require.NoError(t, err)

	require.Len(t, leases, 1)
	assert.Equal(t, meta, leases[0].Meta)
	assert.Equal(t, name, leases[0].Datastore)

	require.Len(t, statements, 2)
	assert.Equal(t, stmt, statements[0].Statement)
	assert.Equal(t, meta, statements[0].Meta)
	assert.Equal(t, option.Some[driver.Connection]("conn"), statements[0].UsingConnection)
	assert.Equal(t, option.Some[driver.Connection]("conn-2"), statements[1].UsingConnection)

	require.Len(t, nativeQueries, 1)
	assert.Equal(t, "PING", nativeQueries[0].NativeQuery)
	assert.Nil(t, nativeQueries[0].Meta)
	assert.False(t, nativeQueries[0].UsingConnection.IsSome())

	require.Len(t, transactions, 1)
	assert.Equal(t, meta, transactions[0].Meta)
}

func TestDatastore_SettersDoNotExecute(t *testing.T) {
	t.Parallel()

	mc := minimock.NewController(t)
	delegator := mocks.NewDelegatorMock(mc)

	drv := testingx.NewTransactionalDriver(capability.Of(capability.TierTransactional))
	ds := build(t, provider(map[string]adapter.Entry{name: entry(drv)}), delegator)

	ds.LeaseConnection(nil).Meta(driver.Meta{})
	ds.SendStatement(statement.Statement{}).Meta(driver.Meta{}).UsingConnection("conn") //nolint:exhaustruct
	ds.SendNativeQuery("PING").UsingConnection("conn").Meta(nil)
	ds.Transaction(nil).Meta(driver.Meta{})
}

func TestDatastore_DelegatedResult(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mc := minimock.NewController(t)
	boom := errors.New("boom")
	stmtResult := statement.Result{Records: []statement.Record{{"id": 1}}, Affected: 1}
	drv := testingx.NewTransactionalDriver(capability.Of(capability.TierTransactional))

	delegator := mocks.NewDelegatorMock(mc)
	delegator.LeaseConnectionMock.Times(1).Return("result", nil)
	delegator.SendStatementMock.Times(1).Return(stmtResult, nil)
	delegator.SendNativeQueryMock.Times(1).Return("result", nil)
	delegator.TransactionMock.Times(1).Return("result", nil)

	outcomes := runAll(ctx, build(t, provider(map[string]adapter.Entry{name: entry(drv)}), delegator))
	assert.Equal(t, "result", outcomes[datastore.MethodLeaseConnection].result)
	assert.Equal(t, stmtResult, outcomes[datastore.MethodSendStatement].result)
	assert.Equal(t, "result", outcomes[datastore.MethodSendNativeQuery].result)
	assert.Equal(t, "result", outcomes[datastore.MethodTransaction].result)

	failing := mocks.NewDelegatorMock(mc)
	failing.LeaseConnectionMock.Times(1).Return(nil, boom)
	failing.SendStatementMock.Times(1).Return(statement.Result{Records: nil, Affected: 0}, boom)
	failing.SendNativeQueryMock.Times(1).Return(nil, boom)
	failing.TransactionMock.Times(1).Return(nil, boom)

	for method, got := range runAll(ctx, build(t, provider(map[string]adapter.Entry{name: entry(drv)}), failing)) {
		assert.Same(t, boom, got.err, "method %s", method)
	}
}

func TestDatastore_Metrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mc := minimock.NewController(t)
	collector := metrics.New("test")
	delegator := mocks.NewDelegatorMock(mc).LeaseConnectionMock.Times(1).Return(nil, nil)

	drv := testingx.NewConnectableDriver(capability.Of(capability.TierConnectable))
	ds, err := datastore.Build(name, instance(), provider(map[string]adapter.Entry{name: entry(drv)}),
		datastore.WithDelegator(delegator),
		datastore.WithMetrics(collector),
	)
	require.NoError(t, err)

	runAll(ctx, ds)

	calls := collector.Calls()
	assert.InDelta(t, 1, testutil.ToFloat64(calls.WithLabelValues(name, datastore.MethodLeaseConnection, "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(calls.WithLabelValues(name, datastore.MethodSendStatement, "not_supported")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(calls.WithLabelValues(name, datastore.MethodTransaction, "not_supported")), 0)
}

func TestDatastore_Then(t *testing.T) {
	t.Parallel()

	mc := minimock.NewController(t)
	delegator := mocks.NewDelegatorMock(mc).SendNativeQueryMock.Times(1).Return("pong", nil)

	drv := testingx.NewQueryableDriver(capability.Of(capability.TierQueryable))
	ds := build(t, provider(map[string]adapter.Entry{name: entry(drv)}), delegator)

	done := make(chan outcome, 2) //nolint:mnd

	ds.SendNativeQuery("PING").Then(context.Background(), func(result any, err error) {
		done <- outcome{result: result, err: err}
	})

	select {
	case got := <-done:
		require.NoError(t, got.err)
		assert.Equal(t, "pong", got.result)
	case <-time.After(time.Second):
		t.Fatal("callback was not called")
	}

	mc.Wait(time.Second)
	assert.Empty(t, done)
}

func TestDatastore_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	const workers = 32

	mc := minimock.NewController(t)
	delegator := mocks.NewDelegatorMock(mc)

	// Each call answers with the meta it was delegated with.
	delegator.SendStatementMock.Times(workers).Set(
		func(_ context.Context, opts delegate.StatementOptions) (statement.Result, error) {
			return statement.Result{Records: []statement.Record{{"caller": opts.Meta["caller"]}}, Affected: 1}, nil
		})

	drv := testingx.NewQueryableDriver(capability.Of(capability.TierQueryable))
	ds := build(t, provider(map[string]adapter.Entry{name: entry(drv)}), delegator)

	var wg sync.WaitGroup

	results := make([]statement.Result, workers)
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			stmt := statement.Statement{Method: statement.MethodCount, Table: fmt.Sprintf("t%d", i)} //nolint:exhaustruct
			results[i], errs[i] = ds.SendStatement(stmt).Meta(driver.Meta{"caller": i}).Exec(context.Background())
		}()
	}

	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, []statement.Record{{"caller": i}}, results[i].Records, "caller %d", i)
	}

	assert.Equal(t, uint64(workers), delegator.SendStatementAfterCounter())
}
