package datastore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	datastore "github.com/tarantool/go-datastore"
	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/delegate"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/driver/memory"
	"github.com/tarantool/go-datastore/kvquery"
	"github.com/tarantool/go-datastore/statement"
)

var errAbort = errors.New("abort")

func memoryDatastore(t *testing.T) *datastore.Datastore {
	t.Helper()

	ctx := context.Background()
	cfg := instance()
	cfg.Adapter = "memory"

	base := adapter.NewBase("memory", adapter.HostAPIVersion, memory.New(), nil)
	require.NoError(t, base.RegisterDatastore(ctx, cfg))

	t.Cleanup(func() {
		assert.NoError(t, base.Teardown(context.Background()))
	})

	ds, err := datastore.Build(name, cfg, base)
	require.NoError(t, err)
	require.NoError(t, ds.Err())

	return ds
}

func create(id int, name string, age int) statement.Statement {
	return statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodCreate,
		Table:  "users",
		Values: statement.Record{"id": id, "name": name, "age": age},
	}
}

func count(ctx context.Context, t *testing.T, ds *datastore.Datastore) int64 {
	t.Helper()

	result, err := ds.SendStatement(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodCount,
		Table:  "users",
	}).Exec(ctx)
	require.NoError(t, err)

	return result.Affected
}

func names(records []statement.Record) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, fmt.Sprint(record["name"]))
	}

	return out
}

func TestDatastore_Memory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ds := memoryDatastore(t)

	assert.True(t, ds.Capabilities().Transactional)

	for i, user := range []string{"ann", "bob", "cid"} {
		result, err := ds.SendStatement(create(i+1, user, 30+i*5)).Exec(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Affected)
	}

	assert.Equal(t, int64(3), count(ctx, t, ds))

	found, err := ds.SendStatement(statement.Statement{ //nolint:exhaustruct
		Method:  statement.MethodFind,
		Table:   "users",
		Where:   []statement.Criterion{statement.Gt("age", 32)},
		Columns: []string{"name"},
	}).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "cid"}, names(found.Records))
	assert.Len(t, found.Records[0], 1)

	updated, err := ds.SendStatement(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodUpdate,
		Table:  "users",
		Where:  []statement.Criterion{statement.Eq("id", 1)},
		Values: statement.Record{"name": "ann-marie"},
	}).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Affected)
	assert.Equal(t, []string{"ann-marie"}, names(updated.Records))

	destroyed, err := ds.SendStatement(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodDestroy,
		Table:  "users",
		Where:  []statement.Criterion{statement.Eq("id", 2)},
	}).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), destroyed.Affected)
	assert.Equal(t, int64(2), count(ctx, t, ds))
}

func TestDatastore_Memory_Unique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ds := memoryDatastore(t)

	_, err := ds.SendStatement(create(1, "ann", 30)).Exec(ctx)
	require.NoError(t, err)

	_, err = ds.SendStatement(create(1, "ann", 30)).Exec(ctx)
	require.ErrorIs(t, err, delegate.ErrUnique)
	require.ErrorIs(t, err, kvquery.ErrPrecondition)

	var queryErr *delegate.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, driver.IdentityNotUnique, queryErr.Footprint.Identity)
	assert.Equal(t, []string{"/users/1"}, queryErr.Footprint.Keys)
}

func TestDatastore_Memory_NativeQuery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ds := memoryDatastore(t)
	layout := kvquery.DefaultLayout()

	_, err := ds.SendStatement(create(1, "ann", 30)).Exec(ctx)
	require.NoError(t, err)

	raw, err := ds.SendNativeQuery(kvquery.Query{ //nolint:exhaustruct
		Then: []kvquery.Operation{kvquery.Get(layout.RecordKey("users", 1))},
	}).Exec(ctx)
	require.NoError(t, err)

	resp, ok := raw.(kvquery.Response)
	require.True(t, ok)
	require.True(t, resp.Succeeded)
	require.Len(t, resp.Results, 1)
	require.Len(t, resp.Results[0], 1)

	record, err := kvquery.Decode(resp.Results[0][0].Value)
	require.NoError(t, err)
	assert.Equal(t, "ann", record["name"])

	_, err = ds.SendNativeQuery("SELECT 1").Exec(ctx)
	require.ErrorIs(t, err, memory.ErrUnexpectedType)
}

func TestDatastore_Memory_Transaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ds := memoryDatastore(t)

	result, err := ds.Transaction(func(ctx context.Context, conn driver.Connection) (any, error) {
		for i, user := range []string{"ann", "bob"} {
			if _, err := ds.SendStatement(create(i+1, user, 30)).UsingConnection(conn).Exec(ctx); err != nil {
				return nil, err
			}
		}

		// Writes are not visible outside the transaction before commit.
		assert.Equal(t, int64(0), count(ctx, t, ds))

		return "committed", nil
	}).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, "committed", result)
	assert.Equal(t, int64(2), count(ctx, t, ds))

	_, err = ds.Transaction(func(ctx context.Context, conn driver.Connection) (any, error) {
		if _, err := ds.SendStatement(create(3, "cid", 30)).UsingConnection(conn).Exec(ctx); err != nil {
			return nil, err
		}

		return nil, errAbort
	}).Exec(ctx)
	require.ErrorIs(t, err, errAbort)
	assert.Equal(t, int64(2), count(ctx, t, ds))

	_, err = ds.Transaction(func(ctx context.Context, conn driver.Connection) (any, error) {
		return ds.SendStatement(create(1, "ann", 30)).UsingConnection(conn).Exec(ctx)
	}).Exec(ctx)
	require.ErrorIs(t, err, delegate.ErrUnique)
}

func TestDatastore_Memory_LeaseConnection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ds := memoryDatastore(t)

	var leased *memory.Conn

	_, err := ds.LeaseConnection(func(ctx context.Context, conn driver.Connection) (any, error) {
		c, ok := conn.(*memory.Conn)
		require.True(t, ok)

		leased = c

		return ds.SendStatement(create(1, "ann", 30)).UsingConnection(conn).Exec(ctx)
	}).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count(ctx, t, ds))

	// The connection is released once the routine returns.
	_, err = ds.SendStatement(create(2, "bob", 30)).UsingConnection(leased).Exec(ctx)
	require.ErrorIs(t, err, memory.ErrReleased)
}

func ExampleDatastore_SendStatement() {
	ctx := context.Background()
	cfg := instance()

	base := adapter.NewBase("memory", adapter.HostAPIVersion, memory.New(), nil)
	if err := base.RegisterDatastore(ctx, cfg); err != nil {
		fmt.Println(err)
		return
	}

	defer func() { _ = base.Teardown(ctx) }()

	ds, err := datastore.Build(cfg.Name, cfg, base)
	if err != nil {
		fmt.Println(err)
		return
	}

	_, err = ds.SendStatement(create(1, "ann", 31)).Exec(ctx)
	fmt.Println(err)

	_, err = ds.SendStatement(create(1, "ann", 31)).Exec(ctx)
	fmt.Println(errors.Is(err, delegate.ErrUnique))

	result, err := ds.SendStatement(statement.Statement{ //nolint:exhaustruct
		Method:  statement.MethodFind,
		Table:   "users",
		Columns: []string{"name"},
	}).Exec(ctx)
	fmt.Println(result.Records, err)

	// Output:
	// <nil>
	// true
	// [map[name:ann]] <nil>
}
