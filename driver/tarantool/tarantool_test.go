package tarantool_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"

	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/delegate"
	"github.com/tarantool/go-datastore/driver"
	tntdriver "github.com/tarantool/go-datastore/driver/tarantool"
	testingx "github.com/tarantool/go-datastore/internal/testing"
	"github.com/tarantool/go-datastore/kvquery"
	"github.com/tarantool/go-datastore/statement"
)

func duplicateKeyError() error {
	return tarantool.Error{ //nolint:exhaustruct
		Code: iproto.ER_TUPLE_FOUND,
		Msg:  `Duplicate key exists in unique index "primary" in space "users" with old tuple - [1]`,
	}
}

func TestDriver_Capabilities(t *testing.T) {
	t.Parallel()

	tiers := capability.Classify(tntdriver.New().Capabilities())
	assert.True(t, tiers.Transactional)
}

func TestDriver_CompileStatement(t *testing.T) {
	t.Parallel()

	drv := tntdriver.New()

	query, err := drv.CompileStatement(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodFind,
		Table:  "users",
		Where:  []statement.Criterion{statement.Eq("name", "ann"), statement.Gt("age", 30)},
		Limit:  10,
	}, nil)
	require.NoError(t, err)

	q, ok := query.(tntdriver.Query)
	require.True(t, ok)
	assert.NotEmpty(t, q.Expr)
	assert.Empty(t, q.Func)
	require.Len(t, q.Args, 6)
	assert.Equal(t, "users", q.Args[0])
	assert.Equal(t, "find", q.Args[1])
	assert.Equal(t, [][]any{{"name", "=", "ann"}, {"age", ">", 30}}, q.Args[2])
	assert.Equal(t, map[string]any{}, q.Args[3])
	assert.Equal(t, 10, q.Args[4])
	assert.Equal(t, 0, q.Args[5])

	_, err = drv.CompileStatement(statement.Statement{Method: statement.MethodFind}, nil) //nolint:exhaustruct
	require.ErrorIs(t, err, statement.ErrInvalid)

	_, err = drv.CompileStatement(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodFind,
		Table:  "users",
		Where:  []statement.Criterion{{Column: "name", Op: statement.Op(42), Value: 1}},
	}, nil)
	require.ErrorIs(t, err, statement.ErrUnsupported)
}

func TestDriver_SendStatement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := tntdriver.New()

	doer := testingx.NewMockDoer(t,
		testingx.NewMockResponse(t, []any{
			[]any{
				map[string]any{"id": 1, "name": "ann", "age": 31},
				map[string]any{"id": 2, "name": "bob", "age": 40},
			},
			2,
		}),
	)
	conn := tntdriver.NewConn(doer)

	stmt := statement.Statement{ //nolint:exhaustruct
		Method:  statement.MethodFind,
		Table:   "users",
		Columns: []string{"name"},
	}

	query, err := drv.CompileStatement(stmt, nil)
	require.NoError(t, err)

	raw, err := drv.SendNativeQuery(ctx, conn, query, nil)
	require.NoError(t, err)

	require.Len(t, doer.Requests, 1)
	assert.IsType(t, &tarantool.EvalRequest{}, doer.Requests[0]) //nolint:exhaustruct

	result, err := drv.ParseNativeQueryResult(stmt, raw, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Affected)
	assert.Equal(t, []statement.Record{{"name": "ann"}, {"name": "bob"}}, result.Records)
}

func TestDriver_ParseNativeQueryResult_Count(t *testing.T) {
	t.Parallel()

	drv := tntdriver.New()

	result, err := drv.ParseNativeQueryResult(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodCount,
		Table:  "users",
	}, []any{[]any{}, int8(3)}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Affected)
	assert.Nil(t, result.Records)
}

func TestDriver_ParseNativeQueryResult_Unexpected(t *testing.T) {
	t.Parallel()

	drv := tntdriver.New()
	stmt := statement.Statement{Method: statement.MethodFind, Table: "users"} //nolint:exhaustruct

	for _, raw := range []any{
		nil,
		"result",
		[]any{[]any{}},
		[]any{[]any{}, "many"},
		[]any{"rows", 1},
		[]any{[]any{"row"}, 1},
	} {
		_, err := drv.ParseNativeQueryResult(stmt, raw, nil)
		require.ErrorIs(t, err, tntdriver.ErrUnexpectedResponse, "raw: %v", raw)
	}
}

func TestDriver_SendNativeQuery_Call(t *testing.T) {
	t.Parallel()

	doer := testingx.NewMockDoer(t, testingx.NewMockResponse(t, []any{"pong"}))

	raw, err := tntdriver.New().SendNativeQuery(context.Background(), tntdriver.NewConn(doer),
		tntdriver.Call("box.info.status"), nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"pong"}, raw)

	require.Len(t, doer.Requests, 1)
	assert.IsType(t, &tarantool.CallRequest{}, doer.Requests[0]) //nolint:exhaustruct
}

func TestDriver_SendNativeQuery_KeyValue(t *testing.T) {
	t.Parallel()

	doer := testingx.NewMockDoer(t, testingx.NewMockResponse(t, []any{
		map[string]any{
			"data": map[string]any{
				"is_success": true,
				"responses": []any{
					[]any{map[string]any{"path": "/users/1", "mod_revision": 4, "value": "v"}},
				},
			},
			"revision": 5,
		},
	}))

	raw, err := tntdriver.New().SendNativeQuery(context.Background(), tntdriver.NewConn(doer), kvquery.Query{ //nolint:exhaustruct
		Then: []kvquery.Operation{kvquery.Get([]byte("/users/1"))},
	}, nil)
	require.NoError(t, err)

	resp, ok := raw.(kvquery.Response)
	require.True(t, ok)
	assert.True(t, resp.Succeeded)
	assert.Equal(t, int64(5), resp.Revision)
	assert.Equal(t, [][]kvquery.KeyValue{{{Key: []byte("/users/1"), Value: []byte("v"), ModRevision: 4}}}, resp.Results)
}

func TestDriver_SendNativeQuery_KeyValueStrict(t *testing.T) {
	t.Parallel()

	doer := testingx.NewMockDoer(t, testingx.NewMockResponse(t, []any{
		map[string]any{
			"data":     map[string]any{"is_success": false, "responses": []any{}},
			"revision": 5,
		},
	}))
	drv := tntdriver.New()

	_, err := drv.SendNativeQuery(context.Background(), tntdriver.NewConn(doer), &kvquery.Query{
		If:     []kvquery.Predicate{kvquery.VersionEqual([]byte("/users/1"), 0)},
		Then:   []kvquery.Operation{kvquery.Put([]byte("/users/1"), []byte("v"))},
		Else:   nil,
		Strict: true,
	}, nil)
	require.ErrorIs(t, err, kvquery.ErrPrecondition)
	assert.Equal(t, driver.NotUnique("/users/1"), drv.ParseNativeQueryError(err, nil))
}

func TestDriver_ParseNativeQueryError(t *testing.T) {
	t.Parallel()

	drv := tntdriver.New()
	doer := testingx.NewMockDoer(t, duplicateKeyError())

	_, err := drv.SendNativeQuery(context.Background(), tntdriver.NewConn(doer), tntdriver.Eval("return 1"), nil)
	require.Error(t, err)
	assert.Equal(t, driver.NotUnique("primary"), drv.ParseNativeQueryError(err, nil))

	assert.Equal(t, driver.Catchall(), drv.ParseNativeQueryError(errors.New("boom"), nil))
	assert.Equal(t, driver.Catchall(), drv.ParseNativeQueryError(tarantool.Error{ //nolint:exhaustruct
		Code: iproto.ER_NO_SUCH_SPACE,
		Msg:  "Space 'users' does not exist",
	}, nil))
}

func TestDriver_Transactions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := tntdriver.New()
	ok := func() *testingx.MockResponse { return testingx.NewMockResponse(t, []any{}) }

	doer := testingx.NewMockDoer(t, ok(), ok(), ok(), ok())
	conn := tntdriver.NewConn(doer)

	require.NoError(t, drv.BeginTransaction(ctx, conn, driver.Meta{tntdriver.MetaTxnTimeout: time.Second}))
	assert.True(t, conn.InTransaction())
	require.NoError(t, drv.CommitTransaction(ctx, conn, nil))
	assert.False(t, conn.InTransaction())

	require.NoError(t, drv.BeginTransaction(ctx, conn, nil))
	require.NoError(t, drv.RollbackTransaction(ctx, conn, nil))
	assert.False(t, conn.InTransaction())

	require.Len(t, doer.Requests, 4)
	assert.IsType(t, &tarantool.BeginRequest{}, doer.Requests[0])    //nolint:exhaustruct
	assert.IsType(t, &tarantool.CommitRequest{}, doer.Requests[1])   //nolint:exhaustruct
	assert.IsType(t, &tarantool.BeginRequest{}, doer.Requests[2])    //nolint:exhaustruct
	assert.IsType(t, &tarantool.RollbackRequest{}, doer.Requests[3]) //nolint:exhaustruct
}

func TestDriver_ReleaseConnection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := tntdriver.New()
	ok := func() *testingx.MockResponse { return testingx.NewMockResponse(t, []any{}) }

	doer := testingx.NewMockDoer(t, ok(), ok())
	conn := tntdriver.NewConn(doer)

	require.NoError(t, drv.BeginTransaction(ctx, conn, nil))
	require.NoError(t, drv.ReleaseConnection(ctx, conn, nil))
	assert.False(t, conn.InTransaction())

	require.Len(t, doer.Requests, 2)
	assert.IsType(t, &tarantool.RollbackRequest{}, doer.Requests[1]) //nolint:exhaustruct

	require.ErrorIs(t, drv.ReleaseConnection(ctx, conn, nil), tntdriver.ErrReleased)

	_, err := drv.SendNativeQuery(ctx, conn, tntdriver.Eval("return 1"), nil)
	require.ErrorIs(t, err, tntdriver.ErrReleased)
	require.ErrorIs(t, drv.BeginTransaction(ctx, conn, nil), tntdriver.ErrReleased)
}

func TestDriver_UnexpectedArguments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := tntdriver.New()

	_, err := drv.SendNativeQuery(ctx, "conn", tntdriver.Eval("return 1"), nil)
	require.ErrorIs(t, err, tntdriver.ErrUnexpectedType)

	_, err = drv.SendNativeQuery(ctx, tntdriver.NewConn(testingx.NewMockDoer(t)), "return 1", nil)
	require.ErrorIs(t, err, tntdriver.ErrUnexpectedType)

	_, err = drv.GetConnection(ctx, "manager", nil)
	require.ErrorIs(t, err, tntdriver.ErrUnexpectedType)

	require.ErrorIs(t, drv.DestroyManager(ctx, nil, nil), tntdriver.ErrUnexpectedType)
}

func TestConnect_NoAddrs(t *testing.T) {
	t.Parallel()

	_, err := tntdriver.Connect(context.Background(), &config.Instance{Name: "box", Adapter: "tarantool"}) //nolint:exhaustruct
	require.ErrorIs(t, err, tntdriver.ErrNoAddrs)
}

// TestDriver_Delegated sends a statement through an adapter base and the
// delegation helpers, on a stream backed by a mock doer.
func TestDriver_Delegated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	doer := testingx.NewMockDoer(t, duplicateKeyError())
	closed := false

	connector := func(context.Context, *config.Instance) (*tntdriver.Manager, error) {
		return tntdriver.NewManager(
			func() (tarantool.Doer, error) { return doer, nil },
			func() error {
				closed = true
				return nil
			},
		), nil
	}

	base := adapter.NewBase("tarantool", adapter.HostAPIVersion, tntdriver.New(tntdriver.WithConnector(connector)), nil)
	require.NoError(t, base.RegisterDatastore(ctx, &config.Instance{ //nolint:exhaustruct
		Name: "box", Adapter: "tarantool", Addrs: []string{"localhost:3301"},
	}))

	_, err := delegate.New(nil).SendStatement(ctx, delegate.StatementOptions{ //nolint:exhaustruct
		Datastore: "box",
		Adapter:   base,
		Statement: statement.Statement{ //nolint:exhaustruct
			Method: statement.MethodCreate,
			Table:  "users",
			Values: statement.Record{"id": 1, "name": "ann"},
		},
	})
	require.ErrorIs(t, err, delegate.ErrUnique)

	var queryErr *delegate.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, []string{"primary"}, queryErr.Footprint.Keys)

	require.NoError(t, base.Teardown(ctx))
	assert.True(t, closed)
}
