package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/delegate"
	"github.com/tarantool/go-datastore/driver"
	pgdriver "github.com/tarantool/go-datastore/driver/postgres"
	"github.com/tarantool/go-datastore/statement"
)

type fakeRows struct {
	columns []string
	values  [][]any
	tag     string
	err     error
	pos     int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag(r.tag) }
func (r *fakeRows) Scan(...any) error             { return nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, 0, len(r.columns))
	for _, column := range r.columns {
		fields = append(fields, pgconn.FieldDescription{Name: column}) //nolint:exhaustruct
	}

	return fields
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.values) {
		return false
	}

	r.pos++

	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.values[r.pos-1], nil
}

type call struct {
	sql  string
	args []any
}

type fakeQuerier struct {
	calls   []call
	rows    *fakeRows
	err     error
	execErr error
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, call{sql: sql, args: args})
	return pgconn.NewCommandTag(sql), q.execErr
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, call{sql: sql, args: args})

	if q.err != nil {
		return nil, q.err
	}

	return q.rows, nil
}

func uniqueViolation() error {
	return &pgconn.PgError{ //nolint:exhaustruct
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_pkey"`,
		ConstraintName: "users_pkey",
	}
}

func compile(t *testing.T, stmt statement.Statement) pgdriver.Query {
	t.Helper()

	query, err := pgdriver.New().CompileStatement(stmt, nil)
	require.NoError(t, err)

	q, ok := query.(pgdriver.Query)
	require.True(t, ok)

	return q
}

func TestDriver_Capabilities(t *testing.T) {
	t.Parallel()

	tiers := capability.Classify(pgdriver.New().Capabilities())
	assert.True(t, tiers.Transactional)
}

func TestDriver_CompileStatement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		stmt statement.Statement
		sql  string
		args []any
	}{
		{
			name: "find",
			stmt: statement.Statement{ //nolint:exhaustruct
				Method:  statement.MethodFind,
				Table:   "public.users",
				Columns: []string{"id", "name"},
				Where:   []statement.Criterion{statement.Eq("name", "ann"), statement.Gt("age", 30)},
				Limit:   10,
				Skip:    5,
			},
			sql:  `SELECT "id", "name" FROM "public"."users" WHERE "name" = $1 AND "age" > $2 LIMIT $3 OFFSET $4`,
			args: []any{"ann", 30, 10, 5},
		},
		{
			name: "count with null criteria",
			stmt: statement.Statement{ //nolint:exhaustruct
				Method: statement.MethodCount,
				Table:  "users",
				Where:  []statement.Criterion{statement.Eq("deleted_at", nil), statement.Ne("email", nil)},
			},
			sql:  `SELECT count(*) AS count FROM "users" WHERE "deleted_at" IS NULL AND "email" IS NOT NULL`,
			args: nil,
		},
		{
			name: "create",
			stmt: statement.Statement{ //nolint:exhaustruct
				Method: statement.MethodCreate,
				Table:  "users",
				Values: statement.Record{"name": "ann", "id": 1},
			},
			sql:  `INSERT INTO "users" ("id", "name") VALUES ($1, $2) RETURNING *`,
			args: []any{1, "ann"},
		},
		{
			name: "update",
			stmt: statement.Statement{ //nolint:exhaustruct
				Method: statement.MethodUpdate,
				Table:  "users",
				Values: statement.Record{"name": "bob"},
				Where:  []statement.Criterion{statement.Lt("id", 3)},
			},
			sql:  `UPDATE "users" SET "name" = $1 WHERE "id" < $2 RETURNING *`,
			args: []any{"bob", 3},
		},
		{
			name: "destroy",
			stmt: statement.Statement{ //nolint:exhaustruct
				Method: statement.MethodDestroy,
				Table:  "users",
				Where:  []statement.Criterion{statement.Ne("name", `a"b`)},
			},
			sql:  `DELETE FROM "users" WHERE "name" <> $1 RETURNING *`,
			args: []any{`a"b`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q := compile(t, tc.stmt)
			assert.Equal(t, tc.sql, q.SQL)
			assert.Equal(t, tc.args, q.Args)
		})
	}
}

func TestDriver_CompileStatement_Errors(t *testing.T) {
	t.Parallel()

	drv := pgdriver.New()

	_, err := drv.CompileStatement(statement.Statement{Method: statement.MethodFind}, nil) //nolint:exhaustruct
	require.ErrorIs(t, err, statement.ErrInvalid)

	_, err = drv.CompileStatement(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodFind,
		Table:  "users",
		Where:  []statement.Criterion{{Column: "name", Op: statement.Op(42), Value: 1}},
	}, nil)
	require.ErrorIs(t, err, statement.ErrUnsupported)
}

func TestDriver_CompileStatement_QuotesIdentifiers(t *testing.T) {
	t.Parallel()

	q := compile(t, statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodDestroy,
		Table:  `users"; DROP TABLE users; --`,
	})
	assert.Equal(t, `DELETE FROM "users""; DROP TABLE users; --" RETURNING *`, q.SQL)
}

func TestDriver_SendStatement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := pgdriver.New()

	querier := &fakeQuerier{ //nolint:exhaustruct
		rows: &fakeRows{ //nolint:exhaustruct
			columns: []string{"id", "name"},
			values:  [][]any{{int64(1), "ann"}, {int64(2), "bob"}},
			tag:     "UPDATE 2",
		},
	}
	conn := pgdriver.NewConn(querier)

	stmt := statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodUpdate,
		Table:  "users",
		Values: statement.Record{"active": true},
	}

	query, err := drv.CompileStatement(stmt, nil)
	require.NoError(t, err)

	raw, err := drv.SendNativeQuery(ctx, conn, query, nil)
	require.NoError(t, err)

	require.Len(t, querier.calls, 1)
	assert.Equal(t, `UPDATE "users" SET "active" = $1 RETURNING *`, querier.calls[0].sql)
	assert.Equal(t, []any{true}, querier.calls[0].args)

	result, err := drv.ParseNativeQueryResult(stmt, raw, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Affected)
	assert.Equal(t, []statement.Record{{"id": int64(1), "name": "ann"}, {"id": int64(2), "name": "bob"}}, result.Records)
}

func TestDriver_ParseNativeQueryResult(t *testing.T) {
	t.Parallel()

	drv := pgdriver.New()

	result, err := drv.ParseNativeQueryResult(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodCount,
		Table:  "users",
	}, pgdriver.Rows{Records: []map[string]any{{"count": int64(7)}}, Tag: pgconn.NewCommandTag("SELECT 1")}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Affected)
	assert.Nil(t, result.Records)

	result, err = drv.ParseNativeQueryResult(statement.Statement{ //nolint:exhaustruct
		Method: statement.MethodFind,
		Table:  "users",
	}, &pgdriver.Rows{Records: []map[string]any{{"id": 1}}, Tag: pgconn.NewCommandTag("SELECT 1")}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Affected)
	assert.Equal(t, []statement.Record{{"id": 1}}, result.Records)

	count := statement.Statement{Method: statement.MethodCount, Table: "users"} //nolint:exhaustruct

	for _, raw := range []any{
		nil,
		"rows",
		(*pgdriver.Rows)(nil),
		pgdriver.Rows{}, //nolint:exhaustruct
		pgdriver.Rows{Records: []map[string]any{{"count": "7"}}}, //nolint:exhaustruct
	} {
		_, err := drv.ParseNativeQueryResult(count, raw, nil)
		require.ErrorIs(t, err, pgdriver.ErrUnexpectedResult, "raw: %v", raw)
	}
}

func TestDriver_ParseNativeQueryError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := pgdriver.New()
	querier := &fakeQuerier{err: uniqueViolation()} //nolint:exhaustruct

	_, err := drv.SendNativeQuery(ctx, pgdriver.NewConn(querier), pgdriver.SQL("INSERT INTO users VALUES (1)"), nil)
	require.Error(t, err)
	assert.Equal(t, driver.NotUnique("users_pkey"), drv.ParseNativeQueryError(err, nil))

	assert.Equal(t, driver.NotUnique(), drv.ParseNativeQueryError(&pgconn.PgError{Code: "23505"}, nil)) //nolint:exhaustruct
	assert.Equal(t, driver.Catchall(), drv.ParseNativeQueryError(&pgconn.PgError{Code: "23503"}, nil)) //nolint:exhaustruct
	assert.Equal(t, driver.Catchall(), drv.ParseNativeQueryError(errors.New("boom"), nil))
}

func TestDriver_Transactions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := pgdriver.New()
	querier := &fakeQuerier{} //nolint:exhaustruct
	conn := pgdriver.NewConn(querier)

	require.NoError(t, drv.BeginTransaction(ctx, conn, driver.Meta{pgdriver.MetaIsolation: pgx.Serializable}))
	assert.True(t, conn.InTransaction())
	require.NoError(t, drv.CommitTransaction(ctx, conn, nil))
	assert.False(t, conn.InTransaction())

	require.NoError(t, drv.BeginTransaction(ctx, conn, nil))
	require.NoError(t, drv.RollbackTransaction(ctx, conn, nil))
	assert.False(t, conn.InTransaction())

	sqls := make([]string, 0, len(querier.calls))
	for _, c := range querier.calls {
		sqls = append(sqls, c.sql)
	}

	assert.Equal(t, []string{"BEGIN ISOLATION LEVEL serializable", "COMMIT", "BEGIN", "ROLLBACK"}, sqls)
}

func TestDriver_Transactions_Failure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := pgdriver.New()
	boom := errors.New("boom")
	conn := pgdriver.NewConn(&fakeQuerier{execErr: boom}) //nolint:exhaustruct

	require.ErrorIs(t, drv.BeginTransaction(ctx, conn, nil), boom)
	assert.False(t, conn.InTransaction())
}

func TestDriver_ReleaseConnection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := pgdriver.New()
	querier := &fakeQuerier{} //nolint:exhaustruct
	released := 0

	manager := pgdriver.NewManager(func(context.Context) (pgdriver.Querier, func(), error) {
		return querier, func() { released++ }, nil
	}, nil)

	conn, err := drv.GetConnection(ctx, manager, nil)
	require.NoError(t, err)

	require.NoError(t, drv.BeginTransaction(ctx, conn, nil))
	require.NoError(t, drv.ReleaseConnection(ctx, conn, nil))
	assert.Equal(t, 1, released)

	require.Len(t, querier.calls, 2)
	assert.Equal(t, "ROLLBACK", querier.calls[1].sql)

	require.ErrorIs(t, drv.ReleaseConnection(ctx, conn, nil), pgdriver.ErrReleased)
	assert.Equal(t, 1, released)

	_, err = drv.SendNativeQuery(ctx, conn, pgdriver.SQL("SELECT 1"), nil)
	require.ErrorIs(t, err, pgdriver.ErrReleased)
	require.ErrorIs(t, drv.CommitTransaction(ctx, conn, nil), pgdriver.ErrReleased)
}

func TestDriver_UnexpectedArguments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := pgdriver.New()

	_, err := drv.SendNativeQuery(ctx, "conn", pgdriver.SQL("SELECT 1"), nil)
	require.ErrorIs(t, err, pgdriver.ErrUnexpectedType)

	_, err = drv.SendNativeQuery(ctx, pgdriver.NewConn(&fakeQuerier{}), 42, nil) //nolint:exhaustruct
	require.ErrorIs(t, err, pgdriver.ErrUnexpectedType)

	_, err = drv.GetConnection(ctx, "manager", nil)
	require.ErrorIs(t, err, pgdriver.ErrUnexpectedType)

	require.ErrorIs(t, drv.DestroyManager(ctx, nil, nil), pgdriver.ErrUnexpectedType)
}

func TestConnect_NoURL(t *testing.T) {
	t.Parallel()

	_, err := pgdriver.Connect(context.Background(), &config.Instance{ //nolint:exhaustruct
		Name: "pg", Adapter: "postgres", Addrs: []string{"localhost:5432"},
	})
	require.ErrorIs(t, err, pgdriver.ErrNoURL)
}

// TestDriver_Delegated sends a statement through an adapter base and the
// delegation helpers, on a connection backed by a fake querier.
func TestDriver_Delegated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	querier := &fakeQuerier{err: uniqueViolation()} //nolint:exhaustruct
	closed := false

	connector := func(context.Context, *config.Instance) (*pgdriver.Manager, error) {
		return pgdriver.NewManager(
			func(context.Context) (pgdriver.Querier, func(), error) { return querier, func() {}, nil },
			func() { closed = true },
		), nil
	}

	base := adapter.NewBase("postgres", adapter.HostAPIVersion, pgdriver.New(pgdriver.WithConnector(connector)), nil)
	require.NoError(t, base.RegisterDatastore(ctx, &config.Instance{ //nolint:exhaustruct
		Name: "pg", Adapter: "postgres", URL: "postgres://localhost/app",
	}))

	_, err := delegate.New(nil).SendStatement(ctx, delegate.StatementOptions{ //nolint:exhaustruct
		Datastore: "pg",
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
	assert.Equal(t, []string{"users_pkey"}, queryErr.Footprint.Keys)

	require.NoError(t, base.Teardown(ctx))
	assert.True(t, closed)
}
