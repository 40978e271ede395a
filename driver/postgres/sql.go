package postgres

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/statement"
)

const uniqueViolation = "23505"

var (
	// ErrUnexpectedResult is returned when the raw result has an unexpected format.
	ErrUnexpectedResult = errors.New("unexpected postgres result")

	//nolint: gochecknoglobals
	sqlOperators = map[statement.Op]string{
		statement.OpEqual:    "=",
		statement.OpNotEqual: "<>",
		statement.OpGreater:  ">",
		statement.OpLess:     "<",
	}
)

// builder accumulates SQL text and positional arguments.
type builder struct {
	sql  strings.Builder
	args []any
}

func (b *builder) write(parts ...string) {
	for _, part := range parts {
		b.sql.WriteString(part)
	}
}

func (b *builder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) where(criteria []statement.Criterion) error {
	for i, criterion := range criteria {
		if i == 0 {
			b.write(" WHERE ")
		} else {
			b.write(" AND ")
		}

		column := quote(criterion.Column)

		switch {
		case criterion.Value == nil && criterion.Op == statement.OpEqual:
			b.write(column, " IS NULL")
			continue
		case criterion.Value == nil && criterion.Op == statement.OpNotEqual:
			b.write(column, " IS NOT NULL")
			continue
		}

		op, ok := sqlOperators[criterion.Op]
		if !ok {
			return fmt.Errorf("%w: operator %s", statement.ErrUnsupported, criterion.Op)
		}

		b.write(column, " ", op, " ", b.bind(criterion.Value))
	}

	return nil
}

func (b *builder) query() Query {
	return Query{SQL: b.sql.String(), Args: b.args}
}

// quote quotes a possibly schema-qualified identifier.
func quote(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func sortedColumns(values statement.Record) []string {
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}

	slices.Sort(columns)

	return columns
}

func compileStatement(stmt statement.Statement) (Query, error) {
	if err := stmt.Validate(); err != nil {
		return Query{}, err //nolint:wrapcheck
	}

	var b builder

	table := quote(stmt.Table)

	switch stmt.Method {
	case statement.MethodFind:
		columns := "*"
		if len(stmt.Columns) > 0 {
			quoted := make([]string, 0, len(stmt.Columns))
			for _, column := range stmt.Columns {
				quoted = append(quoted, quote(column))
			}

			columns = strings.Join(quoted, ", ")
		}

		b.write("SELECT ", columns, " FROM ", table)

		if err := b.where(stmt.Where); err != nil {
			return Query{}, err
		}

		if stmt.Limit > 0 {
			b.write(" LIMIT ", b.bind(stmt.Limit))
		}

		if stmt.Skip > 0 {
			b.write(" OFFSET ", b.bind(stmt.Skip))
		}
	case statement.MethodCount:
		b.write("SELECT count(*) AS count FROM ", table)

		if err := b.where(stmt.Where); err != nil {
			return Query{}, err
		}
	case statement.MethodCreate:
		columns := sortedColumns(stmt.Values)
		names := make([]string, 0, len(columns))
		params := make([]string, 0, len(columns))

		for _, column := range columns {
			names = append(names, quote(column))
			params = append(params, b.bind(stmt.Values[column]))
		}

		b.write("INSERT INTO ", table, " (", strings.Join(names, ", "), ") VALUES (", strings.Join(params, ", "), ")")
		b.write(" RETURNING *")
	case statement.MethodUpdate:
		columns := sortedColumns(stmt.Values)
		sets := make([]string, 0, len(columns))

		for _, column := range columns {
			sets = append(sets, quote(column)+" = "+b.bind(stmt.Values[column]))
		}

		b.write("UPDATE ", table, " SET ", strings.Join(sets, ", "))

		if err := b.where(stmt.Where); err != nil {
			return Query{}, err
		}

		b.write(" RETURNING *")
	case statement.MethodDestroy:
		b.write("DELETE FROM ", table)

		if err := b.where(stmt.Where); err != nil {
			return Query{}, err
		}

		b.write(" RETURNING *")
	}

	return b.query(), nil
}

func parseStatementResult(stmt statement.Statement, raw any) (statement.Result, error) {
	var rows Rows

	switch value := raw.(type) {
	case Rows:
		rows = value
	case *Rows:
		if value == nil {
			return statement.Result{}, fmt.Errorf("%w: nil rows", ErrUnexpectedResult)
		}

		rows = *value
	default:
		return statement.Result{}, fmt.Errorf("%w: %T", ErrUnexpectedResult, raw)
	}

	if stmt.Method == statement.MethodCount {
		if len(rows.Records) != 1 {
			return statement.Result{}, fmt.Errorf("%w: count returned %d rows", ErrUnexpectedResult, len(rows.Records))
		}

		count, ok := rows.Records[0]["count"].(int64)
		if !ok {
			return statement.Result{}, fmt.Errorf("%w: count %T", ErrUnexpectedResult, rows.Records[0]["count"])
		}

		return statement.Result{Records: nil, Affected: count}, nil
	}

	records := make([]statement.Record, 0, len(rows.Records))
	for _, row := range rows.Records {
		records = append(records, statement.Record(row))
	}

	affected := rows.Tag.RowsAffected()
	if stmt.Method == statement.MethodFind {
		affected = int64(len(records))
	}

	return statement.Result{Records: records, Affected: affected}, nil
}

func footprint(err error) driver.Footprint {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return driver.Catchall()
	}

	if pgErr.ConstraintName == "" {
		return driver.NotUnique()
	}

	return driver.NotUnique(pgErr.ConstraintName)
}
