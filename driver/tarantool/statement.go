package tarantool

import (
	"errors"
	"fmt"

	"github.com/tarantool/go-datastore/statement"
)

// statementLua runs a statement against box.space. Writes touching several
// tuples run in one transaction unless a stream transaction is active.
//
// Arguments: space, method, criteria ({column, op, value} triples),
// values, limit, skip. Returns the affected records and their count.
const statementLua = `
local space_name, method, where, values, limit, skip = ...
local space = box.space[space_name]
if space == nil then
    box.error(box.error.NO_SUCH_SPACE, space_name)
end

local function tomap(tuple)
    return tuple:tomap({names_only = true})
end

local function match(map)
    for _, c in ipairs(where) do
        local v, op, want = map[c[1]], c[2], c[3]
        if op == '=' and v ~= want then return false end
        if op == '!=' and v == want then return false end
        if op == '>' and (v == nil or v <= want) then return false end
        if op == '<' and (v == nil or v >= want) then return false end
    end
    return true
end

local function primary_key(tuple)
    local key = {}
    for _, part in ipairs(space.index[0].parts) do
        table.insert(key, tuple[part.fieldno])
    end
    return key
end

local function matching()
    local rows = {}
    for _, tuple in space:pairs() do
        if match(tomap(tuple)) then
            table.insert(rows, tuple)
        end
    end
    return rows
end

local function run()
    if method == 'create' then
        return {tomap(space:insert(space:frommap(values)))}, 1
    end

    local rows = matching()

    if method == 'count' then
        return {}, #rows
    end

    local out = {}

    if method == 'find' then
        for i = skip + 1, #rows do
            if limit > 0 and #out >= limit then break end
            table.insert(out, tomap(rows[i]))
        end
        return out, #out
    end

    if method == 'update' then
        local ops = {}
        for name, value in pairs(values) do
            table.insert(ops, {'=', name, value})
        end
        for _, tuple in ipairs(rows) do
            table.insert(out, tomap(space:update(primary_key(tuple), ops)))
        end
        return out, #out
    end

    if method == 'destroy' then
        for _, tuple in ipairs(rows) do
            table.insert(out, tomap(space:delete(primary_key(tuple))))
        end
        return out, #out
    end

    box.error(box.error.PROC_LUA, 'unknown statement method ' .. tostring(method))
end

if method == 'find' or method == 'count' or box.is_in_txn() then
    return run()
end

return box.atomic(run)
`

var (
	// ErrUnexpectedResponse is returned when the response from tarantool has unexpected format.
	ErrUnexpectedResponse = errors.New("unexpected response from tarantool")

	//nolint: gochecknoglobals
	luaOperators = map[statement.Op]string{
		statement.OpEqual:    "=",
		statement.OpNotEqual: "!=",
		statement.OpGreater:  ">",
		statement.OpLess:     "<",
	}
)

// compileStatement turns a statement into an evaluated Lua query.
func compileStatement(stmt statement.Statement) (Query, error) {
	if err := stmt.Validate(); err != nil {
		return Query{}, err //nolint:wrapcheck
	}

	where := make([][]any, 0, len(stmt.Where))
	for _, criterion := range stmt.Where {
		op, ok := luaOperators[criterion.Op]
		if !ok {
			return Query{}, fmt.Errorf("%w: operator %s", statement.ErrUnsupported, criterion.Op)
		}

		where = append(where, []any{criterion.Column, op, criterion.Value})
	}

	values := map[string]any{}
	for column, value := range stmt.Values {
		values[column] = value
	}

	return Eval(statementLua, stmt.Table, string(stmt.Method), where, values, stmt.Limit, stmt.Skip), nil
}

// parseStatementResult converts the two values returned by statementLua.
func parseStatementResult(stmt statement.Statement, raw any) (statement.Result, error) {
	values, ok := raw.([]any)
	if !ok || len(values) != 2 { //nolint:mnd
		return statement.Result{}, fmt.Errorf("%w: statement result %T", ErrUnexpectedResponse, raw)
	}

	affected, ok := toInt64(values[1])
	if !ok {
		return statement.Result{}, fmt.Errorf("%w: affected count %T", ErrUnexpectedResponse, values[1])
	}

	rows, ok := values[0].([]any)
	if !ok && values[0] != nil {
		return statement.Result{}, fmt.Errorf("%w: records %T", ErrUnexpectedResponse, values[0])
	}

	records := make([]statement.Record, 0, len(rows))

	for _, row := range rows {
		record, ok := toRecord(row)
		if !ok {
			return statement.Result{}, fmt.Errorf("%w: record %T", ErrUnexpectedResponse, row)
		}

		if stmt.Method == statement.MethodFind {
			record = statement.Project(record, stmt.Columns)
		}

		records = append(records, record)
	}

	if stmt.Method == statement.MethodCount {
		records = nil
	}

	return statement.Result{Records: records, Affected: affected}, nil
}

func toRecord(value any) (statement.Record, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		record := make(statement.Record, len(m))

		for key, val := range m {
			name, ok := key.(string)
			if !ok {
				return nil, false
			}

			record[name] = val
		}

		return record, true
	default:
		return nil, false
	}
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true //nolint:gosec
	default:
		return 0, false
	}
}
