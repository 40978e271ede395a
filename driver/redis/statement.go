package redis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/statement"
)

// statementLua runs a statement against the records of a table. Table
// "users" keeps its record ids in the set "{users}" and each record in
// the hash "{users}:<id>", so one table lives in one cluster slot.
//
// KEYS: table set. ARGV: method, criteria as JSON ({column, op, value}
// triples), values as JSON, limit, skip, id column.
// Returns {"records": [...], "affected": n} encoded as JSON.
const statementLua = `
local index = KEYS[1]
local method = ARGV[1]
local where = cjson.decode(ARGV[2])
local values = cjson.decode(ARGV[3])
local limit = tonumber(ARGV[4])
local skip = tonumber(ARGV[5])
local id_column = ARGV[6]

local function record_key(id)
    return index .. ':' .. id
end

local function load(id)
    local flat = redis.call('HGETALL', record_key(id))
    local record = {}
    for i = 1, #flat, 2 do
        record[flat[i]] = flat[i + 1]
    end
    return record
end

local function compare(a, b)
    local na, nb = tonumber(a), tonumber(b)
    if na ~= nil and nb ~= nil then
        a, b = na, nb
    else
        a, b = tostring(a), tostring(b)
    end
    if a < b then return -1 end
    if a > b then return 1 end
    return 0
end

local function match(record)
    for _, c in ipairs(where) do
        local v, op, want = record[c[1]], c[2], c[3]
        if want == cjson.null then want = nil end
        if op == '=' then
            if want == nil then
                if v ~= nil then return false end
            elseif v == nil or compare(v, want) ~= 0 then
                return false
            end
        elseif op == '!=' then
            if want == nil then
                if v == nil then return false end
            elseif v ~= nil and compare(v, want) == 0 then
                return false
            end
        elseif op == '>' then
            if v == nil or want == nil or compare(v, want) <= 0 then return false end
        elseif op == '<' then
            if v == nil or want == nil or compare(v, want) >= 0 then return false end
        else
            return false
        end
    end
    return true
end

local function matching()
    local ids = redis.call('SMEMBERS', index)
    table.sort(ids)
    local rows = {}
    for _, id in ipairs(ids) do
        local record = load(id)
        if match(record) then
            table.insert(rows, {id = id, record = record})
        end
    end
    return rows
end

local function apply(id, changes)
    local set, del = {}, {}
    for name, value in pairs(changes) do
        if value == cjson.null then
            table.insert(del, name)
        else
            table.insert(set, name)
            table.insert(set, tostring(value))
        end
    end
    if #set > 0 then redis.call('HSET', record_key(id), unpack(set)) end
    if #del > 0 then redis.call('HDEL', record_key(id), unpack(del)) end
end

local out = {}

if method == 'create' then
    local id = values[id_column]
    if id == nil or id == cjson.null then
        return redis.error_reply('ERR record has no ' .. id_column)
    end
    id = tostring(id)
    if redis.call('SADD', index, id) == 0 then
        return redis.error_reply('DUPLICATE ' .. id_column)
    end
    apply(id, values)
    table.insert(out, load(id))
    return cjson.encode({records = out, affected = 1})
end

if method == 'update' and values[id_column] ~= nil then
    return redis.error_reply('ERR ' .. id_column .. ' cannot be updated')
end

local rows = matching()

if method == 'count' then
    return cjson.encode({records = out, affected = #rows})
end

if method == 'find' then
    for i = skip + 1, #rows do
        if limit > 0 and #out >= limit then break end
        table.insert(out, rows[i].record)
    end
elseif method == 'update' then
    for _, row in ipairs(rows) do
        apply(row.id, values)
        table.insert(out, load(row.id))
    end
elseif method == 'destroy' then
    for _, row in ipairs(rows) do
        redis.call('DEL', record_key(row.id))
        redis.call('SREM', index, row.id)
        table.insert(out, row.record)
    end
else
    return redis.error_reply('ERR unknown statement method ' .. tostring(method))
end

return cjson.encode({records = out, affected = #out})
`

const duplicatePrefix = "DUPLICATE "

var (
	// ErrUnexpectedResult is returned when the raw result has an unexpected format.
	ErrUnexpectedResult = errors.New("unexpected redis result")

	//nolint: gochecknoglobals
	luaOperators = map[statement.Op]string{
		statement.OpEqual:    "=",
		statement.OpNotEqual: "!=",
		statement.OpGreater:  ">",
		statement.OpLess:     "<",
	}
)

// TableKey returns the key of the set holding the record ids of table.
func TableKey(table string) string {
	return "{" + table + "}"
}

// RecordKey returns the key of the hash holding a record of table.
func RecordKey(table, id string) string {
	return TableKey(table) + ":" + id
}

func compileStatement(stmt statement.Statement, idColumn string) (Script, error) {
	if err := stmt.Validate(); err != nil {
		return Script{}, err //nolint:wrapcheck
	}

	where := make([][]any, 0, len(stmt.Where))
	for _, criterion := range stmt.Where {
		op, ok := luaOperators[criterion.Op]
		if !ok {
			return Script{}, fmt.Errorf("%w: operator %s", statement.ErrUnsupported, criterion.Op)
		}

		where = append(where, []any{criterion.Column, op, criterion.Value})
	}

	whereJSON, err := json.Marshal(where)
	if err != nil {
		return Script{}, fmt.Errorf("%w: criteria: %w", statement.ErrUnsupported, err)
	}

	values := map[string]any{}
	for column, value := range stmt.Values {
		values[column] = value
	}

	valuesJSON, err := json.Marshal(values)
	if err != nil {
		return Script{}, fmt.Errorf("%w: values: %w", statement.ErrUnsupported, err)
	}

	return Eval(statementLua, []string{TableKey(stmt.Table)},
		string(stmt.Method), string(whereJSON), string(valuesJSON), stmt.Limit, stmt.Skip, idColumn), nil
}

type scriptResult struct {
	Records  json.RawMessage `json:"records"`
	Affected int64           `json:"affected"`
}

func parseStatementResult(stmt statement.Statement, raw any) (statement.Result, error) {
	encoded, ok := raw.(string)
	if !ok {
		return statement.Result{}, fmt.Errorf("%w: %T", ErrUnexpectedResult, raw)
	}

	var result scriptResult
	if err := json.Unmarshal([]byte(encoded), &result); err != nil {
		return statement.Result{}, fmt.Errorf("%w: %w", ErrUnexpectedResult, err)
	}

	// An empty Lua table encodes as an object.
	var rows []map[string]any
	if trimmed := bytes.TrimSpace(result.Records); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return statement.Result{}, fmt.Errorf("%w: records: %w", ErrUnexpectedResult, err)
		}
	}

	if stmt.Method == statement.MethodCount {
		return statement.Result{Records: nil, Affected: result.Affected}, nil
	}

	records := make([]statement.Record, 0, len(rows))

	for _, row := range rows {
		record := statement.Record(row)
		if stmt.Method == statement.MethodFind {
			record = statement.Project(record, stmt.Columns)
		}

		records = append(records, record)
	}

	return statement.Result{Records: records, Affected: result.Affected}, nil
}

func footprint(err error) driver.Footprint {
	var redisErr redis.Error
	if !errors.As(err, &redisErr) {
		return driver.Catchall()
	}

	msg := redisErr.Error()
	if !strings.HasPrefix(msg, duplicatePrefix) {
		return driver.Catchall()
	}

	return driver.NotUnique(strings.TrimPrefix(msg, duplicatePrefix))
}
