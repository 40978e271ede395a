package kvquery

import (
	"fmt"

	"github.com/tarantool/go-datastore/statement"
)

// Layout maps tables and record ids onto keys:
// Prefix + table + "/" + id.
type Layout struct {
	// Prefix is prepended to every key.
	Prefix string
	// IDColumn is the column holding the record id.
	IDColumn string
}

// DefaultLayout returns the layout used when a driver is not configured otherwise.
func DefaultLayout() Layout {
	return Layout{Prefix: "/", IDColumn: "id"}
}

// TableKey returns the prefix key of a table.
func (l Layout) TableKey(table string) []byte {
	return []byte(l.Prefix + table + "/")
}

// RecordKey returns the key of a record.
func (l Layout) RecordKey(table string, id any) []byte {
	return []byte(fmt.Sprintf("%s%s/%v", l.Prefix, table, id))
}

// onlyID reports whether the statement has no criteria other than the id equality.
func (l Layout) onlyID(stmt statement.Statement) bool {
	for _, criterion := range stmt.Where {
		if criterion.Column != l.IDColumn || criterion.Op != statement.OpEqual {
			return false
		}
	}

	return true
}

// Compile turns a statement into a key-value query.
func (l Layout) Compile(stmt statement.Statement) (Query, error) {
	if err := stmt.Validate(); err != nil {
		return Query{}, err
	}

	id, hasID := stmt.Lookup(l.IDColumn)

	switch stmt.Method {
	case statement.MethodFind, statement.MethodCount:
		key := l.TableKey(stmt.Table)
		if hasID {
			key = l.RecordKey(stmt.Table, id)
		}

		return Query{If: nil, Then: []Operation{Get(key)}, Else: nil, Strict: false}, nil

	case statement.MethodCreate:
		id, ok := stmt.Values[l.IDColumn]
		if !ok {
			return Query{}, fmt.Errorf("%w: create requires a value for %q", statement.ErrInvalid, l.IDColumn)
		}

		value, err := Encode(stmt.Values)
		if err != nil {
			return Query{}, err
		}

		key := l.RecordKey(stmt.Table, id)

		return Query{
			If:     []Predicate{VersionEqual(key, 0)},
			Then:   []Operation{Put(key, value)},
			Else:   nil,
			Strict: true,
		}, nil

	case statement.MethodUpdate:
		if !hasID || !l.onlyID(stmt) {
			return Query{}, fmt.Errorf("%w: key-value update must be addressed by %q only",
				statement.ErrUnsupported, l.IDColumn)
		}

		if newID, ok := stmt.Values[l.IDColumn]; ok && fmt.Sprint(newID) != fmt.Sprint(id) {
			return Query{}, fmt.Errorf("%w: key-value update cannot change %q",
				statement.ErrUnsupported, l.IDColumn)
		}

		patch, err := Encode(stmt.Values)
		if err != nil {
			return Query{}, err
		}

		key := l.RecordKey(stmt.Table, id)

		return Query{
			If:     []Predicate{VersionNotEqual(key, 0)},
			Then:   []Operation{Merge(key, patch)},
			Else:   nil,
			Strict: false,
		}, nil

	case statement.MethodDestroy:
		if !l.onlyID(stmt) {
			return Query{}, fmt.Errorf("%w: key-value destroy must be addressed by %q only",
				statement.ErrUnsupported, l.IDColumn)
		}

		key := l.TableKey(stmt.Table)
		if hasID {
			key = l.RecordKey(stmt.Table, id)
		}

		return Query{If: nil, Then: []Operation{Delete(key)}, Else: nil, Strict: false}, nil
	}

	return Query{}, fmt.Errorf("%w: unknown method %q", statement.ErrInvalid, stmt.Method)
}

// Parse converts the response of a compiled statement into a result.
func (l Layout) Parse(stmt statement.Statement, raw any) (statement.Result, error) {
	var resp Response

	switch value := raw.(type) {
	case Response:
		resp = value
	case *Response:
		if value == nil {
			return statement.Result{}, fmt.Errorf("%w: nil response", ErrUnexpectedResult)
		}

		resp = *value
	default:
		return statement.Result{}, fmt.Errorf("%w: %T", ErrUnexpectedResult, raw)
	}

	if !resp.Succeeded {
		return statement.Result{Records: []statement.Record{}, Affected: 0}, nil
	}

	if stmt.Method == statement.MethodCreate {
		return statement.Result{Records: []statement.Record{stmt.Values}, Affected: 1}, nil
	}

	if len(resp.Results) == 0 {
		return statement.Result{}, fmt.Errorf("%w: no operation results", ErrUnexpectedResult)
	}

	records, err := decodeAll(resp.Results[0])
	if err != nil {
		return statement.Result{}, err
	}

	switch stmt.Method {
	case statement.MethodFind:
		records = filter(records, stmt.Where)
		records = statement.Window(records, stmt.Skip, stmt.Limit)

		for i, record := range records {
			records[i] = statement.Project(record, stmt.Columns)
		}

		return statement.Result{Records: records, Affected: int64(len(records))}, nil

	case statement.MethodCount:
		return statement.Result{Records: nil, Affected: int64(len(filter(records, stmt.Where)))}, nil

	default:
		return statement.Result{Records: records, Affected: int64(len(records))}, nil
	}
}

func decodeAll(values []KeyValue) ([]statement.Record, error) {
	records := make([]statement.Record, 0, len(values))

	for _, kv := range values {
		record, err := decode(kv.Value)
		if err != nil {
			return nil, DecodingError{Key: kv.Key, Err: err}
		}

		records = append(records, record)
	}

	return records, nil
}

func filter(records []statement.Record, where []statement.Criterion) []statement.Record {
	out := records[:0]

	for _, record := range records {
		if statement.Match(record, where) {
			out = append(out, record)
		}
	}

	return out
}
