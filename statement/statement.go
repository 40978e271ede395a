// Package statement describes structured, driver-independent statements.
// Drivers compile a Statement into their native query form.
package statement

import (
	"errors"
	"fmt"
)

// Method is the kind of statement.
type Method string

const (
	// MethodFind reads records.
	MethodFind Method = "find"
	// MethodCount counts records.
	MethodCount Method = "count"
	// MethodCreate inserts a single record.
	MethodCreate Method = "create"
	// MethodUpdate modifies matching records.
	MethodUpdate Method = "update"
	// MethodDestroy deletes matching records.
	MethodDestroy Method = "destroy"
)

// Op is a comparison operator used in criteria.
type Op int

const (
	// OpEqual matches equal values.
	OpEqual Op = iota
	// OpNotEqual matches values that differ.
	OpNotEqual
	// OpGreater matches greater values.
	OpGreater
	// OpLess matches lesser values.
	OpLess
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "Equal"
	case OpNotEqual:
		return "NotEqual"
	case OpGreater:
		return "Greater"
	case OpLess:
		return "Less"
	default:
		return "Unknown"
	}
}

// Record is a single row, keyed by column name.
type Record map[string]any

// Criterion restricts a statement to records whose column compares with Value.
type Criterion struct {
	Column string
	Op     Op
	Value  any
}

// Eq returns an equality criterion.
func Eq(column string, value any) Criterion {
	return Criterion{Column: column, Op: OpEqual, Value: value}
}

// Ne returns an inequality criterion.
func Ne(column string, value any) Criterion {
	return Criterion{Column: column, Op: OpNotEqual, Value: value}
}

// Gt returns a greater-than criterion.
func Gt(column string, value any) Criterion {
	return Criterion{Column: column, Op: OpGreater, Value: value}
}

// Lt returns a less-than criterion.
func Lt(column string, value any) Criterion {
	return Criterion{Column: column, Op: OpLess, Value: value}
}

// Statement is a structured description of a single statement.
type Statement struct {
	// Method is the kind of statement.
	Method Method
	// Table is the table, space, or key namespace the statement targets.
	Table string
	// Where holds criteria joined with AND.
	Where []Criterion
	// Values holds the new values for create and update.
	Values Record
	// Columns restricts the returned columns of find, empty means all.
	Columns []string
	// Limit caps the number of returned records, zero means no limit.
	Limit int
	// Skip drops the first records of the result.
	Skip int
}

// Result is the parsed outcome of a statement.
type Result struct {
	// Records holds returned records for find, create and update.
	Records []Record
	// Affected is the number of records matched, written or counted.
	Affected int64
}

var (
	// ErrInvalid is returned for statements that cannot be compiled by any driver.
	ErrInvalid = errors.New("invalid statement")
	// ErrUnsupported is returned by drivers for valid statements they cannot express.
	ErrUnsupported = errors.New("unsupported statement")
)

// Validate checks the driver-independent shape of the statement.
func (s Statement) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("%w: table is required", ErrInvalid)
	}

	switch s.Method {
	case MethodFind, MethodCount, MethodDestroy:
	case MethodCreate:
		if len(s.Values) == 0 {
			return fmt.Errorf("%w: create requires values", ErrInvalid)
		}

		if len(s.Where) != 0 {
			return fmt.Errorf("%w: create does not accept criteria", ErrInvalid)
		}
	case MethodUpdate:
		if len(s.Values) == 0 {
			return fmt.Errorf("%w: update requires values", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown method %q", ErrInvalid, s.Method)
	}

	if s.Limit < 0 || s.Skip < 0 {
		return fmt.Errorf("%w: limit and skip must not be negative", ErrInvalid)
	}

	for _, criterion := range s.Where {
		if criterion.Column == "" {
			return fmt.Errorf("%w: criterion without column", ErrInvalid)
		}
	}

	return nil
}

// Lookup returns the value of the first equality criterion on column.
func (s Statement) Lookup(column string) (any, bool) {
	for _, criterion := range s.Where {
		if criterion.Column == column && criterion.Op == OpEqual {
			return criterion.Value, true
		}
	}

	return nil, false
}

// Project returns a copy of the record restricted to columns.
// An empty column list returns the record itself.
func Project(record Record, columns []string) Record {
	if len(columns) == 0 {
		return record
	}

	out := make(Record, len(columns))

	for _, column := range columns {
		if value, ok := record[column]; ok {
			out[column] = value
		}
	}

	return out
}

// Window applies skip and limit to records.
func Window(records []Record, skip, limit int) []Record {
	if skip >= len(records) {
		return []Record{}
	}

	records = records[skip:]

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	return records
}
