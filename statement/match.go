package statement

import (
	"cmp"
	"fmt"
	"reflect"
)

// Match reports whether the record satisfies every criterion.
// Values of different numeric types are compared as numbers.
func Match(record Record, where []Criterion) bool {
	for _, criterion := range where {
		value, exists := record[criterion.Column]

		switch criterion.Op {
		case OpEqual:
			if !exists || !equal(value, criterion.Value) {
				return false
			}
		case OpNotEqual:
			if exists && equal(value, criterion.Value) {
				return false
			}
		case OpGreater:
			if !exists || compare(value, criterion.Value) <= 0 {
				return false
			}
		case OpLess:
			if !exists || compare(value, criterion.Value) >= 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func equal(left, right any) bool {
	if lf, ok := number(left); ok {
		if rf, ok := number(right); ok {
			return lf == rf
		}
	}

	return reflect.DeepEqual(left, right)
}

// compare orders numbers numerically and everything else by its
// formatted representation. Incomparable pairs compare as equal.
func compare(left, right any) int {
	if lf, ok := number(left); ok {
		if rf, ok := number(right); ok {
			return cmp.Compare(lf, rf)
		}

		return 0
	}

	ls, lok := left.(string)
	rs, rok := right.(string)

	if lok && rok {
		return cmp.Compare(ls, rs)
	}

	return cmp.Compare(fmt.Sprint(left), fmt.Sprint(right))
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
