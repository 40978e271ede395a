package etcd

import (
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/tarantool/go-datastore/kvquery"
)

// predicatesToCmps converts a predicate list to an etcd comparison list.
func predicatesToCmps(predicates []kvquery.Predicate) ([]etcd.Cmp, error) {
	convertedPredicates := make([]etcd.Cmp, 0, len(predicates))
	for _, pred := range predicates {
		convertedPredicate, err := predicateToCmp(pred)
		if err != nil {
			return nil, err
		}

		convertedPredicates = append(convertedPredicates, convertedPredicate)
	}

	return convertedPredicates, nil
}

// predicateToCmp converts a predicate to an etcd comparison.
func predicateToCmp(pred kvquery.Predicate) (etcd.Cmp, error) {
	switch pred.Target {
	case kvquery.TargetValue:
		return valuePredicateToCmp(pred)
	case kvquery.TargetVersion:
		return versionPredicateToCmp(pred)
	default:
		return etcd.Cmp{}, fmt.Errorf("%w: %v", errUnsupportedPredicateTarget, pred.Target)
	}
}

// valuePredicateToCmp converts a value predicate to an etcd comparison.
func valuePredicateToCmp(pred kvquery.Predicate) (etcd.Cmp, error) {
	key := string(pred.Key)

	value, ok := pred.Value.([]byte)
	if !ok {
		return etcd.Cmp{}, errValuePredicateRequiresBytes
	}

	switch pred.Compare {
	case kvquery.CompareEqual:
		return etcd.Compare(etcd.Value(key), "=", string(value)), nil
	case kvquery.CompareNotEqual:
		return etcd.Compare(etcd.Value(key), "!=", string(value)), nil
	case kvquery.CompareGreater, kvquery.CompareLess:
		return etcd.Cmp{}, fmt.Errorf("%w: %v", errUnsupportedValueOperation, pred.Compare)
	default:
		return etcd.Cmp{}, fmt.Errorf("%w: %v", errUnsupportedValueOperation, pred.Compare)
	}
}

// versionPredicateToCmp converts a version predicate to an etcd comparison.
func versionPredicateToCmp(pred kvquery.Predicate) (etcd.Cmp, error) {
	key := string(pred.Key)

	version, ok := pred.Value.(int64)
	if !ok {
		return etcd.Cmp{}, errVersionPredicateRequiresInt
	}

	switch pred.Compare {
	case kvquery.CompareEqual:
		return etcd.Compare(etcd.ModRevision(key), "=", version), nil
	case kvquery.CompareNotEqual:
		return etcd.Compare(etcd.ModRevision(key), "!=", version), nil
	case kvquery.CompareGreater:
		return etcd.Compare(etcd.ModRevision(key), ">", version), nil
	case kvquery.CompareLess:
		return etcd.Compare(etcd.ModRevision(key), "<", version), nil
	default:
		return etcd.Cmp{}, fmt.Errorf("%w: %v", errUnsupportedVersionOperation, pred.Compare)
	}
}
