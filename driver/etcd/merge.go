package etcd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.etcd.io/etcd/api/v3/etcdserverpb"
	etcd "go.etcd.io/etcd/client/v3"

	"github.com/tarantool/go-datastore/kvquery"
)

var (
	errPrefixMerge        = errors.New("merge cannot address a prefix")
	errUnexpectedResponse = errors.New("unexpected etcd response")
)

func hasMerge(q kvquery.Query) bool {
	for _, ops := range [][]kvquery.Operation{q.Then, q.Else} {
		for _, op := range ops {
			if op.Type == kvquery.OpMerge {
				return true
			}
		}
	}

	return false
}

// mergeKeys returns the sorted distinct keys merged by the query.
func mergeKeys(q kvquery.Query) ([]string, error) {
	var keys []string

	for _, ops := range [][]kvquery.Operation{q.Then, q.Else} {
		for _, op := range ops {
			if op.Type != kvquery.OpMerge {
				continue
			}

			if kvquery.IsPrefix(op.Key) {
				return nil, fmt.Errorf("%w: %q", errPrefixMerge, op.Key)
			}

			keys = append(keys, string(op.Key))
		}
	}

	slices.Sort(keys)

	return slices.Compact(keys), nil
}

// read returns the current values of the present keys.
func read(ctx context.Context, client Client, keys []string) (map[string]kvquery.KeyValue, error) {
	ops := make([]etcd.Op, 0, len(keys))
	for _, key := range keys {
		ops = append(ops, etcd.OpGet(key))
	}

	resp, err := client.Txn(ctx).Then(ops...).Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to read merged keys: %w", err)
	}

	current := make(map[string]kvquery.KeyValue, len(keys))

	for _, etcdResp := range (*etcdserverpb.TxnResponse)(resp).GetResponses() {
		for _, etcdKv := range etcdResp.GetResponseRange().GetKvs() {
			current[string(etcdKv.Key)] = kvquery.KeyValue{
				Key:         etcdKv.Key,
				Value:       etcdKv.Value,
				ModRevision: etcdKv.ModRevision,
			}
		}
	}

	return current, nil
}

// resolveMerges rewrites merge operations as puts of the merged value.
// A merge of an absent key becomes a get, which returns nothing.
func resolveMerges(ops []kvquery.Operation, current map[string]kvquery.KeyValue) (
	[]kvquery.Operation, map[int][]byte, error,
) {
	values := make(map[string][]byte, len(current))
	for key, kv := range current {
		values[key] = kv.Value
	}

	resolved := make([]kvquery.Operation, 0, len(ops))
	merged := make(map[int][]byte)

	for i, op := range ops {
		key := string(op.Key)

		switch op.Type {
		case kvquery.OpPut:
			values[key] = op.Value
		case kvquery.OpDelete:
			for stored := range values {
				if stored == key || (kvquery.IsPrefix(op.Key) && strings.HasPrefix(stored, key)) {
					delete(values, stored)
				}
			}
		case kvquery.OpMerge:
			stored, ok := values[key]
			if !ok {
				resolved = append(resolved, kvquery.Get(op.Key))
				continue
			}

			value, err := kvquery.MergeValues(stored, op.Value)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to merge %q: %w", key, err)
			}

			values[key] = value
			merged[i] = value
			resolved = append(resolved, kvquery.Put(op.Key, value))

			continue
		case kvquery.OpGet:
		}

		resolved = append(resolved, op)
	}

	return resolved, merged, nil
}

// executeMerge runs a query with merge operations as a nested transaction
// guarded by the revisions the merged values were read at. retry is true
// when a concurrent writer changed one of them.
func (d *Driver) executeMerge(ctx context.Context, client Client, cmps []etcd.Cmp, q kvquery.Query) (
	resp kvquery.Response, retry bool, err error, //nolint:nonamedreturns
) {
	keys, err := mergeKeys(q)
	if err != nil {
		return kvquery.Response{}, false, err
	}

	current, err := read(ctx, client, keys)
	if err != nil {
		return kvquery.Response{}, false, err
	}

	guards := make([]etcd.Cmp, 0, len(keys))

	for _, key := range keys {
		revision := int64(0)
		if kv, ok := current[key]; ok {
			revision = kv.ModRevision
		}

		guards = append(guards, etcd.Compare(etcd.ModRevision(key), "=", revision))
	}

	thenOps, thenMerged, err := resolveMerges(q.Then, current)
	if err != nil {
		return kvquery.Response{}, false, err
	}

	elseOps, elseMerged, err := resolveMerges(q.Else, current)
	if err != nil {
		return kvquery.Response{}, false, err
	}

	thenEtcdOps, err := operationsToEtcdOps(thenOps)
	if err != nil {
		return kvquery.Response{}, false, fmt.Errorf("failed to convert then operations: %w", err)
	}

	elseEtcdOps, err := operationsToEtcdOps(elseOps)
	if err != nil {
		return kvquery.Response{}, false, fmt.Errorf("failed to convert else operations: %w", err)
	}

	etcdResp, err := client.Txn(ctx).If(guards...).Then(etcd.OpTxn(cmps, thenEtcdOps, elseEtcdOps)).Commit()
	if err != nil {
		return kvquery.Response{}, false, fmt.Errorf("transaction failed: %w", err)
	}

	outer := (*etcdserverpb.TxnResponse)(etcdResp)
	if !outer.GetSucceeded() {
		return kvquery.Response{}, true, nil
	}

	if len(outer.GetResponses()) != 1 || outer.GetResponses()[0].GetResponseTxn() == nil {
		return kvquery.Response{}, false, errUnexpectedResponse
	}

	inner := outer.GetResponses()[0].GetResponseTxn()

	ops, merged := thenOps, thenMerged
	if !inner.GetSucceeded() {
		ops, merged = elseOps, elseMerged
	}

	return toResponse(inner, outer.GetHeader().GetRevision(), ops, merged), false, nil
}
