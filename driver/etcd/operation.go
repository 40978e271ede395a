package etcd

import (
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/tarantool/go-datastore/kvquery"
)

// operationsToEtcdOps converts operations to etcd operations.
// Merge operations must be resolved into puts beforehand.
func operationsToEtcdOps(ops []kvquery.Operation) ([]etcd.Op, error) {
	etcdOps := make([]etcd.Op, 0, len(ops))
	for _, op := range ops {
		etcdOp, err := operationToEtcdOp(op)
		if err != nil {
			return nil, err
		}

		etcdOps = append(etcdOps, etcdOp)
	}

	return etcdOps, nil
}

// operationToEtcdOp converts an operation to an etcd operation.
func operationToEtcdOp(op kvquery.Operation) (etcd.Op, error) {
	key := string(op.Key)

	var opts []etcd.OpOption
	if kvquery.IsPrefix(op.Key) {
		opts = append(opts, etcd.WithPrefix())
	}

	switch op.Type {
	case kvquery.OpGet:
		return etcd.OpGet(key, opts...), nil
	case kvquery.OpPut:
		return etcd.OpPut(key, string(op.Value)), nil
	case kvquery.OpDelete:
		opts = append(opts, etcd.WithPrevKV())
		return etcd.OpDelete(key, opts...), nil
	case kvquery.OpMerge:
		return etcd.Op{}, fmt.Errorf("%w: unresolved merge of %q", errUnsupportedOperationType, key)
	default:
		return etcd.Op{}, fmt.Errorf("%w: %v", errUnsupportedOperationType, op.Type)
	}
}
