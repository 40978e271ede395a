package etcd //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarantool/go-datastore/kvquery"
)

func TestOperationToEtcdOp(t *testing.T) {
	t.Parallel()

	get, err := operationToEtcdOp(kvquery.Get([]byte("/users/1")))
	require.NoError(t, err)
	assert.True(t, get.IsGet())
	assert.Equal(t, []byte("/users/1"), get.KeyBytes())
	assert.Empty(t, get.RangeBytes())

	prefix, err := operationToEtcdOp(kvquery.Get([]byte("/users/")))
	require.NoError(t, err)
	assert.True(t, prefix.IsGet())
	assert.NotEmpty(t, prefix.RangeBytes())

	put, err := operationToEtcdOp(kvquery.Put([]byte("/users/1"), []byte("value")))
	require.NoError(t, err)
	assert.True(t, put.IsPut())
	assert.Equal(t, []byte("value"), put.ValueBytes())

	del, err := operationToEtcdOp(kvquery.Delete([]byte("/users/")))
	require.NoError(t, err)
	assert.True(t, del.IsDelete())
	assert.NotEmpty(t, del.RangeBytes())
}

func TestOperationToEtcdOp_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := operationToEtcdOp(kvquery.Merge([]byte("/users/1"), nil))
	require.ErrorIs(t, err, errUnsupportedOperationType)

	_, err = operationToEtcdOp(kvquery.Operation{Type: kvquery.OpType(42), Key: []byte("k"), Value: nil})
	require.ErrorIs(t, err, errUnsupportedOperationType)
}

func TestOperationsToEtcdOps(t *testing.T) {
	t.Parallel()

	ops, err := operationsToEtcdOps(nil)
	require.NoError(t, err)
	assert.Empty(t, ops)

	ops, err = operationsToEtcdOps([]kvquery.Operation{
		kvquery.Get([]byte("key1")),
		kvquery.Put([]byte("key2"), []byte("value2")),
		kvquery.Delete([]byte("key3")),
	})
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.True(t, ops[0].IsGet())
	assert.True(t, ops[1].IsPut())
	assert.True(t, ops[2].IsDelete())
}
