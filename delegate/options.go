// Package delegate implements the helpers that run datastore operations
// against a driver: leasing connections, sending statements and native
// queries, and running transactions.
package delegate

import (
	"context"

	"github.com/tarantool/go-option"

	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/statement"
)

// During is a routine run with a leased connection, or inside a transaction.
type During func(ctx context.Context, conn driver.Connection) (any, error)

// LeaseOptions is the call-options record of a lease-connection call.
type LeaseOptions struct {
	Datastore string
	Adapter   adapter.Adapter
	During    During
	Meta      driver.Meta
}

// StatementOptions is the call-options record of a send-statement call.
type StatementOptions struct {
	Datastore       string
	Adapter         adapter.Adapter
	Statement       statement.Statement
	Meta            driver.Meta
	UsingConnection option.Generic[driver.Connection]
}

// NativeQueryOptions is the call-options record of a send-native-query call.
type NativeQueryOptions struct {
	Datastore       string
	Adapter         adapter.Adapter
	NativeQuery     driver.NativeQuery
	Meta            driver.Meta
	UsingConnection option.Generic[driver.Connection]
}

// TransactionOptions is the call-options record of a transaction call.
type TransactionOptions struct {
	Datastore string
	Adapter   adapter.Adapter
	During    During
	Meta      driver.Meta
}
