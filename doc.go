// Package datastore negotiates what a storage adapter can do for a named
// datastore and exposes a uniform handle over it.
//
// Build checks that the adapter implements a compatible adapter API,
// probes the adapter for direct access to the datastore's manager and
// driver, and classifies the driver into cumulative capability tiers
// (connectable, queryable, transactional). The returned Datastore offers
// four operations: LeaseConnection, SendStatement, SendNativeQuery and
// Transaction. Each either delegates to the driver or fails with an
// error matching ErrNotSupported.
//
// See the [github.com/tarantool/go-datastore/driver] package for the
// contracts drivers implement.
package datastore
