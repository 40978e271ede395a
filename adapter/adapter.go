// Package adapter defines what a storage adapter exposes to the datastore
// layer: its identity, its API version and, optionally, per-datastore
// access to the live manager and driver.
package adapter

import (
	"github.com/tarantool/go-datastore/driver"
)

// Adapter is the minimal contract of a storage adapter.
type Adapter interface {
	// Identity returns the adapter name, e.g. "memory" or "postgres".
	Identity() string
	// APIVersion returns the semantic version of the adapter API the adapter implements.
	APIVersion() string
}

// InstanceProvider is implemented by adapters that give direct access to
// their registered datastore instances.
type InstanceProvider interface {
	// Datastores returns the registered instances keyed by datastore name.
	// A nil map means the adapter does not expose its instances.
	// Implementations return nil when called on a nil receiver.
	Datastores() map[string]Entry
}

// Entry is what an adapter holds for one registered datastore.
// It is usable only when Manager, Driver and Config are all set.
type Entry struct {
	// Manager is the live resource pool.
	Manager driver.Manager
	// Driver is the driver the manager was created with.
	Driver driver.Driver
	// Config echoes the adapter-specific settings of the datastore.
	Config map[string]any
}

// Missing returns the names of the entry fields that are not set.
func (e Entry) Missing() []string {
	var missing []string

	if e.Manager == nil {
		missing = append(missing, "manager")
	}

	if e.Driver == nil {
		missing = append(missing, "driver")
	}

	if e.Config == nil {
		missing = append(missing, "config")
	}

	return missing
}

// Complete reports whether all entry fields are set.
func (e Entry) Complete() bool {
	return len(e.Missing()) == 0
}

// LookupStatus tells why Lookup did or did not find a usable entry.
type LookupStatus int

const (
	// LookupFound means a complete entry was found.
	LookupFound LookupStatus = iota
	// LookupNoInstances means the adapter does not expose instances at all.
	LookupNoInstances
	// LookupMissing means the adapter has no entry for the name.
	LookupMissing
	// LookupIncomplete means the entry lacks some of its fields.
	LookupIncomplete
)

// Lookup resolves the entry of the named datastore.
func Lookup(a Adapter, name string) (Entry, LookupStatus) {
	provider, ok := a.(InstanceProvider)
	if !ok {
		return Entry{}, LookupNoInstances
	}

	instances := provider.Datastores()
	if instances == nil {
		return Entry{}, LookupNoInstances
	}

	entry, ok := instances[name]
	switch {
	case !ok:
		return Entry{}, LookupMissing
	case !entry.Complete():
		return entry, LookupIncomplete
	default:
		return entry, LookupFound
	}
}
