package datastore

import (
	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/driver"
)

// Verdict is the outcome of probing an adapter for a datastore.
type Verdict struct {
	// Err is the structural error every operation fails with, or nil.
	// When set, Tiers is empty.
	Err error
	// Tiers is the capability classification of the datastore's driver.
	Tiers capability.Tiers
}

// Probe inspects the adapter's reference to the named datastore and
// classifies its driver. It never calls the driver.
func Probe(name string, a adapter.Adapter) Verdict {
	entry, status := adapter.Lookup(a, name)

	switch status {
	case adapter.LookupNoInstances:
		return Verdict{Err: errNoInstances(name), Tiers: capability.Tiers{}}
	case adapter.LookupMissing:
		return Verdict{Err: errMissingReference(name), Tiers: capability.Tiers{}}
	case adapter.LookupIncomplete:
		return Verdict{Err: errIncompleteReference(name, entry.Missing()), Tiers: capability.Tiers{}}
	case adapter.LookupFound:
	}

	return Verdict{Err: nil, Tiers: Grant(entry.Driver)}
}

// Grant classifies the declared capabilities of a driver, keeping only
// the tiers whose contract the driver value actually implements.
func Grant(drv driver.Driver) capability.Tiers {
	if drv == nil {
		return capability.Tiers{}
	}

	declared := capability.Classify(drv.Capabilities())

	_, connectable := drv.(driver.Connectable)
	_, queryable := drv.(driver.Queryable)
	_, transactional := drv.(driver.Transactional)

	var out capability.Tiers

	out.Connectable = declared.Connectable && connectable
	out.Queryable = out.Connectable && declared.Queryable && queryable
	out.Transactional = out.Queryable && declared.Transactional && transactional

	return out
}
