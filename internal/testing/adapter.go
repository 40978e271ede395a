package testing

import (
	"github.com/tarantool/go-datastore/adapter"
)

// Adapter is an adapter that does not expose its datastores.
type Adapter struct {
	Name    string
	Version string
}

// NewAdapter returns an adapter declaring the given API version.
func NewAdapter(version string) *Adapter {
	return &Adapter{Name: "fake", Version: version}
}

// Identity returns the adapter name.
func (a *Adapter) Identity() string {
	return a.Name
}

// APIVersion returns the declared API version.
func (a *Adapter) APIVersion() string {
	return a.Version
}

// ProviderAdapter is an adapter exposing a fixed datastores mapping,
// which may be nil.
type ProviderAdapter struct {
	Adapter

	Entries map[string]adapter.Entry
}

// NewProviderAdapter returns an adapter exposing entries.
func NewProviderAdapter(version string, entries map[string]adapter.Entry) *ProviderAdapter {
	return &ProviderAdapter{Adapter: *NewAdapter(version), Entries: entries}
}

// Datastores returns the entries.
func (a *ProviderAdapter) Datastores() map[string]adapter.Entry {
	if a == nil {
		return nil
	}

	return a.Entries
}

var (
	_ adapter.Adapter          = &Adapter{}         //nolint:exhaustruct
	_ adapter.InstanceProvider = &ProviderAdapter{} //nolint:exhaustruct
)
