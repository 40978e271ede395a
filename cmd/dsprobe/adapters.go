package main

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tarantool/go-datastore/adapter"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/driver/etcd"
	"github.com/tarantool/go-datastore/driver/memory"
	"github.com/tarantool/go-datastore/driver/postgres"
	"github.com/tarantool/go-datastore/driver/redis"
	"github.com/tarantool/go-datastore/driver/tarantool"
)

// drivers maps adapter identities to driver factories.
type drivers map[string]func() driver.Connectable

func defaultDrivers() drivers {
	return drivers{
		"memory":    func() driver.Connectable { return memory.New() },
		"etcd":      func() driver.Connectable { return etcd.New() },
		"tarantool": func() driver.Connectable { return tarantool.New() },
		"postgres":  func() driver.Connectable { return postgres.New() },
		"redis":     func() driver.Connectable { return redis.New() },
	}
}

func (d drivers) names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// adapters holds one adapter per identity, created on first use.
type adapters struct {
	drivers drivers
	logger  *zap.Logger
	created map[string]*adapter.Base
}

func newAdapters(d drivers, logger *zap.Logger) *adapters {
	return &adapters{drivers: d, logger: logger, created: make(map[string]*adapter.Base)}
}

// register registers the instance with the adapter it names.
func (a *adapters) register(ctx context.Context, cfg *config.Instance) (*adapter.Base, error) {
	base, ok := a.created[cfg.Adapter]
	if !ok {
		factory, known := a.drivers[cfg.Adapter]
		if !known {
			return nil, fmt.Errorf("datastore %q: unknown adapter %q, known adapters: %v",
				cfg.Name, cfg.Adapter, a.drivers.names())
		}

		base = adapter.NewBase(cfg.Adapter, adapter.HostAPIVersion, factory(), a.logger)
		a.created[cfg.Adapter] = base
	}

	if err := base.RegisterDatastore(ctx, cfg); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return base, nil
}

// teardown tears every created adapter down and logs failures.
func (a *adapters) teardown(ctx context.Context) {
	for identity, base := range a.created {
		if err := base.Teardown(ctx); err != nil {
			a.logger.Warn("adapter teardown failed", zap.String("adapter", identity), zap.Error(err))
		}
	}
}
