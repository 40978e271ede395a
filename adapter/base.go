package adapter

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
)

var (
	// ErrAlreadyRegistered is returned when a datastore name is registered twice.
	ErrAlreadyRegistered = errors.New("datastore is already registered")
	// ErrNotRegistered is returned when tearing down an unknown datastore.
	ErrNotRegistered = errors.New("datastore is not registered")
)

// Base is a ready-made adapter that registers datastores through a
// connectable driver and exposes them via InstanceProvider.
// It is safe for concurrent use.
type Base struct {
	identity   string
	apiVersion string
	driver     driver.Connectable
	logger     *zap.Logger

	mu        sync.RWMutex
	instances map[string]Entry
}

var (
	_ Adapter          = &Base{} //nolint:exhaustruct
	_ InstanceProvider = &Base{} //nolint:exhaustruct
)

// NewBase creates an adapter serving datastores with drv.
// A nil logger disables logging.
func NewBase(identity, apiVersion string, drv driver.Connectable, logger *zap.Logger) *Base {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Base{
		identity:   identity,
		apiVersion: apiVersion,
		driver:     drv,
		logger:     logger.With(zap.String("adapter", identity)),
		mu:         sync.RWMutex{},
		instances:  make(map[string]Entry),
	}
}

// Identity implements Adapter.
func (b *Base) Identity() string {
	return b.identity
}

// APIVersion implements Adapter.
func (b *Base) APIVersion() string {
	return b.apiVersion
}

// Datastores implements InstanceProvider. The returned map is a copy.
func (b *Base) Datastores() map[string]Entry {
	if b == nil {
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	return maps.Clone(b.instances)
}

// RegisterDatastore creates a manager for the datastore and records it.
func (b *Base) RegisterDatastore(ctx context.Context, cfg *config.Instance) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	_, exists := b.instances[cfg.Name]
	b.mu.RUnlock()

	if exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, cfg.Name)
	}

	manager, err := b.driver.CreateManager(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create manager for datastore %q: %w", cfg.Name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.instances[cfg.Name]; exists {
		// Lost a registration race: the manager is not ours to keep.
		if err := b.driver.DestroyManager(ctx, manager, nil); err != nil {
			b.logger.Warn("failed to destroy duplicate manager",
				zap.String("datastore", cfg.Name), zap.Error(err))
		}

		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, cfg.Name)
	}

	settings := maps.Clone(cfg.Settings)
	if settings == nil {
		settings = map[string]any{}
	}

	b.instances[cfg.Name] = Entry{
		Manager: manager,
		Driver:  b.driver,
		Config:  settings,
	}

	b.logger.Debug("datastore registered", zap.String("datastore", cfg.Name))

	return nil
}

// TeardownDatastore destroys the manager of the datastore and forgets it.
func (b *Base) TeardownDatastore(ctx context.Context, name string) error {
	b.mu.Lock()
	entry, ok := b.instances[name]
	delete(b.instances, name)
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}

	if err := b.driver.DestroyManager(ctx, entry.Manager, nil); err != nil {
		return fmt.Errorf("failed to destroy manager for datastore %q: %w", name, err)
	}

	b.logger.Debug("datastore torn down", zap.String("datastore", name))

	return nil
}

// Teardown tears every registered datastore down concurrently.
func (b *Base) Teardown(ctx context.Context) error {
	b.mu.RLock()
	names := make([]string, 0, len(b.instances))
	for name := range b.instances {
		names = append(names, name)
	}
	b.mu.RUnlock()

	var group errgroup.Group

	for _, name := range names {
		group.Go(func() error {
			return b.TeardownDatastore(ctx, name)
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("adapter %q teardown failed: %w", b.identity, err)
	}

	return nil
}
