// Package config describes the normalized configuration of a datastore
// instance and loads instance configurations from files and environment.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Instance is the normalized configuration of one named datastore instance.
// It is owned by the caller and must not be modified after registration.
type Instance struct {
	// Name is the datastore name the instance is registered under.
	Name string `mapstructure:"name"`
	// Adapter is the identity of the adapter serving the instance.
	Adapter string `mapstructure:"adapter"`
	// URL is the connection string, used by drivers that accept one.
	URL string `mapstructure:"url"`
	// Addrs lists node addresses, used by clustered drivers.
	Addrs []string `mapstructure:"addrs"`
	// User and Password are credentials for drivers that take them separately.
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// Settings carries adapter-specific settings.
	Settings map[string]any `mapstructure:"settings"`
}

var (
	// ErrInvalid is returned for configurations that fail validation.
	ErrInvalid = errors.New("invalid datastore config")
)

// Validate checks that the instance is complete enough to be registered.
func (i *Instance) Validate() error {
	switch {
	case i == nil:
		return fmt.Errorf("%w: nil instance", ErrInvalid)
	case i.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case i.Adapter == "":
		return fmt.Errorf("%w: datastore %q: adapter is required", ErrInvalid, i.Name)
	case i.URL == "" && len(i.Addrs) == 0:
		return fmt.Errorf("%w: datastore %q: url or addrs is required", ErrInvalid, i.Name)
	}

	return nil
}

// Setting returns a string setting, or def when it is absent or not a string.
func (i *Instance) Setting(key, def string) string {
	if value, ok := i.Settings[key].(string); ok {
		return value
	}

	return def
}

// EnvPrefix is the prefix of environment variables overriding file values,
// e.g. DATASTORE_DATASTORES_DEFAULT_URL.
const EnvPrefix = "DATASTORE"

type file struct {
	Datastores map[string]Instance `mapstructure:"datastores"`
}

// Load reads datastore instances from a YAML, JSON or TOML file.
// Instances are returned sorted by name; a missing name is filled
// from the map key.
func Load(path string) ([]*Instance, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	return decode(v)
}

func decode(v *viper.Viper) ([]*Instance, error) {
	var raw file

	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	names := make([]string, 0, len(raw.Datastores))
	for name := range raw.Datastores {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]*Instance, 0, len(names))

	for _, name := range names {
		instance := raw.Datastores[name]
		if instance.Name == "" {
			instance.Name = name
		}

		if url := v.GetString("datastores." + name + ".url"); url != "" {
			instance.URL = url
		}

		if err := instance.Validate(); err != nil {
			return nil, err
		}

		out = append(out, &instance)
	}

	return out, nil
}
