// Command dsprobe loads datastore instance configurations, registers them
// with their adapters and reports the capabilities each datastore is granted.
//
// Usage:
//
//	dsprobe --config datastores.yaml capabilities
//	dsprobe --config datastores.yaml ping orders
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tarantool/go-datastore/config"
)

type globalFlags struct {
	configPath string
	output     string
	timeout    time.Duration
	debug      bool
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment() //nolint:wrapcheck
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build() //nolint:wrapcheck
}

func newRootCmd(out io.Writer, d drivers) *cobra.Command {
	flags := &globalFlags{
		configPath: "datastores.yaml",
		output:     "text",
		timeout:    10 * time.Second,
		debug:      false,
	}

	root := &cobra.Command{
		Use:           "dsprobe",
		Short:         "Probe datastores and report their capabilities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if flags.output != "text" && flags.output != "json" {
				return fmt.Errorf("unknown output format %q, use text or json", flags.output)
			}

			return nil
		},
	}

	root.SetOut(out)
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", flags.configPath,
		"path to the datastores config, "+config.EnvPrefix+"_* variables override its values")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", flags.output, "output format: text or json")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", flags.timeout, "timeout of the whole command")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", flags.debug, "enable debug logging")

	root.AddCommand(
		newAdaptersCmd(d),
		newCapabilitiesCmd(flags, d),
		newPingCmd(flags, d),
	)

	return root
}

func main() {
	root := newRootCmd(os.Stdout, defaultDrivers())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
