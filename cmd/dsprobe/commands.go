package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	datastore "github.com/tarantool/go-datastore"
	"github.com/tarantool/go-datastore/capability"
	"github.com/tarantool/go-datastore/config"
	"github.com/tarantool/go-datastore/driver"
)

// report is one output row.
type report struct {
	Datastore     string `json:"datastore"`
	Adapter       string `json:"adapter"`
	Tier          string `json:"tier"`
	Connectable   bool   `json:"connectable"`
	Queryable     bool   `json:"queryable"`
	Transactional bool   `json:"transactional"`
	Latency       string `json:"latency,omitempty"`
	Error         string `json:"error,omitempty"`
}

func newReport(cfg *config.Instance) report {
	return report{
		Datastore:     cfg.Name,
		Adapter:       cfg.Adapter,
		Tier:          capability.TierNone.String(),
		Connectable:   false,
		Queryable:     false,
		Transactional: false,
		Latency:       "",
		Error:         "",
	}
}

func (r *report) setTiers(tiers capability.Tiers) {
	r.Tier = tiers.String()
	r.Connectable = tiers.Connectable
	r.Queryable = tiers.Queryable
	r.Transactional = tiers.Transactional
}

// session holds the datastores built for one command run.
type session struct {
	logger   *zap.Logger
	adapters *adapters
	reports  []report
	handles  []*datastore.Datastore
}

// open loads the config, registers the selected instances and builds
// their handles. Instances that fail to register are reported, not fatal.
func open(ctx context.Context, flags *globalFlags, d drivers, names []string) (*session, error) {
	logger, err := newLogger(flags.debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	instances, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if len(names) > 0 {
		instances = slices.DeleteFunc(instances, func(cfg *config.Instance) bool {
			return !slices.Contains(names, cfg.Name)
		})

		if len(instances) != len(names) {
			return nil, fmt.Errorf("unknown datastores among %v", names)
		}
	}

	s := &session{
		logger:   logger,
		adapters: newAdapters(d, logger),
		reports:  make([]report, 0, len(instances)),
		handles:  make([]*datastore.Datastore, 0, len(instances)),
	}

	for _, cfg := range instances {
		row := newReport(cfg)

		base, err := s.adapters.register(ctx, cfg)
		if err != nil {
			row.Error = err.Error()
			s.reports = append(s.reports, row)
			s.handles = append(s.handles, nil)

			continue
		}

		ds, err := datastore.Build(cfg.Name, cfg, base, datastore.WithLogger(logger))
		if err != nil {
			row.Error = err.Error()
		} else {
			row.setTiers(ds.Capabilities())

			if ds.Err() != nil {
				row.Error = ds.Err().Error()
			}
		}

		s.reports = append(s.reports, row)
		s.handles = append(s.handles, ds)
	}

	return s, nil
}

func (s *session) close(ctx context.Context) {
	s.adapters.teardown(context.WithoutCancel(ctx))
	_ = s.logger.Sync()
}

func write(out io.Writer, format string, reports []report, withLatency bool) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}

		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := "DATASTORE\tADAPTER\tTIER"
	if withLatency {
		header += "\tLATENCY"
	}

	fmt.Fprintln(w, header+"\tERROR")

	for _, r := range reports {
		line := r.Datastore + "\t" + r.Adapter + "\t" + r.Tier
		if withLatency {
			line += "\t" + r.Latency
		}

		fmt.Fprintln(w, line+"\t"+r.Error)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func newAdaptersCmd(d drivers) *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List the adapters dsprobe can build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range d.names() {
				tiers := capability.Classify(d[name]().Capabilities())
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, tiers)
			}

			return nil
		},
	}
}

func newCapabilitiesCmd(flags *globalFlags, d drivers) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities [datastore...]",
		Short: "Report the capability tier granted to each datastore",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			s, err := open(ctx, flags, d, args)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			return write(cmd.OutOrStdout(), flags.output, s.reports, false)
		},
	}
}

func newPingCmd(flags *globalFlags, d drivers) *cobra.Command {
	return &cobra.Command{
		Use:   "ping [datastore...]",
		Short: "Lease and release a connection to each datastore",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			s, err := open(ctx, flags, d, args)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			failed := 0

			for i, ds := range s.handles {
				if ds == nil {
					failed++
					continue
				}

				started := time.Now()

				_, err := ds.LeaseConnection(func(_ context.Context, _ driver.Connection) (any, error) {
					return nil, nil
				}).Exec(ctx)
				if err != nil {
					failed++
					s.reports[i].Error = err.Error()

					continue
				}

				s.reports[i].Latency = time.Since(started).Round(time.Microsecond).String()
			}

			if err := write(cmd.OutOrStdout(), flags.output, s.reports, true); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d datastores did not answer", failed, len(s.handles))
			}

			return nil
		},
	}
}
