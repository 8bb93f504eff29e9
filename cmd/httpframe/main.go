// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Command httpframe drives the httpframe core parser against real
// byte streams: one or more HTTP/1.x capture files, optionally
// re-probed on change. It exists to exercise the zero-copy core
// end-to-end with the surrounding concerns the core itself never
// touches: correlation IDs, metrics, concurrent probing, config,
// logging.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var overrides []string
	cfg := defaultConfig()

	root := &cobra.Command{
		Use:   "httpframe",
		Short: "Probe HTTP/1.x captures with the httpframe incremental parser",
		Example: `  httpframe probe --kind request testdata/*.req
  httpframe probe --config httpframe.yaml --set input.watch=true capture.req`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := loadConfigPath(configPath)
				if err != nil {
					return err
				}
				if err := loaded.Unpack(&cfg); err != nil {
					return err
				}
			}
			return applyOverrides(&cfg, overrides)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringArrayVar(&overrides, "set", nil, "override a config key, e.g. --set log.level=debug")

	root.AddCommand(newProbeCmd(&cfg))
	return root
}

func newProbeCmd(cfg *Config) *cobra.Command {
	var kind string
	var watch bool

	cmd := &cobra.Command{
		Use:   "probe [paths...]",
		Short: "Parse one or more HTTP/1.x capture files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer log.Sync()

			metricsSrv := serveMetrics(cfg.Metrics.Addr)
			defer metricsSrv.Close()

			k := streamKind(kind)
			if k != streamRequests && k != streamResponses {
				return fmt.Errorf("--kind must be %q or %q", streamRequests, streamResponses)
			}

			run := func() {
				results, err := probeFiles(cmd.Context(), log, k, cfg.Headers.Capacity, cfg.Headers.ConsumeTrailer, args)
				if err != nil {
					log.Error("one or more streams failed to probe", zap.Error(err))
				}
				for _, r := range results {
					if r.Path == "" {
						continue // this slot's file failed; its error is already logged above
					}
					fmt.Printf("%s\tcid=%s\tmessages=%d\tmalformed_at=%d\tchunked_bodies=%d\tchunked_bytes=%d\tfolded_headers=%d\n",
						r.Path, r.CorrelationID, r.Messages, r.MalformedAt, r.ChunkedBodies, r.ChunkedBytes, r.FoldedHeaders)
				}
			}
			run()

			if watch || cfg.Input.Watch {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				if err := watchAndReprobe(ctx, log, args, run); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "request", `stream kind: "request" or "response"`)
	cmd.Flags().BoolVar(&watch, "watch", false, "re-probe inputs on change")
	return cmd
}

// combineErrors folds the per-file failures probeFiles records into a
// single error, so a failing capture among many is reported alongside
// its siblings rather than swallowed by an errgroup-style first-error-wins.
func combineErrors(errs []error) error {
	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
