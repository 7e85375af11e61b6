// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package main is the entry point for the vigil watcher binary.
//
// Vigil watches a syslog-style authentication log, classifies each line
// against a set of named detection rules (failed/accepted password,
// sudo invocation, plus any configured extras), extracts source IP,
// user, and service, and reports findings ranked by severity.
//
// # Modes
//
// Scan mode (the default) reads the input once to EOF, prints one line
// per surviving hit, optionally prints an end-of-run stats block, and
// exits. Follow mode (-follow) seeks to the end of the file and polls
// for appended lines until interrupted; it runs under a suture
// supervisor tree and can expose /healthz, /readyz, and /metrics.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Command-line flags
//   - VIGIL_* environment variables
//   - Config file (vigil.yaml, or VIGIL_CONFIG / -config)
//   - Built-in defaults
//
// # Output streams
//
// Hits and the stats block go to stdout; structured JSONL records go to
// the -jsonl file; all diagnostics go to stderr via zerolog. The three
// never mix, so wrappers can parse stdout without filtering.
//
// # Exit codes
//
//	0  clean run, including a follow run stopped by SIGINT/SIGTERM
//	1  scan mode only: an allowed hit reached the -fail-on severity
//	2  fatal configuration or input error
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/vigil/internal/classify"
	"github.com/tomtom215/vigil/internal/config"
	"github.com/tomtom215/vigil/internal/dedup"
	"github.com/tomtom215/vigil/internal/engine"
	"github.com/tomtom215/vigil/internal/logging"
	"github.com/tomtom215/vigil/internal/ops"
	"github.com/tomtom215/vigil/internal/outcome"
	"github.com/tomtom215/vigil/internal/rules"
	"github.com/tomtom215/vigil/internal/sink"
	"github.com/tomtom215/vigil/internal/source"
	"github.com/tomtom215/vigil/internal/stats"
	"github.com/tomtom215/vigil/internal/supervisor"
	"github.com/tomtom215/vigil/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the testable body of main. It returns the process exit code.
func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return outcome.ExitOK
		}
		fmt.Fprintf(os.Stderr, "vigil: %v\n", err)
		return outcome.ExitFatal
	}
	if opts.showVersion {
		fmt.Printf("vigil %s\n", version)
		return outcome.ExitOK
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: opts.configPath,
		Overrides:  opts.overrides,
	})
	if err != nil {
		// Logging is configured from the config; it is not up yet.
		fmt.Fprintf(os.Stderr, "vigil: %v\n", err)
		return outcome.ExitFatal
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	set, err := rules.Build(cfg.Rules.Extra, cfg.Rules.CaseInsensitive)
	if err != nil {
		logging.Error().Err(err).Msg("Invalid rule set")
		return outcome.ExitFatal
	}

	reader, err := openReader(cfg)
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Input.Path).Msg("Cannot open input")
		return outcome.ExitFatal
	}
	defer reader.Close()

	sinks, closeSinks, err := buildSinks(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Cannot open output sink")
		return outcome.ExitFatal
	}
	defer closeSinks()

	failOn, failEnabled := cfg.FailOn()
	agg := stats.New()
	eng, err := engine.New(engine.Config{
		Reader:      reader,
		Classifier:  classify.New(set),
		Dedup:       dedup.New(cfg.DedupWindow()),
		Stats:       agg,
		Policy:      outcome.NewPolicy(failOn, failEnabled),
		Sinks:       sinks,
		MinSeverity: cfg.MinSeverity(),
	})
	if err != nil {
		logging.Error().Err(err).Msg("Cannot assemble pipeline")
		return outcome.ExitFatal
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Input.Follow {
		return runFollow(ctx, cfg, eng)
	}
	return runScan(ctx, cfg, eng, agg)
}

// runScan executes a bounded scan and maps its Outcome to the exit
// code. An interrupt mid-scan is a clean stop, not a failure.
func runScan(ctx context.Context, cfg *config.Config, eng *engine.Engine, agg *stats.Aggregator) int {
	result, err := eng.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return outcome.ExitOK
		}
		logging.Error().Err(err).Msg("Scan failed")
		return outcome.ExitFatal
	}

	if cfg.StatsEnabled() {
		if rerr := agg.Render(os.Stdout); rerr != nil {
			logging.Error().Err(rerr).Msg("Cannot render stats block")
			return outcome.ExitFatal
		}
	}
	return result.ExitCode
}

// runFollow hosts the pipeline (and, if enabled, the ops endpoint)
// under the supervisor tree until an interrupt or a fatal pipeline
// error.
func runFollow(ctx context.Context, cfg *config.Config, eng *engine.Engine) int {
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Error().Err(err).Msg("Cannot build supervisor tree")
		return outcome.ExitFatal
	}

	pipelineSvc := services.NewPipelineService(eng)
	tree.AddPipelineService(pipelineSvc)

	if cfg.Ops.Enabled {
		server := ops.NewServer(cfg.Ops.Listen, eng.Running)
		tree.AddOpsService(services.NewHTTPServerService(server, 10*time.Second))
		logging.Info().Str("listen", cfg.Ops.Listen).Msg("Ops endpoint enabled")
	}

	err = tree.Serve(ctx)
	if ferr := pipelineSvc.FatalErr(); ferr != nil {
		logging.Error().Err(ferr).Msg("Follow run failed")
		return outcome.ExitFatal
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor stopped unexpectedly")
		return outcome.ExitFatal
	}

	logging.Info().Msg("Interrupted, shutting down cleanly")
	return outcome.ExitOK
}

// openReader builds the mode-appropriate source reader.
func openReader(cfg *config.Config) (source.Reader, error) {
	if cfg.Input.Follow {
		return source.NewFollower(source.FollowConfig{
			Path:          cfg.Input.Path,
			PollInterval:  cfg.PollInterval(),
			FailureBudget: cfg.Input.FailureBudget,
		})
	}
	return source.NewScanner(cfg.Input.Path)
}

// buildSinks assembles the configured sinks in delivery order: console
// first (unless count-only), then the JSONL file.
func buildSinks(cfg *config.Config) ([]sink.Sink, func(), error) {
	var sinks []sink.Sink

	if !cfg.Output.CountOnly {
		sinks = append(sinks, sink.NewConsole(os.Stdout))
	}
	if cfg.Output.JSONLPath != "" {
		jsonl, err := sink.NewJSONL(cfg.Output.JSONLPath)
		if err != nil {
			return nil, func() {}, err
		}
		sinks = append(sinks, jsonl)
	}

	closeAll := func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				logging.Warn().Err(err).Msg("Sink close failed")
			}
		}
	}
	return sinks, closeAll, nil
}
