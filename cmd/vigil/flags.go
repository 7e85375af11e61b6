// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package main

import (
	"flag"
	"fmt"
	"os"
)

// cliOptions is the parsed flag surface. Flags the user actually set
// become koanf overrides, the highest configuration layer; untouched
// flags leave the lower layers (env, file, defaults) in charge.
type cliOptions struct {
	configPath  string
	showVersion bool
	overrides   map[string]interface{}
}

// parseFlags parses args into cliOptions.
func parseFlags(args []string) (*cliOptions, error) {
	fs := flag.NewFlagSet("vigil", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: vigil [flags]\n\nWatch an authentication log for suspicious activity.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	input := fs.String("input", "", "path of the log file to scan or follow (required)")
	follow := fs.Bool("follow", false, "follow the file for new lines instead of scanning once")
	pollMS := fs.Int("poll-interval-ms", 0, "follow-mode poll cadence in milliseconds")
	ignoreCase := fs.Bool("ignore-case", false, "match rule patterns case-insensitively")
	minSeverity := fs.String("min-severity", "", "drop hits below this severity (low, medium, high)")
	dedupWindow := fs.Float64("dedup-window", 0, "suppress repeated hits of the same rule and user within this many seconds; 0 disables")
	failOn := fs.String("fail-on", "", "scan mode: exit 1 if any hit reaches this severity (low, medium, high)")
	countOnly := fs.Bool("count-only", false, "suppress per-hit output; stats are still computed")
	statsFlag := fs.Bool("stats", false, "print the end-of-run stats block (scan mode)")
	jsonl := fs.String("jsonl", "", "append each hit as one JSON object per line to this file")
	opsListen := fs.String("ops-listen", "", "follow mode: serve /healthz, /readyz, /metrics on this address")
	logLevel := fs.String("log-level", "", "diagnostic log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "diagnostic log format (console, json)")
	configPath := fs.String("config", "", "path to a YAML config file")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q (use -input to name the log file)", fs.Arg(0))
	}

	// Only flags the user set become overrides; Visit walks exactly
	// those.
	overrides := make(map[string]interface{})
	flagPaths := map[string]func(){
		"input":            func() { overrides["input.path"] = *input },
		"follow":           func() { overrides["input.follow"] = *follow },
		"poll-interval-ms": func() { overrides["input.poll_interval_ms"] = *pollMS },
		"ignore-case":      func() { overrides["rules.case_insensitive"] = *ignoreCase },
		"min-severity":     func() { overrides["filter.min_severity"] = *minSeverity },
		"dedup-window":     func() { overrides["dedup.window_seconds"] = *dedupWindow },
		"fail-on":          func() { overrides["exit.fail_on"] = *failOn },
		"count-only":       func() { overrides["output.count_only"] = *countOnly },
		"stats":            func() { overrides["output.stats"] = *statsFlag },
		"jsonl":            func() { overrides["output.jsonl_path"] = *jsonl },
		"log-level":        func() { overrides["logging.level"] = *logLevel },
		"log-format":       func() { overrides["logging.format"] = *logFormat },
		"ops-listen": func() {
			overrides["ops.enabled"] = true
			overrides["ops.listen"] = *opsListen
		},
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := flagPaths[f.Name]; ok {
			apply()
		}
	})

	return &cliOptions{
		configPath:  *configPath,
		showVersion: *showVersion,
		overrides:   overrides,
	}, nil
}
