// Package cli contains the command line interface for snow.
//
// # Usage
//
//	snow [flags] [run] [file ...]
//	snow repl [-D NAME=EXPR ...] [file ...]
//	snow tokens [--spans] file
//	snow ast [--format=yaml|json|text] file
//	snow init [--force]
//	snow version [--short]
//
// The run command is the default, so "snow script.snow" runs a script and
// "snow" alone reads one from standard input.
//
// # Script Search Path
//
// Script arguments that do not exist relative to the working directory are
// looked up in each --path directory and then in each directory listed in
// $SNOWPATH, which uses the platform's PATH syntax.
//
// # Configuration
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory, e.g. ~/.config/snow. YAML keys are flag names,
// and nested mappings join their keys with hyphens:
//
//	log:
//	  level: debug
//	  pretty: false
//	path:
//	  - ~/lib/snow
//
// "snow init" writes the current settings in this form.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o snow .
//
// Profiling flags:
//
//   - --pprof-mode: Enable profiling (cpu, mem, block, mutex, trace, ...)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/snow/pprof)
package cli
