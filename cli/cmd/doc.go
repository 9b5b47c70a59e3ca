// Package cmd implements the snow subcommands: run, tokens, ast, repl, init
// and version.
//
// Commands receive a [context.Context] carrying the parsed kong.Context
// (see [WithContext]) and the script search path (see [WithSearchPath]).
// Script arguments name a file relative to the working directory, a file in
// one of the search path directories, or "-" for standard input.
//
// Errors returned by commands are [*Error] values derived from the sentinels
// in this package, so callers can match them with [errors.Is] and log them
// with their structured attributes.
package cmd

//nolint:gochecknoglobals
var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file written by [Init].
	ConfigIdentifier = "config"
)
