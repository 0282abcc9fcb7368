// Package main provides the glutils command-line interface.
//
// glutils manages the shared files of automated election-test runs: the
// generated test configuration and its lock flag, the per-election log
// files and the server result files of each run.
//
// The main binary supports multiple subcommands:
//   - config: Write or show the generated test configuration
//   - lock: Show and reset the configuration lock flag
//   - log: Append entries to the election log files
//   - files: Work with files and file names
//   - version: Print version information
package main
