// Package cmd provides the command-line interface implementation for glutils.
//
// It uses the Cobra library for command structure; the binary wraps the root
// command with Fang for styling.
//
// The package is organized into the following commands:
//   - root: settings, diagnostics logger and command groups
//   - config: writing and showing the generated test configuration
//   - lock: status, set, unlock and watch for the lock flag
//   - log: entries, party results and browser dumps for an election
//   - files: prefix cleanup, file creation and name splitting
//
// Settings come from glutils.toml, GLUTILS_* environment variables and the
// persistent flags, in increasing precedence.
package cmd
