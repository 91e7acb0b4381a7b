// Package main hosts the chdbatch CLI entrypoint and command graph.
//
// Running chdbatch without a subcommand starts the interactive session. The
// remaining commands are non-interactive helpers: scaffolding and validating
// the configuration file, and a status report showing whether chdman and the
// configured directories are usable.
package main
