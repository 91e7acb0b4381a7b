// Package chdman locates and drives the external chdman executable.
//
// Every conversion is a single synchronous process run built as
// "<subcommand> [flags] -i <input> -o <output>". Exit code 0 is success and
// anything else is a failure; chdman's output is streamed to the console but
// never parsed. The Executor seam lets tests replace the process entirely.
package chdman
