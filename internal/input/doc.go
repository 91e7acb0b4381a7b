// Package input turns raw console lines into typed values.
//
// Every getter prompts with a type label and optional default, reads exactly
// one line, and runs it through the installed filters before parsing. A line
// a filter consumes (for example the reserved log commands) counts as "no
// value entered". Malformed input never produces an error: it degrades to the
// default when one was supplied and to "unresolved" otherwise, which getters
// report through their boolean result.
package input
