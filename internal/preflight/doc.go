// Package preflight provides readiness checks for the filesystem paths
// chdbatch depends on.
//
// The "chdbatch status" command runs them to show whether the log directory
// and the default import directory are usable before a session starts.
package preflight
