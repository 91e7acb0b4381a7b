// Package batch runs one chdman operation over a list of files.
//
// A run has two phases. Configure asks the user for the per-run Settings
// through a Prompter; Execute then processes every file with those Settings
// and never touches the UI beyond writing progress lines. For each file the
// runner builds the output path, invokes chdman, reports the size change on
// success, optionally deletes the input together with its sidecar files and
// records failures for the summary.
package batch
