// Package archive extracts ZIP archives found during import so their disc
// images can be classified like any other file.
package archive
