// Package fileset classifies imported paths into disc-image categories.
//
// Classification is two-phase: a first pass buckets every existing file by
// extension and collects ZIP archives, then each archive is extracted next to
// itself and its contents are classified in another pass until no new
// archives appear. Missing paths and extraction problems are warnings, never
// errors, so one bad drag-and-drop entry does not abort an import.
package fileset
