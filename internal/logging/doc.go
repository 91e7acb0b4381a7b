// Package logging assembles structured slog loggers used across chdbatch.
//
// The interactive console belongs to the menu and batch output, so loggers
// built here append to the session log file instead of stdout. Each line is
// timestamped and carries the session ID, making the file a readable record of
// errors and warnings shown on screen. The package also owns the reserved
// console commands (!log, !logdel) that open or delete that file, and prunes
// old logs according to the configured retention.
package logging
