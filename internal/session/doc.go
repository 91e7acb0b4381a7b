// Package session is the interactive application driver.
//
// A Session locates chdman, then runs the root menu: import files, pick one
// of the batch operations the current import supports, or manage the log
// file. Every menu item carries a tagged action that a single dispatch switch
// interprets. All state lives on the Session value; nothing is global.
package session
