// Package console is the rendering surface of the interactive session.
//
// Screen draws headers, plain text, error and warning screens and the
// "press any key" pause; KeyReader turns terminal input into navigation keys.
// Both read from the same buffered stdin the line-oriented input resolver
// uses, so single-key and line input can be interleaved freely.
package console
