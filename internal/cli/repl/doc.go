// Package repl provides the interactive shell for ztctl.
//
//   - repl.go: read loop and dispatch to the command executor
//   - completer.go: prefix completion over command names
//   - history.go: command history persistence
package repl
