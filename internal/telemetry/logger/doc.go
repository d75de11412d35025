// Package logger provides structured logging for ztctl.
//
//   - logger.go: slog-based Logger, levels and the package default
//   - context.go: context propagation of the logger and request id
//   - redact.go: masking of auth material
//
// ztctl writes diagnostics to stderr so stdout stays parseable. The level
// follows the number of -d flags.
package logger
