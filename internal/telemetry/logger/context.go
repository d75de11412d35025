package logger

import "context"

type ctxKey int

const (
	loggerKey ctxKey = iota
	invocationKey
)

// invocation identifies one CLI run in log lines.
type invocation struct {
	requestID string
	command   string
}

func invocationFrom(ctx context.Context) invocation {
	inv, _ := ctx.Value(invocationKey).(invocation)
	return inv
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or Default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithRequestID tags ctx with the ID of the current invocation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	inv := invocationFrom(ctx)
	inv.requestID = requestID
	return context.WithValue(ctx, invocationKey, inv)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return invocationFrom(ctx).requestID
}

// WithCommand tags ctx with the CLI command being run.
func WithCommand(ctx context.Context, command string) context.Context {
	inv := invocationFrom(ctx)
	inv.command = command
	return context.WithValue(ctx, invocationKey, inv)
}

// CommandFromContext returns the command name, or "".
func CommandFromContext(ctx context.Context) string {
	return invocationFrom(ctx).command
}

// L returns the context logger with request_id and command attached
// when they are set.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	inv := invocationFrom(ctx)

	var args []any
	if inv.requestID != "" {
		args = append(args, "request_id", inv.requestID)
	}
	if inv.command != "" {
		args = append(args, "command", inv.command)
	}
	if len(args) == 0 {
		return l
	}
	return l.With(args...)
}
