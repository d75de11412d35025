// Package shutdown ties a ztctl invocation to process signals.
//
// SignalContext cancels the command's context on SIGINT or SIGTERM so
// in-flight daemon requests are aborted. Handler runs end-of-invocation
// hooks, such as writing the metrics textfile, within a bounded time.
//
//	ctx, stop := shutdown.SignalContext(context.Background())
//	defer stop()
package shutdown
