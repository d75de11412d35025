package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/ztctl-go/internal/telemetry/logger"
)

// Prompt is printed before each line is read.
const Prompt = "ztctl> "

// Executor runs one command line split into arguments.
type Executor func(ctx context.Context, args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	exec      Executor
	completer *Completer
	history   *History
}

// New creates a REPL reading from in and writing prompts and errors to out.
func New(in io.Reader, out io.Writer, exec Executor, completer *Completer, history *History) *REPL {
	return &REPL{
		input:     in,
		output:    out,
		exec:      exec,
		completer: completer,
		history:   history,
	}
}

// Run reads lines until exit, EOF (Ctrl+D) or ctx cancellation (Ctrl+C),
// even while waiting for input. Command errors are printed and do not end
// the loop.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		logger.L(ctx).Warn("load history failed", "path", r.history.Path(), "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			logger.L(ctx).Warn("save history failed", "path", r.history.Path(), "error", err)
		}
	}()

	done := make(chan struct{})
	defer close(done)
	lines := r.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(r.output, Prompt)

		var next readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.output)
			return nil
		case res, ok := <-lines:
			if !ok {
				res.err = io.EOF
			}
			next = res
		}

		line, err := next.line, next.err
		if err == io.EOF && line == "" {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case line == "exit" || line == "quit":
			return nil
		case line == "history":
			r.history.Add(line)
			r.printHistory()
			continue
		case strings.HasPrefix(line, "?"):
			r.printCompletions(strings.TrimSpace(strings.TrimPrefix(line, "?")))
			continue
		}

		r.history.Add(line)

		if err := r.exec(ctx, strings.Fields(line)); err != nil {
			fmt.Fprintf(r.output, "error: %v\n", err)
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readLines reads input on its own goroutine so a pending read does not
// hold off Ctrl+C. The channel closes after the first read error or once
// done is closed.
func (r *REPL) readLines(done <-chan struct{}) <-chan readResult {
	out := make(chan readResult)
	go func() {
		defer close(out)
		reader := bufio.NewReader(r.input)
		for {
			line, err := reader.ReadString('\n')
			select {
			case out <- readResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

func (r *REPL) printHistory() {
	entries := r.history.Entries()
	for i, e := range entries {
		fmt.Fprintf(r.output, "%4d  %s\n", i+1, e)
	}
}

func (r *REPL) printCompletions(prefix string) {
	for _, s := range r.completer.Complete(prefix) {
		fmt.Fprintln(r.output, s)
	}
}
