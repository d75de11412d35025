package connection

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/ztctl-go/internal/core/domain"
	"github.com/yndnr/ztctl-go/internal/telemetry/logger"
)

// pollInterval is used when the parent directory cannot be watched,
// typically because the daemon has not created it yet.
const pollInterval = 250 * time.Millisecond

// WaitForToken blocks until the file at path exists or ctx is done.
// It watches the parent directory rather than the file so that atomic
// renames are seen.
func WaitForToken(ctx context.Context, path string) error {
	if exists(path) {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return pollForToken(ctx, path)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		logger.L(ctx).Debug("cannot watch token directory, polling", "path", dir, "error", err)
		return pollForToken(ctx, path)
	}
	logger.L(ctx).Info("waiting for token file", "path", path)

	// The file may have appeared between the first check and Add.
	if exists(path) {
		return nil
	}

	want := filepath.Clean(path)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return pollForToken(ctx, path)
			}
			if filepath.Clean(event.Name) != want {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				if exists(path) {
					logger.L(ctx).Debug("token file appeared", "path", path, "op", event.Op.String())
					return nil
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return pollForToken(ctx, path)
			}
			logger.L(ctx).Warn("token watcher error", "error", err)
		case <-ctx.Done():
			return waitError(ctx, path)
		}
	}
}

func pollForToken(ctx context.Context, path string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if exists(path) {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return waitError(ctx, path)
		}
	}
}

func waitError(ctx context.Context, path string) error {
	return domain.ErrIO.WithDetails("token file " + path + " did not appear").WithCause(ctx.Err())
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
