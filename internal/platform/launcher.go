package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// ExecLauncher starts the first executable found on PATH and leaves it
// running detached from the overlay.
type ExecLauncher struct {
	logger   *slog.Logger
	lookPath func(string) (string, error)
	start    func(path string) error
}

// NewExecLauncher creates a launcher backed by os/exec.
func NewExecLauncher(logger *slog.Logger) *ExecLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecLauncher{
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Launch starts the first of names that resolves on PATH.
func (l *ExecLauncher) Launch(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := l.lookPath(name)
		if err != nil {
			continue
		}
		if err := l.start(path); err != nil {
			return fmt.Errorf("failed to start %s: %w", path, err)
		}
		l.logger.Debug("launched", "path", path)
		return nil
	}
	return fmt.Errorf("none of %v found on PATH: %w", names, ErrUnavailable)
}

func startDetached(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap in the background so the child never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
