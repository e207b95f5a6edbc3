package dbus

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/notch/internal/platform"
)

const (
	fileManagerDest = "org.freedesktop.FileManager1"
	fileManagerPath = dbus.ObjectPath("/org/freedesktop/FileManager1")
	showFolders     = fileManagerDest + ".ShowFolders"
)

// FileManager shows folders in the desktop file browser, falling back to
// xdg-open when no FileManager1 service answers.
type FileManager struct {
	session  *Session
	fallback func(ctx context.Context, path string) error
}

var _ platform.Opener = (*FileManager)(nil)

// NewFileManager creates an opener. session may be nil, in which case only
// the xdg-open fallback is used.
func NewFileManager(session *Session) *FileManager {
	return &FileManager{session: session, fallback: xdgOpen}
}

// OpenFolder shows path in the file browser.
func (f *FileManager) OpenFolder(ctx context.Context, path string) error {
	if f.session.ready() == nil {
		err := f.session.conn.Object(fileManagerDest, fileManagerPath).
			CallWithContext(ctx, showFolders, 0, []string{pathToURI(path)}, "").Err
		if err == nil {
			return nil
		}
		f.session.logger.Debug("FileManager1 unavailable, falling back to xdg-open", "error", err)
	}
	return f.fallback(ctx, path)
}

func xdgOpen(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bin, err := exec.LookPath("xdg-open")
	if err != nil {
		return fmt.Errorf("xdg-open: %w", platform.ErrUnavailable)
	}
	// Not bound to ctx: the launcher must outlive the request.
	cmd := exec.Command(bin, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run xdg-open: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
