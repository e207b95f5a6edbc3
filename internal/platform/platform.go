// Package platform defines the collaborators the overlay talks to: the media
// source, the window directory, the folder picker, the file manager and the
// process launcher.
//
// Every collaborator is best-effort. Callers log returned errors and carry on
// with unchanged state.
package platform

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when a collaborator has no backend to talk to.
var ErrUnavailable = errors.New("platform service unavailable")

// Window is a visible top-level window owned by another process.
type Window struct {
	ID    string // Backend-specific handle, e.g. a D-Bus bus name
	Title string
	PID   uint32
}

// Track is what the media source is currently presenting.
type Track struct {
	Title  string
	Detail string
}

// Empty reports whether there is nothing to announce.
func (t Track) Empty() bool {
	return t.Title == ""
}

// Source reports the current label of the external media source.
// An empty Track means nothing is playing.
type Source interface {
	Current(ctx context.Context) (Track, error)
}

// Directory enumerates and raises windows of other processes.
type Directory interface {
	Windows(ctx context.Context) ([]Window, error)
	Activate(ctx context.Context, w Window) error
}

// Launcher starts an executable by name.
type Launcher interface {
	Launch(ctx context.Context, names []string) error
}

// FolderPicker presents a directory chooser. An empty path with a nil error
// means the user cancelled.
type FolderPicker interface {
	PickFolder(ctx context.Context, title string) (string, error)
}

// Opener shows a folder in the platform file browser.
type Opener interface {
	OpenFolder(ctx context.Context, path string) error
}

// Cue plays a short sound.
type Cue interface {
	Play() error
}
