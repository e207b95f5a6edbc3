package platform

import "context"

// Nop implements every collaborator as a no-op. It stands in when a backend
// is missing, e.g. without a session bus.
type Nop struct{}

var (
	_ Source       = Nop{}
	_ Directory    = Nop{}
	_ Launcher     = Nop{}
	_ FolderPicker = Nop{}
	_ Opener       = Nop{}
	_ Cue          = Nop{}
)

func (Nop) Current(context.Context) (Track, error)             { return Track{}, nil }
func (Nop) Windows(context.Context) ([]Window, error)          { return nil, nil }
func (Nop) Activate(context.Context, Window) error             { return ErrUnavailable }
func (Nop) Launch(context.Context, []string) error             { return ErrUnavailable }
func (Nop) PickFolder(context.Context, string) (string, error) { return "", nil }
func (Nop) OpenFolder(context.Context, string) error           { return ErrUnavailable }
func (Nop) Play() error                                        { return nil }
