package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// ControlInterface is the control interface name.
	ControlInterface = "io.github.jmylchreest.Notch"
	// ControlPath is the control object path.
	ControlPath = dbus.ObjectPath("/io/github/jmylchreest/Notch")
	// ControlBusName is the bus name to claim.
	ControlBusName = "io.github.jmylchreest.Notch"
)

// ControlHandlers are called from D-Bus goroutines. Implementations must hop
// onto the UI loop before touching overlay state.
type ControlHandlers struct {
	Toggle   func()
	Announce func(title, detail string)
	Quit     func()
}

// ControlServer exports the notch control interface.
type ControlServer struct {
	session  *Session
	logger   *slog.Logger
	handlers ControlHandlers

	mu      sync.Mutex
	running bool
}

// NewControlServer creates a control server on session.
func NewControlServer(session *Session, handlers ControlHandlers, logger *slog.Logger) *ControlServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ControlServer{session: session, handlers: handlers, logger: logger}
}

// Start exports the object and claims the bus name. It fails when another
// notch already owns the name.
func (s *ControlServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("control server already running")
	}
	if err := s.session.ready(); err != nil {
		return err
	}
	conn := s.session.conn

	if err := conn.Export(s, ControlPath, ControlInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: string(ControlPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    ControlInterface,
				Methods: controlMethods(),
				Signals: controlSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ControlPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(ControlBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", ControlBusName)
	}

	s.running = true
	s.logger.Info("D-Bus control server started", "interface", ControlInterface, "path", ControlPath)
	return nil
}

// Stop releases the bus name. The shared connection stays open.
func (s *ControlServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.session.conn.ReleaseName(ControlBusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	return nil
}

// Toggle expands or collapses the notch.
// D-Bus method: Toggle() -> nothing
func (s *ControlServer) Toggle() *dbus.Error {
	s.logger.Debug("Toggle called")
	if s.handlers.Toggle != nil {
		s.handlers.Toggle()
	}
	return nil
}

// Announce shows a transient banner.
// D-Bus method: Announce(ss) -> nothing
func (s *ControlServer) Announce(title, detail string) *dbus.Error {
	s.logger.Debug("Announce called", "title", title)
	if s.handlers.Announce != nil {
		s.handlers.Announce(title, detail)
	}
	return nil
}

// Quit ends the overlay.
// D-Bus method: Quit() -> nothing
func (s *ControlServer) Quit() *dbus.Error {
	s.logger.Debug("Quit called")
	if s.handlers.Quit != nil {
		s.handlers.Quit()
	}
	return nil
}

// EmitStateChanged emits the StateChanged signal.
func (s *ControlServer) EmitStateChanged(state string) error {
	if err := s.session.ready(); err != nil {
		return err
	}
	if err := s.session.conn.Emit(ControlPath, ControlInterface+".StateChanged", state); err != nil {
		return fmt.Errorf("failed to emit StateChanged signal: %w", err)
	}
	return nil
}

// CallControl invokes method on the running notch.
func CallControl(ctx context.Context, session *Session, method string, args ...any) error {
	if err := session.ready(); err != nil {
		return err
	}
	call := session.conn.Object(ControlBusName, ControlPath).
		CallWithContext(ctx, ControlInterface+"."+method, 0, args...)
	if call.Err != nil {
		return fmt.Errorf("failed to call %s: %w", method, call.Err)
	}
	return nil
}

func controlMethods() []introspect.Method {
	return []introspect.Method{
		{Name: "Toggle"},
		{
			Name: "Announce",
			Args: []introspect.Arg{
				{Name: "title", Type: "s", Direction: "in"},
				{Name: "detail", Type: "s", Direction: "in"},
			},
		},
		{Name: "Quit"},
	}
}

func controlSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "StateChanged",
			Args: []introspect.Arg{
				{Name: "state", Type: "s"},
			},
		},
	}
}
