package dbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/notch/internal/platform"
)

const (
	busInterface  = "org.freedesktop.DBus"
	propsGet      = "org.freedesktop.DBus.Properties.Get"
	listNames     = busInterface + ".ListNames"
	connectionPID = busInterface + ".GetConnectionUnixProcessID"
)

// Session is a shared session bus connection.
type Session struct {
	conn   *dbus.Conn
	logger *slog.Logger
}

// Connect opens the session bus.
func Connect(logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Session{conn: conn, logger: logger}, nil
}

// Connection returns the underlying D-Bus connection.
func (s *Session) Connection() *dbus.Conn {
	return s.conn
}

func (s *Session) ready() error {
	if s == nil || s.conn == nil {
		return platform.ErrUnavailable
	}
	return nil
}

// names lists every name currently on the bus.
func (s *Session) names(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.conn.BusObject().CallWithContext(ctx, listNames, 0).Store(&names); err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}
	return names, nil
}

// pid returns the process id owning a bus name.
func (s *Session) pid(ctx context.Context, name string) (uint32, error) {
	var pid uint32
	if err := s.conn.BusObject().CallWithContext(ctx, connectionPID, 0, name).Store(&pid); err != nil {
		return 0, fmt.Errorf("failed to get pid of %s: %w", name, err)
	}
	return pid, nil
}

// property reads a single property.
func (s *Session) property(ctx context.Context, dest string, path dbus.ObjectPath, iface, prop string) (dbus.Variant, error) {
	var v dbus.Variant
	obj := s.conn.Object(dest, path)
	if err := obj.CallWithContext(ctx, propsGet, 0, iface, prop).Store(&v); err != nil {
		return dbus.Variant{}, fmt.Errorf("failed to read %s.%s on %s: %w", iface, prop, dest, err)
	}
	return v, nil
}
