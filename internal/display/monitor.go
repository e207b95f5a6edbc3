package display

import (
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
)

// PrimaryMonitor returns the first monitor of display. GTK4 has no primary
// monitor concept, so the first one stands in for it.
func PrimaryMonitor(display *gdk.Display) *gdk.Monitor {
	if display == nil {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}
	return wrapMonitor(monitors.Item(0))
}

// ScreenSize returns the logical size of the primary monitor.
func ScreenSize(display *gdk.Display) (int, int, error) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		return 0, 0, &DisplayError{Message: "no display available"}
	}
	mon := PrimaryMonitor(display)
	if mon == nil {
		return 0, 0, &DisplayError{Message: "no monitor available"}
	}
	geom := mon.Geometry()
	if geom.Width() <= 0 || geom.Height() <= 0 {
		return 0, 0, &DisplayError{Message: "primary monitor reports an empty geometry"}
	}
	return geom.Width(), geom.Height(), nil
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor. gotk4 keeps its own
// wrapper unexported; gdk.Monitor only embeds the object pointer.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
