// Package display hosts the notch on screen: a GTK4 layer-shell window with
// a drawing area painted through cairo, and the GLib main loop adapted to
// the overlay scheduler.
package display
