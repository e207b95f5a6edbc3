// Package dbus talks to the session bus on behalf of the overlay.
//
// It reads the current track from MPRIS players, lists and raises those
// players, asks the xdg-desktop-portal FileChooser for folders, shows
// folders through org.freedesktop.FileManager1, and exports a small control
// interface so other programs can toggle the notch or announce a label.
package dbus
