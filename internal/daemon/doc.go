// Package daemon holds the long-running support for the notch process:
// watching the configuration and theme files for hot reload.
package daemon
