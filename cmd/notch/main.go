// Package main is the entry point for the notch overlay.
package main

import "runtime"

func init() {
	// GTK must be driven from the thread that initialized it.
	runtime.LockOSThread()
}

func main() {
	Execute()
}
