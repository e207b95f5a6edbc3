// Package scene derives a declarative drawing of the notch from a snapshot
// of overlay state. Nothing here draws or keeps state; a rasterizer walks
// the returned Scene on every paint.
package scene
