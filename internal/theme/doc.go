// Package theme loads the CSS applied to the notch host window.
//
// The notch shape is drawn by hand, so themes only control window chrome and
// the canvas font. Themes are looked up in ~/.config/notch/themes/ first and
// then among the bundled ones.
package theme
