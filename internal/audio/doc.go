// Package audio plays the optional cue that accompanies the transient
// banner. It uses the beep library to play WAV, OGG and MP3 files, and
// synthesizes a short chime when no file is configured.
package audio
