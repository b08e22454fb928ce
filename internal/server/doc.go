// Package server exposes the simulator and the calculation history over
// HTTP. It is a thin presentation layer: all computation lives in
// internal/vessel and all persistence behind the history port.
package server
