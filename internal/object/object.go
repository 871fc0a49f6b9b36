// Package object defines the entity records the simulation operates on.
// Records carry no behaviour beyond trivial accessors; the simulation tick
// owns every mutation.
package object

import (
	"github.com/tomz197/strike/internal/loop/config"
)

// ID identifies an entity within one session. IDs are never reused.
type ID uint64

// IDSource hands out increasing entity IDs.
type IDSource struct {
	next ID
}

// Next returns a fresh ID. The zero ID is never issued.
func (s *IDSource) Next() ID {
	s.next++
	return s.next
}

// Arena describes the playing field bounds.
type Arena struct {
	Width, Height    float64
	MarginX, MarginY float64
}

// DefaultArena is the standard 800x600 field.
var DefaultArena = Arena{
	Width:   config.ArenaWidth,
	Height:  config.ArenaHeight,
	MarginX: config.MarginX,
	MarginY: config.MarginY,
}

// Center returns the middle of the arena.
func (a Arena) Center() (float64, float64) {
	return a.Width / 2, a.Height / 2
}

// Contains reports whether (x,y) lies within [0,Width]x[0,Height].
func (a Arena) Contains(x, y float64) bool {
	return x >= 0 && x <= a.Width && y >= 0 && y <= a.Height
}
