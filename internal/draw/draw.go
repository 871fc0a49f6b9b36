// Package draw renders the arena to an ANSI terminal using half-block
// characters, which gives each cell two vertically stacked pixels.
package draw

import "strconv"

// Point represents a 2D coordinate in logical (arena) space.
type Point struct {
	X, Y float64
}

// Color is a basic ANSI colour. The zero value is "no pixel".
type Color uint8

const (
	None Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	Gray
)

// sgrFg returns the SGR foreground parameter for c.
func (c Color) sgrFg() string {
	if c == Gray {
		return "90"
	}
	return strconv.Itoa(30 + int(c))
}

// sgrBg returns the SGR background parameter for c.
func (c Color) sgrBg() string {
	if c == Gray {
		return "100"
	}
	return strconv.Itoa(40 + int(c))
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
