package draw

import (
	"math"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Drawing happens in logical coordinates that are scaled to the
// terminal cells the canvas covers.
type Canvas struct {
	termWidth      int     // Columns covered by the canvas
	termHeight     int     // Rows covered by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // subPixelHeight / logicalHeight

	// 0-based terminal offset of the canvas' top-left cell
	offsetCol int
	offsetRow int
}

// NewCanvas creates a canvas of termWidth x termHeight cells showing a
// logicalWidth x logicalHeight area.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row at which the canvas starts.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixel returns the colour at sub-pixel coordinates.
func (c *Canvas) pixel(x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return None
}

// toPixel scales logical coordinates to sub-pixel coordinates.
func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Floor(x * c.scaleX)), int(math.Floor(y * c.scaleY))
}

// Set colours the pixel containing logical point (x,y).
func (c *Canvas) Set(x, y float64, col Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, col)
}

// Render writes the canvas to cw using half-block characters. cw's offset
// must match the canvas offset. Empty cells are skipped, so callers clear
// the screen between frames.
func (c *Canvas) Render(cw *ChunkWriter) {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if top == None && bottom == None {
				continue
			}

			cw.MoveCursor(col+1, row+1)
			cw.WriteString("\033[")
			switch {
			case top == bottom:
				cw.WriteString(top.sgrFg())
				cw.WriteString("m")
				cw.WriteRune(BlockFull)
			case bottom == None:
				cw.WriteString(top.sgrFg())
				cw.WriteString("m")
				cw.WriteRune(BlockUpperHalf)
			case top == None:
				cw.WriteString(bottom.sgrFg())
				cw.WriteString("m")
				cw.WriteRune(BlockLowerHalf)
			default:
				cw.WriteString(top.sgrFg())
				cw.WriteString(";")
				cw.WriteString(bottom.sgrBg())
				cw.WriteString("m")
				cw.WriteRune(BlockUpperHalf)
			}
			cw.WriteString("\033[0m")
		}
	}
}

// TerminalWidth returns the canvas width in columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based position
// (col, row) relative to the canvas, suitable for ChunkWriter.WriteAt.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 0-based terminal cell (as reported by the
// mouse) to the logical point at the centre of that cell. Cells outside the
// canvas map to points clamped to the logical area.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	x = (float64(col-c.offsetCol) + 0.5) / c.scaleX
	y = (float64(row-c.offsetRow)*2 + 1) / c.scaleY
	return math.Max(0, math.Min(x, c.logicalWidth)), math.Max(0, math.Min(y, c.logicalHeight))
}
