package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitLayoutKeepsAspect(t *testing.T) {
	l := FitLayout(200, 80, 160, 60, 800, 600)
	assert.Equal(t, 160, l.Cols)
	assert.Equal(t, 60, l.Rows)
	assert.Equal(t, 20, l.OffCol)

	l = FitLayout(80, 24, 160, 60, 800, 600)
	assert.Equal(t, 21, l.Rows)
	assert.Equal(t, 56, l.Cols)
	assert.GreaterOrEqual(t, l.OffRow, 1)
	assert.LessOrEqual(t, l.OffRow+l.Rows, 24)
}

func TestTerminalToLogical(t *testing.T) {
	c := NewCanvas(80, 30, 800, 600)
	c.SetOffset(10, 2)

	x, y := c.TerminalToLogical(10, 2)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)

	x, y = c.TerminalToLogical(89, 31)
	assert.InDelta(t, 795.0, x, 1e-9)
	assert.InDelta(t, 590.0, y, 1e-9)

	// Outside the canvas clamps to the arena
	x, y = c.TerminalToLogical(0, 0)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	x, y = c.TerminalToLogical(500, 500)
	assert.Equal(t, 800.0, x)
	assert.Equal(t, 600.0, y)
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewCanvas(80, 30, 800, 600)
	col, row := c.LogicalToTerminal(400, 300)
	assert.Equal(t, 41, col)
	assert.Equal(t, 16, row)
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	c.Set(0, 0, Red)   // top of cell (1,1)
	c.Set(1, 1, Green) // bottom of cell (2,1)
	c.Set(2, 0, Blue)
	c.Set(2, 1, Blue) // full cell (3,1)
	c.Set(3, 2, Red)
	c.Set(3, 3, Yellow) // two colours in cell (4,2)

	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	c.Render(cw)
	assert.NoError(t, cw.Flush())

	s := out.String()
	assert.Contains(t, s, "\033[1;1H\033[31m▀")
	assert.Contains(t, s, "\033[1;2H\033[32m▄")
	assert.Contains(t, s, "\033[1;3H\033[34m█")
	assert.Contains(t, s, "\033[2;4H\033[31;43m▀")
	assert.Equal(t, 4, strings.Count(s, "\033[0m"))
}

func TestFillCircleAndClear(t *testing.T) {
	c := NewCanvas(40, 20, 40, 40)
	c.FillCircle(20, 20, 5, White)
	assert.Equal(t, White, c.pixel(20, 20))
	assert.Equal(t, White, c.pixel(23, 20))
	assert.Equal(t, None, c.pixel(26, 20))

	c.Clear()
	assert.Equal(t, None, c.pixel(20, 20))
}

func TestChunkWriterOffsetAndChunks(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 4)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	assert.NoError(t, cw.Flush())
	assert.True(t, strings.HasPrefix(out.String(), "\033[5;4Hhi"))
	assert.Len(t, out.String(), len("\033[5;4Hhi")+3*maxChunkSize)
}
