package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once for smooth network
// flow; it stays under a typical MTU.
const maxChunkSize = 1400

// ChunkWriter accumulates a frame of terminal output and writes it in chunks.
// Use MoveCursor, WriteString and WriteRune to accumulate, then Flush to
// write to the underlying writer.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all MoveCursor coordinates (for canvas centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes a string at a 1-based canvas position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteCentered writes s horizontally centred within width columns on row.
func (cw *ChunkWriter) WriteCentered(width, row int, s string) {
	col := (width-len([]rune(s)))/2 + 1
	if col < 1 {
		col = 1
	}
	cw.WriteAt(col, row, s)
}

// WriteRune appends a rune to the buffer.
func (cw *ChunkWriter) WriteRune(r rune) {
	cw.buf.WriteRune(r)
}

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// Escape sequences written at the start and end of a terminal session.
const (
	seqClearScreen  = "\033[H\033[2J"
	seqHideCursor   = "\033[?25l"
	seqShowCursor   = "\033[?25h"
	seqMouseOn      = "\033[?1003h\033[?1006h" // Any-motion tracking, SGR encoding
	seqMouseOff     = "\033[?1003l\033[?1006l"
	seqAltScreenOn  = "\033[?1049h"
	seqAltScreenOff = "\033[?1049l"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func (cw *ChunkWriter) ClearScreen() {
	cw.buf.WriteString(seqClearScreen)
}

// EnterGame switches to the alternate screen, hides the cursor and enables
// mouse reporting.
func EnterGame(w io.Writer) {
	io.WriteString(w, seqAltScreenOn+seqHideCursor+seqMouseOn+seqClearScreen)
}

// LeaveGame undoes EnterGame.
func LeaveGame(w io.Writer) {
	io.WriteString(w, seqMouseOff+seqShowCursor+seqAltScreenOff)
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Layout places an arena of the given aspect ratio inside a terminal.
type Layout struct {
	Cols, Rows         int // Canvas size in cells
	OffCol, OffRow     int // 0-based offset of the canvas
	TermCols, TermRows int
}

// hudRows is the number of rows reserved above the canvas.
const hudRows = 1

// FitLayout returns the largest canvas with the arena's aspect ratio that
// fits the terminal below the HUD row, capped at maxCols x maxRows, centred.
func FitLayout(termCols, termRows, maxCols, maxRows int, logicalW, logicalH float64) Layout {
	availCols := min(termCols-2, maxCols)
	availRows := min(termRows-hudRows-2, maxRows)
	if availCols < 4 {
		availCols = 4
	}
	if availRows < 2 {
		availRows = 2
	}

	// Sub-pixels are about as wide as they are tall: cols/(rows*2) = w/h
	cols := availCols
	rows := int(float64(cols) * logicalH / logicalW / 2)
	if rows > availRows {
		rows = availRows
		cols = int(float64(rows) * 2 * logicalW / logicalH)
	}
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	return Layout{
		Cols:     cols,
		Rows:     rows,
		OffCol:   max((termCols-cols)/2, 0),
		OffRow:   max((termRows-rows+hudRows)/2, hudRows),
		TermCols: termCols,
		TermRows: termRows,
	}
}
