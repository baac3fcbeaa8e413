// @lixen: #focus{sys[term,io,output]}
package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// SizeFunc reports terminal dimensions as (cols, rows)
type SizeFunc func() (int, int)

// Console is an inline terminal writer shared by every component
// Each call holds the lock for its whole sequence so escape codes are never torn
type Console struct {
	mu     sync.Mutex
	writer *bufio.Writer
	mode   ColorMode
	size   SizeFunc

	cursorHidden atomic.Bool
}

// NewConsole creates a console writing to w
// Size is taken from w when it is a terminal, otherwise 80x24 is reported
func NewConsole(w io.Writer, mode ColorMode) *Console {
	c := &Console{
		writer: bufio.NewWriterSize(w, 4096),
		mode:   mode,
	}
	c.size = fdSize(w)
	return c
}

// SetSizeFunc replaces terminal size detection
func (c *Console) SetSizeFunc(fn SizeFunc) {
	c.mu.Lock()
	c.size = fn
	c.mu.Unlock()
}

// Size returns current terminal dimensions as (cols, rows)
func (c *Console) Size() (int, int) {
	c.mu.Lock()
	fn := c.size
	c.mu.Unlock()
	return fn()
}

// HideCursor hides the cursor
func (c *Console) HideCursor() {
	c.cursorHidden.Store(true)
	c.raw(csiCursorHide)
}

// ShowCursor makes the cursor visible, safe to call multiple times
func (c *Console) ShowCursor() {
	c.cursorHidden.Store(false)
	c.raw(csiCursorShow)
}

// CursorHidden reports whether HideCursor is in effect
func (c *Console) CursorHidden() bool {
	return c.cursorHidden.Load()
}

// Clear resets the screen to its initial state
func (c *Console) Clear() {
	c.raw(csiRIS)
}

// Print writes styled text at the current cursor position
func (c *Console) Print(s Style, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeStyled(s, text)
	c.writer.Flush()
}

// Println writes styled text followed by a line break
func (c *Console) Println(s Style, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeStyled(s, text)
	c.writer.WriteByte('\n')
	c.writer.Flush()
}

// Segment is a run of text sharing one style
type Segment struct {
	Style Style
	Text  string
}

// Write emits all segments under one lock, so they appear contiguously
func (c *Console) Write(segs ...Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, seg := range segs {
		c.writeStyled(seg.Style, seg.Text)
	}
	c.writer.Flush()
}

// Draw runs fn between cursor save and restore
// The restore and flush happen even if fn panics
func (c *Console) Draw(fn func(cv *Canvas)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cols, rows := c.size()
	cv := &Canvas{c: c, cols: cols, rows: rows}

	c.writer.Write(csiCursorSave)
	defer func() {
		c.writer.Write(csiCursorRestore)
		c.writer.Flush()
	}()

	fn(cv)
}

// writeStyled emits text wrapped in SGR, caller holds lock
func (c *Console) writeStyled(s Style, text string) {
	if s == StylePlain {
		c.writer.WriteString(text)
		return
	}
	writeStyle(c.writer, s, c.mode)
	c.writer.WriteString(text)
	c.writer.Write(csiReset)
}

func (c *Console) raw(seq []byte) {
	c.mu.Lock()
	c.writer.Write(seq)
	c.writer.Flush()
	c.mu.Unlock()
}

// Canvas is the drawing surface handed to Console.Draw
// Coordinates are 1-indexed rows and columns, matching ANSI CUP
type Canvas struct {
	c    *Console
	cols int
	rows int
}

// Size returns the terminal dimensions captured when the draw started
func (cv *Canvas) Size() (cols, rows int) {
	return cv.cols, cv.rows
}

// Put writes styled text at row, col
func (cv *Canvas) Put(row, col int, s Style, text string) {
	writeCursorPos(cv.c.writer, row, col)
	cv.c.writeStyled(s, text)
}

// fdSize builds a SizeFunc querying w when it is backed by a terminal
func fdSize(w io.Writer) SizeFunc {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() (int, int) { return fallbackWidth, fallbackHeight }
	}
	fd := int(f.Fd())
	return func() (int, int) {
		cols, rows, err := term.GetSize(fd)
		if err != nil || cols <= 0 || rows <= 0 {
			return fallbackWidth, fallbackHeight
		}
		return cols, rows
	}
}
