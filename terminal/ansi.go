// @focus: #terminal { ansi }
package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments
var (
	// CSI sequences
	csiReset = []byte("\x1b[0m")
	csiRIS   = []byte("\x1bc") // Reset to Initial State, also clears screen and scrollback

	// Cursor control
	csiCursorHide    = []byte("\x1b[?25l")
	csiCursorShow    = []byte("\x1b[?25h")
	csiCursorPos     = []byte("\x1b[") // followed by row;colH
	csiCursorSave    = []byte("\x1b[s")
	csiCursorRestore = []byte("\x1b[u")

	// Screen modes
	csiAltScreenExit = []byte("\x1b[?1049l")
	csiAutoWrapOn    = []byte("\x1b[?7h")

	// Color prefixes
	csiFg256 = []byte("\x1b[38;5;") // followed by N;m
	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m

	// Attribute sequences
	csiAttrDim = []byte("\x1b[2m")
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [5]byte
	i := 4
	for n > 0 && i >= 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (1-indexed input, ANSI native)
func writeCursorPos(w *bufio.Writer, row, col int) {
	w.Write(csiCursorPos)
	writeInt(w, row)
	w.WriteByte(';')
	writeInt(w, col)
	w.WriteByte('H')
}

// writeStyle emits SGR sequences for style under the given color mode
func writeStyle(w *bufio.Writer, s Style, mode ColorMode) {
	if s.Attrs&AttrDim != 0 {
		w.Write(csiAttrDim)
	}
	if !s.HasColor() {
		return
	}

	if mode == ColorModeTrueColor {
		c := s.RGB()
		w.Write(csiFgRGB)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		w.WriteByte('m')
		return
	}

	w.Write(csiFg256)
	writeInt(w, int(s.Index256()))
	w.WriteByte('m')
}
