// @focus: #sys { term }
// Package terminal provides inline ANSI terminal control for scrolling output.
//
// Features:
//   - True color (24-bit) and 256-color palette support
//   - Mutex-serialized console writes with scoped cursor save/restore
//   - Terminal size detection with 80x24 fallback
//   - Clean terminal restoration on exit/panic
//
// Unlike a full-screen renderer, the console never enters raw mode or the
// alternate screen: text scrolls normally and decorations are drawn in place
// between DECSC/DECRC (ESC 7 / ESC 8) or CSI s / CSI u pairs.
package terminal
