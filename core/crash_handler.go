package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/lrcterm/terminal"
)

var (
	crashMu  sync.Mutex
	crashOut io.Writer = os.Stdout
	exitFn             = os.Exit
)

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Only the first crashing goroutine reports
	crashMu.Lock()

	// Restore terminal to sane state immediately
	terminal.EmergencyReset(crashOut)

	fmt.Fprintf(os.Stderr, "\n\x1b[31mLRCTERM CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Stderr.Sync()

	exitFn(1)
}

// Run calls fn on the current goroutine with panic recovery
func Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			HandleCrash(r)
		}
	}()
	fn()
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go Run(fn)
}
