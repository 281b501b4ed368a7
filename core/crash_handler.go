// Package core holds process-wide crash handling shared by every goroutine
// the game starts.
package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Finalizer restores the terminal; tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finalizer
	crashLogger   *zap.Logger

	// exit is replaced in tests
	exit = os.Exit
)

// SetCrashTerminal registers the screen to restore before printing a crash
func SetCrashTerminal(t Finalizer) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// SetCrashLogger registers the logger that records crashes
func SetCrashLogger(log *zap.Logger) {
	crashMu.Lock()
	crashLogger = log
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal, prints
// the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term, log := crashTerminal, crashLogger
	crashTerminal = nil
	crashMu.Unlock()

	stack := debug.Stack()

	// Terminal first, so the trace is readable
	if term != nil {
		term.Fini()
	}

	if log != nil {
		log.Error("crash", zap.Any("panic", r), zap.ByteString("stack", stack))
		_ = log.Sync()
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	_ = os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
