package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// Escape sequences that undo what a full-screen renderer sets up
var (
	csiMouseOff      = []byte("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
	csiCursorShow    = []byte("\x1b[?25h")
	csiAltScreenExit = []byte("\x1b[?1049l")
	csiSGR0          = []byte("\x1b[0m")
	csiAutoWrapOn    = []byte("\x1b[?7h")
)

// emergencyReset writes a best-effort terminal restore without touching tcell state
func emergencyReset(w io.Writer) {
	w.Write(csiMouseOff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

// recoverCrash must be deferred directly; it restores the terminal and exits on panic
func recoverCrash(label string) {
	if r := recover(); r != nil {
		emergencyReset(os.Stdout)
		// \r\n keeps the output readable if raw mode is still on
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s: %v\x1b[0m\r\n", label, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}
