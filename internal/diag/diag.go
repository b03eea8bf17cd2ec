// Package diag implements the library's single fail-fast primitive:
// an invariant check that, on failure, appends a timestamped record to
// a diagnostic sink and terminates the process. There is no recoverable
// error path here — every caller of Invariant is asserting a
// programmer-error precondition, never a condition it expects to handle.
package diag

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	sinkMu      sync.Mutex
	currentSink io.Writer = os.Stderr
)

// SetSink installs the writer that fatal invariant records are appended to.
// Each record is flushed (written) individually; callers supplying a
// buffered writer are responsible for its durability semantics.
func SetSink(w io.Writer) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	currentSink = w
}

// DefaultSink resolves the diagnostic sink from MEMARENA_DIAG_LOG if set
// to a writable path, falling back to os.Stderr.
func DefaultSink() io.Writer {
	if path := os.Getenv("MEMARENA_DIAG_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err == nil {
			return f
		}
	}
	return os.Stderr
}

// exitFunc is swapped out by tests that need to observe a would-be-fatal
// invariant failure without killing the test binary.
var exitFunc = os.Exit

// SetExitFunc installs fn in place of os.Exit for the duration of a test
// and returns a restore function. Exported so tests in other packages
// can observe a would-be-fatal Invariant call without killing the test
// binary; production code never calls this.
func SetExitFunc(fn func(int)) (restore func()) {
	prev := exitFunc
	exitFunc = fn
	return func() { exitFunc = prev }
}

// exitPanic is the sentinel a test's exit stub panics with, so that a
// simulated fatal exit actually unwinds the stack the way os.Exit would
// stop it, instead of letting the caller of Invariant run past a
// precondition it never expected to survive.
type exitPanic struct{ code int }

// AssertFatal runs fn and reports whether it reached a fatal Invariant
// or Fatalf call before returning. It installs an exit stub that panics
// instead of exiting, and recovers that specific panic; any other panic
// propagates to the caller.
func AssertFatal(fn func()) (fired bool) {
	restore := SetExitFunc(func(code int) { panic(exitPanic{code}) })
	defer restore()

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(exitPanic); ok {
				fired = true
				return
			}
			panic(r)
		}
	}()

	fn()
	return false
}

// Invariant terminates the process when cond is false, after writing a
// timestamped record describing the failed expression to the installed
// sink. It never returns to the caller on failure.
func Invariant(cond bool, expr string, format string, args ...any) {
	if cond {
		return
	}
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}

	message := fmt.Sprintf(format, args...)
	record := fmt.Sprintf("[%s] INVARIANT failed: %s at %s:%d\n%s\n\n",
		time.Now().Local().Format(timeLayout), expr, file, line, message)

	sinkMu.Lock()
	w := currentSink
	sinkMu.Unlock()

	if w != nil {
		_, _ = io.WriteString(w, record)
		if f, ok := w.(*os.File); ok {
			_ = f.Sync()
		}
	}

	exitFunc(1)
}

// Fatalf unconditionally terminates the process with a diagnostic record,
// for call sites that have already determined the invariant is violated
// (e.g. a switch's default case over an exhaustive tagged union).
func Fatalf(expr, format string, args ...any) {
	Invariant(false, expr, format, args...)
}
