// Package logger provides verbose diagnostics for proxsearch.
// Nothing is written unless verbose mode is enabled with the --verbose
// flag. Messages go to stderr so they never mix with command output, and
// level tags are coloured when stderr is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type level struct {
	tag   string
	paint *color.Color
}

var (
	levelDebug = level{tag: "[DEBUG]", paint: color.New(color.FgHiBlack)}
	levelInfo  = level{tag: "[INFO]", paint: color.New(color.FgCyan)}
	levelWarn  = level{tag: "[WARN]", paint: color.New(color.FgYellow)}
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	colored           = !color.NoColor
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Colour is only used when writing to the process stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	colored = w == os.Stderr && !color.NoColor
}

func logf(l level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	tag := l.tag
	if colored {
		tag = l.paint.Sprint(tag)
	}
	fmt.Fprintf(output, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(levelDebug, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(levelInfo, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(levelWarn, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Elapsed logs how long op has taken since start. Typical use:
//
//	defer logger.Elapsed("regex scan", time.Now())
func Elapsed(op string, start time.Time) {
	logf(levelDebug, "%s took %s", op, time.Since(start).Round(time.Microsecond))
}
