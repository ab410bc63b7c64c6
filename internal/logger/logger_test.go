package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("scope %d..%d", 0, 12) }, "[DEBUG] scope 0..12\n"},
		{"info", func() { Info("%d results", 3) }, "[INFO] 3 results\n"},
		{"warn", func() { Warn("link check unavailable") }, "[WARN] link check unavailable\n"},
		{"section", func() { Section("Advanced Search") }, "\n=== Advanced Search ===\n"},
		{"percent in argument", func() { Debug("pattern %s", "100%") }, "[DEBUG] pattern 100%\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSilentWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("x")
	Info("x")
	Warn("x")
	Section("x")
	Elapsed("x", time.Now())

	if buf.Len() > 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestElapsed(t *testing.T) {
	buf := capture(t, true)

	Elapsed("regex scan", time.Now().Add(-5*time.Millisecond))

	got := buf.String()
	if !strings.HasPrefix(got, "[DEBUG] regex scan took ") {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestConcurrentToggle(t *testing.T) {
	capture(t, false)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(i%2 == 0)
			_ = IsVerbose()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
