package util

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1) // normal
	l.SetOutput(&buf)

	l.Info("info line")
	l.Verbose("verbose line")
	l.Debug("debug line")
	l.Error("error line")

	out := buf.String()
	if !strings.Contains(out, "[INF] info line") {
		t.Error("info line missing")
	}
	if strings.Contains(out, "verbose line") || strings.Contains(out, "debug line") {
		t.Error("suppressed levels leaked")
	}
	if !strings.Contains(out, "[ERR] error line") {
		t.Error("error line missing")
	}
}

func TestLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(0)
	l.SetOutput(&buf)

	l.Info("hidden")
	l.Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("quiet logger printed info")
	}
	if !strings.Contains(out, "shown") {
		t.Error("quiet logger suppressed error")
	}
}

func TestLogger_WithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	l.SetOutput(&buf)

	l.WithPrefix("abcd1234").Info("session event")

	if !strings.Contains(buf.String(), "abcd1234 session event") {
		t.Errorf("prefix missing: %q", buf.String())
	}

	// The parent is unaffected.
	buf.Reset()
	l.Info("plain")
	if strings.Contains(buf.String(), "abcd1234") {
		t.Error("prefix leaked into parent logger")
	}
}

// TestLogger_ConcurrentPrefixed verifies prefixed copies share a lock
// and don't interleave partial lines.
func TestLogger_ConcurrentPrefixed(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	l.SetOutput(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.WithPrefix("sess").Info("line %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "[INF] sess line ") {
			t.Errorf("malformed line %q", line)
		}
	}
}
