package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestColorAppliesANSICodes(t *testing.T) {
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorWithEmptyString(t *testing.T) {
	got := Color("", FgRed)
	want := FgRed + "" + Reset
	if got != want {
		t.Fatalf("Color(\"\") = %q, want %q", got, want)
	}
}

func TestOutcomeBox(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		msg  string
		mark string
	}{
		{"success", true, "Dataset saved to sft/out.csv", "✓"},
		{"failure", false, "Model not found", "✗"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := OutcomeBox(tt.ok, tt.msg)
			if !strings.Contains(out, tt.msg) {
				t.Errorf("missing message %q in %q", tt.msg, out)
			}
			if !strings.Contains(out, tt.mark) {
				t.Errorf("missing mark %q in %q", tt.mark, out)
			}
		})
	}
}

func TestKeyHelp(t *testing.T) {
	out := KeyHelp("p", "preview", "d", "delete", "dangling")
	for _, want := range []string{"p: preview", "d: delete", " · "} {
		if !strings.Contains(out, want) {
			t.Errorf("KeyHelp missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "dangling") {
		t.Errorf("odd trailing key must be dropped: %q", out)
	}
}

func TestFormatStatus(t *testing.T) {
	if got := FormatStatus("other", "x"); !strings.HasSuffix(got, " x") {
		t.Fatalf("FormatStatus = %q", got)
	}
	if got := FormatStatus("success", "done"); !strings.Contains(got, "✓") {
		t.Fatalf("FormatStatus(success) = %q", got)
	}
}

func TestSpinnerStopPrintsFinalLine(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Submitting")
	s.interval = time.Millisecond
	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop(false, "backend error")
	s.Stop(true, "ignored")

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected final newline, got %q", out)
	}
	if !strings.Contains(out, "backend error") || strings.Contains(out, "ignored") {
		t.Fatalf("unexpected spinner output %q", out)
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf syncBuffer
	NewSpinner(&buf, "x").Stop(true, "done")
	if buf.String() != "" {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
