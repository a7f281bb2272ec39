package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dsgen/dsgen-cli/internal/ui"
)

func TestLogger_EnabledAndSetWriter(t *testing.T) {
	var l Logger
	if l.Enabled() {
		t.Fatalf("expected disabled when Writer is nil")
	}

	var buf bytes.Buffer
	l.SetWriter(&buf)
	if !l.Enabled() {
		t.Fatalf("expected enabled after setting Writer")
	}
}

func TestLogger_Logf_WritesPrefixFieldAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "API:", PrefixColor: ui.FgGreen, Field: "recipe"}
	l.Logf("  sft  ", "status %d", 200)

	out := buf.String()
	if !strings.Contains(out, "API:") {
		t.Fatalf("expected prefix, got %q", out)
	}
	if !strings.Contains(out, "recipe=sft") {
		t.Fatalf("expected trimmed subject, got %q", out)
	}
	if !strings.Contains(out, "status 200") {
		t.Fatalf("expected formatted message, got %q", out)
	}
}

func TestLogger_Logf_DefaultsForEmptySubjectAndField(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:"}
	l.Logf("   ", "x")

	if out := buf.String(); out != "X: subject=(none) x\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestLogger_Logf_DefaultPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf}
	l.Logf("nl_sql", "x")

	if !strings.Contains(buf.String(), "Log:") {
		t.Fatalf("expected default prefix, got %q", buf.String())
	}
}

func TestLogger_Logf_OmitSubject(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Writer: &buf, PrefixText: "X:", OmitSubject: true}
	l.Logf("sft", "x")

	if out := buf.String(); out != "X: x\n" {
		t.Fatalf("output = %q, want %q", out, "X: x\\n")
	}
}

func TestLogger_Logf_NilReceiver_NoPanic(t *testing.T) {
	var l *Logger
	l.Logf("sft", "x")
}
