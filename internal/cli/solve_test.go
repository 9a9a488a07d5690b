package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestRunSolve(t *testing.T) {
	buf := captureStdout(t)
	c := New(io.Discard, log.InfoLevel)

	in := inputFlags{label: "hallway"}
	in.spacing.Front = "28 31/32"
	if err := c.runSolve(context.Background(), &in, false, false); err != nil {
		t.Fatalf("runSolve: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Bracket placement", "hallway", "both", "28-31/32"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSolveNonParallel(t *testing.T) {
	buf := captureStdout(t)
	c := New(io.Discard, log.InfoLevel)

	in := inputFlags{}
	in.spacing.Front = "29"
	in.spacing.Back = "30 1/4"
	if err := c.runSolve(context.Background(), &in, false, false); err != nil {
		t.Fatalf("runSolve: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "back") || !strings.Contains(out, "front") {
		t.Errorf("non-parallel output should list both positions:\n%s", out)
	}
}

func TestRunSolveJSON(t *testing.T) {
	buf := captureStdout(t)
	c := New(io.Discard, log.InfoLevel)

	in := inputFlags{}
	in.spacing.Front = "736mm"
	if err := c.runSolve(context.Background(), &in, true, false); err != nil {
		t.Fatalf("runSolve: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
}

func TestRunSolveInvalidSpacing(t *testing.T) {
	captureStdout(t)
	c := New(io.Discard, log.InfoLevel)

	in := inputFlags{}
	in.spacing.Front = "twenty"
	if err := c.runSolve(context.Background(), &in, false, false); err == nil {
		t.Fatal("expected an error")
	}
}
