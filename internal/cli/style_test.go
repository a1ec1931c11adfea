package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/amterp/swatch/internal/engine"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out, &errOut
}

func TestPrintHelpers_RouteStreams(t *testing.T) {
	out, errOut := captureOutput(t)

	PrintSuccess("saved %d", 3)
	PrintInfo("note")
	PrintWarning("careful")
	PrintError("broke: %v", errors.New("boom"))

	if got := out.String(); got != "✓ saved 3\n→ note\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "! careful\n✗ broke: boom\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestPrintResults(t *testing.T) {
	out, errOut := captureOutput(t)

	printResults(&engine.Report{Committed: 2, Results: []engine.Result{
		{Verb: "insert", Message: "Inserted #ff0000 at 0", Changed: true},
		{Verb: "undo", Message: "Undo operation completed", Notice: errors.New("only 1 of 3 undone")},
		{Verb: "list"},
	}})
	printResults(nil)

	if got := out.String(); got != "→ Inserted #ff0000 at 0\n→ Undo operation completed\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "! undo: only 1 of 3 undone\n" {
		t.Errorf("stderr = %q", got)
	}
}
