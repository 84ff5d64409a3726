package proflog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFile(dir, "p1")
	if err != nil {
		t.Fatal(err)
	}
	l.Println("====> Started execution with state on")
	l.PrintlnError("freeze/unfreeze", errors.New("agent unavailable"))
	l.PrintlnError("", errors.New("bare error"))
	if err = l.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "p1.log"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, have %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "====> Started execution with state on") {
		t.Errorf("unexpected line: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "freeze/unfreeze: agent unavailable") {
		t.Errorf("unexpected line: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "bare error") {
		t.Errorf("unexpected line: %q", lines[2])
	}

	// append, not truncate
	l, err = NewFile(dir, "p1")
	if err != nil {
		t.Fatal(err)
	}
	l.Println("====> Execution completed.")
	l.Close()
	raw, err = os.ReadFile(filepath.Join(dir, "p1.log"))
	if err != nil {
		t.Fatal(err)
	}
	if have := strings.Count(string(raw), "\n"); have != 4 {
		t.Errorf("expected 4 lines after reopen, have %d", have)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Println("discarded")
	l.PrintlnError("discarded", errors.New("discarded"))
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}
