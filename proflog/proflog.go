// Package proflog provides the append-only execution log written during a
// profile run. A run log is a plain-text trace of stage markers and
// failures, separate from the server's structured logging.
package proflog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger is an append-only execution log sink.
// Implementations must be safe to call after a failed open; the Nop
// logger exists so a missing log never blocks execution.
type Logger interface {
	Println(msg string)
	PrintlnError(msg string, err error)

	// Close flushes and releases any held file handle.
	Close() error
}

type nop struct{}

func (nop) Println(string)             {}
func (nop) PrintlnError(string, error) {}
func (nop) Close() error               { return nil }

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

// File is a run log appending timestamped lines to a per-profile file.
type File struct {
	mu sync.Mutex
	f  *os.File
}

// NewFile opens (creating if needed) the run log for profileID under dir.
func NewFile(dir, profileID string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run log dir: %w", err)
	}
	f, err := os.OpenFile(
		filepath.Join(dir, profileID+".log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	return &File{f: f}, nil
}

func (l *File) println(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, "%s %s\n", time.Now().Format("2006-01-02 15:04:05"), line)
}

func (l *File) Println(msg string) {
	l.println(msg)
}

func (l *File) PrintlnError(msg string, err error) {
	if msg == "" {
		l.println(err.Error())
		return
	}
	l.println(msg + ": " + err.Error())
}

func (l *File) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
