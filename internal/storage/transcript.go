package storage

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/acarl005/stripansi"
)

// Transcript is the plain-text log of a session. Every line written to it
// has ANSI escape sequences removed.
type Transcript struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	path   string
}

// OpenTranscript creates (or truncates) the transcript file at path.
func OpenTranscript(path string) (*Transcript, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}
	return &Transcript{w: f, closer: f, path: path}, nil
}

// NewTranscript wraps w. Close closes w when it is an io.Closer.
func NewTranscript(w io.Writer) *Transcript {
	t := &Transcript{w: w}
	if c, ok := w.(io.Closer); ok {
		t.closer = c
	}
	return t
}

// WriteLine appends s and a newline.
func (t *Transcript) WriteLine(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.w, stripansi.Strip(s)+"\n"); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Path returns the file path, or "" for a wrapped writer.
func (t *Transcript) Path() string {
	return t.path
}

// Close closes the underlying file.
func (t *Transcript) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}
