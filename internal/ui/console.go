package ui

import (
	"fmt"
	"io"

	"cpr/internal/storage"
)

// Console writes permanent lines to the terminal and the transcript, and
// keeps the status line out of both the scrollback and the transcript.
type Console struct {
	out        io.Writer
	transcript *storage.Transcript
	status     StatusLine
	err        error
}

// NewConsole creates a Console. transcript and status may be nil.
func NewConsole(out io.Writer, transcript *storage.Transcript, status StatusLine) *Console {
	if status == nil {
		status = NopStatus{}
	}
	return &Console{out: out, transcript: transcript, status: status}
}

// Line records s in the transcript and prints it when show is set.
func (c *Console) Line(s string, show bool) {
	if show {
		c.status.Clear()
		fmt.Fprintln(c.out, s)
	}
	if c.transcript != nil {
		if err := c.transcript.WriteLine(s); err != nil && c.err == nil {
			c.err = err
		}
	}
}

// Print writes s to the terminal only.
func (c *Console) Print(s string) {
	c.status.Clear()
	fmt.Fprintln(c.out, s)
}

// Status updates the in-place status line.
func (c *Console) Status(text string, done, total int) {
	c.status.Update(text, done, total)
}

// FinishStatus removes the status line.
func (c *Console) FinishStatus() {
	c.status.Finish()
}

// Err returns the first transcript write error.
func (c *Console) Err() error {
	return c.err
}
