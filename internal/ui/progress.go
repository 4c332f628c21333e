package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// StatusLine is the single in-place line showing what is running
type StatusLine interface {
	Update(text string, done, total int)
	Clear()
	Finish()
}

// ProgressStatus renders the status line as a progress bar
type ProgressStatus struct {
	bar     *progressbar.ProgressBar
	visible bool
}

// NewProgressStatus creates a status line for total runs writing to w
func NewProgressStatus(w io.Writer, total int) *ProgressStatus {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
	)
	return &ProgressStatus{bar: bar}
}

// Update replaces the status text and progress in place
func (p *ProgressStatus) Update(text string, done, total int) {
	p.bar.Describe(text)
	_ = p.bar.Set(done)
	p.visible = true
}

// Clear erases the status line so a permanent line can be printed
func (p *ProgressStatus) Clear() {
	if !p.visible {
		return
	}
	_ = p.bar.Clear()
	p.visible = false
}

// Finish removes the status line for good
func (p *ProgressStatus) Finish() {
	p.Clear()
	_ = p.bar.Exit()
}

// NopStatus discards status updates, for non-terminal output
type NopStatus struct{}

func (NopStatus) Update(string, int, int) {}
func (NopStatus) Clear()                  {}
func (NopStatus) Finish()                 {}

// NewStatusLine returns a ProgressStatus when f is a terminal and a NopStatus otherwise
func NewStatusLine(f *os.File, total int) StatusLine {
	if !term.IsTerminal(int(f.Fd())) {
		return NopStatus{}
	}
	return NewProgressStatus(f, total)
}
