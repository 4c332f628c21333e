package parser

import (
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"

	"cpr/internal/domain"
)

const (
	// durationMarker follows the seconds value on a --durations=yes line, e.g. "0.123 s: name".
	durationMarker = " s:"
	// minSeparatorLen is the shortest row of '=' taken as the summary separator.
	minSeparatorLen = 5
)

// Catch2Parser parses output of a Catch2 binary run with --durations=yes
type Catch2Parser struct{}

// NewCatch2Parser creates a new Catch2Parser
func NewCatch2Parser() *Catch2Parser {
	return &Catch2Parser{}
}

// Parse reports a pass exactly when exitCode is zero, with the duration
// found in output or domain.NoDuration.
func (p *Catch2Parser) Parse(output string, exitCode int) domain.TestResult {
	return domain.TestResult{
		Passed:   exitCode == 0,
		Duration: ParseDuration(output),
	}
}

// ParseDuration scans output from the end for the separator row and parses
// the seconds value on the line before it. Only the separator nearest the
// end is considered; a miss yields domain.NoDuration.
func ParseDuration(output string) float64 {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	for i := len(lines) - 1; i > 0; i-- {
		if !isSeparator(lines[i]) {
			continue
		}
		return parseDurationLine(lines[i-1])
	}
	return domain.NoDuration
}

func isSeparator(line string) bool {
	line = strings.TrimSpace(stripansi.Strip(line))
	if len(line) < minSeparatorLen {
		return false
	}
	return strings.Trim(line, "=") == ""
}

func parseDurationLine(line string) float64 {
	line = strings.TrimSpace(stripansi.Strip(line))
	idx := strings.Index(line, durationMarker)
	if idx <= 0 {
		return domain.NoDuration
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(line[:idx]), 64)
	if err != nil || d < 0 {
		return domain.NoDuration
	}
	return d
}
