package domain

import (
	"sort"
	"time"
)

// NoDuration is reported when the output carries no parseable duration.
const NoDuration = -1.0

// TestResult is the outcome extracted from one completed run.
type TestResult struct {
	Passed   bool
	Duration float64 // Seconds, or NoDuration
}

// HasDuration reports whether a duration was found in the output.
func (r TestResult) HasDuration() bool {
	return r.Duration >= 0
}

// Summary accumulates the results of one scheduling session.
type Summary struct {
	RunID   string
	Total   int
	OK      int
	Failing int
	Elapsed time.Duration

	failed []Occurrence
}

// NewSummary returns an empty summary expecting total runs.
func NewSummary(runID string, total int) *Summary {
	return &Summary{RunID: runID, Total: total}
}

// Record counts one harvested run.
func (s *Summary) Record(occ Occurrence, passed bool) {
	if passed {
		s.OK++
		return
	}
	s.Failing++
	s.failed = append(s.failed, occ)
}

// Completed returns the number of runs recorded so far.
func (s *Summary) Completed() int {
	return s.OK + s.Failing
}

// Failed returns the failing occurrences in discovery order.
func (s *Summary) Failed() []Occurrence {
	out := make([]Occurrence, len(s.failed))
	copy(out, s.failed)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// TestResultsMeta contains metadata about a saved session.
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	Executable      string  `json:"executable"`
	Filter          string  `json:"filter"`
	TotalRuns       int     `json:"total_runs"`
	PassedRuns      int     `json:"passed_runs"`
	FailedRuns      int     `json:"failed_runs"`
	Jobs            int     `json:"jobs"`
	Repeat          int     `json:"repeat"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete saved structure of a session.
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}

// FailedNames returns the distinct failing test names in saved order.
func (o *TestResultsOutput) FailedNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range o.Details {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		names = append(names, f.Name)
	}
	return names
}

// RunRecord is the harvested outcome of one occurrence.
type RunRecord struct {
	Occurrence
	ExitCode int
	Passed   bool
	Duration float64
}
