package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"cpr/internal/config"
	"cpr/internal/domain"
	"cpr/internal/parser"
)

var (
	okMark      = color.New(color.FgHiGreen).SprintFunc()
	failMark    = color.New(color.FgHiRed).SprintFunc()
	runningMark = color.New(color.FgHiBlue).SprintFunc()
)

// Reporter aggregates harvested runs into a Summary and prints a result
// line for each. It is driven from the scheduler loop only.
type Reporter struct {
	config  *config.Config
	console *Console
	parser  parser.Parser
	summary *domain.Summary

	counter    int
	countWidth int
	nameWidth  int
	statusIdx  int

	failures []domain.TestFailure
	records  []domain.RunRecord
}

// NewReporter creates a Reporter for the given expanded catalog.
func NewReporter(cfg *config.Config, console *Console, p parser.Parser, runID string, occurrences []domain.Occurrence) *Reporter {
	total := len(occurrences)
	nameWidth := 0
	for _, occ := range occurrences {
		if n := len(occ.Case.Label()); n > nameWidth {
			nameWidth = n
		}
	}
	return &Reporter{
		config:     cfg,
		console:    console,
		parser:     p,
		summary:    domain.NewSummary(runID, total),
		countWidth: 2*len(fmt.Sprint(total)) + 1,
		nameWidth:  nameWidth,
	}
}

// Completed parses a harvested run, counts it and prints its result line.
func (r *Reporter) Completed(run *domain.TestRun) {
	defer run.Release()
	r.counter++

	code, _ := run.ExitCode()
	output := run.Output()
	res := r.parser.Parse(output, code)
	run.SetResult(res)
	r.summary.Record(run.Occurrence, res.Passed)
	r.records = append(r.records, domain.RunRecord{
		Occurrence: run.Occurrence,
		ExitCode:   code,
		Passed:     res.Passed,
		Duration:   res.Duration,
	})

	count := fmt.Sprintf("%d/%d", r.counter, r.summary.Total)
	label := run.Case.Label()
	trimmed := strings.TrimSpace(output)

	if res.Passed {
		r.console.Line(fmt.Sprintf("%-*s %-*s %s   %.3fs", r.countWidth, count, r.nameWidth, label, okMark("OK"), res.Duration), !r.config.Quiet)
		r.console.Line(trimmed, r.config.Verbose)
		return
	}

	r.console.Line(fmt.Sprintf("%-*s %-*s %s %.3fs", r.countWidth, count, r.nameWidth, label, failMark("FAIL"), res.Duration), true)
	r.console.Line(trimmed, true)
	r.console.Line("", true)

	r.failures = append(r.failures, domain.TestFailure{
		Name:     run.Case.Name,
		Tags:     run.Case.Tags,
		File:     run.Case.File,
		Line:     run.Case.Line,
		Index:    run.Index,
		ExitCode: code,
		Duration: res.Duration,
		Output:   output,
	})
}

// Waiting rotates the status line through the runs still in flight.
func (r *Reporter) Waiting(running []*domain.TestRun) {
	if len(running) == 0 {
		return
	}
	r.statusIdx = (r.statusIdx + 1) % len(running)
	count := fmt.Sprintf("%d/%d", r.counter, r.summary.Total)
	text := runningMark(fmt.Sprintf("Running %-*s", r.countWidth, count)) + " " + running[r.statusIdx].Case.Label()
	r.console.Status(text, r.counter, r.summary.Total)
}

// Finish prints the session summary and the failing tests in discovery order.
func (r *Reporter) Finish(elapsed time.Duration) {
	r.summary.Elapsed = elapsed
	r.console.FinishStatus()

	r.console.Line("", true)
	r.console.Line(fmt.Sprintf("Total time: %.3fs", elapsed.Seconds()), true)
	r.console.Line(fmt.Sprintf("%-5s %d", "OK", r.summary.OK), true)
	r.console.Line(fmt.Sprintf("%-5s %d", "FAIL", r.summary.Failing), true)
	r.console.Line("", true)

	if r.summary.Failing == 0 {
		r.console.Line(okMark("All tests ok"), true)
		return
	}
	r.console.Line(failMark("Failing test cases:"), true)
	for _, occ := range r.summary.Failed() {
		r.console.Line(occ.Case.Label(), true)
	}
}

// Summary returns the session accumulator.
func (r *Reporter) Summary() *domain.Summary {
	return r.summary
}

// Failures returns one record per failing occurrence in discovery order.
func (r *Reporter) Failures() []domain.TestFailure {
	out := make([]domain.TestFailure, len(r.failures))
	copy(out, r.failures)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Records returns every harvested run in harvest order.
func (r *Reporter) Records() []domain.RunRecord {
	out := make([]domain.RunRecord, len(r.records))
	copy(out, r.records)
	return out
}
