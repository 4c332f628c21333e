package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"cpr/internal/domain"
)

// Formatter formats the catalog listing and saved session stats
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintTestList prints the discovered test cases with their source location
func (f *Formatter) PrintTestList(cases []domain.TestCase) error {
	fmt.Fprintln(f.out, color.CyanString("Discovered %d test case(s):", len(cases)))
	fmt.Fprintln(f.out)

	w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
	width := len(fmt.Sprint(len(cases)))
	for i, tc := range cases {
		fmt.Fprintf(w, "%*d.\t%s\t%s\n", width, i+1, tc.Label(), color.HiBlackString(tc.Location()))
	}
	return w.Flush()
}

// PrintMetaStats prints the stats of a saved session
func (f *Formatter) PrintMetaStats(meta domain.TestResultsMeta) {
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                    Last Test Session                          ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))

	rows := []struct {
		label string
		value string
	}{
		{"Run ID", meta.RunID},
		{"Executable", meta.Executable},
		{"Filter", meta.Filter},
		{"Total Runs", fmt.Sprint(meta.TotalRuns)},
		{"Passed Runs", color.GreenString("%d", meta.PassedRuns)},
		{"Failed Runs", color.RedString("%d", meta.FailedRuns)},
		{"Jobs", fmt.Sprint(meta.Jobs)},
		{"Repeat", fmt.Sprint(meta.Repeat)},
		{"Duration", fmt.Sprintf("%.3fs", meta.DurationSeconds)},
		{"Timestamp", meta.Timestamp},
	}
	for _, row := range rows {
		fmt.Fprintf(f.out, "  %-12s %s\n", row.label, row.value)
	}
	fmt.Fprintln(f.out)
}
