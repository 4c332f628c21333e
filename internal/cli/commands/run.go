package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"cpr/internal/cli"
	"cpr/internal/config"
	"cpr/internal/discovery"
	"cpr/internal/domain"
	"cpr/internal/execution"
	"cpr/internal/history"
	"cpr/internal/parser"
	"cpr/internal/storage"
	"cpr/internal/ui"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// HistoryOpener connects to the run-history store for a DSN
type HistoryOpener func(ctx context.Context, dsn string) (history.Store, error)

// RunCommand handles the run command
type RunCommand struct {
	config      *config.Config
	loader      *discovery.Loader
	filter      *discovery.Filter
	launcher    execution.Launcher
	parser      parser.Parser
	storage     storage.Storage
	out         io.Writer
	statusLine  func(total int) ui.StatusLine
	openHistory HistoryOpener

	openTranscript func(path string) (*storage.Transcript, error)
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	loader *discovery.Loader,
	filter *discovery.Filter,
	launcher execution.Launcher,
	p parser.Parser,
	st storage.Storage,
	out io.Writer,
	statusLine func(total int) ui.StatusLine,
	openHistory HistoryOpener,
) *RunCommand {
	return &RunCommand{
		config:      cfg,
		loader:      loader,
		filter:      filter,
		launcher:    launcher,
		parser:      p,
		storage:     st,
		out:         out,
		statusLine:  statusLine,
		openHistory: openHistory,

		openTranscript: storage.OpenTranscript,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return rc.Run(ctx)
}

// Run discovers, schedules and reports one session. It returns a
// *cli.ExitError when the session finished with failing tests.
func (rc *RunCommand) Run(ctx context.Context) (err error) {
	cfg := rc.config
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Discover tests
	cases, err := rc.loader.Load(ctx, cfg.Flags.Executable, cfg.Flags.Filter)
	if err != nil {
		return err
	}

	if cfg.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			return fmt.Errorf("load last results: %w", err)
		}
		cases = rc.filter.FilterByNames(cases, last.FailedNames())
		if len(cases) == 0 {
			return &domain.NoMatchError{Filter: "failed tests of last run"}
		}
	}

	occurrences := discovery.Expand(cases, cfg.Repeat)

	transcript, err := rc.openTranscript(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := transcript.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close transcript: %w", cerr)
		}
	}()

	var status ui.StatusLine
	if rc.statusLine != nil {
		status = rc.statusLine(len(occurrences))
	}
	console := ui.NewConsole(rc.out, transcript, status)

	runID := uuid.NewString()
	reporter := ui.NewReporter(cfg, console, rc.parser, runID, occurrences)
	scheduler := execution.NewScheduler(rc.launcher, cfg.Jobs, cfg.StatusInterval)

	stats, err := scheduler.Run(ctx, occurrences, reporter)
	if err != nil {
		console.FinishStatus()
		return err
	}
	reporter.Finish(stats.Elapsed)

	summary := reporter.Summary()
	meta := domain.TestResultsMeta{
		RunID:           runID,
		Executable:      cfg.Flags.Executable,
		Filter:          cfg.Flags.Filter,
		TotalRuns:       summary.Total,
		PassedRuns:      summary.OK,
		FailedRuns:      summary.Failing,
		Jobs:            scheduler.Jobs(),
		Repeat:          cfg.Repeat,
		Duration:        stats.Elapsed.String(),
		DurationSeconds: stats.Elapsed.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	// Save results
	if err := rc.storage.Save(meta, reporter.Failures()); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if cfg.HistoryDSN != "" && rc.openHistory != nil {
		if err := rc.recordHistory(ctx, meta, reporter.Records()); err != nil {
			console.Print(color.YellowString("Warning: %v", err))
		}
	}

	console.Print("")
	console.Print(fmt.Sprintf("Full test log written to %s", cfg.GetLogPath()))

	if err := console.Err(); err != nil {
		return err
	}
	if summary.Failing > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func (rc *RunCommand) recordHistory(ctx context.Context, meta domain.TestResultsMeta, runs []domain.RunRecord) error {
	store, err := rc.openHistory(ctx, rc.config.HistoryDSN)
	if err != nil {
		return fmt.Errorf("history disabled: %w", err)
	}
	defer store.Close()

	if err := store.RecordSession(ctx, meta, runs); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}
