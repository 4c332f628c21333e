package commands

import (
	"context"
	"os"

	"cpr/internal/cli"
	"cpr/internal/config"
	"cpr/internal/discovery"
	"cpr/internal/execution"
	"cpr/internal/history"
	"cpr/internal/parser"
	"cpr/internal/storage"
	"cpr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	listingParser := discovery.NewParser()
	loader := discovery.NewLoader(listingParser)
	filter := discovery.NewFilter()
	runner := execution.NewRunner(cfg)
	catch2Parser := parser.NewCatch2Parser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(os.Stdout)
	failureViewer := ui.NewFailureViewer(jsonStorage, formatter, os.Stdout)

	statusLine := func(total int) ui.StatusLine {
		return ui.NewStatusLine(os.Stdout, total)
	}
	openHistory := func(ctx context.Context, dsn string) (history.Store, error) {
		return history.OpenMySQL(ctx, dsn)
	}

	return &Commands{
		Run:      NewRunCommand(cfg, loader, filter, runner, catch2Parser, jsonStorage, os.Stdout, statusLine, openHistory),
		List:     NewListCommand(cfg, loader, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, failureViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file (default "+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	applyFlags := func(cmd *cobra.Command, args []string) error {
		flags.SetTarget(args)
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run <test_exe> [test_filter]",
		Short:   "Run test cases in parallel",
		Long:    "List the test cases of a test binary and run each one as its own process, at most --jobs at a time",
		Args:    cobra.RangeArgs(1, 2),
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Show full output of passing tests")
	runCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Only print failing tests and the summary")
	runCmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", 0, "Number of tests to run at once (default: CPU count minus one)")
	runCmd.Flags().IntVarP(&flags.Repeat, "repeat", "r", 0, "Run the whole catalog N times")
	runCmd.Flags().StringVar(&flags.LogFile, "log", "", "Transcript path (default "+config.DefaultLogFile+")")
	runCmd.Flags().BoolVar(&flags.RandomOrder, "order-rand", false, "Pass --order=rand to every test run")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that failed in the last run")
	runCmd.Flags().StringVar(&flags.HistoryDSN, "history-dsn", "", "MySQL DSN to record run history in")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list <test_exe> [test_filter]",
		Short:   "List discovered test cases",
		Long:    "List the test cases a filter selects without running them",
		Args:    cobra.RangeArgs(1, 2),
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View failing tests of the last run interactively",
		Long:  "Browse the failing runs saved by the last run and mark them resolved",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
