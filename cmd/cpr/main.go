package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cpr/internal/cli"
	"cpr/internal/cli/commands"
	"cpr/internal/config"
	"cpr/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "cpr",
		Short:         "Parallel Catch2 test runner",
		Long:          `Run every test case of a Catch2 test binary as its own process, in parallel, and summarise the results.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var noMatch *domain.NoMatchError
	if errors.As(err, &noMatch) {
		fmt.Fprintln(os.Stderr, color.YellowString(noMatch.Error()))
		return 1
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
