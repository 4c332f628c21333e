package execution

import (
	"bytes"
	"context"
	"os/exec"

	"cpr/internal/config"
	"cpr/internal/domain"
)

// Runner spawns a test binary for a single test case
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Args returns the execution arguments for a single test case
func (r *Runner) Args(tc domain.TestCase) []string {
	args := []string{tc.Name, "--colour-mode=ansi", "--durations=yes"}
	if r.config.RandomOrder {
		args = append(args, "--order=rand")
	}
	return args
}

// Launch starts the test binary for occ with stdout and stderr captured
// into one buffer. The returned run is in the running state.
func (r *Runner) Launch(ctx context.Context, occ domain.Occurrence) (*domain.TestRun, error) {
	run := domain.NewTestRun(occ)

	cmd := exec.CommandContext(ctx, r.config.Flags.Executable, r.Args(occ.Case)...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		return nil, &domain.SpawnError{Test: occ.Case, Err: err}
	}
	run.MarkRunning(cmd, &output)
	return run, nil
}
