package execution

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpr/internal/config"
	"cpr/internal/domain"
)

func TestRunner_Args(t *testing.T) {
	cfg := config.New()
	r := NewRunner(cfg)
	tc := domain.TestCase{Name: "adds numbers", Tags: "[math]"}

	assert.Equal(t, []string{"adds numbers", "--colour-mode=ansi", "--durations=yes"}, r.Args(tc))

	cfg.RandomOrder = true
	assert.Equal(t, []string{"adds numbers", "--colour-mode=ansi", "--durations=yes", "--order=rand"}, r.Args(tc))
}

func TestRunner_Launch(t *testing.T) {
	r, _ := fakeRunner(t, 0)

	t.Run("passing test", func(t *testing.T) {
		run, err := r.Launch(context.Background(), domain.Occurrence{Case: domain.TestCase{Name: "pass-one"}})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRunning, run.Status())

		run.Wait()
		code, ok := run.ExitCode()
		require.True(t, ok)
		assert.Equal(t, 0, code)
		assert.Contains(t, run.Output(), "0.042 s: pass-one")
		assert.Contains(t, run.Output(), "running pass-one", "stderr must be captured with stdout")
		assert.Contains(t, run.Output(), "--colour-mode=ansi --durations=yes")
	})

	t.Run("failing test", func(t *testing.T) {
		run, err := r.Launch(context.Background(), domain.Occurrence{Case: domain.TestCase{Name: "fail-one"}})
		require.NoError(t, err)

		run.Wait()
		code, ok := run.ExitCode()
		require.True(t, ok)
		assert.Equal(t, 1, code)
	})
}

func TestRunner_LaunchMissingBinary(t *testing.T) {
	cfg := config.New()
	cfg.Flags.Executable = filepath.Join(t.TempDir(), "missing")
	r := NewRunner(cfg)

	_, err := r.Launch(context.Background(), domain.Occurrence{Case: domain.TestCase{Name: "x"}})
	var spawnErr *domain.SpawnError
	require.True(t, errors.As(err, &spawnErr), "got %v", err)
	assert.Equal(t, "x", spawnErr.Test.Name)
}
