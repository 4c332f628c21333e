package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"cpr/internal/config"
	"cpr/internal/storage"
	"cpr/internal/ui"
)

// FailuresCommand opens the failing runs of the last session
type FailuresCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	return fc.Show()
}

// Show loads the saved session and hands it to the viewer
func (fc *FailuresCommand) Show() error {
	results, err := fc.storage.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no saved results at %s, run \"cpr run <test_exe>\" first", fc.config.GetOutputPath())
	}
	if err != nil {
		return fmt.Errorf("results at %s: %w", fc.config.GetOutputPath(), err)
	}

	return fc.viewer.View(results)
}
