package commands

import (
	"cpr/internal/config"
	"cpr/internal/discovery"
	"cpr/internal/ui"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	loader    *discovery.Loader
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, loader *discovery.Loader, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		loader:    loader,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := lc.loader.Load(cmd.Context(), lc.config.Flags.Executable, lc.config.Flags.Filter)
	if err != nil {
		return err
	}
	return lc.formatter.PrintTestList(cases)
}
