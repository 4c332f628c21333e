package cli

import (
	"fmt"

	"cpr/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	Executable  string
	Filter      string
	Jobs        int
	Repeat      int
	Verbose     bool
	Quiet       bool
	RandomOrder bool
	LogFile     string
	HistoryDSN  string
	OnlyFailed  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Executable:  f.Executable,
		Filter:      f.Filter,
		Jobs:        f.Jobs,
		Repeat:      f.Repeat,
		Verbose:     f.Verbose,
		Quiet:       f.Quiet,
		RandomOrder: f.RandomOrder,
		LogFile:     f.LogFile,
		HistoryDSN:  f.HistoryDSN,
		OnlyFailed:  f.OnlyFailed,
	}
}

// SetTarget takes the test executable and optional filter from positional args
func (f *Flags) SetTarget(args []string) {
	if len(args) > 0 {
		f.Executable = args[0]
	}
	if len(args) > 1 {
		f.Filter = args[1]
	}
}

// ExitError carries a process exit code without an error message, e.g.
// when the run finished but some tests failed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
