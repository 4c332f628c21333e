package config

import (
	"runtime"
	"time"
)

const (
	// DefaultLogFile is the default transcript path
	DefaultLogFile = "testlog.txt"
	// DefaultRepeat is the default number of catalog repetitions
	DefaultRepeat = 1
	// DefaultResultsFile is the default last-run results file name
	DefaultResultsFile = "cpr-results.json"
	// DefaultResultsDir is the default results directory
	DefaultResultsDir = ".cpr"
	// DefaultConfigFile is read when present and no --config path is given
	DefaultConfigFile = "cpr.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
	// DefaultStatusInterval is how often the running status line rotates
	DefaultStatusInterval = 200 * time.Millisecond
)

// Environment variables read by Load
const (
	EnvJobs        = "CPR_JOBS"
	EnvRepeat      = "CPR_REPEAT"
	EnvLog         = "CPR_LOG"
	EnvHistoryDSN  = "CPR_HISTORY_DSN"
	EnvRandomOrder = "CPR_RANDOM_ORDER"
)

// DefaultJobs leaves one CPU for the runner itself
func DefaultJobs() int {
	if n := runtime.NumCPU() - 1; n > 0 {
		return n
	}
	return 1
}
