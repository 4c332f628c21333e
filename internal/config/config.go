package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Execution settings
	Jobs           int           `yaml:"jobs"`
	Repeat         int           `yaml:"repeat"`
	RandomOrder    bool          `yaml:"random_order"`
	StatusInterval time.Duration `yaml:"status_interval"`

	// Output settings
	Verbose bool   `yaml:"verbose"`
	Quiet   bool   `yaml:"quiet"`
	LogFile string `yaml:"log"`

	// Last-run results
	ResultsDir  string `yaml:"results_dir"`
	ResultsFile string `yaml:"results_file"`

	// Optional MySQL DSN for run history
	HistoryDSN string `yaml:"history_dsn"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
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

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		Jobs:           DefaultJobs(),
		Repeat:         DefaultRepeat,
		StatusInterval: DefaultStatusInterval,
		LogFile:        DefaultLogFile,
		ResultsDir:     DefaultResultsDir,
		ResultsFile:    DefaultResultsFile,
	}
}

// Load builds a config from defaults, the .env file, CPR_* environment
// variables and an optional YAML file, in that order. An empty path reads
// DefaultConfigFile if it exists.
func Load(path string) (*Config, error) {
	cfg := New()

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(DefaultEnvFile)

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.applyFile(path, explicit); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvJobs, v, err)
		}
		c.Jobs = n
	}
	if v := os.Getenv(EnvRepeat); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRepeat, v, err)
		}
		c.Repeat = n
	}
	if v := os.Getenv(EnvRandomOrder); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRandomOrder, v, err)
		}
		c.RandomOrder = b
	}
	if v := os.Getenv(EnvLog); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvHistoryDSN); v != "" {
		c.HistoryDSN = v
	}
	return nil
}

func (c *Config) applyFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyFlags copies parsed flags into the config. Zero-valued numeric and
// string flags keep the configured value.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Jobs > 0 {
		c.Jobs = flags.Jobs
	}
	if flags.Repeat > 0 {
		c.Repeat = flags.Repeat
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.HistoryDSN != "" {
		c.HistoryDSN = flags.HistoryDSN
	}
	c.Verbose = c.Verbose || flags.Verbose
	c.Quiet = c.Quiet || flags.Quiet
	c.RandomOrder = c.RandomOrder || flags.RandomOrder
}

// Validate rejects option combinations the runner cannot honour
func (c *Config) Validate() error {
	if c.Quiet && c.Verbose {
		return errors.New("Can not be both quiet and verbose at the same time.")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", c.Repeat)
	}
	if c.StatusInterval <= 0 {
		c.StatusInterval = DefaultStatusInterval
	}
	return nil
}

// GetOutputPath returns the absolute path of the last-run results file so
// run and failures always read/write the same file.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ResultsDir, c.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetLogPath returns the absolute transcript path
func (c *Config) GetLogPath() string {
	if abs, err := filepath.Abs(c.LogFile); err == nil {
		return abs
	}
	return c.LogFile
}
