package storage

import (
	"cpr/internal/config"
	"cpr/internal/domain"
)

// Storage persists and loads the last session's results (for --failed and the failures viewer).
type Storage interface {
	Save(meta domain.TestResultsMeta, failures []domain.TestFailure) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after toggling resolved flags).
	SaveOutput(output *domain.TestResultsOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
