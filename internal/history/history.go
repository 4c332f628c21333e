package history

import (
	"context"

	"cpr/internal/domain"
)

// Store records finished sessions for trend analysis across runs.
type Store interface {
	RecordSession(ctx context.Context, meta domain.TestResultsMeta, runs []domain.RunRecord) error
	Close() error
}
