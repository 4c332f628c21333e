package ui

import "cpr/internal/domain"

// Viewer displays saved session results
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}
