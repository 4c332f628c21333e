package parser

import "cpr/internal/domain"

// Parser turns the captured output of a completed run into a result
type Parser interface {
	Parse(output string, exitCode int) domain.TestResult
}
