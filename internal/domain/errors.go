package domain

import "fmt"

// DiscoveryError means the test binary could not be listed or its listing
// could not be parsed.
type DiscoveryError struct {
	Executable string
	Stderr     string
	Err        error
}

func (e *DiscoveryError) Error() string {
	msg := fmt.Sprintf("test discovery failed for %s: %v", e.Executable, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// NoMatchError means the filter selected zero test cases.
type NoMatchError struct {
	Filter string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf(`No matching test cases for "%s"`, e.Filter)
}

// SpawnError means a test process could not be started.
type SpawnError struct {
	Test TestCase
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start test %s: %v", e.Test.Label(), e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }
