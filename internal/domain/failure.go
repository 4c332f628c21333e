package domain

// TestFailure is the saved record of one failing occurrence.
type TestFailure struct {
	Name     string  `json:"name"`
	Tags     string  `json:"tags"`
	File     string  `json:"file,omitempty"`
	Line     int     `json:"line,omitempty"`
	Index    int     `json:"index"`
	ExitCode int     `json:"exit_code"`
	Duration float64 `json:"duration"`
	Output   string  `json:"output"`
	Resolved bool    `json:"resolved,omitempty"` // Toggled from the failures viewer
}

// Case returns the test case the failure belongs to.
func (f TestFailure) Case() TestCase {
	return TestCase{Name: f.Name, Tags: f.Tags, File: f.File, Line: f.Line}
}
