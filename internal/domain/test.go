package domain

import "fmt"

// TestCase identifies a single test case reported by the test binary.
// The same case appears once per repeat when the catalog is expanded.
type TestCase struct {
	Name string // Test case name as passed back to the binary
	Tags string // Raw tag string, e.g. "[fast][io]"
	File string // Source file from the listing, if reported
	Line int    // Source line from the listing, if reported
}

// Label returns the display form used in result lines and failure lists.
func (tc TestCase) Label() string {
	if tc.Tags == "" {
		return `"` + tc.Name + `"`
	}
	return fmt.Sprintf(`"%s" %s`, tc.Name, tc.Tags)
}

// Location returns "file:line", or an empty string if the listing had no source info.
func (tc TestCase) Location() string {
	if tc.File == "" {
		return ""
	}
	if tc.Line > 0 {
		return fmt.Sprintf("%s:%d", tc.File, tc.Line)
	}
	return tc.File
}

// Occurrence is one scheduling unit: a test case plus its position in the
// expanded catalog. Index is unique within a session.
type Occurrence struct {
	Case  TestCase
	Index int
}
