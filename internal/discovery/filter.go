package discovery

import "cpr/internal/domain"

// Filter narrows a discovered catalog
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByNames keeps the cases whose name is in names, preserving catalog
// order. An empty names list returns no cases.
func (f *Filter) FilterByNames(tests []domain.TestCase, names []string) []domain.TestCase {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var filtered []domain.TestCase
	for _, test := range tests {
		if wanted[test.Name] {
			filtered = append(filtered, test)
		}
	}
	return filtered
}
