package discovery

import "cpr/internal/domain"

// Expand returns repeat sequential copies of cases as independent
// occurrences indexed in discovery order. repeat below 1 is treated as 1.
func Expand(cases []domain.TestCase, repeat int) []domain.Occurrence {
	if repeat < 1 {
		repeat = 1
	}
	occurrences := make([]domain.Occurrence, 0, len(cases)*repeat)
	for r := 0; r < repeat; r++ {
		for _, tc := range cases {
			occurrences = append(occurrences, domain.Occurrence{Case: tc, Index: len(occurrences)})
		}
	}
	return occurrences
}
