package proximity

import "strings"

// ParseTerms splits raw user input on commas and newlines, trims each
// entry and drops empty ones. Order and duplicates are preserved.
func ParseTerms(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
