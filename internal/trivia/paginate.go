package trivia

import "strconv"

// QuestionsPerPage is the fixed page size for all listing endpoints.
const QuestionsPerPage = 10

// ParsePage interprets a raw page query value. Absent, non-numeric, or
// non-positive input falls back to page 1. There is no upper bound; a page
// past the data simply yields an empty window.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate returns the 1-indexed page window over items, clipped to the slice
// bounds. The result is never nil so empty pages encode as [].
func paginate[T any](page, size int, items []T) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
