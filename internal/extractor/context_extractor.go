package extractor

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSnippetSize is the number of characters kept on each side of a match.
	DefaultSnippetSize = 50
	ellipsis           = "..."
)

// ContextExtractor builds the line number and surrounding snippet of a match
type ContextExtractor struct {
	snippetSize int
}

// NewContextExtractor creates a new context extractor
func NewContextExtractor(snippetSize int) *ContextExtractor {
	if snippetSize <= 0 {
		snippetSize = DefaultSnippetSize
	}
	return &ContextExtractor{snippetSize: snippetSize}
}

// LineNumber returns the 1-based line of the byte offset.
func (ce *ContextExtractor) LineNumber(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}

// ExtractContext returns snippetSize characters either side of [start,end),
// with whitespace runs collapsed and an ellipsis on each truncated side.
func (ce *ContextExtractor) ExtractContext(content string, start, end int) string {
	from := start
	for i := 0; i < ce.snippetSize && from > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(content[:from])
		from -= size
	}

	to := end
	for i := 0; i < ce.snippetSize && to < len(content); i++ {
		_, size := utf8.DecodeRuneInString(content[to:])
		to += size
	}

	snippet := strings.Join(strings.Fields(content[from:to]), " ")
	if from > 0 {
		snippet = ellipsis + snippet
	}
	if to < len(content) {
		snippet += ellipsis
	}
	return snippet
}
