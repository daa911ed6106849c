package extractor

import (
	"strings"

	"github.com/BishopFox/jsluice"
	"github.com/rs/zerolog"
)

// Candidate is a raw path literal recovered from the syntax tree, located
// back in the source text.
type Candidate struct {
	Raw   string
	Start int
	End   int
}

// JSluiceAnalyzer recovers URL and path literals that are assembled in code
// (fetch calls, string concatenation, location assignments) and which the
// plain regex matchers miss.
type JSluiceAnalyzer struct {
	logger zerolog.Logger
}

// NewJSluiceAnalyzer creates a new jsluice analyzer
func NewJSluiceAnalyzer(logger zerolog.Logger) *JSluiceAnalyzer {
	return &JSluiceAnalyzer{
		logger: logger.With().Str("component", "JSluiceAnalyzer").Logger(),
	}
}

// Candidates returns rooted path candidates in discovery order. A parser
// panic is logged and yields no candidates.
func (jsa *JSluiceAnalyzer) Candidates(content, source string) (candidates []Candidate) {
	defer func() {
		if r := recover(); r != nil {
			jsa.logger.Warn().Interface("panic", r).Str("source", source).Msg("jsluice analysis panicked")
			candidates = nil
		}
	}()

	results := jsluice.NewAnalyzer([]byte(content)).GetURLs()
	jsa.logger.Debug().Str("source", source).Int("jsluice_url_count", len(results)).Msg("Jsluice analysis completed")

	cursor := 0
	for _, res := range results {
		if !strings.HasPrefix(res.URL, "/") {
			continue
		}
		start := indexFrom(content, res.URL, cursor)
		if start < 0 {
			start = strings.Index(content, res.URL)
		}
		if start < 0 {
			// Assembled from pieces; anchor on the first line.
			candidates = append(candidates, Candidate{Raw: res.URL})
			continue
		}
		cursor = start + len(res.URL)
		candidates = append(candidates, Candidate{Raw: res.URL, Start: start, End: cursor})
	}
	return candidates
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i < 0 {
		return -1
	}
	return from + i
}
