// Package extractor classifies JavaScript text into findings.
package extractor

import (
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/patterns"
	"github.com/rs/zerolog"
)

// Extractor turns one content blob into findings. Implementations are safe
// for concurrent use.
type Extractor interface {
	Name() string
	Extract(content, source string) ([]models.Finding, error)
}

// findAll runs a matcher and logs, rather than propagates, a failed
// evaluation so the remaining rules still run.
func findAll(logger zerolog.Logger, m patterns.Matcher, id, content, source string) []patterns.Match {
	matches, err := m.FindAll(content)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("rule", id).
			Str("source", source).
			Msg("Rule evaluation failed, skipping rule for this content")
		return nil
	}
	return matches
}
