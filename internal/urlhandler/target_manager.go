package urlhandler

import (
	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/rs/zerolog"
)

// TargetManager turns command-line inputs into the list of targets to scan
type TargetManager struct {
	logger zerolog.Logger
}

// NewTargetManager creates a new TargetManager instance
func NewTargetManager(logger zerolog.Logger) *TargetManager {
	return &TargetManager{
		logger: logger.With().Str("component", "TargetManager").Logger(),
	}
}

// LoadTargets returns the targets from either a single URL or a list file,
// plus a label describing where they came from.
func (tm *TargetManager) LoadTargets(singleURL, listFile string) ([]string, string, error) {
	switch {
	case singleURL != "" && listFile != "":
		return nil, "", common.NewValidationError("input", singleURL, "use either a single URL or a list file, not both")

	case listFile != "":
		urls, err := ReadURLsFromFile(listFile, tm.logger)
		if err != nil {
			return nil, listFile, common.WrapError(err, "failed to load URLs from file '"+listFile+"'")
		}
		tm.logger.Info().Int("count", len(urls)).Str("source", listFile).Msg("Loaded targets from list file")
		return urls, listFile, nil

	case singleURL != "":
		normalized, err := NormalizeURL(singleURL)
		if err != nil {
			return nil, "url", common.NewValidationError("url", singleURL, err.Error())
		}
		return []string{normalized}, "url", nil
	}

	tm.logger.Warn().Msg("No input source configured for targets")
	return nil, "no_input", common.WrapError(common.ErrInvalidInput, "no targets given")
}
