package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/patterns"
	"github.com/rs/zerolog"
)

// DefaultMinConfidence is the floor applied when none is configured.
const DefaultMinConfidence = 0.5

const minCredentialLength = 6

// credentialStopList holds placeholder tokens that mark a credential
// candidate as a false positive.
var credentialStopList = []string{
	"password", "secret", "token", "key", "test", "example",
	"placeholder", "your_", "xxx", "...", "null", "undefined",
	"true", "false", "none", "empty", "default", "sample",
}

// SecretExtractor runs the API key, secret and credential rule sets in that
// order. A literal value is reported once per call, by the first rule that
// produced it.
type SecretExtractor struct {
	catalog       *patterns.Catalog
	minConfidence float64
	contextExt    *ContextExtractor
	logger        zerolog.Logger
}

// NewSecretExtractor creates a secret extractor over catalog.
func NewSecretExtractor(catalog *patterns.Catalog, minConfidence float64, logger zerolog.Logger) *SecretExtractor {
	return &SecretExtractor{
		catalog:       catalog,
		minConfidence: minConfidence,
		contextExt:    NewContextExtractor(DefaultSnippetSize),
		logger:        logger.With().Str("component", "SecretExtractor").Logger(),
	}
}

func (se *SecretExtractor) Name() string { return "secrets" }

func (se *SecretExtractor) Extract(content, source string) ([]models.Finding, error) {
	seen := make(map[string]struct{})
	var findings []models.Finding

	findings = se.applyRules(se.catalog.APIKeys, models.KindAPIKey, content, source, seen, findings)
	findings = se.applyRules(se.catalog.Secrets, models.KindSecret, content, source, seen, findings)
	findings = se.applyRules(se.catalog.Credentials, models.KindCredential, content, source, seen, findings)

	se.logger.Debug().Str("source", source).Int("findings", len(findings)).Msg("Secret extraction completed")
	return findings, nil
}

func (se *SecretExtractor) applyRules(rules []patterns.Rule, kind models.FindingKind, content, source string, seen map[string]struct{}, findings []models.Finding) []models.Finding {
	for _, r := range rules {
		if r.Confidence < se.minConfidence {
			continue
		}

		for _, m := range findAll(se.logger, r.Matcher, r.ID, content, source) {
			if _, dup := seen[m.Value]; dup {
				continue
			}
			if kind == models.KindCredential && isCredentialFalsePositive(m.Value) {
				continue
			}
			seen[m.Value] = struct{}{}

			findings = append(findings, models.Finding{
				Kind:       kind,
				Value:      m.Value,
				SecretType: r.SecretType,
				Severity:   r.Severity,
				Source:     source,
				Line:       se.contextExt.LineNumber(content, m.Start),
				Context:    se.contextExt.ExtractContext(content, m.Start, m.End),
				Confidence: r.Confidence,
			})
		}
	}
	return findings
}

func isCredentialFalsePositive(value string) bool {
	if utf8.RuneCountInString(value) < minCredentialLength {
		return true
	}
	lower := strings.ToLower(value)
	for _, token := range credentialStopList {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
