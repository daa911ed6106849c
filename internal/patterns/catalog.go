// Package patterns holds the ordered classification rules used by the
// extractors. Rules are compiled once at package init and are read-only.
package patterns

import (
	"regexp"

	"github.com/aleister1102/jsmonster/internal/models"
)

// Match is one regex hit in a piece of content. Offsets are byte offsets.
type Match struct {
	Start int
	End   int
	// Text is the whole matched string.
	Text string
	// Value is the first capture group when it participated, otherwise Text.
	Value string
}

// Matcher finds all non-overlapping matches in content.
type Matcher interface {
	FindAll(content string) ([]Match, error)
	String() string
}

// Rule is an immutable (matcher, kind, severity, confidence) record.
type Rule struct {
	ID         string
	Kind       models.FindingKind
	SecretType models.SecretType
	Severity   models.Severity
	Confidence float64
	Matcher    Matcher
}

// Catalog groups the rule sets. Iteration order is insertion order and
// decides which classification survives when two rules yield the same value.
type Catalog struct {
	APIKeys     []Rule
	Secrets     []Rule
	Credentials []Rule
	Endpoints   []Matcher
	URLs        []Matcher
}

var defaultCatalog = &Catalog{
	APIKeys:     apiKeyRules,
	Secrets:     secretRules,
	Credentials: credentialRules,
	Endpoints:   endpointMatchers,
	URLs:        urlMatchers,
}

// Default returns the built-in catalog. Callers must not modify it.
func Default() *Catalog {
	return defaultCatalog
}

// Extend returns a new catalog with custom rules appended to the end of the
// rule set matching each rule's kind. The receiver is left untouched.
func (c *Catalog) Extend(custom []Rule) *Catalog {
	out := &Catalog{
		APIKeys:     append([]Rule(nil), c.APIKeys...),
		Secrets:     append([]Rule(nil), c.Secrets...),
		Credentials: append([]Rule(nil), c.Credentials...),
		Endpoints:   append([]Matcher(nil), c.Endpoints...),
		URLs:        append([]Matcher(nil), c.URLs...),
	}
	for _, r := range custom {
		switch r.Kind {
		case models.KindAPIKey:
			out.APIKeys = append(out.APIKeys, r)
		case models.KindSecret:
			out.Secrets = append(out.Secrets, r)
		case models.KindCredential:
			out.Credentials = append(out.Credentials, r)
		}
	}
	return out
}

// RE2Matcher wraps a standard library regexp. Matching time is linear in
// the input size.
type RE2Matcher struct {
	re *regexp.Regexp
}

// NewRE2Matcher compiles expr.
func NewRE2Matcher(expr string) (*RE2Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &RE2Matcher{re: re}, nil
}

func mustRE2(expr string) *RE2Matcher {
	return &RE2Matcher{re: regexp.MustCompile(expr)}
}

func (m *RE2Matcher) FindAll(content string) ([]Match, error) {
	locs := m.re.FindAllStringSubmatchIndex(content, -1)
	out := make([]Match, 0, len(locs))
	for _, loc := range locs {
		match := Match{Start: loc[0], End: loc[1], Text: content[loc[0]:loc[1]]}
		match.Value = match.Text
		if len(loc) >= 4 && loc[2] >= 0 {
			match.Value = content[loc[2]:loc[3]]
		}
		out = append(out, match)
	}
	return out, nil
}

func (m *RE2Matcher) String() string {
	return m.re.String()
}

func rule(id string, kind models.FindingKind, st models.SecretType, sev models.Severity, conf float64, expr string) Rule {
	return Rule{
		ID:         id,
		Kind:       kind,
		SecretType: st,
		Severity:   sev,
		Confidence: conf,
		Matcher:    mustRE2(expr),
	}
}
