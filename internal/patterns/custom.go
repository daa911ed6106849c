package patterns

import (
	"os"
	"time"
	"unicode/utf8"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

// DefaultCustomRuleTimeout bounds a single custom rule evaluation.
const DefaultCustomRuleTimeout = 250 * time.Millisecond

// CustomRuleSpec is one entry of a user rules file.
type CustomRuleSpec struct {
	ID         string  `yaml:"id"`
	Kind       string  `yaml:"kind"`
	SecretType string  `yaml:"secret_type"`
	Severity   string  `yaml:"severity"`
	Confidence float64 `yaml:"confidence"`
	Pattern    string  `yaml:"pattern"`
}

type customRulesFile struct {
	Rules []CustomRuleSpec `yaml:"rules"`
}

// LoadCustomRules reads and compiles a YAML rules file.
func LoadCustomRules(path string, timeout time.Duration) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "failed to read custom rules file "+path)
	}

	var file customRulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, common.WrapError(err, "failed to parse custom rules file "+path)
	}

	return CompileCustomRules(file.Rules, timeout)
}

// CompileCustomRules validates and compiles rule specs. All invalid
// entries are reported together.
func CompileCustomRules(specs []CustomRuleSpec, timeout time.Duration) ([]Rule, error) {
	if timeout <= 0 {
		timeout = DefaultCustomRuleTimeout
	}

	var ec common.ErrorCollector
	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		r, err := compileCustomRule(spec, timeout)
		if err != nil {
			ec.Add(common.WrapErrorf(err, "custom rule #%d (%s)", i+1, spec.ID))
			continue
		}
		rules = append(rules, r)
	}
	if ec.HasErrors() {
		return nil, ec.Error()
	}
	return rules, nil
}

func compileCustomRule(spec CustomRuleSpec, timeout time.Duration) (Rule, error) {
	if spec.ID == "" {
		return Rule{}, common.NewValidationError("id", spec.ID, "id is required")
	}

	kind := models.FindingKind(spec.Kind)
	switch kind {
	case models.KindAPIKey, models.KindSecret, models.KindCredential:
	default:
		return Rule{}, common.NewValidationError("kind", spec.Kind, "must be api_key, secret or credential")
	}

	if spec.Confidence < 0 || spec.Confidence > 1 {
		return Rule{}, common.NewValidationError("confidence", spec.Confidence, "must be within [0,1]")
	}

	matcher, err := NewRegexp2Matcher(spec.Pattern, timeout)
	if err != nil {
		return Rule{}, common.WrapError(err, "invalid pattern")
	}

	secretType := models.SecretType(spec.SecretType)
	if secretType == "" {
		secretType = models.SecretGeneric
	}

	return Rule{
		ID:         spec.ID,
		Kind:       kind,
		SecretType: secretType,
		Severity:   models.ParseSeverity(spec.Severity),
		Confidence: spec.Confidence,
		Matcher:    matcher,
	}, nil
}

// Regexp2Matcher runs a backtracking regexp2 pattern under a match timeout.
type Regexp2Matcher struct {
	re *regexp2.Regexp
}

// NewRegexp2Matcher compiles expr with the given per-evaluation timeout.
func NewRegexp2Matcher(expr string, timeout time.Duration) (*Regexp2Matcher, error) {
	if expr == "" {
		return nil, common.NewValidationError("pattern", expr, "pattern is required")
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = timeout
	return &Regexp2Matcher{re: re}, nil
}

// FindAll returns every match. On timeout it returns the error and no
// matches, so a slow rule contributes nothing.
func (m *Regexp2Matcher) FindAll(content string) ([]Match, error) {
	// regexp2 indexes runes; map them back to byte offsets.
	offsets := runeOffsets(content)

	var out []Match
	match, err := m.re.FindStringMatch(content)
	for err == nil && match != nil {
		start, end := offsets(match.Index), offsets(match.Index+match.Length)
		found := Match{Start: start, End: end, Text: content[start:end]}
		found.Value = found.Text
		if g := match.GroupByNumber(1); g != nil && len(g.Captures) > 0 {
			found.Value = content[offsets(g.Index):offsets(g.Index+g.Length)]
		}
		out = append(out, found)
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *Regexp2Matcher) String() string {
	return m.re.String()
}

func runeOffsets(s string) func(int) int {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return func(i int) int { return i }
	}

	table := make([]int, 0, len(s)+1)
	for i := range s {
		table = append(table, i)
	}
	table = append(table, len(s))
	return func(i int) int { return table[i] }
}
