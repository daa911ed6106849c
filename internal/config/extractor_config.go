package config

import "time"

// ExtractorConfig selects and tunes the finding extractors
type ExtractorConfig struct {
	ExtractEndpoints    bool     `json:"extract_endpoints" yaml:"extract_endpoints"`
	ExtractSecrets      bool     `json:"extract_secrets" yaml:"extract_secrets"`
	ExtractURLs         bool     `json:"extract_urls" yaml:"extract_urls"`
	MinConfidence       float64  `json:"min_confidence" yaml:"min_confidence" validate:"min=0,max=1"`
	SkipDomains         []string `json:"skip_domains,omitempty" yaml:"skip_domains,omitempty" validate:"dive,required"`
	CustomRulesFile     string   `json:"custom_rules_file,omitempty" yaml:"custom_rules_file,omitempty" validate:"omitempty,fileexists"`
	CustomRuleTimeoutMs int      `json:"custom_rule_timeout_ms,omitempty" yaml:"custom_rule_timeout_ms,omitempty" validate:"omitempty,min=1"`
	EnableJSluice       bool     `json:"enable_jsluice" yaml:"enable_jsluice"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ExtractEndpoints:    true,
		ExtractSecrets:      true,
		ExtractURLs:         true,
		MinConfidence:       DefaultExtractorMinConfidence,
		CustomRuleTimeoutMs: DefaultExtractorCustomRuleTimeoutMs,
	}
}

// CustomRuleTimeout returns the per-evaluation bound for custom rules.
func (ec ExtractorConfig) CustomRuleTimeout() time.Duration {
	return time.Duration(ec.CustomRuleTimeoutMs) * time.Millisecond
}
