package models

import "time"

// ScanResult is the complete output of analyzing one target.
type ScanResult struct {
	Target   string    `json:"target"`
	ScanTime time.Time `json:"scan_time"`
	Assets   []Asset   `json:"js_files"`
	Findings []Finding `json:"findings"`
	Errors   []string  `json:"errors"`
}

// NewScanResult starts an empty result for target.
func NewScanResult(target string) *ScanResult {
	return &ScanResult{
		Target:   target,
		ScanTime: time.Now(),
		Assets:   []Asset{},
		Findings: []Finding{},
		Errors:   []string{},
	}
}

// ScanStats holds the fixed set of named counts exposed to reporters.
type ScanStats struct {
	JSFiles        int `json:"js_files"`
	JSFilesSuccess int `json:"js_files_success"`
	TotalFindings  int `json:"total_findings"`
	Endpoints      int `json:"endpoints"`
	APIKeys        int `json:"api_keys"`
	Secrets        int `json:"secrets"`
	URLs           int `json:"urls"`
	Credentials    int `json:"credentials"`
	Critical       int `json:"critical"`
	High           int `json:"high"`
}

func (r *ScanResult) ofKind(kind FindingKind) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func (r *ScanResult) ofSeverity(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func (r *ScanResult) Endpoints() []Finding   { return r.ofKind(KindEndpoint) }
func (r *ScanResult) APIKeys() []Finding     { return r.ofKind(KindAPIKey) }
func (r *ScanResult) Secrets() []Finding     { return r.ofKind(KindSecret) }
func (r *ScanResult) URLs() []Finding        { return r.ofKind(KindURL) }
func (r *ScanResult) Credentials() []Finding { return r.ofKind(KindCredential) }
func (r *ScanResult) Critical() []Finding    { return r.ofSeverity(SeverityCritical) }
func (r *ScanResult) High() []Finding        { return r.ofSeverity(SeverityHigh) }

// Stats computes the named counts for this result.
func (r *ScanResult) Stats() ScanStats {
	stats := ScanStats{
		JSFiles:       len(r.Assets),
		TotalFindings: len(r.Findings),
	}
	for _, a := range r.Assets {
		if a.Success() {
			stats.JSFilesSuccess++
		}
	}
	for _, f := range r.Findings {
		switch f.Kind {
		case KindEndpoint:
			stats.Endpoints++
		case KindAPIKey:
			stats.APIKeys++
		case KindSecret:
			stats.Secrets++
		case KindURL:
			stats.URLs++
		case KindCredential:
			stats.Credentials++
		}
		switch f.Severity {
		case SeverityCritical:
			stats.Critical++
		case SeverityHigh:
			stats.High++
		}
	}
	return stats
}

// AddError appends a human-readable error line.
func (r *ScanResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Deduplicate keeps the first finding for each (kind, value) pair.
func Deduplicate(findings []Finding) []Finding {
	seen := make(map[FindingKey]struct{}, len(findings))
	unique := make([]Finding, 0, len(findings))
	for _, f := range findings {
		key := f.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, f)
	}
	return unique
}
