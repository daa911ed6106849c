package reporter

import (
	"html/template"
	"sort"
	"time"

	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/urlhandler"
)

// Summary aggregates counts across every scanned target
type Summary struct {
	TotalTargets     int `json:"total_targets"`
	TotalJSFiles     int `json:"total_js_files"`
	TotalFindings    int `json:"total_findings"`
	CriticalFindings int `json:"critical_findings"`
	HighFindings     int `json:"high_findings"`
}

// BuildSummary computes the cross-target counts.
func BuildSummary(results []*models.ScanResult) Summary {
	s := Summary{TotalTargets: len(results)}
	for _, r := range results {
		stats := r.Stats()
		s.TotalJSFiles += stats.JSFiles
		s.TotalFindings += stats.TotalFindings
		s.CriticalFindings += stats.Critical
		s.HighFindings += stats.High
	}
	return s
}

// ScanSection is one target as rendered in the HTML report
type ScanSection struct {
	Anchor   string
	Target   string
	ScanTime time.Time
	Stats    models.ScanStats
	Assets   []models.Asset
	Findings []models.Finding
	Errors   []string
}

// ReportPageData is the template input
type ReportPageData struct {
	ReportTitle string
	GeneratedAt string
	IsSingle    bool
	Summary     Summary
	Scans       []ScanSection
	CustomCSS   template.CSS
	ReportJS    template.JS
}

func newScanSection(r *models.ScanResult) ScanSection {
	return ScanSection{
		Anchor:   "scan-" + urlhandler.SanitizeFilename(r.Target),
		Target:   r.Target,
		ScanTime: r.ScanTime,
		Stats:    r.Stats(),
		Assets:   r.Assets,
		Findings: SortFindings(r.Findings),
		Errors:   r.Errors,
	}
}

// SortFindings returns a copy ordered by severity, critical first, then by
// kind. Findings that tie keep their original order.
func SortFindings(findings []models.Finding) []models.Finding {
	sorted := append([]models.Finding(nil), findings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Severity.Rank(), sorted[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return sorted[i].Kind < sorted[j].Kind
	})
	return sorted
}
