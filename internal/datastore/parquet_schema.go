package datastore

import (
	"time"

	"github.com/aleister1102/jsmonster/internal/models"
)

// FindingRecord is one finding as stored in Parquet. Optional columns use
// pointers.
type FindingRecord struct {
	Target        string  `parquet:"target"`
	Kind          string  `parquet:"kind"`
	Value         string  `parquet:"value"`
	SecretType    *string `parquet:"secret_type,optional"`
	Severity      string  `parquet:"severity"`
	Source        string  `parquet:"source"`
	Line          int32   `parquet:"line"`
	Context       *string `parquet:"context,optional"`
	Confidence    float64 `parquet:"confidence"`
	ScanTimestamp int64   `parquet:"scan_timestamp"`
}

// RecordsFromResult flattens a scan result into one record per finding.
func RecordsFromResult(r *models.ScanResult) []FindingRecord {
	records := make([]FindingRecord, 0, len(r.Findings))
	for _, f := range r.Findings {
		records = append(records, FindingRecord{
			Target:        r.Target,
			Kind:          string(f.Kind),
			Value:         f.Value,
			SecretType:    StringPtrOrNil(string(f.SecretType)),
			Severity:      string(f.Severity),
			Source:        f.Source,
			Line:          int32(f.Line),
			Context:       StringPtrOrNil(f.Context),
			Confidence:    f.Confidence,
			ScanTimestamp: r.ScanTime.UnixMilli(),
		})
	}
	return records
}

// ToFinding converts the record back to a Finding.
func (fr FindingRecord) ToFinding() models.Finding {
	return models.Finding{
		Kind:       models.FindingKind(fr.Kind),
		Value:      fr.Value,
		SecretType: models.SecretType(deref(fr.SecretType)),
		Severity:   models.ParseSeverity(fr.Severity),
		Source:     fr.Source,
		Line:       int(fr.Line),
		Context:    deref(fr.Context),
		Confidence: fr.Confidence,
	}
}

// ScanTime returns the scan timestamp as a time.
func (fr FindingRecord) ScanTime() time.Time {
	return time.UnixMilli(fr.ScanTimestamp)
}

// StringPtrOrNil returns nil for an empty string.
func StringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
