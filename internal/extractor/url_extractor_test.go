package extractor

import (
	"testing"

	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/patterns"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: `"https://example.com/about"`, want: "https://example.com/about", wantOK: true},
		{raw: "https://staging.example.com/app.", want: "https://staging.example.com/app", wantOK: true},
		{raw: "https://example.com/a),;", want: "https://example.com/a", wantOK: true},
		{raw: "https://api.staging.example.com/%s/keys", want: "https://api.staging.example.com/%s/keys", wantOK: true},
		{raw: "https://staging.example.com/a%zz/b", want: "https://staging.example.com/a%zz/b", wantOK: true},
		{raw: "https://", wantOK: false},
		{raw: "1http://example.com", wantOK: false},
		{raw: "not a url", wantOK: false},
		{raw: "/relative/path", wantOK: false},
		{raw: "''", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeURL(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestURLSeverity(t *testing.T) {
	tests := []struct {
		url  string
		want models.Severity
	}{
		{"http://localhost:8080/debug", models.SeverityHigh},
		{"http://192.168.1.20/panel", models.SeverityHigh},
		{"https://staging.example.com/app", models.SeverityMedium},
		{"https://svc.internal/health", models.SeverityMedium},
		{"https://example.com/admin", models.SeverityMedium},
		{"https://example.com/about", models.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, URLSeverity(tt.url))
		})
	}
}

func TestURLExtractor_Extract(t *testing.T) {
	ue := NewURLExtractor(patterns.Default(), []string{"Example.org"}, zerolog.Nop())

	content := `
var fonts = "https://fonts.googleapis.com/css";
var gh = "https://www.github.com/org/repo";
var local = "http://localhost:8080/debug";
var stage = "https://staging.example.com/app.";
var plain = "https://example.com/about";
var skipped = "https://cdn.example.org/lib";
`
	findings, err := ue.Extract(content, "config.js")
	require.NoError(t, err)

	got := map[string]models.Finding{}
	for _, f := range findings {
		assert.Equal(t, models.KindURL, f.Kind)
		assert.InDelta(t, 0.9, f.Confidence, 1e-9)
		_, dup := got[f.Value]
		assert.False(t, dup, "duplicate url %s", f.Value)
		got[f.Value] = f
	}

	assert.Len(t, got, 3)
	assert.Equal(t, models.SeverityHigh, got["http://localhost:8080/debug"].Severity)
	assert.Equal(t, 4, got["http://localhost:8080/debug"].Line)
	assert.Equal(t, models.SeverityMedium, got["https://staging.example.com/app"].Severity)
	assert.Equal(t, models.SeverityLow, got["https://example.com/about"].Severity)
}

func TestURLExtractor_Extract_TemplatedPaths(t *testing.T) {
	ue := NewURLExtractor(patterns.Default(), nil, zerolog.Nop())

	content := `var u = sprintf("https://api.staging.example.com/%s/keys", id);
var bad = "https://staging.example.com/a%zz/b";
var cdn = "https://fonts.googleapis.com:443/%s";`
	findings, err := ue.Extract(content, "tpl.js")
	require.NoError(t, err)

	got := map[string]models.Finding{}
	for _, f := range findings {
		got[f.Value] = f
	}
	require.Len(t, got, 2)
	assert.Equal(t, models.SeverityMedium, got["https://api.staging.example.com/%s/keys"].Severity)
	assert.Equal(t, 1, got["https://api.staging.example.com/%s/keys"].Line)
	assert.Equal(t, models.SeverityMedium, got["https://staging.example.com/a%zz/b"].Severity)
}

func TestAuthorityHost(t *testing.T) {
	assert.Equal(t, "example.com", authorityHost("User:pw@Example.com:8443"))
	assert.Equal(t, "::1", authorityHost("[::1]:8080"))
	assert.Equal(t, "svc.internal", authorityHost("svc.internal"))
}
