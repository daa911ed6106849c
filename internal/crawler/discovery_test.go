package crawler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestIsJSURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/app.js", true},
		{"https://example.com/APP.JS?v=1", true},
		{"https://example.com/module.mjs", true},
		{"https://example.com/component.tsx", true},
		{"https://example.com/js/loader", true},
		{"https://example.com/javascript/loader", true},
		{"https://example.com/style.css", false},
		{"https://example.com/json", false},
		{"https://example.com/app.js.map", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJSURL(tt.url))
		})
	}
}

func TestInlineScriptURLs(t *testing.T) {
	base := mustURL(t, "https://example.com/app/index.html")

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "quoted js literal",
			content: `load('vendor/x.js')`,
			want:    []string{"https://example.com/app/vendor/x.js"},
		},
		{
			name:    "require of extensionless module is kept",
			content: `require("./util")`,
			want:    []string{"https://example.com/app/util"},
		},
		{
			name:    "template-like literal is dropped",
			content: `require("./x(){}")`,
			want:    nil,
		},
		{
			name:    "data uri skipped",
			content: `s.src = "data:application/javascript,1.js"`,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inlineScriptURLs(tt.content, base))
		})
	}
}

func TestDiscoverScripts_Dedup(t *testing.T) {
	base := mustURL(t, "https://example.com/")
	html := `<script src="/a.js"></script><script src="a.js"></script><div data-script="/a.js"></div>`

	got, err := DiscoverScripts([]byte(html), base)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a.js"}, got)
}

func TestSameSite(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"https://www.example.com/", "https://static.example.com/x", true},
		{"https://example.co.uk/", "https://shop.example.co.uk/", true},
		{"https://a.github.io/", "https://b.github.io/", false},
		{"https://example.com/", "https://example.org/", false},
		{"http://127.0.0.1:8080/", "http://127.0.0.1:9090/", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+" "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, SameSite(mustURL(t, tt.a), mustURL(t, tt.b)))
		})
	}
}
