package crawler

import (
	"net/url"
	"strings"
)

var jsExtensions = []string{".js", ".mjs", ".jsx", ".ts", ".tsx"}

// IsJSURL reports whether rawURL looks like a JavaScript asset, either by
// extension or by a /js/ or /javascript/ path segment.
func IsJSURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range jsExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return strings.Contains(path, "/js/") || strings.Contains(path, "/javascript/")
}

// resolve joins ref against base. It returns "" for unparsable references.
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
