package crawler

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// inlineScriptPatterns find dynamically loaded modules in inline script text.
var inlineScriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)["']([^"']*\.js(?:\?[^"']*)?)["']`),
	regexp.MustCompile(`(?i)src\s*[=:]\s*["']([^"']+\.js(?:\?[^"']*)?)["']`),
	regexp.MustCompile(`(?i)import\s+.*?\s+from\s+["']([^"']+)["']`),
	regexp.MustCompile(`(?i)require\s*\(\s*["']([^"']+)["']`),
}

var dataScriptAttributes = []string{"data-src", "data-script", "data-main"}

// urlSet is an insertion-ordered set of URLs.
type urlSet struct {
	order []string
	seen  map[string]struct{}
}

func newURLSet() *urlSet {
	return &urlSet{seen: make(map[string]struct{})}
}

func (s *urlSet) add(u string) {
	if u == "" {
		return
	}
	if _, ok := s.seen[u]; ok {
		return
	}
	s.seen[u] = struct{}{}
	s.order = append(s.order, u)
}

func (s *urlSet) list() []string {
	return s.order
}

// DiscoverScripts parses an HTML page and returns the JavaScript asset URLs
// it references, resolved against base, in document order.
func DiscoverScripts(body []byte, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	found := newURLSet()
	discoverFromDocument(doc, base, found)
	return found.list(), nil
}

func discoverFromDocument(doc *goquery.Document, base *url.URL, found *urlSet) {
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if full := resolve(base, src); full != "" && IsJSURL(full) {
			found.add(full)
		}
	})

	doc.Find("script:not([src])").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); text != "" {
			for _, u := range inlineScriptURLs(text, base) {
				found.add(u)
			}
		}
	})

	for _, attr := range dataScriptAttributes {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			src, _ := s.Attr(attr)
			if full := resolve(base, src); full != "" && IsJSURL(full) {
				found.add(full)
			}
		})
	}

	// Preloaded scripts are taken as is, whatever their path looks like.
	doc.Find(`link[rel~="preload"][href]`).Each(func(_ int, s *goquery.Selection) {
		if as, _ := s.Attr("as"); as != "script" {
			return
		}
		href, _ := s.Attr("href")
		found.add(resolve(base, href))
	})
}

// inlineScriptURLs extracts module paths from inline script text. A path is
// kept when it resolves to a JS-looking URL, or when the literal contains
// none of ( ) { }.
func inlineScriptURLs(content string, base *url.URL) []string {
	var urls []string
	for _, re := range inlineScriptPatterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			path := m[1]
			if path == "" || strings.HasPrefix(path, "data:") {
				continue
			}
			full := resolve(base, path)
			if full == "" {
				continue
			}
			if IsJSURL(full) || !strings.ContainsAny(path, "(){}") {
				urls = append(urls, full)
			}
		}
	}
	return urls
}

// sameSiteLinks returns <a href> targets on the same registrable domain as base.
func sameSiteLinks(doc *goquery.Document, base *url.URL) []string {
	links := newURLSet()
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		full := resolve(base, href)
		if full == "" {
			return
		}
		u, err := url.Parse(full)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}
		u.Fragment = ""
		if SameSite(base, u) {
			links.add(u.String())
		}
	})
	return links.list()
}
