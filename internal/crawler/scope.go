package crawler

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SiteKey returns the registrable domain (eTLD+1) of host. IP literals,
// single-label hosts and public suffixes are their own key.
func SiteKey(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" || net.ParseIP(host) != nil {
		return host
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}

// SameSite reports whether a and b share a registrable domain.
func SameSite(a, b *url.URL) bool {
	return SiteKey(a.Hostname()) == SiteKey(b.Hostname())
}
