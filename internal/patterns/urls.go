package patterns

var urlMatchers = []Matcher{
	mustRE2(`https?://[a-zA-Z0-9][-a-zA-Z0-9]*(?:\.[a-zA-Z0-9][-a-zA-Z0-9]*)+(?::[0-9]+)?(?:/[^\s"'\x60<>]*)?`),
	// internal, staging and infrastructure host prefixes
	mustRE2(`(?i)https?://(?:localhost|127\.0\.0\.1|0\.0\.0\.0|internal|staging|dev|test|uat|qa|preprod|admin|api|cdn|static)(?::[0-9]+)?[^\s"'\x60<>]*`),
	// bare IPv4 hosts
	mustRE2(`https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}(?::[0-9]+)?[^\s"'\x60<>]*`),
	// internal subdomain suffixes
	mustRE2(`(?i)https?://[a-zA-Z0-9-]+\.(?:internal|local|corp|intranet|staging|dev|test)\.[a-zA-Z]{2,}[^\s"'\x60<>]*`),
}
