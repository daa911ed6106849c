package patterns

// Endpoint matchers carry no severity. It is derived from the matched path.
var endpointMatchers = []Matcher{
	// absolute API paths
	mustRE2(`["'\x60](/api/v?\d*/[a-zA-Z0-9_/-]+)["'\x60]`),
	mustRE2(`["'\x60](/v\d+/[a-zA-Z0-9_/-]+)["'\x60]`),
	// two or more segments
	mustRE2(`["'\x60](/[a-zA-Z0-9_-]+/[a-zA-Z0-9_/-]+)["'\x60]`),
	// auth, admin and API vocabulary
	mustRE2(`(?i)["'\x60](/(?:admin|auth|user|users|login|logout|register|signup|reset|verify|confirm|account|profile|settings|dashboard|api|graphql|webhook|callback|oauth|token|upload|download|export|import|search|query)[a-zA-Z0-9_/-]*)["'\x60]`),
	// REST parameters, :id and {id}
	mustRE2(`["'\x60](/[a-zA-Z0-9_-]+/:\w+(?:/[a-zA-Z0-9_-]+)*)["'\x60]`),
	mustRE2(`["'\x60](/[a-zA-Z0-9_-]+/\{[^}]+\}(?:/[a-zA-Z0-9_-]+)*)["'\x60]`),
	// HTTP client call sites
	mustRE2(`(?i)(?:fetch|axios|get|post|put|delete|patch)\s*\(\s*["'\x60]([^"'\x60]+)["'\x60]`),
	// assignments to url-ish names
	mustRE2(`(?i)(?:url|endpoint|path|route|href|src)\s*[:=]\s*["'\x60](/[^"'\x60\s]+)["'\x60]`),
}
