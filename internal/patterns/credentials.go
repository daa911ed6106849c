package patterns

import "github.com/aleister1102/jsmonster/internal/models"

var credentialRules = []Rule{
	rule("hardcoded_login", models.KindCredential, models.SecretPassword, models.SeverityHigh, 0.5,
		`(?i)(?:admin|root|user|guest)["'\x60]?\s*[:=]\s*["'\x60]([^"'\x60\s]{4,32})["'\x60]`),
	rule("email_password", models.KindCredential, models.SecretPassword, models.SeverityHigh, 0.7,
		`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}[:;][^\s"'\x60]{4,32}`),
}
