package patterns

import "github.com/aleister1102/jsmonster/internal/models"

var secretRules = []Rule{
	rule("jwt", models.KindSecret, models.SecretJWTToken, models.SeverityHigh, 0.95,
		`eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`),
	rule("bearer_token", models.KindSecret, models.SecretBearerToken, models.SeverityHigh, 0.8,
		`[Bb]earer\s+[A-Za-z0-9_-]{20,}`),
	rule("basic_auth", models.KindSecret, models.SecretBasicAuth, models.SeverityHigh, 0.8,
		`[Bb]asic\s+[A-Za-z0-9+/=]{20,}`),
	rule("private_key", models.KindSecret, models.SecretPrivateKey, models.SeverityCritical, 0.95,
		`-----BEGIN (?:RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`),

	// Connection strings
	rule("mongodb_uri", models.KindSecret, models.SecretMongoDBURI, models.SeverityHigh, 0.9,
		`mongodb(?:\+srv)?://[^\s"'\x60<>]+`),
	rule("postgres_uri", models.KindSecret, models.SecretPostgresURI, models.SeverityHigh, 0.9,
		`postgres(?:ql)?://[^\s"'\x60<>]+`),
	rule("mysql_uri", models.KindSecret, models.SecretMySQLURI, models.SeverityHigh, 0.9,
		`mysql://[^\s"'\x60<>]+`),
	rule("redis_uri", models.KindSecret, models.SecretRedisURI, models.SeverityHigh, 0.9,
		`redis://[^\s"'\x60<>]+`),

	rule("password_assignment", models.KindSecret, models.SecretPassword, models.SeverityHigh, 0.6,
		`(?i)(?:password|passwd|pwd)["'\x60]?\s*[:=]\s*["'\x60]([^"'\x60\s]{8,64})["'\x60]`),
	rule("secret_assignment", models.KindSecret, models.SecretGeneric, models.SeverityMedium, 0.5,
		`(?i)(?:secret|token|auth)["'\x60]?\s*[:=]\s*["'\x60]([A-Za-z0-9_-]{16,64})["'\x60]`),
}
