package patterns

import "github.com/aleister1102/jsmonster/internal/models"

var apiKeyRules = []Rule{
	// AWS
	rule("aws_access_key", models.KindAPIKey, models.SecretAWSAccessKey, models.SeverityCritical, 0.95,
		`(?i)AKIA[0-9A-Z]{16}`),
	rule("aws_secret_key", models.KindAPIKey, models.SecretAWSSecretKey, models.SeverityCritical, 0.9,
		`(?i)(?:aws.?secret|secret.?key)["'\x60]?\s*[:=]\s*["'\x60]([A-Za-z0-9/+=]{40})["'\x60]`),

	// Google
	rule("gcp_api_key", models.KindAPIKey, models.SecretGCPAPIKey, models.SeverityHigh, 0.95,
		`AIza[0-9A-Za-z_-]{35}`),
	rule("google_api_key", models.KindAPIKey, models.SecretGoogleAPIKey, models.SeverityHigh, 0.85,
		`(?i)(?:google|gcp|firebase).?api.?key["'\x60]?\s*[:=]\s*["'\x60]([A-Za-z0-9_-]{39})["'\x60]`),

	// Stripe
	rule("stripe_live_secret", models.KindAPIKey, models.SecretStripeSecret, models.SeverityCritical, 0.95,
		`sk_live_[0-9a-zA-Z]{24,}`),
	rule("stripe_live_publishable", models.KindAPIKey, models.SecretStripeKey, models.SeverityMedium, 0.95,
		`pk_live_[0-9a-zA-Z]{24,}`),
	rule("stripe_test_secret", models.KindAPIKey, models.SecretStripeSecret, models.SeverityLow, 0.95,
		`sk_test_[0-9a-zA-Z]{24,}`),

	// GitHub
	rule("github_pat", models.KindAPIKey, models.SecretGithubToken, models.SeverityHigh, 0.95,
		`ghp_[0-9a-zA-Z]{36}`),
	rule("github_oauth", models.KindAPIKey, models.SecretGithubToken, models.SeverityHigh, 0.95,
		`gho_[0-9a-zA-Z]{36}`),
	rule("github_user_to_server", models.KindAPIKey, models.SecretGithubToken, models.SeverityHigh, 0.95,
		`ghu_[0-9a-zA-Z]{36}`),

	// Slack
	rule("slack_token", models.KindAPIKey, models.SecretSlackToken, models.SeverityHigh, 0.95,
		`xox[baprs]-[0-9]{10,13}-[0-9]{10,13}[a-zA-Z0-9-]*`),
	rule("slack_webhook", models.KindAPIKey, models.SecretSlackWebhook, models.SeverityHigh, 0.95,
		`https://hooks\.slack\.com/services/T[a-zA-Z0-9_]+/B[a-zA-Z0-9_]+/[a-zA-Z0-9_]+`),

	// Discord
	rule("discord_webhook", models.KindAPIKey, models.SecretDiscordWebhook, models.SeverityMedium, 0.95,
		`https://discord(?:app)?\.com/api/webhooks/[0-9]+/[A-Za-z0-9_-]+`),
	rule("discord_token", models.KindAPIKey, models.SecretDiscordToken, models.SeverityHigh, 0.8,
		`[MN][A-Za-z\d]{23,}\.[\w-]{6}\.[\w-]{27}`),

	rule("twilio_key", models.KindAPIKey, models.SecretTwilioKey, models.SeverityHigh, 0.85,
		`SK[0-9a-fA-F]{32}`),
	rule("sendgrid_key", models.KindAPIKey, models.SecretSendgridKey, models.SeverityHigh, 0.95,
		`SG\.[a-zA-Z0-9_-]{22}\.[a-zA-Z0-9_-]{43}`),
	rule("mailgun_key", models.KindAPIKey, models.SecretMailgunKey, models.SeverityHigh, 0.8,
		`key-[0-9a-zA-Z]{32}`),
	rule("mailchimp_key", models.KindAPIKey, models.SecretMailchimpKey, models.SeverityHigh, 0.8,
		`[0-9a-f]{32}-us[0-9]{1,2}`),
	rule("facebook_token", models.KindAPIKey, models.SecretFacebookToken, models.SeverityHigh, 0.9,
		`EAACEdEose0cBA[0-9A-Za-z]+`),
	rule("twitter_token", models.KindAPIKey, models.SecretTwitterToken, models.SeverityHigh, 0.7,
		`(?i)(?:twitter|tw).?(?:api|consumer|access).?(?:key|token|secret)["'\x60]?\s*[:=]\s*["'\x60]([A-Za-z0-9]{25,50})["'\x60]`),

	// Generic assignment, lowest confidence in this set.
	rule("api_key_generic", models.KindAPIKey, models.SecretAPIKeyGeneric, models.SeverityMedium, 0.6,
		`(?i)(?:api[_-]?key|apikey|api[_-]?secret)["'\x60]?\s*[:=]\s*["'\x60]([A-Za-z0-9_-]{20,64})["'\x60]`),
}
