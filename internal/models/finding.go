package models

// FindingKind classifies what a finding is.
type FindingKind string

const (
	KindEndpoint   FindingKind = "endpoint"
	KindAPIKey     FindingKind = "api_key"
	KindSecret     FindingKind = "secret"
	KindURL        FindingKind = "url"
	KindComment    FindingKind = "comment"
	KindCredential FindingKind = "credential"
)

// SecretType is the fine-grained subtype of a secret, API key or credential.
type SecretType string

const (
	SecretAWSAccessKey   SecretType = "aws_access_key"
	SecretAWSSecretKey   SecretType = "aws_secret_key"
	SecretGCPAPIKey      SecretType = "gcp_api_key"
	SecretAzureKey       SecretType = "azure_key"
	SecretStripeKey      SecretType = "stripe_key"
	SecretStripeSecret   SecretType = "stripe_secret"
	SecretPaypalKey      SecretType = "paypal_key"
	SecretGoogleAPIKey   SecretType = "google_api_key"
	SecretGoogleOAuth    SecretType = "google_oauth"
	SecretFacebookToken  SecretType = "facebook_token"
	SecretTwitterToken   SecretType = "twitter_token"
	SecretGithubToken    SecretType = "github_token"
	SecretSlackToken     SecretType = "slack_token"
	SecretSlackWebhook   SecretType = "slack_webhook"
	SecretDiscordToken   SecretType = "discord_token"
	SecretDiscordWebhook SecretType = "discord_webhook"
	SecretTwilioKey      SecretType = "twilio_key"
	SecretSendgridKey    SecretType = "sendgrid_key"
	SecretMailgunKey     SecretType = "mailgun_key"
	SecretMailchimpKey   SecretType = "mailchimp_key"
	SecretMongoDBURI     SecretType = "mongodb_uri"
	SecretPostgresURI    SecretType = "postgres_uri"
	SecretMySQLURI       SecretType = "mysql_uri"
	SecretRedisURI       SecretType = "redis_uri"
	SecretJWTToken       SecretType = "jwt_token"
	SecretBearerToken    SecretType = "bearer_token"
	SecretBasicAuth      SecretType = "basic_auth"
	SecretAPIKeyGeneric  SecretType = "api_key_generic"
	SecretPrivateKey     SecretType = "private_key"
	SecretSSHKey         SecretType = "ssh_key"
	SecretPassword       SecretType = "password"
	SecretGeneric        SecretType = "secret_generic"
)

// Severity is a heuristic risk tier.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Rank orders severities, critical first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// ParseSeverity maps a label to a Severity, defaulting to info.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(s)
	default:
		return SeverityInfo
	}
}

// Finding is one classified artifact. It refers to its asset by URL only.
type Finding struct {
	Kind       FindingKind `json:"type"`
	Value      string      `json:"value"`
	SecretType SecretType  `json:"secret_type,omitempty"`
	Severity   Severity    `json:"severity"`
	Source     string      `json:"source_file"`
	Line       int         `json:"line_number"`
	Context    string      `json:"context"`
	Confidence float64     `json:"confidence"`
}

// Key is the identity used for deduplication across extractors.
func (f Finding) Key() FindingKey {
	return FindingKey{Kind: f.Kind, Value: f.Value}
}

// FindingKey identifies a finding within a scan.
type FindingKey struct {
	Kind  FindingKind
	Value string
}
