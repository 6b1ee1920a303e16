// Package patterns holds the versioned library of named secret detection
// rules the pattern matcher runs against page text.
package patterns

import (
	"regexp"
	"strings"

	"github.com/glasscan/glasscan/internal/types"
	"github.com/glasscan/glasscan/internal/validate"
)

// LibraryVersion identifies the builtin rule set. Bumped whenever a rule is
// added, removed, or retuned.
const LibraryVersion = "2025.08"

// Pattern is one named, versioned detection rule. Patterns are stateless
// and reentrant: matching the same text twice yields the same matches.
type Pattern struct {
	ID          string
	Service     string
	Regexp      *regexp.Regexp
	Severity    types.Severity
	MustInclude []string // context terms required near a match (case-insensitive)
	MustExclude []string // context terms that veto a match
	Validate    func(string) bool
}

// Builtin returns the builtin pattern table. Callers get a fresh slice but
// the patterns themselves are shared and must not be mutated.
func Builtin() []Pattern {
	out := make([]Pattern, len(builtin))
	copy(out, builtin)
	return out
}

var builtin = []Pattern{
	{
		ID:       "aws_access_key",
		Service:  "AWS",
		Regexp:   regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`),
		Severity: types.SevCritical,
		Validate: validate.LooksLikeAWSAccessKey,
	},
	{
		ID:          "aws_secret_key",
		Service:     "AWS",
		Regexp:      regexp.MustCompile(`\b[A-Za-z0-9/+=]{40}\b`),
		Severity:    types.SevCritical,
		MustInclude: []string{"aws"},
		MustExclude: []string{"aws-sdk", "amazonaws.com/sdk"},
		Validate:    validate.LooksLikeAWSSecretKey,
	},
	{
		ID:       "github_token",
		Service:  "GitHub",
		Regexp:   regexp.MustCompile(`\bg(?:hp|ho|hu|hs|hr)_[A-Za-z0-9]{36}\b`),
		Severity: types.SevCritical,
		Validate: validate.LooksLikeGitHubToken,
	},
	{
		ID:       "gitlab_token",
		Service:  "GitLab",
		Regexp:   regexp.MustCompile(`\bglpat-[A-Za-z0-9_-]{20}\b`),
		Severity: types.SevHigh,
	},
	{
		ID:       "slack_token",
		Service:  "Slack",
		Regexp:   regexp.MustCompile(`\bxox[abprs]-[A-Za-z0-9-]{10,48}\b`),
		Severity: types.SevHigh,
	},
	{
		ID:       "slack_webhook",
		Service:  "Slack",
		Regexp:   regexp.MustCompile(`https://hooks\.slack\.com/services/[A-Z0-9]{9,}/[A-Z0-9]{9,}/[A-Za-z0-9]{24,}`),
		Severity: types.SevHigh,
	},
	{
		ID:       "stripe_secret",
		Service:  "Stripe",
		Regexp:   regexp.MustCompile(`\bsk_live_[A-Za-z0-9]{24,}\b`),
		Severity: types.SevCritical,
	},
	{
		ID:          "stripe_test_key",
		Service:     "Stripe",
		Regexp:      regexp.MustCompile(`\bsk_test_[A-Za-z0-9]{24,}\b`),
		Severity:    types.SevLow,
		MustExclude: []string{"publishable"},
	},
	{
		ID:       "google_api_key",
		Service:  "Google",
		Regexp:   regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`),
		Severity: types.SevHigh,
	},
	{
		ID:          "openai_api_key",
		Service:     "OpenAI",
		Regexp:      regexp.MustCompile(`\bsk-[A-Za-z0-9]{32,}\b`),
		Severity:    types.SevCritical,
		MustExclude: []string{"sk-ant-"},
		Validate:    validate.LooksLikeOpenAIKey,
	},
	{
		ID:       "anthropic_api_key",
		Service:  "Anthropic",
		Regexp:   regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{30,}\b`),
		Severity: types.SevCritical,
	},
	{
		ID:       "sendgrid_api_key",
		Service:  "SendGrid",
		Regexp:   regexp.MustCompile(`\bSG\.[A-Za-z0-9_-]{16}\.[A-Za-z0-9_-]{32,}\b`),
		Severity: types.SevHigh,
	},
	{
		ID:          "twilio_account_sid",
		Service:     "Twilio",
		Regexp:      regexp.MustCompile(`\bAC[0-9a-fA-F]{32}\b`),
		Severity:    types.SevHigh,
		MustInclude: []string{"twilio"},
		Validate:    func(s string) bool { return validate.IsHex(strings.TrimPrefix(s, "AC")) },
	},
	{
		ID:       "npm_token",
		Service:  "npm",
		Regexp:   regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`),
		Severity: types.SevHigh,
	},
	{
		ID:          "heroku_api_key",
		Service:     "Heroku",
		Regexp:      regexp.MustCompile(`\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`),
		Severity:    types.SevHigh,
		MustInclude: []string{"heroku"},
	},
	{
		ID:       "mailgun_api_key",
		Service:  "Mailgun",
		Regexp:   regexp.MustCompile(`\bkey-[0-9a-f]{32}\b`),
		Severity: types.SevHigh,
		Validate: func(s string) bool { return validate.IsHex(strings.TrimPrefix(s, "key-")) },
	},
	{
		ID:       "telegram_bot_token",
		Service:  "Telegram",
		Regexp:   regexp.MustCompile(`\b\d{9,10}:[A-Za-z0-9_-]{35,}\b`),
		Severity: types.SevHigh,
	},
	{
		ID:       "huggingface_token",
		Service:  "Hugging Face",
		Regexp:   regexp.MustCompile(`\bhf_[A-Za-z0-9]{35,}\b`),
		Severity: types.SevHigh,
	},
	{
		ID:       "private_key_block",
		Service:  "private key",
		Regexp:   regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`),
		Severity: types.SevCritical,
	},
	{
		ID:       "postgres_uri_creds",
		Service:  "PostgreSQL",
		Regexp:   regexp.MustCompile(`\bpostgres(?:ql)?://[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?"']+`),
		Severity: types.SevCritical,
	},
	{
		ID:       "mysql_uri_creds",
		Service:  "MySQL",
		Regexp:   regexp.MustCompile(`\bmysql://[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?"']+`),
		Severity: types.SevCritical,
	},
	{
		ID:       "mongodb_uri_creds",
		Service:  "MongoDB",
		Regexp:   regexp.MustCompile(`\bmongodb(?:\+srv)?://[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?"']+`),
		Severity: types.SevCritical,
	},
	{
		ID:          "generic_api_key",
		Service:     "unknown service",
		Regexp:      regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|secret[_-]?key|access[_-]?token)["'\s:=]+["']?([A-Za-z0-9_-]{20,64})["']?`),
		Severity:    types.SevHigh,
		MustExclude: []string{"process.env", "import.meta.env"},
		Validate:    validGenericKey,
	},
}

// validGenericKey rejects captures that are clearly identifiers rather than
// credentials (all-lowercase words, template expressions).
func validGenericKey(s string) bool {
	if strings.ContainsAny(s, "{}$<>") {
		return false
	}
	hasDigit := strings.ContainsAny(s, "0123456789")
	hasUpper := s != strings.ToLower(s)
	return hasDigit || hasUpper
}

// IDs lists the builtin pattern identifiers in declaration order.
func IDs() []string {
	out := make([]string, 0, len(builtin))
	for _, p := range builtin {
		out = append(out, p.ID)
	}
	return out
}
