package services

import (
	"regexp"
	"strings"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// knownPattern describes the expected secret format for a known service.
type knownPattern struct {
	// hints are case-insensitive substrings matched against service
	// identifiers and variable names.
	hints []string
	// variable is the canonical variable name for this service.
	variable string
	// pattern is the expected value format.
	pattern *regexp.Regexp
	// formatHint is the human-readable form of the pattern.
	formatHint string
	// provenanceURL is where to obtain the credential.
	provenanceURL string
}

// knownPatterns is the static credential pattern table. Lookup is pure
// substring matching; there are no connector-specific behavioural variants
// beyond which variable and pattern apply.
var knownPatterns = []knownPattern{
	{
		hints:         []string{"github"},
		variable:      "GITHUB_PERSONAL_ACCESS_TOKEN",
		pattern:       regexp.MustCompile(`^ghp_`),
		formatHint:    `starts with "ghp_"`,
		provenanceURL: "https://github.com/settings/tokens",
	},
	{
		hints:         []string{"gitlab"},
		variable:      "GITLAB_PERSONAL_ACCESS_TOKEN",
		pattern:       regexp.MustCompile(`^glpat-`),
		formatHint:    `starts with "glpat-"`,
		provenanceURL: "https://gitlab.com/-/user_settings/personal_access_tokens",
	},
	{
		hints:         []string{"slack"},
		variable:      "SLACK_BOT_TOKEN",
		pattern:       regexp.MustCompile(`^xox[baprs]-`),
		formatHint:    `starts with "xoxb-" (or another "xox" prefix)`,
		provenanceURL: "https://api.slack.com/apps",
	},
	{
		hints:         []string{"anthropic"},
		variable:      "ANTHROPIC_API_KEY",
		pattern:       regexp.MustCompile(`^sk-ant-`),
		formatHint:    `starts with "sk-ant-"`,
		provenanceURL: "https://console.anthropic.com/settings/keys",
	},
	{
		// Must stay after anthropic: "sk-ant-" also matches "^sk-".
		hints:         []string{"openai"},
		variable:      "OPENAI_API_KEY",
		pattern:       regexp.MustCompile(`^sk-`),
		formatHint:    `starts with "sk-"`,
		provenanceURL: "https://platform.openai.com/api-keys",
	},
	{
		hints:         []string{"stripe"},
		variable:      "STRIPE_SECRET_KEY",
		pattern:       regexp.MustCompile(`^sk_(test|live)_`),
		formatHint:    `starts with "sk_test_" or "sk_live_"`,
		provenanceURL: "https://dashboard.stripe.com/apikeys",
	},
	{
		hints:         []string{"sendgrid"},
		variable:      "SENDGRID_API_KEY",
		pattern:       regexp.MustCompile(`^SG\.`),
		formatHint:    `starts with "SG."`,
		provenanceURL: "https://app.sendgrid.com/settings/api_keys",
	},
	{
		hints:         []string{"notion"},
		variable:      "NOTION_API_KEY",
		pattern:       regexp.MustCompile(`^(secret_|ntn_)`),
		formatHint:    `starts with "secret_" or "ntn_"`,
		provenanceURL: "https://www.notion.so/my-integrations",
	},
	{
		hints:         []string{"postgres", "postgresql"},
		variable:      "POSTGRES_CONNECTION_STRING",
		pattern:       regexp.MustCompile(`^postgres(ql)?://`),
		formatHint:    `a "postgresql://" connection URL`,
		provenanceURL: "",
	},
	{
		hints:         []string{"aws"},
		variable:      "AWS_ACCESS_KEY_ID",
		pattern:       regexp.MustCompile(`^(AKIA|ASIA)`),
		formatHint:    `starts with "AKIA" (or "ASIA" for temporary keys)`,
		provenanceURL: "https://console.aws.amazon.com/iam/home#/security_credentials",
	},
}

// PatternRegistry is a static, read-only mapping from known service
// identifiers to expected secret variable names and validation patterns.
type PatternRegistry struct {
	patterns []knownPattern
}

// NewPatternRegistry creates a registry over the built-in pattern table.
func NewPatternRegistry() *PatternRegistry {
	return &PatternRegistry{patterns: knownPatterns}
}

// Lookup finds a credential requirement for a service hint (connector name,
// namespace, or similar identifier). Matching is case-insensitive substring.
// Returns nil and false when no known pattern exists; unknown services are
// not an error.
func (r *PatternRegistry) Lookup(serviceHint string) (*domain.CredentialRequirement, bool) {
	hint := strings.ToLower(serviceHint)
	if hint == "" {
		return nil, false
	}
	for i := range r.patterns {
		for _, h := range r.patterns[i].hints {
			if strings.Contains(hint, h) {
				return r.patterns[i].requirement(), true
			}
		}
	}
	return nil, false
}

// LookupVariable finds a requirement by exact variable name match against
// the canonical names in the table, falling back to substring matching on
// the variable name. Returns nil and false when unknown.
func (r *PatternRegistry) LookupVariable(varName string) (*domain.CredentialRequirement, bool) {
	for i := range r.patterns {
		if r.patterns[i].variable == varName {
			return r.patterns[i].requirement(), true
		}
	}
	return r.Lookup(varName)
}

// requirement materialises the table row as a domain requirement.
func (p *knownPattern) requirement() *domain.CredentialRequirement {
	return &domain.CredentialRequirement{
		Variable:      p.variable,
		Pattern:       p.pattern,
		FormatHint:    p.formatHint,
		ProvenanceURL: p.provenanceURL,
	}
}
