package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternRegistry_Lookup_GitHub(t *testing.T) {
	registry := NewPatternRegistry()

	req, ok := registry.Lookup("github")
	require.True(t, ok)
	assert.Equal(t, "GITHUB_PERSONAL_ACCESS_TOKEN", req.Variable)
	require.NotNil(t, req.Pattern)
	assert.True(t, req.Pattern.MatchString("ghp_abc123"))
	assert.False(t, req.Pattern.MatchString("abc123"))
	assert.NotEmpty(t, req.ProvenanceURL)
}

func TestPatternRegistry_Lookup_CaseInsensitiveSubstring(t *testing.T) {
	registry := NewPatternRegistry()

	tests := []struct {
		hint     string
		variable string
	}{
		{"GitHub MCP Server", "GITHUB_PERSONAL_ACCESS_TOKEN"},
		{"github/mcp-server", "GITHUB_PERSONAL_ACCESS_TOKEN"},
		{"my-slack-bot", "SLACK_BOT_TOKEN"},
		{"Anthropic Claude", "ANTHROPIC_API_KEY"},
		{"postgresql-connector", "POSTGRES_CONNECTION_STRING"},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			req, ok := registry.Lookup(tt.hint)
			require.True(t, ok)
			assert.Equal(t, tt.variable, req.Variable)
		})
	}
}

func TestPatternRegistry_Lookup_Unknown(t *testing.T) {
	registry := NewPatternRegistry()

	req, ok := registry.Lookup("some-obscure-service")
	assert.False(t, ok)
	assert.Nil(t, req)
}

func TestPatternRegistry_Lookup_Empty(t *testing.T) {
	registry := NewPatternRegistry()

	_, ok := registry.Lookup("")
	assert.False(t, ok)
}

func TestPatternRegistry_Lookup_AnthropicBeforeOpenAI(t *testing.T) {
	// "sk-ant-" keys also match the OpenAI "^sk-" pattern; the anthropic
	// entry must win for anthropic hints.
	registry := NewPatternRegistry()

	req, ok := registry.Lookup("anthropic")
	require.True(t, ok)
	assert.Equal(t, "ANTHROPIC_API_KEY", req.Variable)
	assert.True(t, req.Pattern.MatchString("sk-ant-api03-xyz"))
}

func TestPatternRegistry_LookupVariable_Exact(t *testing.T) {
	registry := NewPatternRegistry()

	req, ok := registry.LookupVariable("GITHUB_PERSONAL_ACCESS_TOKEN")
	require.True(t, ok)
	assert.Equal(t, "GITHUB_PERSONAL_ACCESS_TOKEN", req.Variable)
}

func TestPatternRegistry_LookupVariable_Substring(t *testing.T) {
	registry := NewPatternRegistry()

	// Not a canonical name, but contains a service hint.
	req, ok := registry.LookupVariable("MY_GITHUB_TOKEN")
	require.True(t, ok)
	assert.Equal(t, "GITHUB_PERSONAL_ACCESS_TOKEN", req.Variable)
}

func TestPatternRegistry_LookupVariable_Unknown(t *testing.T) {
	registry := NewPatternRegistry()

	_, ok := registry.LookupVariable("SOME_API_KEY")
	assert.False(t, ok)
}
