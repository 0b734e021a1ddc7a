package prompt

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

func candidates() []domain.ConnectorDescriptor {
	return []domain.ConnectorDescriptor{
		{QualifiedName: "github/mcp-server", Description: "Official GitHub connector", Verified: true},
		{QualifiedName: "acme/github-tools", Description: "Community GitHub tools"},
	}
}

func TestSelectCandidate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  error
	}{
		{name: "first choice", input: "1\n", expected: "github/mcp-server"},
		{name: "second choice", input: "2\n", expected: "acme/github-tools"},
		{name: "empty dismisses", input: "\n", wantErr: domain.ErrNoSelection},
		{name: "out of range dismisses", input: "9\n", wantErr: domain.ErrNoSelection},
		{name: "non-numeric dismisses", input: "first\n", wantErr: domain.ErrNoSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			selected, err := p.SelectCandidate(context.Background(), candidates())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, selected.QualifiedName)
			assert.Contains(t, out.String(), "1. github/mcp-server (verified)")
			assert.Contains(t, out.String(), "2. acme/github-tools")
		})
	}
}

func TestSelectCandidate_Picker(t *testing.T) {
	var out bytes.Buffer
	picked := domain.ConnectorDescriptor{QualifiedName: "github/mcp-server"}
	p := New(strings.NewReader(""), &out, WithPicker(
		func(_ context.Context, _ []domain.ConnectorDescriptor) (*domain.ConnectorDescriptor, error) {
			return &picked, nil
		},
	))

	selected, err := p.SelectCandidate(context.Background(), candidates())
	require.NoError(t, err)
	assert.Equal(t, "github/mcp-server", selected.QualifiedName)
	assert.Empty(t, out.String(), "picker should bypass the numbered list")
}

func TestAskBatch(t *testing.T) {
	var out bytes.Buffer
	input := "ghp_abc123\nhttps://github.example.com\n"
	p := New(strings.NewReader(input), &out)

	requirements := []domain.CredentialRequirement{
		{
			Variable:      "GITHUB_PERSONAL_ACCESS_TOKEN",
			Description:   "GitHub personal access token",
			Pattern:       regexp.MustCompile(`^ghp_`),
			FormatHint:    `starts with "ghp_"`,
			ProvenanceURL: "https://github.com/settings/tokens",
			Required:      true,
		},
		{Variable: "GITHUB_HOST", Description: "GitHub Enterprise host"},
	}

	submission, err := p.AskBatch(context.Background(), requirements)
	require.NoError(t, err)
	assert.Equal(t, domain.CredentialSubmission{
		"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_abc123",
		"GITHUB_HOST":                  "https://github.example.com",
	}, submission)

	text := out.String()
	assert.Contains(t, text, "GITHUB_PERSONAL_ACCESS_TOKEN")
	assert.Contains(t, text, `starts with "ghp_"`)
	assert.Contains(t, text, "https://github.com/settings/tokens")
	assert.NotContains(t, text, "ghp_abc123", "values must never be echoed")
}

func TestAskBatch_Empty(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	submission, err := p.AskBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, submission)
}

func TestAskBatch_Aborted(t *testing.T) {
	// Input ends before the second value can be read
	p := New(strings.NewReader("ghp_abc123\n"), &bytes.Buffer{})

	requirements := []domain.CredentialRequirement{
		{Variable: "GITHUB_PERSONAL_ACCESS_TOKEN"},
		{Variable: "GITHUB_HOST"},
	}

	submission, err := p.AskBatch(context.Background(), requirements)
	assert.ErrorIs(t, err, domain.ErrPromptAborted)
	assert.Nil(t, submission)
}

func TestConfirmReinstall(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "yes", input: "y\n", expected: true},
		{name: "yes word", input: "Yes\n", expected: true},
		{name: "no", input: "n\n", expected: false},
		{name: "default is no", input: "\n", expected: false},
	}

	record := domain.InstallationRecord{
		QualifiedName: "github/mcp-server",
		InstalledAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			confirmed, err := p.ConfirmReinstall(context.Background(), record)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, confirmed)
			assert.Contains(t, out.String(), "already installed")
		})
	}
}

func TestConfirmOverride(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("y\n"), &out)

	warnings := []domain.CredentialRequirement{
		{Variable: "GITHUB_PERSONAL_ACCESS_TOKEN", FormatHint: `starts with "ghp_"`},
	}

	confirmed, err := p.ConfirmOverride(context.Background(), warnings)
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.Contains(t, out.String(), `GITHUB_PERSONAL_ACCESS_TOKEN: starts with "ghp_"`)
}

func TestConfirmRetry(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("n\n"), &out)

	confirmed, err := p.ConfirmRetry(context.Background(), &domain.InstallError{Message: "registry timeout"})
	require.NoError(t, err)
	assert.False(t, confirmed)
	assert.Contains(t, out.String(), "registry timeout")
}
