package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// fakeWorkflow implements driving.InstallWorkflow for command tests.
type fakeWorkflow struct {
	outcome *domain.InstallOutcome
	err     error
	queries []string
}

func (f *fakeWorkflow) Run(_ context.Context, query string) (*domain.InstallOutcome, error) {
	f.queries = append(f.queries, query)
	return f.outcome, f.err
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestInstallCmd_Success(t *testing.T) {
	workflow := &fakeWorkflow{
		outcome: &domain.InstallOutcome{
			Phase: domain.PhaseConfirmed,
			Record: &domain.InstallationRecord{
				ID:            "rec-1",
				QualifiedName: "github/mcp-server",
				Mode:          domain.ModeLocal,
				Variables:     []string{"GITHUB_PERSONAL_ACCESS_TOKEN"},
				InstalledAt:   time.Now(),
			},
			Tools: []string{"search_issues", "create_issue"},
		},
	}
	SetInstallWorkflow(workflow)
	defer SetInstallWorkflow(nil)

	out, err := execute(t, "install", "github")

	require.NoError(t, err)
	assert.Equal(t, []string{"github"}, workflow.queries)
	assert.Contains(t, out, "Installed github/mcp-server (local)")
	assert.Contains(t, out, "GITHUB_PERSONAL_ACCESS_TOKEN")
	assert.Contains(t, out, "search_issues")
	assert.Contains(t, out, "Restart the host application")
}

func TestInstallCmd_MultiWordQuery(t *testing.T) {
	workflow := &fakeWorkflow{
		outcome: &domain.InstallOutcome{
			Phase:  domain.PhaseConfirmed,
			NoOp:   true,
			Record: &domain.InstallationRecord{QualifiedName: "github/mcp-server"},
		},
	}
	SetInstallWorkflow(workflow)
	defer SetInstallWorkflow(nil)

	_, err := execute(t, "install", "github", "issues")

	require.NoError(t, err)
	assert.Equal(t, []string{"github issues"}, workflow.queries)
}

func TestInstallCmd_NoOp(t *testing.T) {
	workflow := &fakeWorkflow{
		outcome: &domain.InstallOutcome{
			Phase:  domain.PhaseConfirmed,
			NoOp:   true,
			Record: &domain.InstallationRecord{QualifiedName: "github/mcp-server"},
		},
	}
	SetInstallWorkflow(workflow)
	defer SetInstallWorkflow(nil)

	out, err := execute(t, "install", "github")

	require.NoError(t, err)
	assert.Contains(t, out, "already installed")
}

func TestInstallCmd_NotFound(t *testing.T) {
	workflow := &fakeWorkflow{
		outcome: &domain.InstallOutcome{
			Phase:  domain.PhaseFailed,
			Reason: domain.FailureNotFound,
		},
	}
	SetInstallWorkflow(workflow)
	defer SetInstallWorkflow(nil)

	out, err := execute(t, "install", "nonexistent")

	require.Error(t, err)
	assert.Contains(t, out, "No connectors matched")
}

func TestInstallCmd_WorkflowError(t *testing.T) {
	workflow := &fakeWorkflow{err: errors.New("registry unreachable")}
	SetInstallWorkflow(workflow)
	defer SetInstallWorkflow(nil)

	_, err := execute(t, "install", "github")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry unreachable")
}

func TestInstallCmd_NotConfigured(t *testing.T) {
	SetInstallWorkflow(nil)

	_, err := execute(t, "install", "github")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
