package driven

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// Prompter is the operator-facing side of the install workflow. Each call is
// one synchronous request/response exchange; the workflow suspends until the
// operator answers.
type Prompter interface {
	// SelectCandidate presents up to three ranked candidates and returns the
	// operator's choice. Implementations must not auto-select when more than
	// one candidate is presented; returning domain.ErrNoSelection is the
	// correct response to a dismissed prompt. The workflow itself handles the
	// single-candidate auto-advance, so SelectCandidate is only called with
	// two or more candidates.
	SelectCandidate(ctx context.Context, candidates []domain.ConnectorDescriptor) (*domain.ConnectorDescriptor, error)

	// AskBatch presents all requirements in one round and returns a value per
	// requirement. Never called per-variable; the full list travels in one
	// exchange so an abandoned prompt leaves no partial state.
	AskBatch(ctx context.Context, requirements []domain.CredentialRequirement) (domain.CredentialSubmission, error)

	// ConfirmReinstall asks whether to replace an existing installation.
	ConfirmReinstall(ctx context.Context, record domain.InstallationRecord) (bool, error)

	// ConfirmOverride shows format warnings and asks whether to install
	// anyway. Called only when every non-ok result is a format mismatch.
	ConfirmOverride(ctx context.Context, warnings []domain.CredentialRequirement) (bool, error)

	// ConfirmRetry surfaces an install error and asks whether to retry.
	ConfirmRetry(ctx context.Context, installErr *domain.InstallError) (bool, error)
}
