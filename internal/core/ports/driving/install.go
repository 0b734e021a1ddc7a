package driving

import (
	"context"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// InstallWorkflow drives the end-to-end credential-aware install state
// machine for one free-text query. Exactly one attempt runs at a time per
// qualified connector name.
type InstallWorkflow interface {
	// Run executes the workflow: search, selection, status check, credential
	// detection/collection/validation, install, confirmation. The returned
	// outcome is terminal (Confirmed or Failed); recoverable failures are
	// handled inside via the prompter before Run returns.
	Run(ctx context.Context, query string) (*domain.InstallOutcome, error)
}

// CredentialDetector infers the credential requirements a connector declares.
type CredentialDetector interface {
	// Detect returns one requirement per distinct referenced variable name,
	// in first-seen order. Never drops a referenced variable.
	Detect(descriptor domain.ConnectorDescriptor) []domain.CredentialRequirement
}

// CredentialValidator classifies operator-supplied credential values.
type CredentialValidator interface {
	// Validate classifies value against the requirement. Advisory for
	// format mismatches, blocking for empty and placeholder values.
	Validate(requirement domain.CredentialRequirement, value string) domain.ValidationStatus
}
