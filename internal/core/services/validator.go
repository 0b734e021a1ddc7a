package services

import (
	"strings"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driving"
)

// Ensure CredentialValidator implements the interface.
var _ driving.CredentialValidator = (*CredentialValidator)(nil)

// placeholderTokens are known non-secret stand-in values, compared
// case-insensitively after trimming whitespace.
var placeholderTokens = map[string]bool{
	"xxx":             true,
	"xxxx":            true,
	"your-token-here": true,
	"your_token_here": true,
	"changeme":        true,
	"change-me":       true,
	"placeholder":     true,
	"todo":            true,
	"<token>":         true,
	"none":            true,
}

// CredentialValidator classifies supplied credential values. The
// classification is advisory for format mismatches and blocking for empty
// and placeholder values; the orchestrator enforces that split.
type CredentialValidator struct{}

// NewCredentialValidator creates a validator.
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{}
}

// Validate classifies value against the requirement. Rules are checked in
// order, first match wins:
//
//  1. empty - value is empty or whitespace-only
//  2. placeholder - value is a known stand-in token
//  3. format mismatch - a pattern is known and the value does not match
//  4. ok
func (v *CredentialValidator) Validate(
	requirement domain.CredentialRequirement,
	value string,
) domain.ValidationStatus {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return domain.ValidationEmpty
	}
	if placeholderTokens[strings.ToLower(trimmed)] {
		return domain.ValidationPlaceholder
	}
	if requirement.HasPattern() && !requirement.Pattern.MatchString(trimmed) {
		return domain.ValidationFormatMismatch
	}
	return domain.ValidationOK
}
