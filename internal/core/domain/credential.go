package domain

import "regexp"

// CredentialRequirement is a named secret variable a connector declares it
// needs, with an optional expected format. Derived during an install attempt,
// never persisted.
type CredentialRequirement struct {
	// Variable is the environment variable name.
	Variable string
	// Description explains what the variable is for.
	Description string
	// Pattern is the expected value format, nil when unknown.
	// A nil pattern disables format validation for this requirement.
	Pattern *regexp.Regexp
	// FormatHint is a human-readable description of the expected format
	// (e.g. `starts with "ghp_"`). Empty when no pattern is known.
	FormatHint string
	// ProvenanceURL points at where the operator can obtain the value.
	// Empty when unknown.
	ProvenanceURL string
	// Required mirrors the registry's required flag.
	Required bool
}

// HasPattern returns true if a format pattern is known for this requirement.
func (r CredentialRequirement) HasPattern() bool {
	return r.Pattern != nil
}

// ValidationStatus classifies a supplied credential value.
type ValidationStatus string

const (
	// ValidationOK means the value passed all checks.
	ValidationOK ValidationStatus = "ok"
	// ValidationEmpty means the value is empty or whitespace-only. Blocking.
	ValidationEmpty ValidationStatus = "empty"
	// ValidationPlaceholder means the value is a known stand-in token. Blocking.
	ValidationPlaceholder ValidationStatus = "placeholder"
	// ValidationFormatMismatch means a known pattern exists and the value
	// does not match it. Advisory: surfaced as a warning, overridable.
	ValidationFormatMismatch ValidationStatus = "format_mismatch"
)

// Blocking returns true for statuses that must be corrected before
// installation can proceed. Format mismatches are warnings, not blocks.
func (s ValidationStatus) Blocking() bool {
	return s == ValidationEmpty || s == ValidationPlaceholder
}

// CredentialSubmission maps variable names to operator-supplied values.
// It exists only for the lifetime of one installation attempt.
type CredentialSubmission map[string]string

// VariableNames returns the variable names present in the submission.
// Order is unspecified; callers needing stable order should sort.
func (s CredentialSubmission) VariableNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

// Merge copies values from other into s, overwriting existing entries.
func (s CredentialSubmission) Merge(other CredentialSubmission) {
	for name, value := range other {
		s[name] = value
	}
}

// Clear overwrites and removes all values. Called when an install attempt
// reaches a terminal state so secrets do not outlive the attempt.
func (s CredentialSubmission) Clear() {
	for name := range s {
		s[name] = ""
		delete(s, name)
	}
}
