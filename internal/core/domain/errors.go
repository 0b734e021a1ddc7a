package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Workflow Errors.

	// ErrNoSelection indicates the operator made no choice among the
	// presented candidates. Never auto-resolved.
	ErrNoSelection = errors.New("no candidate selected")

	// ErrMissingCredential indicates blocking credential values remained
	// unresolved after re-prompting.
	ErrMissingCredential = errors.New("missing credential")

	// ErrPromptAborted indicates the operator abandoned a prompt mid-flow.
	ErrPromptAborted = errors.New("prompt aborted")

	// ErrRegistryUnavailable indicates the registry could not be reached.
	ErrRegistryUnavailable = errors.New("registry unavailable")
)
