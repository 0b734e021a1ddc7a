package domain

import (
	"fmt"
	"time"
)

// InstallationRecord is persisted evidence that a connector is configured.
// It names the configured variables but never their values. One record per
// qualified name; reinstallation replaces the record atomically.
type InstallationRecord struct {
	// ID uniquely identifies this record (uuid).
	ID string
	// QualifiedName is the connector's qualified name.
	QualifiedName string
	// Mode is the deployment mode the connector was installed with.
	Mode DeploymentMode
	// Variables are the configured variable names, never values.
	Variables []string
	// InstalledAt is when the record was written.
	InstalledAt time.Time
}

// Phase is a state of the installation workflow.
type Phase string

const (
	// PhaseSearching is querying the registry.
	PhaseSearching Phase = "searching"
	// PhaseSelecting is awaiting operator choice among candidates.
	PhaseSelecting Phase = "selecting"
	// PhaseCheckingStatus is checking for an existing installation record.
	PhaseCheckingStatus Phase = "checking_status"
	// PhaseAlreadyInstalled is awaiting the reinstall decision.
	PhaseAlreadyInstalled Phase = "already_installed"
	// PhaseDetectingCredentials is deriving the requirement set.
	PhaseDetectingCredentials Phase = "detecting_credentials"
	// PhaseCollectingCredentials is awaiting operator-supplied values.
	PhaseCollectingCredentials Phase = "collecting_credentials"
	// PhaseValidatingCredentials is classifying supplied values.
	PhaseValidatingCredentials Phase = "validating_credentials"
	// PhaseInstalling is invoking the external install operation.
	PhaseInstalling Phase = "installing"
	// PhaseConfirmed is the terminal success state (including no-op reinstall declines).
	PhaseConfirmed Phase = "confirmed"
	// PhaseFailed is the terminal failure state.
	PhaseFailed Phase = "failed"
)

// FailureReason says why an install attempt ended in PhaseFailed.
type FailureReason string

const (
	// FailureNone means the attempt did not fail.
	FailureNone FailureReason = ""
	// FailureNotFound means the registry returned no matches.
	FailureNotFound FailureReason = "not_found"
	// FailureNoSelection means the operator made no choice among candidates.
	FailureNoSelection FailureReason = "no_selection"
	// FailureMissingCredential means blocking values stayed unresolved.
	FailureMissingCredential FailureReason = "missing_credential"
	// FailureInstallError means the external install operation failed.
	FailureInstallError FailureReason = "install_error"
)

// InstallOutcome reports how an install attempt ended. Variable names only,
// never values.
type InstallOutcome struct {
	// Phase is the terminal phase, PhaseConfirmed or PhaseFailed.
	Phase Phase
	// Reason is set when Phase is PhaseFailed.
	Reason FailureReason
	// NoOp is true when the operator declined reinstallation; the existing
	// record is unchanged and the attempt counts as success.
	NoOp bool
	// Record is the installation record written (or left in place for no-ops).
	Record *InstallationRecord
	// Tools are the tool names the connector will expose after the host
	// restarts, when probing was possible.
	Tools []string
	// Trace is the sequence of phases the attempt moved through.
	Trace []Phase
}

// Succeeded returns true when the attempt ended in PhaseConfirmed.
func (o InstallOutcome) Succeeded() bool {
	return o.Phase == PhaseConfirmed
}

// InstallError is returned by the external install operation. It
// distinguishes credential failures, which send the workflow back to
// credential collection, from other failures, which are retried as-is.
type InstallError struct {
	// Message is the human-readable failure description.
	Message string
	// CredentialError is true when the failure indicates bad credentials.
	CredentialError bool
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	if e.CredentialError {
		return fmt.Sprintf("install failed (credentials rejected): %s", e.Message)
	}
	return fmt.Sprintf("install failed: %s", e.Message)
}

// InstallAttempt is an audit entry for one install attempt. Persisted to
// the history store; carries variable names and outcome, never values.
type InstallAttempt struct {
	// ID uniquely identifies the attempt (uuid).
	ID string
	// QualifiedName is the connector the attempt targeted.
	QualifiedName string
	// Phase is the terminal phase of the attempt.
	Phase Phase
	// Reason is the failure reason, empty on success.
	Reason FailureReason
	// NoOp is true for declined reinstalls.
	NoOp bool
	// Variables are the variable names involved, never values.
	Variables []string
	// StartedAt is when the attempt began.
	StartedAt time.Time
	// FinishedAt is when the attempt reached a terminal phase.
	FinishedAt time.Time
}
