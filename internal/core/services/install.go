package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driving"
	"github.com/mcpm-dev/mcpm-cli/internal/logger"
)

// Ensure InstallOrchestrator implements the interface.
var _ driving.InstallWorkflow = (*InstallOrchestrator)(nil)

const (
	// maxCandidates is how many ranked results are presented for selection.
	// Ties beyond this cut are resolved by registry order; no re-ranking.
	maxCandidates = 3

	// maxCollectRounds bounds the re-prompt loop for blocking values.
	// An operator who keeps submitting empty or placeholder values past
	// this gets a missing-credential failure instead of an endless loop.
	maxCollectRounds = 3
)

// InstallOrchestrator drives the credential-aware install state machine:
// search, selection, status check, credential detection, batched collection,
// validation-gated install, and confirmation with retry handling.
//
// One Run call is one installation attempt. Attempts for different qualified
// names are independent; the record store is read then written within the
// attempt, scoped to the selected name.
type InstallOrchestrator struct {
	registry  driven.RegistryClient
	records   driven.RecordStore
	installer driven.Installer
	prompter  driven.Prompter
	detector  driving.CredentialDetector
	validator driving.CredentialValidator

	// Optional collaborators.
	prober  driven.ToolProber
	history driven.HistoryStore

	// newID mints record and attempt identifiers.
	newID func() string
	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewInstallOrchestrator creates the orchestrator. All parameters except
// newID are required; newID is wired by the caller (uuid in production).
func NewInstallOrchestrator(
	registry driven.RegistryClient,
	records driven.RecordStore,
	installer driven.Installer,
	prompter driven.Prompter,
	detector driving.CredentialDetector,
	validator driving.CredentialValidator,
	newID func() string,
) *InstallOrchestrator {
	return &InstallOrchestrator{
		registry:  registry,
		records:   records,
		installer: installer,
		prompter:  prompter,
		detector:  detector,
		validator: validator,
		newID:     newID,
		now:       time.Now,
	}
}

// SetToolProber enables post-install tool listing.
func (o *InstallOrchestrator) SetToolProber(prober driven.ToolProber) {
	o.prober = prober
}

// SetHistoryStore enables the install attempt audit trail.
func (o *InstallOrchestrator) SetHistoryStore(history driven.HistoryStore) {
	o.history = history
}

// attempt carries the mutable state of one Run call.
type attempt struct {
	query        string
	trace        []domain.Phase
	descriptor   *domain.ConnectorDescriptor
	requirements []domain.CredentialRequirement
	submission   domain.CredentialSubmission
	startedAt    time.Time
}

func (a *attempt) enter(phase domain.Phase) {
	a.trace = append(a.trace, phase)
}

// Run executes one installation attempt for the free-text query.
// Domain-level failures (no results, dismissed selection, unresolved
// credentials, declined retries) come back as a Failed outcome with a nil
// error; infrastructure errors are returned as errors.
func (o *InstallOrchestrator) Run(ctx context.Context, query string) (*domain.InstallOutcome, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	a := &attempt{
		query:      query,
		submission: domain.CredentialSubmission{},
		startedAt:  o.now(),
	}
	// Credential values never outlive the attempt.
	defer a.submission.Clear()

	outcome, err := o.run(ctx, a)
	if outcome != nil {
		outcome.Trace = a.trace
		o.recordAttempt(ctx, a, outcome)
	}
	return outcome, err
}

//nolint:gocyclo // State machine with necessary sequential phases
func (o *InstallOrchestrator) run(ctx context.Context, a *attempt) (*domain.InstallOutcome, error) {
	// Searching
	a.enter(domain.PhaseSearching)
	logger.Section("Search")
	logger.Info("Searching registry for %q", a.query)
	results, err := o.registry.Search(ctx, a.query)
	if err != nil {
		return nil, fmt.Errorf("registry search: %w", err)
	}
	if len(results) == 0 {
		logger.Warn("No connectors match %q", a.query)
		return o.failed(a, domain.FailureNotFound), nil
	}

	// Selecting
	a.enter(domain.PhaseSelecting)
	descriptor, err := o.selectCandidate(ctx, results)
	if err != nil {
		if errors.Is(err, domain.ErrNoSelection) {
			return o.failed(a, domain.FailureNoSelection), nil
		}
		return nil, err
	}
	a.descriptor = descriptor
	logger.Info("Selected %s", descriptor.QualifiedName)

	// CheckingStatus
	a.enter(domain.PhaseCheckingStatus)
	existing, err := o.records.Get(ctx, descriptor.QualifiedName)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check installation status: %w", err)
	}
	if existing != nil {
		a.enter(domain.PhaseAlreadyInstalled)
		reinstall, err := o.prompter.ConfirmReinstall(ctx, *existing)
		if err != nil {
			return nil, err
		}
		if !reinstall {
			// Declining is a successful no-op; the record stands.
			a.enter(domain.PhaseConfirmed)
			logger.Info("%s already installed, leaving as-is", descriptor.QualifiedName)
			return &domain.InstallOutcome{
				Phase:  domain.PhaseConfirmed,
				NoOp:   true,
				Record: existing,
			}, nil
		}
	}

	// DetectingCredentials
	a.enter(domain.PhaseDetectingCredentials)
	a.requirements = o.detector.Detect(*descriptor)
	logger.Info("Detected %d credential requirement(s)", len(a.requirements))

	if len(a.requirements) > 0 {
		outcome, err := o.collectAndValidate(ctx, a, a.requirements)
		if outcome != nil || err != nil {
			return outcome, err
		}
	}

	return o.install(ctx, a)
}

// selectCandidate presents up to maxCandidates results. A single result
// auto-advances; with more, the operator must choose explicitly.
func (o *InstallOrchestrator) selectCandidate(
	ctx context.Context,
	results []domain.ConnectorDescriptor,
) (*domain.ConnectorDescriptor, error) {
	if len(results) == 1 {
		// Nothing to disambiguate.
		return &results[0], nil
	}
	candidates := results
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	choice, err := o.prompter.SelectCandidate(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if choice == nil {
		return nil, domain.ErrNoSelection
	}
	return choice, nil
}

// collectAndValidate runs the CollectingCredentials/ValidatingCredentials
// loop. Returns a non-nil outcome or error to abort the attempt, or
// (nil, nil) when the submission is ready for install.
func (o *InstallOrchestrator) collectAndValidate(
	ctx context.Context,
	a *attempt,
	pending []domain.CredentialRequirement,
) (*domain.InstallOutcome, error) {
	rounds := 0
	for {
		// CollectingCredentials: one batched exchange, never per-variable.
		a.enter(domain.PhaseCollectingCredentials)
		batch, err := o.prompter.AskBatch(ctx, pending)
		if err != nil {
			if errors.Is(err, domain.ErrPromptAborted) {
				return o.failed(a, domain.FailureMissingCredential), nil
			}
			return nil, err
		}
		a.submission.Merge(batch)

		// ValidatingCredentials: classify every requirement against the
		// merged submission so earlier answers stay counted.
		a.enter(domain.PhaseValidatingCredentials)
		var blocking, warnings []domain.CredentialRequirement
		for _, req := range a.requirements {
			status := o.validator.Validate(req, a.submission[req.Variable])
			switch {
			case status.Blocking():
				logger.Warn("%s: %s value, must be corrected", req.Variable, status)
				blocking = append(blocking, req)
			case status == domain.ValidationFormatMismatch:
				logger.Warn("%s: value does not look like %s", req.Variable, req.FormatHint)
				warnings = append(warnings, req)
			}
		}

		if len(blocking) > 0 {
			rounds++
			if rounds >= maxCollectRounds {
				return o.failed(a, domain.FailureMissingCredential), nil
			}
			// Re-prompt only the offending variables.
			pending = blocking
			continue
		}

		if len(warnings) > 0 {
			override, err := o.prompter.ConfirmOverride(ctx, warnings)
			if err != nil {
				return nil, err
			}
			if !override {
				// Declined: re-collect just the warned variables.
				pending = warnings
				continue
			}
		}

		return nil, nil
	}
}

// install runs the Installing phase with its retry handling and, on
// success, writes the installation record and confirms.
func (o *InstallOrchestrator) install(ctx context.Context, a *attempt) (*domain.InstallOutcome, error) {
	mode := a.descriptor.Mode()
	for {
		a.enter(domain.PhaseInstalling)
		logger.Section("Install")
		err := o.installer.Install(ctx, *a.descriptor, a.submission, mode)
		if err == nil {
			return o.confirm(ctx, a, mode)
		}

		var installErr *domain.InstallError
		if !errors.As(err, &installErr) {
			return nil, fmt.Errorf("install %s: %w", a.descriptor.QualifiedName, err)
		}

		if installErr.CredentialError {
			// Bad credentials: back to collection for everything.
			logger.Warn("Install rejected credentials: %s", installErr.Message)
			outcome, err := o.collectAndValidate(ctx, a, a.requirements)
			if outcome != nil || err != nil {
				return outcome, err
			}
			continue
		}

		retry, err := o.prompter.ConfirmRetry(ctx, installErr)
		if err != nil {
			return nil, err
		}
		if !retry {
			return o.failed(a, domain.FailureInstallError), nil
		}
		// Retry re-enters Installing with the same submission.
	}
}

// confirm writes the record atomically and reports variable names (never
// values) plus the tools the connector will expose after the host restarts.
func (o *InstallOrchestrator) confirm(
	ctx context.Context,
	a *attempt,
	mode domain.DeploymentMode,
) (*domain.InstallOutcome, error) {
	variables := make([]string, 0, len(a.requirements))
	for _, req := range a.requirements {
		variables = append(variables, req.Variable)
	}
	sort.Strings(variables)

	record := domain.InstallationRecord{
		ID:            o.newID(),
		QualifiedName: a.descriptor.QualifiedName,
		Mode:          mode,
		Variables:     variables,
		InstalledAt:   o.now(),
	}
	if err := o.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save installation record: %w", err)
	}

	var tools []string
	if o.prober != nil {
		probed, err := o.prober.ListTools(ctx, a.descriptor.PreferredConnection(), a.submission)
		if err != nil {
			logger.Warn("Tool probe failed: %v", err)
		} else {
			tools = probed
		}
	}

	a.enter(domain.PhaseConfirmed)
	logger.Info("Installed %s with variables %v", record.QualifiedName, record.Variables)
	return &domain.InstallOutcome{
		Phase:  domain.PhaseConfirmed,
		Record: &record,
		Tools:  tools,
	}, nil
}

func (o *InstallOrchestrator) failed(a *attempt, reason domain.FailureReason) *domain.InstallOutcome {
	a.enter(domain.PhaseFailed)
	return &domain.InstallOutcome{
		Phase:  domain.PhaseFailed,
		Reason: reason,
	}
}

// recordAttempt writes the audit entry when a history store is configured.
func (o *InstallOrchestrator) recordAttempt(ctx context.Context, a *attempt, outcome *domain.InstallOutcome) {
	if o.history == nil {
		return
	}
	entry := domain.InstallAttempt{
		ID:         o.newID(),
		Phase:      outcome.Phase,
		Reason:     outcome.Reason,
		NoOp:       outcome.NoOp,
		StartedAt:  a.startedAt,
		FinishedAt: o.now(),
	}
	if a.descriptor != nil {
		entry.QualifiedName = a.descriptor.QualifiedName
	}
	if outcome.Record != nil {
		entry.Variables = outcome.Record.Variables
	}
	if err := o.history.Record(ctx, entry); err != nil {
		logger.Warn("Recording install attempt: %v", err)
	}
}
