// Package prompt implements driven.Prompter over a line-oriented terminal.
// Secret values are read without echo when stdin is a terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driven"
)

// Ensure Prompter implements the interface.
var _ driven.Prompter = (*Prompter)(nil)

// PickFunc is an alternative candidate selector, e.g. a full-screen picker.
// Returning domain.ErrNoSelection reports a dismissed prompt.
type PickFunc func(ctx context.Context, candidates []domain.ConnectorDescriptor) (*domain.ConnectorDescriptor, error)

// Prompter asks the operator over stdin/stdout.
type Prompter struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func() (string, error)
	pick       PickFunc
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithSecretReader overrides how secret values are read.
func WithSecretReader(fn func() (string, error)) Option {
	return func(p *Prompter) {
		p.readSecret = fn
	}
}

// WithPicker uses fn instead of the numbered list for candidate selection.
func WithPicker(fn PickFunc) Option {
	return func(p *Prompter) {
		p.pick = fn
	}
}

// New creates a prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	p.readSecret = p.readLine
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTerminal creates a prompter on the process's stdin/stdout with
// no-echo secret entry when stdin is a terminal.
func NewTerminal(opts ...Option) *Prompter {
	p := New(os.Stdin, os.Stdout, opts...)
	p.readSecret = func() (string, error) {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			value, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err == nil {
				fmt.Fprintln(p.out)
				return strings.TrimSpace(string(value)), nil
			}
		}
		// Fallback to echoed input
		return p.readLine()
	}
	return p
}

// SelectCandidate lists candidates and reads a 1-based choice. An empty or
// out-of-range answer dismisses the prompt.
func (p *Prompter) SelectCandidate(
	ctx context.Context,
	candidates []domain.ConnectorDescriptor,
) (*domain.ConnectorDescriptor, error) {
	if p.pick != nil {
		return p.pick(ctx, candidates)
	}

	fmt.Fprintln(p.out, "Multiple connectors match:")
	for i, c := range candidates {
		verified := ""
		if c.Verified {
			verified = " (verified)"
		}
		fmt.Fprintf(p.out, "  %d. %s%s\n", i+1, c.QualifiedName, verified)
		if c.Description != "" {
			fmt.Fprintf(p.out, "     %s\n", c.Description)
		}
	}
	fmt.Fprintf(p.out, "\nSelect a connector [1-%d]: ", len(candidates))

	input, err := p.readLine()
	if err != nil {
		return nil, err
	}
	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(candidates) {
		return nil, domain.ErrNoSelection
	}
	return &candidates[choice-1], nil
}

// AskBatch prompts for every requirement and returns the full submission.
// An aborted read returns domain.ErrPromptAborted and no partial values.
func (p *Prompter) AskBatch(
	_ context.Context,
	requirements []domain.CredentialRequirement,
) (domain.CredentialSubmission, error) {
	if len(requirements) == 0 {
		return domain.CredentialSubmission{}, nil
	}

	fmt.Fprintf(p.out, "This connector needs %d credential(s).\n", len(requirements))

	submission := domain.CredentialSubmission{}
	for _, req := range requirements {
		fmt.Fprintln(p.out)
		fmt.Fprintf(p.out, "%s\n", req.Variable)
		if req.Description != "" {
			fmt.Fprintf(p.out, "  %s\n", req.Description)
		}
		if req.FormatHint != "" {
			fmt.Fprintf(p.out, "  Expected format: %s\n", req.FormatHint)
		}
		if req.ProvenanceURL != "" {
			fmt.Fprintf(p.out, "  Obtain at: %s\n", req.ProvenanceURL)
		}
		fmt.Fprintf(p.out, "  Value: ")

		value, err := p.readSecret()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s", domain.ErrPromptAborted, req.Variable)
		}
		submission[req.Variable] = value
	}
	return submission, nil
}

// ConfirmReinstall asks whether to replace an existing installation.
func (p *Prompter) ConfirmReinstall(_ context.Context, record domain.InstallationRecord) (bool, error) {
	fmt.Fprintf(p.out, "%s is already installed (since %s).\n",
		record.QualifiedName, record.InstalledAt.Format("2006-01-02"))
	return p.confirm("Reinstall and replace its configuration? [y/N]: ")
}

// ConfirmOverride shows format warnings and asks whether to proceed anyway.
func (p *Prompter) ConfirmOverride(_ context.Context, warnings []domain.CredentialRequirement) (bool, error) {
	fmt.Fprintln(p.out, "Some values do not match the expected format:")
	for _, w := range warnings {
		hint := w.FormatHint
		if hint == "" {
			hint = "unexpected format"
		}
		fmt.Fprintf(p.out, "  %s: %s\n", w.Variable, hint)
	}
	return p.confirm("Install anyway? [y/N]: ")
}

// ConfirmRetry surfaces an install error and asks whether to retry.
func (p *Prompter) ConfirmRetry(_ context.Context, installErr *domain.InstallError) (bool, error) {
	fmt.Fprintf(p.out, "Installation failed: %s\n", installErr.Message)
	return p.confirm("Retry? [y/N]: ")
}

func (p *Prompter) confirm(question string) (bool, error) {
	fmt.Fprint(p.out, question)
	input, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompter) readLine() (string, error) {
	input, err := p.in.ReadString('\n')
	if err != nil && input == "" {
		return "", fmt.Errorf("%w: %v", domain.ErrPromptAborted, err)
	}
	return strings.TrimSpace(input), nil
}
