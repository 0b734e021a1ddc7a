package services

import (
	"fmt"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
	"github.com/mcpm-dev/mcpm-cli/internal/core/ports/driving"
)

// Ensure CapabilityDetector implements the interface.
var _ driving.CredentialDetector = (*CapabilityDetector)(nil)

// CapabilityDetector infers the set of secret variables a connector
// requires from its declared connection metadata. Pure computation:
// no network or disk access.
type CapabilityDetector struct {
	patterns *PatternRegistry
}

// NewCapabilityDetector creates a detector backed by the pattern registry.
func NewCapabilityDetector(patterns *PatternRegistry) *CapabilityDetector {
	return &CapabilityDetector{patterns: patterns}
}

// Detect scans every connection spec for referenced variable names and
// produces exactly one requirement per distinct name, in first-seen order.
// Known patterns come from the registry, first by variable name, then by
// the connector's qualified name as a service hint. A referenced variable
// with no known pattern still yields a requirement, just without format
// validation.
func (d *CapabilityDetector) Detect(descriptor domain.ConnectorDescriptor) []domain.CredentialRequirement {
	seen := make(map[string]bool)
	var requirements []domain.CredentialRequirement

	for _, conn := range descriptor.Connections {
		for _, ref := range conn.EnvVars {
			if ref.Name == "" || seen[ref.Name] {
				continue
			}
			seen[ref.Name] = true
			requirements = append(requirements, d.requirementFor(descriptor, ref))
		}
	}

	return requirements
}

func (d *CapabilityDetector) requirementFor(
	descriptor domain.ConnectorDescriptor,
	ref domain.EnvVarRef,
) domain.CredentialRequirement {
	req := domain.CredentialRequirement{
		Variable:    ref.Name,
		Description: ref.Description,
		Required:    ref.Required,
	}

	known, ok := d.patterns.LookupVariable(ref.Name)
	if !ok && ref.Secret {
		// The connector's own name may identify the service
		// (e.g. "github/mcp-server" referencing a generically named token).
		known, ok = d.patterns.Lookup(descriptor.QualifiedName)
	}
	if ok {
		req.Pattern = known.Pattern
		req.FormatHint = known.FormatHint
		req.ProvenanceURL = known.ProvenanceURL
	}
	if req.Description == "" {
		req.Description = fmt.Sprintf("Secret value for %s", ref.Name)
	}

	return req
}
