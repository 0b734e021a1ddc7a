// Package domain defines the core business entities for mcpm.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ConnectorDescriptor: A connector package as described by the registry
//   - CredentialRequirement: A secret variable a connector needs
//   - CredentialSubmission: Operator-supplied values for one install attempt
//   - InstallationRecord: Persisted evidence that a connector is configured
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
