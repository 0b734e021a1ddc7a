package domain

import "strings"

// DeploymentMode describes where a connector runs once installed.
type DeploymentMode string

const (
	// ModeRemote means the connector is reached over the network.
	ModeRemote DeploymentMode = "remote"
	// ModeLocal means the connector runs as a local subprocess.
	ModeLocal DeploymentMode = "local"
)

// TransportKind identifies how the host application talks to a connector.
type TransportKind string

const (
	// TransportStdio is a subprocess speaking JSON-RPC over stdio.
	TransportStdio TransportKind = "stdio"
	// TransportStreamableHTTP is the streamable HTTP transport.
	TransportStreamableHTTP TransportKind = "streamable-http"
	// TransportSSE is the legacy server-sent-events transport.
	TransportSSE TransportKind = "sse"
)

// EnvVarRef is a secret variable referenced by name in a connection spec.
// The registry never carries values, only names and metadata.
type EnvVarRef struct {
	// Name is the environment variable name (e.g. "GITHUB_PERSONAL_ACCESS_TOKEN").
	Name string
	// Description explains what the variable is for, when the registry provides one.
	Description string
	// Required indicates the connector will not start without this variable.
	Required bool
	// Secret indicates the value must be masked in any UI.
	Secret bool
}

// ConnectionSpec declares one way a connector can be reached and which
// secret variables that connection references. Read-only once fetched.
type ConnectionSpec struct {
	// Transport is how the host reaches the connector.
	Transport TransportKind
	// Endpoint is the URL for remote transports, empty for stdio.
	Endpoint string
	// Command is the subprocess invocation for stdio transports.
	Command string
	// Args are the subprocess arguments for stdio transports.
	Args []string
	// EnvVars are the secret variables this connection references, by name.
	EnvVars []EnvVarRef
}

// Mode returns the deployment mode implied by the transport.
func (c ConnectionSpec) Mode() DeploymentMode {
	if c.Transport == TransportStdio {
		return ModeLocal
	}
	return ModeRemote
}

// ConnectorDescriptor describes a connector package as returned by the
// registry. Immutable once fetched; ranking is the registry's, preserved
// in result order.
type ConnectorDescriptor struct {
	// QualifiedName is the globally unique identifier (namespace/package form).
	QualifiedName string
	// DisplayName is the human-readable name.
	DisplayName string
	// Description is a short summary from the registry.
	Description string
	// Verified indicates the registry has verified the publisher.
	Verified bool
	// Connections lists the ways this connector can be reached, in
	// registry-preferred order.
	Connections []ConnectionSpec
}

// PreferredConnection returns the first connection spec, which the registry
// orders by preference. Returns a zero spec when the descriptor declares none.
func (d ConnectorDescriptor) PreferredConnection() ConnectionSpec {
	if len(d.Connections) == 0 {
		return ConnectionSpec{}
	}
	return d.Connections[0]
}

// Mode returns the deployment mode of the preferred connection.
func (d ConnectorDescriptor) Mode() DeploymentMode {
	return d.PreferredConnection().Mode()
}

// Namespace returns the namespace portion of the qualified name,
// or the whole name when it has no namespace.
func (d ConnectorDescriptor) Namespace() string {
	if idx := strings.IndexByte(d.QualifiedName, '/'); idx >= 0 {
		return d.QualifiedName[:idx]
	}
	return d.QualifiedName
}

// ShortName returns the package portion of the qualified name.
func (d ConnectorDescriptor) ShortName() string {
	if idx := strings.IndexByte(d.QualifiedName, '/'); idx >= 0 {
		return d.QualifiedName[idx+1:]
	}
	return d.QualifiedName
}
