package mcpregistry

import (
	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// Wire types for the registry's v0 API. The registry's own indexing and
// ranking are opaque; result order is preserved as received.

type searchResponse struct {
	Servers []serverEntry `json:"servers"`
}

type serverEntry struct {
	Server serverJSON `json:"server"`
}

type serverJSON struct {
	Name        string        `json:"name"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Verified    bool          `json:"verified,omitempty"`
	Packages    []packageJSON `json:"packages,omitempty"`
	Remotes     []remoteJSON  `json:"remotes,omitempty"`
}

type packageJSON struct {
	RegistryType         string          `json:"registry_type"`
	Identifier           string          `json:"identifier"`
	Version              string          `json:"version,omitempty"`
	RuntimeHint          string          `json:"runtime_hint,omitempty"`
	RuntimeArguments     []argumentJSON  `json:"runtime_arguments,omitempty"`
	Transport            transportJSON   `json:"transport"`
	EnvironmentVariables []keyValueInput `json:"environment_variables,omitempty"`
}

type remoteJSON struct {
	Type    string          `json:"type"`
	URL     string          `json:"url"`
	Headers []keyValueInput `json:"headers,omitempty"`
}

type transportJSON struct {
	Type string `json:"type"`
}

type argumentJSON struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// keyValueInput mirrors the registry's named-input shape: a variable the
// operator must supply, described but never valued.
type keyValueInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsRequired  bool   `json:"is_required,omitempty"`
	IsSecret    bool   `json:"is_secret,omitempty"`
}

// toDescriptor maps a wire server to the domain descriptor. Packages come
// before remotes, preserving the registry's preference order within each.
func (s serverJSON) toDescriptor() domain.ConnectorDescriptor {
	desc := domain.ConnectorDescriptor{
		QualifiedName: s.Name,
		DisplayName:   s.Title,
		Description:   s.Description,
		Verified:      s.Verified,
	}
	if desc.DisplayName == "" {
		desc.DisplayName = s.Name
	}

	for _, pkg := range s.Packages {
		desc.Connections = append(desc.Connections, pkg.toConnectionSpec())
	}
	for _, remote := range s.Remotes {
		desc.Connections = append(desc.Connections, remote.toConnectionSpec())
	}
	return desc
}

func (p packageJSON) toConnectionSpec() domain.ConnectionSpec {
	spec := domain.ConnectionSpec{
		Transport: transportKind(p.Transport.Type),
		Command:   p.command(),
		EnvVars:   toEnvVarRefs(p.EnvironmentVariables),
	}
	for _, arg := range p.RuntimeArguments {
		if arg.Value != "" {
			spec.Args = append(spec.Args, arg.Value)
		}
	}
	return spec
}

// command picks the subprocess invocation: an explicit runtime hint
// (e.g. "npx", "uvx", "docker") wins, otherwise the package identifier
// itself is the executable.
func (p packageJSON) command() string {
	if p.RuntimeHint != "" {
		return p.RuntimeHint
	}
	return p.Identifier
}

func (r remoteJSON) toConnectionSpec() domain.ConnectionSpec {
	return domain.ConnectionSpec{
		Transport: transportKind(r.Type),
		Endpoint:  r.URL,
		EnvVars:   toEnvVarRefs(r.Headers),
	}
}

func transportKind(wire string) domain.TransportKind {
	switch wire {
	case "sse":
		return domain.TransportSSE
	case "streamable-http", "streamable_http", "http":
		return domain.TransportStreamableHTTP
	default:
		return domain.TransportStdio
	}
}

func toEnvVarRefs(inputs []keyValueInput) []domain.EnvVarRef {
	if len(inputs) == 0 {
		return nil
	}
	refs := make([]domain.EnvVarRef, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			continue
		}
		refs = append(refs, domain.EnvVarRef{
			Name:        in.Name,
			Description: in.Description,
			Required:    in.IsRequired,
			Secret:      in.IsSecret,
		})
	}
	return refs
}
