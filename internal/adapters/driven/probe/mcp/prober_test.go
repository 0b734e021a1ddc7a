package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

type echoInput struct {
	Text string `json:"text"`
}

type echoOutput struct {
	Text string `json:"text"`
}

func handleEcho(_ context.Context, _ *mcp.CallToolRequest, input echoInput) (*mcp.CallToolResult, echoOutput, error) {
	return nil, echoOutput{Text: input.Text}, nil
}

// testServer builds an in-process MCP server exposing the given tool names.
func testServer(toolNames ...string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "probe-test", Version: "0.0.1"}, nil)
	for _, name := range toolNames {
		mcp.AddTool(server, &mcp.Tool{Name: name, Description: "test tool"}, handleEcho)
	}
	return server
}

func TestListTools(t *testing.T) {
	ctx := context.Background()
	server := testServer("search_issues", "create_issue")

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	names, err := listTools(ctx, clientTransport)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"search_issues", "create_issue"}, names)
}

func TestListTools_NoTools(t *testing.T) {
	ctx := context.Background()
	server := testServer()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	names, err := listTools(ctx, clientTransport)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestTransportFor(t *testing.T) {
	prober := NewProber()

	tests := []struct {
		name    string
		spec    domain.ConnectionSpec
		wantErr bool
	}{
		{
			name: "stdio with command",
			spec: domain.ConnectionSpec{
				Transport: domain.TransportStdio,
				Command:   "npx",
				Args:      []string{"-y", "@github/mcp-server"},
			},
		},
		{
			name:    "stdio without command",
			spec:    domain.ConnectionSpec{Transport: domain.TransportStdio},
			wantErr: true,
		},
		{
			name: "streamable http",
			spec: domain.ConnectionSpec{
				Transport: domain.TransportStreamableHTTP,
				Endpoint:  "https://mcp.example.com/mcp",
			},
		},
		{
			name: "sse",
			spec: domain.ConnectionSpec{
				Transport: domain.TransportSSE,
				Endpoint:  "https://mcp.example.com/sse",
			},
		},
		{
			name:    "unknown transport",
			spec:    domain.ConnectionSpec{Transport: "carrier-pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport, err := prober.transportFor(tt.spec, nil)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, transport)
		})
	}
}

func TestProbeEnv(t *testing.T) {
	base := []string{"PATH=/usr/bin"}
	submission := domain.CredentialSubmission{
		"B_TOKEN": "two",
		"A_TOKEN": "one",
	}

	env := probeEnv(base, submission)
	assert.Equal(t, []string{"PATH=/usr/bin", "A_TOKEN=one", "B_TOKEN=two"}, env)
}
