package bridge

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"braintree-mcp/internal/braintree"
	"braintree-mcp/internal/config"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdleServer(transport Transport) *Server {
	cfg := config.Default()
	cfg.MerchantID = "m"
	cfg.PublicKey = "pub"
	cfg.PrivateKey = "priv"
	return New(Options{
		Name:      "braintree",
		Version:   "test",
		Transport: transport,
		Host:      "127.0.0.1",
		Port:      0, // Any available port; nothing connects in these tests
	}, braintree.NewClient(cfg))
}

func TestNew_Defaults(t *testing.T) {
	s := New(Options{}, nil)
	assert.Equal(t, "braintree", s.opts.Name)
	assert.Equal(t, "dev", s.opts.Version)
	require.NotNil(t, s.server)
}

func TestServer_StartStop(t *testing.T) {
	for _, transport := range []Transport{TransportSSE, TransportStreamableHTTP} {
		t.Run(string(transport), func(t *testing.T) {
			ctx := context.Background()
			s := newIdleServer(transport)

			require.NoError(t, s.Start(ctx))
			require.NoError(t, s.Stop(ctx))
		})
	}
}

func TestServer_StartTwice(t *testing.T) {
	ctx := context.Background()
	s := newIdleServer(TransportSSE)

	require.NoError(t, s.Start(ctx))
	defer s.Stop(ctx)

	err := s.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already started")
}

func TestServer_StopWithoutStart(t *testing.T) {
	s := newIdleServer(TransportSSE)
	err := s.Stop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}

func TestServer_UnknownTransport(t *testing.T) {
	s := newIdleServer(Transport("websocket"))
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}

func TestServer_FailedStartLeavesNotStarted(t *testing.T) {
	s := newIdleServer(Transport("websocket"))

	require.Error(t, s.Start(context.Background()))

	// A rejected transport must not mark the server started: the next Start
	// reports the transport problem again, and Stop has nothing to stop.
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")

	err = s.Stop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not started")
}

func TestServer_StdioTransportRouting(t *testing.T) {
	// Start rejects stdio, ServeStdio rejects everything else. The two entry
	// points cover disjoint transports.
	stdio := newIdleServer(TransportStdio)
	err := stdio.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ServeStdio")

	sse := newIdleServer(TransportSSE)
	err = sse.ServeStdio(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not stdio")
}

// freePort reserves a listen port and releases it for the server under test.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// newServedServer starts a bridge server on a real port, backed by a stub
// upstream that answers every GraphQL request with upstreamBody.
func newServedServer(t *testing.T, transport Transport, upstreamBody string) int {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.MerchantID = "m"
	cfg.PublicKey = "pub"
	cfg.PrivateKey = "priv"
	cfg.GraphQLURL = upstream.URL

	port := freePort(t)
	s := New(Options{
		Name:      "braintree",
		Version:   "test",
		Transport: transport,
		Host:      "127.0.0.1",
		Port:      port,
	}, braintree.NewClient(cfg))

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { s.Stop(context.Background()) })

	// Start returns before the listener is up; wait until it accepts.
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	return port
}

// connectClient dials the served transport and completes the MCP handshake.
func connectClient(t *testing.T, transport Transport, port int) *client.Client {
	t.Helper()

	var (
		c   *client.Client
		err error
	)
	switch transport {
	case TransportSSE:
		c, err = client.NewSSEMCPClient(fmt.Sprintf("http://127.0.0.1:%d/sse", port))
	case TransportStreamableHTTP:
		c, err = client.NewStreamableHttpClient(fmt.Sprintf("http://127.0.0.1:%d/mcp", port))
	default:
		t.Fatalf("no client for transport %q", transport)
	}
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo: mcp.Implementation{
				Name:    "bridge-test",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	})
	require.NoError(t, err)

	return c
}

// Tool calls travel through a real listening transport here, not straight
// into the handlers: the same input against the same upstream must come back
// identical over SSE and streamable HTTP.
func TestServer_ToolCallOverNetworkTransports(t *testing.T) {
	outputs := make(map[Transport]string)

	for _, transport := range []Transport{TransportSSE, TransportStreamableHTTP} {
		t.Run(string(transport), func(t *testing.T) {
			port := newServedServer(t, transport, `{"data":{"ping":"pong"}}`)
			c := connectClient(t, transport, port)

			result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
				Params: mcp.CallToolParams{Name: "braintree_ping"},
			})
			require.NoError(t, err)
			require.False(t, result.IsError)

			outputs[transport] = resultText(t, result)
			assert.Equal(t, "pong", outputs[transport])
		})
	}

	assert.Equal(t, outputs[TransportSSE], outputs[TransportStreamableHTTP])
}

func TestServer_ExecuteGraphQLOverSSE(t *testing.T) {
	upstreamBody := `{"data":{"node":{"id":"tx_1"}}}`
	port := newServedServer(t, TransportSSE, upstreamBody)
	c := connectClient(t, TransportSSE, port)

	result, err := c.CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "braintree_execute_graphql",
			Arguments: map[string]interface{}{
				"query": `query GetTx { node(id: "tx_1") { id } }`,
			},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, upstreamBody, resultText(t, result))
}
