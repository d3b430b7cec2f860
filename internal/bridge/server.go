package bridge

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"braintree-mcp/internal/braintree"
	"braintree-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

// Transport selects how the MCP server reaches its client.
type Transport string

const (
	// TransportStdio serves one logical session over the process pipe.
	TransportStdio Transport = "stdio"
	// TransportSSE serves multiple clients over an HTTP event stream.
	TransportSSE Transport = "sse"
	// TransportStreamableHTTP serves the streamable HTTP MCP transport.
	TransportStreamableHTTP Transport = "streamable-http"
)

// shutdownTimeout bounds how long Stop waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Options configures the bridge server.
type Options struct {
	// Name is the MCP server name advertised to clients (default "braintree").
	Name string

	// Version is the server version advertised to clients.
	Version string

	// Transport selects the serving mode.
	Transport Transport

	// Host and Port are the bind address for the network transports.
	Host string
	Port int
}

// Server exposes the Braintree tools through a single MCP server. The tool
// registration is shared by every transport, so identical inputs produce
// identical tool outputs regardless of how the bytes reach the client.
type Server struct {
	opts   Options
	client *braintree.Client

	server *server.MCPServer

	// Transport-specific servers
	sseServer            *server.SSEServer
	streamableHTTPServer *server.StreamableHTTPServer

	// Lifecycle management
	started bool
	mu      sync.Mutex
}

// New creates a bridge server with all tools registered. The client carries
// the only state the handlers need; the server itself is stateless.
func New(opts Options, client *braintree.Client) *Server {
	if opts.Name == "" {
		opts.Name = "braintree"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		opts:   opts,
		client: client,
	}
	s.server = server.NewMCPServer(
		opts.Name,
		opts.Version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// ServeStdio serves the MCP protocol over stdin/stdout and blocks until the
// client closes the pipe or the context is cancelled. The stdio variant
// serves exactly one logical session per process lifetime.
func (s *Server) ServeStdio(ctx context.Context) error {
	if s.opts.Transport != TransportStdio {
		return fmt.Errorf("transport %q is not stdio", s.opts.Transport)
	}

	logging.Info("Bridge", "Serving MCP over stdio")
	stdioServer := server.NewStdioServer(s.server)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// Start starts the configured network transport and returns immediately.
// Use Stop to shut the transport down; ServeStdio serves the stdio variant.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("bridge server already started")
	}

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)

	switch s.opts.Transport {
	case TransportSSE:
		logging.Info("Bridge", "Serving MCP over SSE on %s", addr)
		baseURL := fmt.Sprintf("http://%s", addr)
		s.sseServer = server.NewSSEServer(
			s.server,
			server.WithBaseURL(baseURL),
			server.WithSSEEndpoint("/sse"),
			server.WithMessageEndpoint("/message"),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(30*time.Second),
		)
		sseServer := s.sseServer
		go func() {
			if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Bridge", err, "SSE server error")
			}
		}()

	case TransportStreamableHTTP:
		logging.Info("Bridge", "Serving MCP over streamable HTTP on %s", addr)
		s.streamableHTTPServer = server.NewStreamableHTTPServer(s.server)
		streamableServer := s.streamableHTTPServer
		go func() {
			if err := streamableServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Bridge", err, "Streamable HTTP server error")
			}
		}()

	case TransportStdio:
		return fmt.Errorf("stdio transport must be served via ServeStdio")

	default:
		return fmt.Errorf("unknown transport %q", s.opts.Transport)
	}

	// Only a transport that actually launched marks the server started.
	s.started = true
	return nil
}

// Stop shuts down the running network transport.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	sseServer := s.sseServer
	streamableServer := s.streamableHTTPServer
	s.started = false
	s.sseServer = nil
	s.streamableHTTPServer = nil
	s.mu.Unlock()

	if !started {
		return fmt.Errorf("bridge server not started")
	}

	logging.Info("Bridge", "Stopping MCP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if sseServer != nil {
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down SSE server: %w", err)
		}
	}
	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down streamable HTTP server: %w", err)
		}
	}

	return nil
}
