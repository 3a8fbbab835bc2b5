package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/qamus-labs/rootscan-cli/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// serverInstructions tells a connecting assistant what the corpus tools
// are for and how roots are written.
const serverInstructions = `rootscan exposes a Quranic morphology corpus.
Roots are triliteral and may be given in Arabic script or Buckwalter
transliteration (case matters: H is ح, h is ه). Use locate_verses to list
every verse containing a root and root_frequency for occurrence counts;
the rootscan:// resources serve the same data as JSON.`

// Server is the MCP server for rootscan.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "rootscan",
		Version: Version,
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: serverInstructions,
		}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("MCP server on stdio (locator ready, frequency %s)", s.frequencyState())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("MCP server on %s (locator ready, frequency %s)", addr, s.frequencyState())
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) frequencyState() string {
	if s.ports.Frequency == nil {
		return "disabled"
	}
	return "ready"
}
