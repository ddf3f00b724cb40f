// Package service hosts the MCP server exposing character computation tools.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/sheetwright/internal/beyond"
	cachesqlite "github.com/louisbranch/sheetwright/internal/beyond/cache/sqlite"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Sheetwright MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP is reserved for future HTTP transport support.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// SessionToken authorizes character fetches; optional for public
	// characters.
	SessionToken string
	// CachePath enables the SQLite payload cache when set.
	CachePath string
	// CacheTTL bounds cached payload age; zero means no expiry.
	CacheTTL time.Duration
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	cache     *cachesqlite.Store
}

// New creates a configured MCP server. The character_fetch tool is wired to
// the character service; character_compute works on inline payloads and
// needs no network access.
func New(cfg Config) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	server := &Server{mcpServer: mcpServer}

	clientOpts := beyond.Options{
		Session:  beyond.Session{Token: cfg.SessionToken},
		CacheTTL: cfg.CacheTTL,
	}
	if cfg.CachePath != "" {
		cache, err := cachesqlite.Open(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open payload cache: %w", err)
		}
		server.cache = cache
		clientOpts.Cache = cache
	}
	client := beyond.New(clientOpts)

	registerCharacterTools(mcpServer, client)
	registerRuleResources(mcpServer)

	return server, nil
}

// Run creates and serves an MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		server, err := New(cfg)
		if err != nil {
			return err
		}
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return fmt.Errorf("transport %q is not supported yet", cfg.Transport)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the payload cache held by the server.
func (s *Server) Close() error {
	if s == nil || s.cache == nil {
		return nil
	}
	cache := s.cache
	s.cache = nil
	return cache.Close()
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close payload cache: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close payload cache: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
