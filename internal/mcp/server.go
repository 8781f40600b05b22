// Package mcp exposes brand projects as Model Context Protocol tools.
package mcp

import (
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"brandsmith/internal/services"
	"brandsmith/internal/transport"
)

const serverInstructions = `Brandsmith guides a brand-identity project through discovery, strategy, concepts, refinement and toolkit.
Create a project, then drive it with send_message: answer discovery questions, reply "approve" to accept the strategy,
reply 1, 2 or 3 to pick a concept and "generate toolkit" to finish. Read the result with get_toolkit.`

// Config contains server configuration.
type Config struct {
	Projects      services.ProjectService
	Conversations services.ConversationService
	Users         transport.UserResolver
	// AuthEnabled requires a bearer token on HTTP tool calls. Stdio is
	// always served as LocalUserID.
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	LocalUserID   uint
	Version       string
	Logger        *slog.Logger
}

// NewServer creates an MCP server with every tool and middleware registered.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "brandsmith",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Users))
	} else {
		server.AddReceivingMiddleware(localUserMiddleware(cfg.LocalUserID))
	}
	server.AddReceivingMiddleware(loggingMiddleware(cfg.Logger))

	registerTools(server, &tools{projects: cfg.Projects, conversations: cfg.Conversations})
	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)
}
