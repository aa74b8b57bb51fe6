package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepCoin", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepCoin workout data server. Query the coin wallet, recorded reps, workout sessions, and time-bucketed rep statistics. One coin is earned per completed rep."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWallet, Handler: h.getWallet},
		server.ServerTool{Tool: toolGetRecentReps, Handler: h.getRecentReps},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetRepStats, Handler: h.getRepStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWallet, Handler: h.walletResource},
		server.ServerResource{Resource: resRecentReps, Handler: h.recentRepsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resWallet = mcp.NewResource(
	"repcoin://wallet",
	"Coin Wallet",
	mcp.WithResourceDescription("Lifetime coin balance with pushup, situp, and session totals"),
	mcp.WithMIMEType("application/json"),
)

var resRecentReps = mcp.NewResource(
	"repcoin://recent_reps",
	"Recent Reps",
	mcp.WithResourceDescription("The 100 most recently recorded reps, newest first"),
	mcp.WithMIMEType("application/json"),
)
