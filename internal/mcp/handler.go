// Package mcp exposes the market datasets as MCP tools over streamable HTTP.
package mcp

import (
	"net/http"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/config"
	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/view"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	tools      []string
}

// NewServer builds the MCP server with every market tool registered.
func NewServer(ds *market.Dataset, f *market.Formatter, links view.Links) (*mcpserver.MCPServer, []string) {
	mcpSrv := mcpserver.NewMCPServer(
		"market-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	names := RegisterTools(mcpSrv, &Tools{dataset: ds, formatter: f, links: links})
	return mcpSrv, names
}

// NewHandler creates the MCP handler serving the market tools.
func NewHandler(logger *common.Logger, ds *market.Dataset, f *market.Formatter, links view.Links) *Handler {
	mcpSrv, names := NewServer(ds, f, links)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	if logger != nil {
		logger.Info().
			Int("tools", len(names)).
			Msg("MCP handler initialized")
	}

	return &Handler{
		streamable: streamable,
		logger:     logger,
		tools:      names,
	}
}

// Tools returns the names of the registered tools.
func (h *Handler) Tools() []string {
	result := make([]string, len(h.tools))
	copy(result, h.tools)
	return result
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
