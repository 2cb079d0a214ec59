package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.Handle("/", s.app.MarketHandler)

	// Static files (CSS, images)
	mux.HandleFunc("/static/", s.app.MarketHandler.StaticFileHandler)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Market API routes
	api := s.app.MarketAPIHandler
	mux.HandleFunc("/api/market/assets", api.HandleAssets)
	mux.HandleFunc("/api/market/predictions", api.HandlePredictions)
	mux.HandleFunc("/api/market/predictions/", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceItem(w, r, api.HandlePrediction, nil, nil)
	})
	mux.HandleFunc("/api/market/news", api.HandleNews)
	mux.HandleFunc("/api/market/advice", api.HandleAdvice)
	mux.HandleFunc("/api/market/convert", api.HandleConvert)
	mux.HandleFunc("/api/market/view", func(w http.ResponseWriter, r *http.Request) {
		RouteResourceCollection(w, r, api.HandleGetView, api.HandleSelectTab)
	})

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
