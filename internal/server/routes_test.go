package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/market-portal/internal/app"
	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/config"
	"github.com/bobmcallan/market-portal/internal/view"
)

func newTestApp(t *testing.T) (*app.App, *view.ManualClock) {
	t.Helper()

	cfg := config.NewDefaultConfig()
	clock := view.NewManualClock()

	application, err := app.NewWithClock(cfg, common.NewSilentLogger(), clock)
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application, clock
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	w := serve(srv, httptest.NewRequest("GET", "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	w := serve(srv, httptest.NewRequest("GET", "/api/version", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("expected version field in response")
	}
}

func TestRoutes_APINotFound(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	w := serve(srv, httptest.NewRequest("GET", "/api/nonexistent", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_MarketEndpoints(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/market/assets", http.StatusOK},
		{"GET", "/api/market/predictions", http.StatusOK},
		{"GET", "/api/market/predictions/ETH", http.StatusOK},
		{"DELETE", "/api/market/predictions/ETH", http.StatusMethodNotAllowed},
		{"GET", "/api/market/news", http.StatusOK},
		{"GET", "/api/market/advice", http.StatusOK},
		{"GET", "/api/market/convert?amount=1", http.StatusOK},
		{"GET", "/api/market/convert", http.StatusBadRequest},
		{"GET", "/api/market/view", http.StatusOK},
		{"PUT", "/api/market/view", http.StatusMethodNotAllowed},
		{"POST", "/api/market/assets", http.StatusMethodNotAllowed},
		{"GET", "/static/market.css", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(srv, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRoutes_MarketPageLifecycle(t *testing.T) {
	application, clock := newTestApp(t)
	srv := New(application)

	w := serve(srv, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `class="spinner"`) {
		t.Error("expected spinner on first visit")
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "market_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected market_session cookie")
	}

	clock.Advance(time.Second)

	req := httptest.NewRequest("GET", "/?tab=predictions", nil)
	req.AddCookie(cookie)
	body := serve(srv, req).Body.String()
	if !strings.Contains(body, `id="predictions"`) {
		t.Error("expected predictions after loading")
	}
	if !strings.Contains(body, "market.css") {
		t.Error("expected page to reference market.css")
	}
}

func TestRoutes_SelectTabViaAPI(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("POST", "/api/market/view", strings.NewReader(`{"tab":"advice"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(srv, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		State view.State `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body.State.ActiveTab != view.TabAdvice {
		t.Errorf("expected advice tab, got %s", body.State.ActiveTab)
	}
}

func TestRoutes_MCPEndpoint(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`,
	))
	req.Header.Set("Content-Type", "application/json")
	w := serve(srv, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for initialize, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRoutes_MiddlewareApplied(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	w := serve(srv, httptest.NewRequest("GET", "/api/health", nil))

	// Verify correlation ID middleware is applied
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header from middleware")
	}

	// Verify CORS middleware is applied
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header from middleware")
	}
}

func TestRoutes_SecurityHeadersApplied(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	w := serve(srv, httptest.NewRequest("GET", "/api/health", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected X-Content-Type-Options header from security middleware")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected X-Frame-Options header from security middleware")
	}
	if w.Header().Get("Referrer-Policy") == "" {
		t.Error("expected Referrer-Policy header from security middleware")
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected Content-Security-Policy header from security middleware")
	}
}

func TestRoutes_CrossOriginSelectTabRejected(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("POST", "/api/market/view", strings.NewReader(`{"tab":"advice"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://evil.test")
	w := serve(srv, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for cross-origin tab selection, got %d", w.Code)
	}
	if application.Sessions.Len() != 0 {
		t.Errorf("expected no session created, got %d", application.Sessions.Len())
	}
}

func TestRoutes_MarketPageHasNoCORS(t *testing.T) {
	application, _ := newTestApp(t)
	srv := New(application)

	w := serve(srv, httptest.NewRequest("GET", "/", nil))

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no CORS header on the market page")
	}
}
