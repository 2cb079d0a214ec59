package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/session"
	"github.com/bobmcallan/market-portal/internal/view"
)

var testLinks = view.Links{
	CSEMarket:     "/cse-market",
	GlobalMarkets: "/global-markets",
	NewsSource:    "https://www.coindesk.com/",
}

type marketFixture struct {
	clock *view.ManualClock
	store *session.Store
	page  *MarketHandler
	api   *MarketAPIHandler
}

func newMarketFixture(t *testing.T) *marketFixture {
	t.Helper()

	ds, err := market.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	logger := common.NewSilentLogger()
	clock := view.NewManualClock()
	store := session.New(clock, time.Second, time.Hour, 100, logger)
	f := market.DefaultFormatter()

	return &marketFixture{
		clock: clock,
		store: store,
		page:  NewMarketHandler(logger, store, ds, f, testLinks, nil),
		api:   NewMarketAPIHandler(logger, store, ds, f, testLinks),
	}
}

// get issues a request with an optional session cookie and returns the recorder.
func get(handler http.HandlerFunc, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("expected %s cookie to be set", SessionCookieName)
	return nil
}

func TestMarketHandler_FirstVisitShowsSpinner(t *testing.T) {
	fx := newMarketFixture(t)

	w := get(fx.page.ServeHTTP, "/", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("expected session cookie to be httpOnly")
	}

	body := w.Body.String()
	if !strings.Contains(body, `class="spinner"`) {
		t.Error("expected spinner while loading")
	}
	if !strings.Contains(body, `http-equiv="refresh"`) {
		t.Error("expected meta refresh while loading")
	}
	for _, absent := range []string{`id="overview"`, `id="predictions"`, `id="advice"`, `role="tablist"`} {
		if strings.Contains(body, absent) {
			t.Errorf("expected %s to be absent while loading", absent)
		}
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Error("expected loading page to be uncacheable")
	}
}

func TestMarketHandler_OverviewAfterDelay(t *testing.T) {
	fx := newMarketFixture(t)

	cookie := sessionCookie(t, get(fx.page.ServeHTTP, "/", nil))
	fx.clock.Advance(time.Second)

	w := get(fx.page.ServeHTTP, "/", cookie)
	body := w.Body.String()

	if strings.Contains(body, `class="spinner"`) || strings.Contains(body, `http-equiv="refresh"`) {
		t.Error("expected loading indicator gone after delay")
	}
	if !strings.Contains(body, `id="overview"`) {
		t.Error("expected overview block")
	}
	if strings.Contains(body, `id="predictions"`) || strings.Contains(body, `id="advice"`) {
		t.Error("expected only the overview block")
	}
	if !strings.Contains(body, "Rs. 13,989,213") {
		t.Error("expected BTC converted price")
	}
	if !strings.Contains(body, "+2.5%") {
		t.Error("expected BTC 24h change")
	}
	if !strings.Contains(body, `href="/cse-market"`) || !strings.Contains(body, `href="/global-markets"`) {
		t.Error("expected navigation links")
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("expected existing session to be reused without a new cookie")
	}
}

func TestMarketHandler_SelectTab(t *testing.T) {
	fx := newMarketFixture(t)

	cookie := sessionCookie(t, get(fx.page.ServeHTTP, "/", nil))
	fx.clock.Advance(time.Second)

	body := get(fx.page.ServeHTTP, "/?tab=predictions", cookie).Body.String()
	if !strings.Contains(body, `id="predictions"`) || strings.Contains(body, `id="overview"`) {
		t.Error("expected predictions block only")
	}
	if !strings.Contains(body, "Very Bullish") {
		t.Error("expected BTC sentiment label")
	}

	// The selection sticks for the session.
	body = get(fx.page.ServeHTTP, "/", cookie).Body.String()
	if !strings.Contains(body, `id="predictions"`) {
		t.Error("expected predictions to remain selected")
	}
}

func TestMarketHandler_UnknownTabKeepsCurrent(t *testing.T) {
	fx := newMarketFixture(t)

	cookie := sessionCookie(t, get(fx.page.ServeHTTP, "/", nil))
	fx.clock.Advance(time.Second)
	get(fx.page.ServeHTTP, "/?tab=advice", cookie)

	w := get(fx.page.ServeHTTP, "/?tab=portfolio", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `id="advice"`) {
		t.Error("expected advice to remain selected for unknown tab")
	}
}

func TestMarketHandler_TabChosenWhileLoading(t *testing.T) {
	fx := newMarketFixture(t)

	w := get(fx.page.ServeHTTP, "/?tab=advice", nil)
	if !strings.Contains(w.Body.String(), `class="spinner"`) {
		t.Error("expected spinner to win over the selected tab")
	}

	fx.clock.Advance(time.Second)
	body := get(fx.page.ServeHTTP, "/", sessionCookie(t, w)).Body.String()
	if !strings.Contains(body, `id="advice"`) {
		t.Error("expected tab chosen during loading to show once ready")
	}
}

func TestMarketHandler_AdviceNewsLink(t *testing.T) {
	fx := newMarketFixture(t)

	cookie := sessionCookie(t, get(fx.page.ServeHTTP, "/", nil))
	fx.clock.Advance(time.Second)

	body := get(fx.page.ServeHTTP, "/?tab=advice", cookie).Body.String()
	if !strings.Contains(body, `href="https://www.coindesk.com/" target="_blank" rel="noopener noreferrer"`) {
		t.Error("expected external news link opening in a new context")
	}
	if !strings.Contains(body, "Dollar-Cost Averaging") {
		t.Error("expected advice sections")
	}
}

func TestMarketHandler_SessionsAreIsolated(t *testing.T) {
	fx := newMarketFixture(t)

	first := sessionCookie(t, get(fx.page.ServeHTTP, "/", nil))
	fx.clock.Advance(time.Second)
	second := sessionCookie(t, get(fx.page.ServeHTTP, "/", nil))

	if first.Value == second.Value {
		t.Fatal("expected distinct session ids")
	}
	if !strings.Contains(get(fx.page.ServeHTTP, "/", second).Body.String(), `class="spinner"`) {
		t.Error("expected the newer session to still be loading")
	}
}

func TestMarketHandler_RejectsNonGET(t *testing.T) {
	fx := newMarketFixture(t)

	req := httptest.NewRequest("POST", "/", nil)
	w := httptest.NewRecorder()
	fx.page.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestMarketHandler_UnknownPath(t *testing.T) {
	fx := newMarketFixture(t)

	w := get(fx.page.ServeHTTP, "/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestStaticFileHandler(t *testing.T) {
	fx := newMarketFixture(t)

	w := get(fx.page.StaticFileHandler, "/static/market.css", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), ".spinner") {
		t.Error("expected stylesheet content")
	}
}

func TestStaticFileHandler_Traversal(t *testing.T) {
	fx := newMarketFixture(t)

	req := httptest.NewRequest("GET", "/static/x", nil)
	req.URL.Path = "/static/../market.html"
	w := httptest.NewRecorder()
	fx.page.StaticFileHandler(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for traversal, got %d", w.Code)
	}
}

func TestFindPagesDir(t *testing.T) {
	dir := FindPagesDir()
	if !strings.HasSuffix(dir, "pages") {
		t.Errorf("expected pages directory, got %s", dir)
	}
}
