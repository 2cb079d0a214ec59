package handlers

import (
	"bytes"
	"html/template"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/config"
	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/session"
	"github.com/bobmcallan/market-portal/internal/view"
)

// pageData is the template context for market.html.
type pageData struct {
	Page           *view.Page
	Title          string
	RefreshSeconds int
	PortalVersion  string
}

// MarketHandler serves the server-rendered market page.
type MarketHandler struct {
	logger         *common.Logger
	templates      *template.Template
	store          *session.Store
	dataset        *market.Dataset
	formatter      *market.Formatter
	links          view.Links
	refreshSeconds int
}

// NewMarketHandler creates a market page handler that loads templates from the pages directory.
func NewMarketHandler(logger *common.Logger, store *session.Store, ds *market.Dataset, f *market.Formatter, links view.Links, cfg *config.Config) *MarketHandler {
	pagesDir := FindPagesDir()

	templates := template.Must(template.ParseGlob(filepath.Join(pagesDir, "*.html")))
	template.Must(templates.ParseGlob(filepath.Join(pagesDir, "partials", "*.html")))

	refresh := 1
	if cfg != nil {
		if d := cfg.Market.GetLoadingDelay(); d > 0 {
			refresh = int(math.Ceil(d.Seconds()))
		}
	}

	return &MarketHandler{
		logger:         logger,
		templates:      templates,
		store:          store,
		dataset:        ds,
		formatter:      f,
		links:          links,
		refreshSeconds: refresh,
	}
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
		".",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// ServeHTTP handles GET /. An optional ?tab= selects the active tab; unknown
// values are ignored and the current tab is kept.
func (h *MarketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	id, sess := resolveSession(w, r, h.store)

	state := sess.State()
	if raw := r.URL.Query().Get("tab"); raw != "" {
		if tab, err := view.ParseTab(raw); err != nil {
			if h.logger != nil {
				h.logger.Debug().Str("session", id).Str("tab", raw).Msg("ignoring unknown tab")
			}
		} else {
			state = sess.SelectTab(tab)
		}
	}

	data := pageData{
		Page:           view.Build(state, h.dataset, h.formatter, h.links),
		Title:          "Crypto Market",
		RefreshSeconds: h.refreshSeconds,
		PortalVersion:  config.GetVersion(),
	}
	if !data.Page.Loading() {
		data.Title = state.ActiveTab.Label() + " | Crypto Market"
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "market.html", data); err != nil {
		if h.logger != nil {
			h.logger.Error().Str("template", "market.html").Str("error", err.Error()).Msg("failed to render market page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Page.Loading() {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.Write(buf.Bytes())
}

// StaticFileHandler serves static files (CSS, images).
func (h *MarketHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := FindPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	path := strings.TrimPrefix(r.URL.Path, "/static/")
	fullPath := filepath.Join(staticDir, path)

	// Prevent directory traversal
	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if !strings.HasPrefix(absFullPath, absStaticDir) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, fullPath)
}
