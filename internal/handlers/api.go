package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/market-portal/internal/common"
	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/session"
	"github.com/bobmcallan/market-portal/internal/view"
)

// MarketAPIHandler serves the market datasets and view state as JSON.
type MarketAPIHandler struct {
	logger    *common.Logger
	store     *session.Store
	dataset   *market.Dataset
	formatter *market.Formatter
	links     view.Links
}

// NewMarketAPIHandler creates a new market API handler.
func NewMarketAPIHandler(logger *common.Logger, store *session.Store, ds *market.Dataset, f *market.Formatter, links view.Links) *MarketAPIHandler {
	return &MarketAPIHandler{
		logger:    logger,
		store:     store,
		dataset:   ds,
		formatter: f,
		links:     links,
	}
}

// viewResponse is the body of GET and POST /api/market/view.
type viewResponse struct {
	State view.State `json:"state"`
	Kind  view.Kind  `json:"kind"`
	Page  *view.Page `json:"page"`
}

// selectTabRequest is the body of POST /api/market/view.
type selectTabRequest struct {
	Tab string `json:"tab"`
}

// HandleAssets handles GET /api/market/assets.
func (h *MarketAPIHandler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"demo":   true,
		"assets": view.AssetRows(h.dataset.Assets, h.formatter),
	})
}

// HandlePredictions handles GET /api/market/predictions.
func (h *MarketAPIHandler) HandlePredictions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"demo":        true,
		"predictions": view.PredictionRows(h.dataset.Predictions, h.formatter),
	})
}

// HandlePrediction handles GET /api/market/predictions/{symbol}.
func (h *MarketAPIHandler) HandlePrediction(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := strings.TrimPrefix(r.URL.Path, "/api/market/predictions/")
	if symbol == "" || strings.Contains(symbol, "/") {
		WriteError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	p, ok := h.dataset.Prediction(symbol)
	if !ok {
		WriteError(w, http.StatusNotFound, "no prediction for "+strings.ToUpper(symbol))
		return
	}

	rows := view.PredictionRows([]market.Prediction{p}, h.formatter)
	WriteJSON(w, http.StatusOK, rows[0])
}

// HandleNews handles GET /api/market/news.
func (h *MarketAPIHandler) HandleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"demo":   true,
		"source": h.links.NewsSource,
		"news":   view.NewsRows(h.dataset.News),
	})
}

// HandleAdvice handles GET /api/market/advice.
func (h *MarketAPIHandler) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"demo":     true,
		"sections": h.dataset.Advice,
	})
}

// HandleGetView handles GET /api/market/view.
func (h *MarketAPIHandler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	_, sess := resolveSession(w, r, h.store)
	h.writeView(w, sess.State())
}

// HandleSelectTab handles POST /api/market/view with {"tab": "..."}.
func (h *MarketAPIHandler) HandleSelectTab(w http.ResponseWriter, r *http.Request) {
	var req selectTabRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tab, err := view.ParseTab(req.Tab)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, sess := resolveSession(w, r, h.store)
	state := sess.SelectTab(tab)
	if h.logger != nil {
		h.logger.Debug().Str("session", id).Str("tab", string(tab)).Msg("tab selected")
	}
	h.writeView(w, state)
}

func (h *MarketAPIHandler) writeView(w http.ResponseWriter, state view.State) {
	WriteJSON(w, http.StatusOK, viewResponse{
		State: state,
		Kind:  state.Kind(),
		Page:  view.Build(state, h.dataset, h.formatter, h.links),
	})
}

// HandleConvert handles GET /api/market/convert?amount=.
func (h *MarketAPIHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	raw := r.URL.Query().Get("amount")
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "amount is required")
		return
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		WriteError(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"amount":    amount,
		"usd":       h.formatter.FormatUSD(amount),
		"rate":      h.formatter.Rate(),
		"label":     h.formatter.Label(),
		"value":     h.formatter.Convert(amount).String(),
		"formatted": h.formatter.FormatConverted(amount),
	})
}
