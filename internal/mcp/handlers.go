package mcp

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/view"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tools holds the read-only state the market tool handlers serve from.
type Tools struct {
	dataset   *market.Dataset
	formatter *market.Formatter
	links     view.Links
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult marshals v into a text content result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// HandleMarketOverview handles get_market_overview.
func (t *Tools) HandleMarketOverview(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"demo":           true,
		"currency_label": t.formatter.Label(),
		"rate":           t.formatter.Rate(),
		"assets":         view.AssetRows(t.dataset.Assets, t.formatter),
	}), nil
}

// HandlePricePredictions handles get_price_predictions.
func (t *Tools) HandlePricePredictions(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	preds := t.dataset.Predictions

	if symbol := strings.TrimSpace(r.GetString("symbol", "")); symbol != "" {
		p, ok := t.dataset.Prediction(symbol)
		if !ok {
			return errorResult("no prediction for " + strings.ToUpper(symbol)), nil
		}
		preds = []market.Prediction{p}
	}

	return jsonResult(map[string]interface{}{
		"demo":        true,
		"predictions": view.PredictionRows(preds, t.formatter),
	}), nil
}

// HandleMarketNews handles get_market_news.
func (t *Tools) HandleMarketNews(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"demo":   true,
		"source": t.links.NewsSource,
		"news":   view.NewsRows(t.dataset.News),
	}), nil
}

// HandleInvestmentAdvice handles get_investment_advice.
func (t *Tools) HandleInvestmentAdvice(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{
		"demo":     true,
		"sections": t.dataset.Advice,
	}), nil
}

// HandleConvertPrice handles convert_price.
func (t *Tools) HandleConvertPrice(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := r.RequireFloat("amount")
	if err != nil {
		return errorResult("amount is required and must be a number"), nil
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errorResult("amount must be finite"), nil
	}

	return jsonResult(map[string]interface{}{
		"amount":    amount,
		"usd":       t.formatter.FormatUSD(amount),
		"rate":      t.formatter.Rate(),
		"value":     t.formatter.Convert(amount).String(),
		"formatted": t.formatter.FormatConverted(amount),
	}), nil
}
