package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the market tools on s and returns their names.
func RegisterTools(s *server.MCPServer, t *Tools) []string {
	defs := []struct {
		tool    mcp.Tool
		handler server.ToolHandlerFunc
	}{
		{MarketOverviewTool(), t.HandleMarketOverview},
		{PricePredictionsTool(), t.HandlePricePredictions},
		{MarketNewsTool(), t.HandleMarketNews},
		{InvestmentAdviceTool(), t.HandleInvestmentAdvice},
		{ConvertPriceTool(), t.HandleConvertPrice},
		{VersionTool(), VersionToolHandler()},
	}

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		s.AddTool(d.tool, d.handler)
		names = append(names, d.tool.Name)
	}
	return names
}

// MarketOverviewTool lists the tracked assets.
func MarketOverviewTool() mcp.Tool {
	return mcp.NewTool("get_market_overview",
		mcp.WithDescription("List tracked crypto assets with USD and local prices, 24h/7d change and outlook. Demo data."),
	)
}

// PricePredictionsTool lists forecast targets, optionally for one symbol.
func PricePredictionsTool() mcp.Tool {
	return mcp.NewTool("get_price_predictions",
		mcp.WithDescription("Get 1W/1M/3M price targets with percent change, sentiment and confidence. Demo data."),
		mcp.WithString("symbol",
			mcp.Description("Asset symbol such as BTC. Omit for all assets."),
		),
	)
}

// MarketNewsTool lists headlines.
func MarketNewsTool() mcp.Tool {
	return mcp.NewTool("get_market_news",
		mcp.WithDescription("Get recent market headlines with source and sentiment. Demo data."),
	)
}

// InvestmentAdviceTool lists the advice sections.
func InvestmentAdviceTool() mcp.Tool {
	return mcp.NewTool("get_investment_advice",
		mcp.WithDescription("Get general investment strategy notes. Not financial advice."),
	)
}

// ConvertPriceTool converts a USD amount to the local currency.
func ConvertPriceTool() mcp.Tool {
	return mcp.NewTool("convert_price",
		mcp.WithDescription("Convert a USD amount to the local currency at the configured fixed rate."),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Amount in USD"),
		),
	)
}
