package view

import (
	"github.com/bobmcallan/market-portal/internal/market"
)

// Links are the navigation targets surrounding the market page.
type Links struct {
	CSEMarket     string `json:"cse_market"`
	GlobalMarkets string `json:"global_markets"`
	NewsSource    string `json:"news_source"`
}

// TabLink is one entry of the tab strip.
type TabLink struct {
	Tab    Tab    `json:"tab"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// AssetRow is an asset prepared for display.
type AssetRow struct {
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	Glyph        string       `json:"glyph"`
	Price        string       `json:"price"`
	LocalPrice   string       `json:"local_price"`
	Change24h    market.Delta `json:"change_24h"`
	Change7d     market.Delta `json:"change_7d"`
	MarketCap    string       `json:"market_cap"`
	Volume24h    string       `json:"volume_24h"`
	Supply       string       `json:"supply"`
	Outlook      string       `json:"outlook"`
	OutlookClass string       `json:"outlook_class"`
	OutlookScore int          `json:"outlook_score"`
}

// TargetCell is one forecast horizon of a prediction.
type TargetCell struct {
	Horizon    market.Horizon `json:"horizon"`
	Price      string         `json:"price"`
	LocalPrice string         `json:"local_price"`
	Delta      market.Delta   `json:"delta"`
}

// PredictionRow is a prediction prepared for display.
type PredictionRow struct {
	Symbol         string       `json:"symbol"`
	Name           string       `json:"name"`
	CurrentPrice   string       `json:"current_price"`
	LocalPrice     string       `json:"local_price"`
	Targets        []TargetCell `json:"targets"`
	Sentiment      string       `json:"sentiment"`
	SentimentClass string       `json:"sentiment_class"`
	Confidence     int          `json:"confidence"`
	Factors        []string     `json:"factors"`
}

// NewsRow is a headline prepared for display.
type NewsRow struct {
	Title     string `json:"title"`
	Source    string `json:"source"`
	Sentiment string `json:"sentiment"`
	Class     string `json:"class"`
	Published string `json:"published"`
}

// OverviewBlock is the content of the overview tab.
type OverviewBlock struct {
	Assets []AssetRow `json:"assets"`
	News   []NewsRow  `json:"news"`
}

// PredictionsBlock is the content of the predictions tab.
type PredictionsBlock struct {
	Predictions []PredictionRow `json:"predictions"`
}

// AdviceBlock is the content of the advice tab.
type AdviceBlock struct {
	Sections []market.AdviceSection `json:"sections"`
	News     []NewsRow              `json:"news"`
}

// Page is everything needed to render the market view. At most one of
// Overview, Predictions and Advice is set; none while loading.
type Page struct {
	Kind          Kind              `json:"kind"`
	Tabs          []TabLink         `json:"tabs"`
	Links         Links             `json:"links"`
	CurrencyLabel string            `json:"currency_label"`
	Rate          float64           `json:"rate"`
	Overview      *OverviewBlock    `json:"overview,omitempty"`
	Predictions   *PredictionsBlock `json:"predictions,omitempty"`
	Advice        *AdviceBlock      `json:"advice,omitempty"`
}

// Loading reports whether the page shows only the spinner.
func (p *Page) Loading() bool {
	return p.Kind == KindLoading
}

// NewsTimeFormat is the layout for headline timestamps.
const NewsTimeFormat = "Jan 2, 2006 15:04 MST"

// Build renders state against the dataset. It is deterministic: the same
// inputs always give the same page.
func Build(s State, ds *market.Dataset, f *market.Formatter, links Links) *Page {
	p := &Page{
		Kind:          s.Kind(),
		Links:         links,
		CurrencyLabel: f.Label(),
		Rate:          f.Rate(),
	}

	if p.Kind != KindLoading {
		p.Tabs = make([]TabLink, len(Tabs))
		for i, t := range Tabs {
			p.Tabs[i] = TabLink{Tab: t, Label: t.Label(), Active: t == s.ActiveTab}
		}
	}

	switch p.Kind {
	case KindOverview:
		p.Overview = &OverviewBlock{
			Assets: AssetRows(ds.Assets, f),
			News:   NewsRows(ds.News),
		}
	case KindPredictions:
		p.Predictions = &PredictionsBlock{
			Predictions: PredictionRows(ds.Predictions, f),
		}
	case KindAdvice:
		p.Advice = &AdviceBlock{
			Sections: ds.Advice,
			News:     NewsRows(ds.News),
		}
	}

	return p
}

// AssetRows formats assets for display.
func AssetRows(assets []market.Asset, f *market.Formatter) []AssetRow {
	rows := make([]AssetRow, len(assets))
	for i, a := range assets {
		rows[i] = AssetRow{
			Symbol:       a.Symbol,
			Name:         a.Name,
			Glyph:        a.Glyph,
			Price:        f.FormatUSD(a.Price),
			LocalPrice:   f.FormatConverted(a.Price),
			Change24h:    market.ChangeDelta(a.Change24h),
			Change7d:     market.ChangeDelta(a.Change7d),
			MarketCap:    a.MarketCap,
			Volume24h:    a.Volume24h,
			Supply:       a.Supply,
			Outlook:      market.OutlookLabel(a.Outlook),
			OutlookClass: market.OutlookClass(a.Outlook),
			OutlookScore: a.OutlookScore,
		}
	}
	return rows
}

// PredictionRows formats predictions for display.
func PredictionRows(preds []market.Prediction, f *market.Formatter) []PredictionRow {
	rows := make([]PredictionRow, len(preds))
	for i, p := range preds {
		targets := make([]TargetCell, len(market.Horizons))
		for j, h := range market.Horizons {
			target := p.Target(h)
			targets[j] = TargetCell{
				Horizon:    h,
				Price:      f.FormatUSD(target),
				LocalPrice: f.FormatConverted(target),
				Delta:      market.DeltaBetween(p.CurrentPrice, target),
			}
		}
		rows[i] = PredictionRow{
			Symbol:         p.Symbol,
			Name:           p.Name,
			CurrentPrice:   f.FormatUSD(p.CurrentPrice),
			LocalPrice:     f.FormatConverted(p.CurrentPrice),
			Targets:        targets,
			Sentiment:      market.SentimentLabel(p.Sentiment),
			SentimentClass: market.SentimentClass(p.Sentiment),
			Confidence:     p.Confidence,
			Factors:        p.Factors,
		}
	}
	return rows
}

// NewsRows formats headlines for display.
func NewsRows(items []market.NewsItem) []NewsRow {
	rows := make([]NewsRow, len(items))
	for i, n := range items {
		rows[i] = NewsRow{
			Title:     n.Title,
			Source:    n.Source,
			Sentiment: string(n.Sentiment),
			Class:     market.NewsClass(n.Sentiment),
			Published: n.Published.UTC().Format(NewsTimeFormat),
		}
	}
	return rows
}
