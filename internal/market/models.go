// Package market holds the static market dataset and the formatting rules
// applied to it before display.
package market

import (
	"strings"
	"time"
)

// Outlook is the qualitative label attached to an asset.
type Outlook string

const (
	OutlookBullish Outlook = "bullish"
	OutlookBearish Outlook = "bearish"
	OutlookNeutral Outlook = "neutral"
)

// Sentiment is the five-step scale attached to a prediction.
type Sentiment string

const (
	SentimentVeryBullish Sentiment = "very_bullish"
	SentimentBullish     Sentiment = "bullish"
	SentimentNeutral     Sentiment = "neutral"
	SentimentBearish     Sentiment = "bearish"
	SentimentVeryBearish Sentiment = "very_bearish"
)

// NewsSentiment is the tone of a news headline.
type NewsSentiment string

const (
	NewsPositive NewsSentiment = "positive"
	NewsNegative NewsSentiment = "negative"
	NewsNeutral  NewsSentiment = "neutral"
)

// Horizon identifies a forward prediction window.
type Horizon string

const (
	HorizonWeek    Horizon = "1W"
	HorizonMonth   Horizon = "1M"
	HorizonQuarter Horizon = "3M"
)

// Horizons lists the forecast windows in display order.
var Horizons = []Horizon{HorizonWeek, HorizonMonth, HorizonQuarter}

// Asset is one row of the market overview table.
type Asset struct {
	Symbol       string  `yaml:"symbol" json:"symbol"`
	Name         string  `yaml:"name" json:"name"`
	Glyph        string  `yaml:"glyph" json:"glyph"`
	Price        float64 `yaml:"price" json:"price"`
	Change24h    float64 `yaml:"change_24h" json:"change_24h"`
	Change7d     float64 `yaml:"change_7d" json:"change_7d"`
	MarketCap    string  `yaml:"market_cap" json:"market_cap"`
	Volume24h    string  `yaml:"volume_24h" json:"volume_24h"`
	Supply       string  `yaml:"supply" json:"supply"`
	Outlook      Outlook `yaml:"outlook" json:"outlook"`
	OutlookScore int     `yaml:"outlook_score" json:"outlook_score"`
}

// Prediction is a forward price estimate for one asset.
type Prediction struct {
	Symbol       string    `yaml:"symbol" json:"symbol"`
	Name         string    `yaml:"name" json:"name"`
	CurrentPrice float64   `yaml:"current_price" json:"current_price"`
	Target1W     float64   `yaml:"target_1w" json:"target_1w"`
	Target1M     float64   `yaml:"target_1m" json:"target_1m"`
	Target3M     float64   `yaml:"target_3m" json:"target_3m"`
	Sentiment    Sentiment `yaml:"sentiment" json:"sentiment"`
	Confidence   int       `yaml:"confidence" json:"confidence"`
	Factors      []string  `yaml:"factors" json:"factors"`
}

// Target returns the estimate for the given horizon, or 0 for an unknown one.
func (p Prediction) Target(h Horizon) float64 {
	switch h {
	case HorizonWeek:
		return p.Target1W
	case HorizonMonth:
		return p.Target1M
	case HorizonQuarter:
		return p.Target3M
	default:
		return 0
	}
}

// NewsItem is a single headline.
type NewsItem struct {
	Title     string        `yaml:"title" json:"title"`
	Source    string        `yaml:"source" json:"source"`
	Sentiment NewsSentiment `yaml:"sentiment" json:"sentiment"`
	Published time.Time     `yaml:"published" json:"published"`
}

// AdviceSection is a block of static investment guidance.
type AdviceSection struct {
	Title   string   `yaml:"title" json:"title"`
	Summary string   `yaml:"summary" json:"summary"`
	Points  []string `yaml:"points" json:"points"`
}

// Dataset is everything the market view displays. It is loaded once and
// never mutated.
type Dataset struct {
	Assets      []Asset         `yaml:"assets" json:"assets"`
	Predictions []Prediction    `yaml:"predictions" json:"predictions"`
	News        []NewsItem      `yaml:"news" json:"news"`
	Advice      []AdviceSection `yaml:"advice" json:"advice"`
}

// Prediction returns the first prediction for symbol, ignoring case.
func (d *Dataset) Prediction(symbol string) (Prediction, bool) {
	for _, p := range d.Predictions {
		if strings.EqualFold(p.Symbol, symbol) {
			return p, true
		}
	}
	return Prediction{}, false
}
