package market

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	ds, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	if len(ds.Assets) == 0 {
		t.Error("expected assets in embedded fixture")
	}
	if len(ds.Predictions) == 0 {
		t.Error("expected predictions in embedded fixture")
	}
	if len(ds.News) == 0 {
		t.Error("expected news in embedded fixture")
	}
	if len(ds.Advice) == 0 {
		t.Error("expected advice sections in embedded fixture")
	}

	btc, ok := ds.Prediction("BTC")
	if !ok {
		t.Fatal("expected BTC prediction")
	}
	if btc.CurrentPrice != 43250 || btc.Target(HorizonWeek) != 44500 {
		t.Errorf("unexpected BTC prediction: %+v", btc)
	}
	if len(btc.Factors) == 0 {
		t.Error("expected BTC factors to keep their order and content")
	}

	if ds.News[0].Published.IsZero() {
		t.Error("expected news timestamps to be decoded")
	}
}

func TestLoadFile_EmptyPathUsesEmbedded(t *testing.T) {
	ds, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\"): %v", err)
	}
	if len(ds.Assets) == 0 {
		t.Error("expected embedded assets")
	}
}

func TestLoadFile_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.yaml")
	content := `
assets:
  - symbol: DOGE
    name: Dogecoin
    glyph: "Ð"
    price: 0.08
    change_24h: 1.2
    change_7d: -0.4
    market_cap: "$11B"
    volume_24h: "$500M"
    supply: "142B DOGE"
    outlook: neutral
    outlook_score: 50
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(ds.Assets) != 1 || ds.Assets[0].Symbol != "DOGE" {
		t.Errorf("expected single DOGE asset, got %+v", ds.Assets)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "nope.yaml") {
		t.Errorf("expected error to name the file, got %v", err)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("assets: [unterminated")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown outlook", `
assets:
  - {symbol: BTC, price: 1, outlook: moon, outlook_score: 10}
`},
		{"score out of range", `
assets:
  - {symbol: BTC, price: 1, outlook: bullish, outlook_score: 101}
`},
		{"non-positive price", `
assets:
  - {symbol: BTC, price: 0, outlook: bullish, outlook_score: 10}
`},
		{"nan price", `
assets:
  - {symbol: BTC, price: .nan, outlook: bullish, outlook_score: 10}
`},
		{"nan 24h change", `
assets:
  - {symbol: BTC, price: 1, change_24h: .nan, outlook: bullish, outlook_score: 10}
`},
		{"infinite 7d change", `
assets:
  - {symbol: BTC, price: 1, change_7d: -.inf, outlook: bullish, outlook_score: 10}
`},
		{"infinite price", `
assets:
  - {symbol: BTC, price: .inf, outlook: bullish, outlook_score: 10}
`},
		{"nan current price", `
predictions:
  - {symbol: BTC, current_price: .nan, target_1w: 1, target_1m: 1, target_3m: 1, sentiment: bullish, confidence: 50}
`},
		{"infinite target", `
predictions:
  - {symbol: BTC, current_price: 1, target_1w: 1, target_1m: .inf, target_3m: 1, sentiment: bullish, confidence: 50}
`},
		{"nan target", `
predictions:
  - {symbol: BTC, current_price: 1, target_1w: 1, target_1m: 1, target_3m: .nan, sentiment: bullish, confidence: 50}
`},
		{"unknown sentiment", `
predictions:
  - {symbol: BTC, current_price: 1, target_1w: 1, target_1m: 1, target_3m: 1, sentiment: ecstatic, confidence: 50}
`},
		{"confidence out of range", `
predictions:
  - {symbol: BTC, current_price: 1, target_1w: 1, target_1m: 1, target_3m: 1, sentiment: bullish, confidence: -1}
`},
		{"missing target", `
predictions:
  - {symbol: BTC, current_price: 1, target_1w: 1, target_1m: 1, sentiment: bullish, confidence: 50}
`},
		{"unknown news tone", `
news:
  - {title: Headline, source: X, sentiment: angry, published: 2024-01-01T00:00:00Z}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("expected ErrInvalidDataset, got %v", err)
			}
		})
	}
}

func TestPrediction_TargetUnknownHorizon(t *testing.T) {
	p := Prediction{Target1W: 1, Target1M: 2, Target3M: 3}
	if got := p.Target("6M"); got != 0 {
		t.Errorf("expected 0 for unknown horizon, got %v", got)
	}
}
