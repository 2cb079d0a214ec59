package market

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/market.yaml
var defaultFixture []byte

// ErrInvalidDataset is returned when a fixture fails validation.
var ErrInvalidDataset = errors.New("invalid market dataset")

// LoadDefault decodes the dataset compiled into the binary.
func LoadDefault() (*Dataset, error) {
	return Parse(defaultFixture)
}

// LoadFile decodes a dataset from a YAML file. An empty path falls back to
// the embedded fixture.
func LoadFile(path string) (*Dataset, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read market fixture %s: %w", path, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("market fixture %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse market fixture: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks closed-set labels and numeric ranges.
func (d *Dataset) Validate() error {
	for i, a := range d.Assets {
		if a.Symbol == "" {
			return fmt.Errorf("%w: asset %d has empty symbol", ErrInvalidDataset, i)
		}
		if !finite(a.Price) || !finite(a.Change24h) || !finite(a.Change7d) {
			return fmt.Errorf("%w: asset %s has a non-finite price or change", ErrInvalidDataset, a.Symbol)
		}
		if a.Price <= 0 {
			return fmt.Errorf("%w: asset %s has non-positive price %v", ErrInvalidDataset, a.Symbol, a.Price)
		}
		if !a.Outlook.Valid() {
			return fmt.Errorf("%w: asset %s has unknown outlook %q", ErrInvalidDataset, a.Symbol, a.Outlook)
		}
		if a.OutlookScore < 0 || a.OutlookScore > 100 {
			return fmt.Errorf("%w: asset %s outlook score %d out of range", ErrInvalidDataset, a.Symbol, a.OutlookScore)
		}
	}

	for i, p := range d.Predictions {
		if p.Symbol == "" {
			return fmt.Errorf("%w: prediction %d has empty symbol", ErrInvalidDataset, i)
		}
		if !finite(p.CurrentPrice) || p.CurrentPrice <= 0 {
			return fmt.Errorf("%w: prediction %s has non-positive or non-finite current price", ErrInvalidDataset, p.Symbol)
		}
		for _, h := range Horizons {
			if !finite(p.Target(h)) || p.Target(h) <= 0 {
				return fmt.Errorf("%w: prediction %s has non-positive or non-finite %s target", ErrInvalidDataset, p.Symbol, h)
			}
		}
		if !p.Sentiment.Valid() {
			return fmt.Errorf("%w: prediction %s has unknown sentiment %q", ErrInvalidDataset, p.Symbol, p.Sentiment)
		}
		if p.Confidence < 0 || p.Confidence > 100 {
			return fmt.Errorf("%w: prediction %s confidence %d out of range", ErrInvalidDataset, p.Symbol, p.Confidence)
		}
	}

	for i, n := range d.News {
		if n.Title == "" {
			return fmt.Errorf("%w: news item %d has empty title", ErrInvalidDataset, i)
		}
		if !n.Sentiment.Valid() {
			return fmt.Errorf("%w: news item %q has unknown sentiment %q", ErrInvalidDataset, n.Title, n.Sentiment)
		}
	}

	return nil
}

// finite reports whether v is neither NaN nor infinite. decimal cannot
// represent either.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
