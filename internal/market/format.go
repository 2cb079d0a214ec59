package market

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Conversion defaults. The rate is a fixed demo constant and goes stale; it
// is never fetched.
const (
	DefaultConversionRate = 323.45
	DefaultCurrencyLabel  = "Rs."
	DefaultLocale         = "en-US"
)

// Formatter renders prices for display. It is safe for concurrent use.
type Formatter struct {
	rate    decimal.Decimal
	label   string
	printer *message.Printer
}

// NewFormatter builds a formatter converting USD amounts with a fixed rate.
func NewFormatter(rate float64, label, locale string) (*Formatter, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, fmt.Errorf("conversion rate must be positive, got %v", rate)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{
		rate:    decimal.NewFromFloat(rate),
		label:   label,
		printer: message.NewPrinter(tag),
	}, nil
}

// DefaultFormatter returns a formatter using the built-in demo rate.
func DefaultFormatter() *Formatter {
	f, err := NewFormatter(DefaultConversionRate, DefaultCurrencyLabel, DefaultLocale)
	if err != nil {
		panic(err)
	}
	return f
}

// Rate returns the conversion multiplier.
func (f *Formatter) Rate() float64 {
	return f.rate.InexactFloat64()
}

// Label returns the secondary currency prefix.
func (f *Formatter) Label() string {
	return f.label
}

// Convert returns amount × rate rounded to a whole unit, half away from zero.
func (f *Formatter) Convert(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(f.rate).Round(0)
}

// FormatConverted renders the converted amount with grouping and the
// currency label, e.g. "Rs. 13,989,213".
func (f *Formatter) FormatConverted(amount float64) string {
	v := f.Convert(amount)
	if v.Abs().LessThanOrEqual(maxInt64) {
		return f.label + " " + f.printer.Sprintf("%d", v.IntPart())
	}
	return f.label + " " + f.groupDigits(v.String())
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// groupDigits groups an integer string in threes with the locale's
// thousands separator. Used for values the printer cannot take as int64.
func (f *Formatter) groupDigits(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	sep := strings.TrimSuffix(strings.TrimPrefix(f.printer.Sprintf("%d", 1000), "1"), "000")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatUSD renders a source-currency price. Sub-dollar prices keep four
// fractional digits.
func (f *Formatter) FormatUSD(amount float64) string {
	scale := 2
	if amount < 1 && amount > -1 {
		scale = 4
	}
	return "$" + f.printer.Sprint(number.Decimal(amount, number.Scale(scale)))
}

// Direction of a rendered delta.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionNone = "none"
)

// Delta is a signed percentage prepared for display.
type Delta struct {
	Percent   float64 `json:"percent"`
	Text      string  `json:"text"`
	Class     string  `json:"class"`
	Direction string  `json:"direction"`
	Icon      string  `json:"icon"`
}

// Positive reports whether the rounded delta is zero or above.
func (d Delta) Positive() bool {
	return d.Direction == DirectionUp
}

// ChangeDelta renders an already-computed percent change.
func ChangeDelta(pct float64) Delta {
	return newDelta(decimal.NewFromFloat(pct))
}

// DeltaBetween renders (target - current) / current × 100. A zero current
// price has no defined change and renders as "n/a".
func DeltaBetween(current, target float64) Delta {
	c := decimal.NewFromFloat(current)
	if c.IsZero() {
		return Delta{Text: "n/a", Class: ClassDefault, Direction: DirectionNone}
	}
	t := decimal.NewFromFloat(target)
	return newDelta(t.Sub(c).Div(c).Mul(decimal.NewFromInt(100)))
}

func newDelta(pct decimal.Decimal) Delta {
	rounded := pct.Round(1)
	d := Delta{Percent: rounded.InexactFloat64()}
	if rounded.Sign() >= 0 {
		d.Text = "+" + rounded.StringFixed(1) + "%"
		d.Class = ClassPositive
		d.Direction = DirectionUp
		d.Icon = "▲"
	} else {
		d.Text = rounded.StringFixed(1) + "%"
		d.Class = ClassNegative
		d.Direction = DirectionDown
		d.Icon = "▼"
	}
	return d
}
