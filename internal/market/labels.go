package market

// Presentation classes shared by the web page and the terminal view.
const (
	ClassVeryPositive = "very-positive"
	ClassPositive     = "positive"
	ClassNeutral      = "neutral"
	ClassNegative     = "negative"
	ClassVeryNegative = "very-negative"

	// ClassDefault is returned for any label outside the known sets.
	ClassDefault = ClassNeutral
)

// Valid reports whether o is one of the known outlooks.
func (o Outlook) Valid() bool {
	switch o {
	case OutlookBullish, OutlookBearish, OutlookNeutral:
		return true
	}
	return false
}

// Valid reports whether s is one of the five sentiment steps.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentVeryBullish, SentimentBullish, SentimentNeutral, SentimentBearish, SentimentVeryBearish:
		return true
	}
	return false
}

// Valid reports whether s is a known news tone.
func (s NewsSentiment) Valid() bool {
	switch s {
	case NewsPositive, NewsNegative, NewsNeutral:
		return true
	}
	return false
}

// SentimentClass maps a prediction sentiment to a presentation class.
func SentimentClass(s Sentiment) string {
	switch s {
	case SentimentVeryBullish:
		return ClassVeryPositive
	case SentimentBullish:
		return ClassPositive
	case SentimentNeutral:
		return ClassNeutral
	case SentimentBearish:
		return ClassNegative
	case SentimentVeryBearish:
		return ClassVeryNegative
	default:
		return ClassDefault
	}
}

// SentimentLabel returns the display text for a prediction sentiment.
func SentimentLabel(s Sentiment) string {
	switch s {
	case SentimentVeryBullish:
		return "Very Bullish"
	case SentimentBullish:
		return "Bullish"
	case SentimentNeutral:
		return "Neutral"
	case SentimentBearish:
		return "Bearish"
	case SentimentVeryBearish:
		return "Very Bearish"
	default:
		return "Unknown"
	}
}

// OutlookClass maps an asset outlook to a presentation class.
func OutlookClass(o Outlook) string {
	switch o {
	case OutlookBullish:
		return ClassPositive
	case OutlookBearish:
		return ClassNegative
	case OutlookNeutral:
		return ClassNeutral
	default:
		return ClassDefault
	}
}

// OutlookLabel returns the display text for an asset outlook.
func OutlookLabel(o Outlook) string {
	switch o {
	case OutlookBullish:
		return "Bullish"
	case OutlookBearish:
		return "Bearish"
	case OutlookNeutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// NewsClass maps a headline tone to a presentation class.
func NewsClass(s NewsSentiment) string {
	switch s {
	case NewsPositive:
		return ClassPositive
	case NewsNegative:
		return ClassNegative
	case NewsNeutral:
		return ClassNeutral
	default:
		return ClassDefault
	}
}
