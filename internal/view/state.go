// Package view implements the market page state machine: a loading flag that
// flips once after a fixed delay, and a tab selector.
package view

import (
	"errors"
	"fmt"
	"strings"
)

// Tab is one of the three content blocks of the market page.
type Tab string

const (
	TabOverview    Tab = "overview"
	TabPredictions Tab = "predictions"
	TabAdvice      Tab = "advice"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabOverview, TabPredictions, TabAdvice}

// DefaultTab is selected when a view is created.
const DefaultTab = TabOverview

// ErrUnknownTab is returned by ParseTab for values outside the tab set.
var ErrUnknownTab = errors.New("unknown tab")

// ParseTab maps an external value to a Tab. Matching ignores case and
// surrounding whitespace.
func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Label returns the tab strip caption.
func (t Tab) Label() string {
	switch t {
	case TabOverview:
		return "Market Overview"
	case TabPredictions:
		return "Price Predictions"
	case TabAdvice:
		return "Investment Advice"
	default:
		return string(t)
	}
}

// Kind identifies which of the four mutually exclusive views is rendered.
type Kind string

const (
	KindLoading     Kind = "loading"
	KindOverview    Kind = "overview"
	KindPredictions Kind = "predictions"
	KindAdvice      Kind = "advice"
)

// State is the complete view state. Transitions return a new value.
type State struct {
	Loading   bool `json:"loading"`
	ActiveTab Tab  `json:"active_tab"`
}

// Initial returns the state a new view starts in.
func Initial() State {
	return State{Loading: true, ActiveTab: DefaultTab}
}

// SetLoading returns s with the loading flag replaced.
func (s State) SetLoading(loading bool) State {
	s.Loading = loading
	return s
}

// SetActiveTab returns s with the selected tab replaced.
func (s State) SetActiveTab(t Tab) State {
	s.ActiveTab = t
	return s
}

// Kind returns the view rendered for s. Loading hides every tab.
func (s State) Kind() Kind {
	if s.Loading {
		return KindLoading
	}
	switch s.ActiveTab {
	case TabPredictions:
		return KindPredictions
	case TabAdvice:
		return KindAdvice
	default:
		return KindOverview
	}
}
