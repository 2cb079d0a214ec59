// Package tui renders the market view in a terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/market-portal/internal/market"
	"github.com/bobmcallan/market-portal/internal/view"
	tea "github.com/charmbracelet/bubbletea"
)

// readyMsg ends the loading phase.
type readyMsg struct{}

// Model is the bubbletea model for the market view.
type Model struct {
	state     view.State
	dataset   *market.Dataset
	formatter *market.Formatter
	links     view.Links
	delay     time.Duration
	width     int
}

// New creates a model that starts loading and becomes ready after delay.
func New(ds *market.Dataset, f *market.Formatter, links view.Links, delay time.Duration) Model {
	return Model{
		state:     view.Initial(),
		dataset:   ds,
		formatter: f,
		links:     links,
		delay:     delay,
	}
}

// WithTab preselects a tab.
func (m Model) WithTab(t view.Tab) Model {
	m.state = m.state.SetActiveTab(t)
	return m
}

// State returns the current view state.
func (m Model) State() view.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return readyMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		m.state = m.state.SetLoading(false)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "2", "3":
			idx := int(msg.String()[0] - '1')
			m.state = m.state.SetActiveTab(view.Tabs[idx])
		case "tab", "right", "l":
			m.state = m.state.SetActiveTab(m.shiftTab(1))
		case "shift+tab", "left", "h":
			m.state = m.state.SetActiveTab(m.shiftTab(-1))
		}
	}
	return m, nil
}

// shiftTab returns the tab delta positions from the active one, wrapping.
func (m Model) shiftTab(delta int) view.Tab {
	n := len(view.Tabs)
	for i, t := range view.Tabs {
		if t == m.state.ActiveTab {
			return view.Tabs[((i+delta)%n+n)%n]
		}
	}
	return view.DefaultTab
}

func (m Model) View() string {
	page := view.Build(m.state, m.dataset, m.formatter, m.links)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Crypto Market"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s  %s", m.links.CSEMarket, m.links.GlobalMarkets)))
	b.WriteString("\n\n")

	if page.Loading() {
		b.WriteString(loadingStyle.Render("◐ Loading market data..."))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("q quit"))
		return b.String()
	}

	tabs := make([]string, len(page.Tabs))
	for i, t := range page.Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label)
		if t.Active {
			tabs[i] = tabActiveStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	switch {
	case page.Overview != nil:
		b.WriteString(panelStyle.Render(renderOverview(page.Overview)))
	case page.Predictions != nil:
		b.WriteString(panelStyle.Render(renderPredictions(page.Predictions)))
	case page.Advice != nil:
		b.WriteString(panelStyle.Render(renderAdvice(page.Advice, page.Links)))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("1-3/tab switch  q quit  demo data at %s %.2f per USD", page.CurrencyLabel, page.Rate)))
	return b.String()
}

func renderDelta(d market.Delta) string {
	return classStyle(d.Class).Render(fmt.Sprintf("%s %-7s", d.Icon, d.Text))
}

func renderOverview(o *view.OverviewBlock) string {
	var b strings.Builder
	b.WriteString(colHeaderStyle.Render(fmt.Sprintf("%-6s %-12s %14s %18s %-9s %-9s %s", "Sym", "Name", "Price", "Local", "24h", "7d", "Outlook")))
	b.WriteString("\n")
	for _, a := range o.Assets {
		b.WriteString(fmt.Sprintf("%-6s %-12s %14s %18s %s %s %s\n",
			a.Symbol,
			a.Name,
			a.Price,
			a.LocalPrice,
			renderDelta(a.Change24h),
			renderDelta(a.Change7d),
			classStyle(a.OutlookClass).Render(fmt.Sprintf("%s %d", a.Outlook, a.OutlookScore)),
		))
	}
	b.WriteString("\n")
	b.WriteString(renderNews(o.News))
	return b.String()
}

func renderPredictions(p *view.PredictionsBlock) string {
	var b strings.Builder
	for _, row := range p.Predictions {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%s)", row.Name, row.Symbol)))
		b.WriteString("  ")
		b.WriteString(classStyle(row.SentimentClass).Render(row.Sentiment))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  confidence %d%%", row.Confidence)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  now %s  %s\n", row.CurrentPrice, row.LocalPrice))
		for _, t := range row.Targets {
			b.WriteString(fmt.Sprintf("  %-3s %14s %18s %s\n", t.Horizon, t.Price, t.LocalPrice, renderDelta(t.Delta)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderAdvice(a *view.AdviceBlock, links view.Links) string {
	var b strings.Builder
	for _, s := range a.Sections {
		b.WriteString(headerStyle.Render(s.Title))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(s.Summary))
		b.WriteString("\n")
		for _, p := range s.Points {
			b.WriteString("  • " + p + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(renderNews(a.News))
	b.WriteString("More news: ")
	b.WriteString(linkStyle.Render(links.NewsSource))
	b.WriteString("\n")
	return b.String()
}

func renderNews(items []view.NewsRow) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Latest News"))
	b.WriteString("\n")
	for _, n := range items {
		b.WriteString(classStyle(n.Class).Render("▌"))
		b.WriteString(" " + n.Title)
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %s", n.Source, n.Published)))
		b.WriteString("\n")
	}
	return b.String()
}
