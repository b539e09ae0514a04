// Package tui implements the terminal dashboard for the issue feed.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/issue-feed/internal/domain"
)

// Model is the bubbletea model of the dashboard.
type Model struct {
	// Dependencies
	provider domain.Provider
	clock    domain.Clock

	// State
	items       []domain.FeedItem
	lastUpdated time.Time

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	// Numeric state
	interval time.Duration
	width    int
	height   int
	loading  bool
	showHelp bool
}

// New creates a dashboard for provider refreshing every interval.
// The provider should already be initialized; otherwise the feed shows
// the not-initialized item.
func New(provider domain.Provider, interval time.Duration) *Model {
	if interval <= 0 {
		interval = domain.DefaultWatchInterval
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	styles := DefaultStyles()
	sp.Style = styles.HeaderMeta

	return &Model{
		provider: provider,
		clock:    domain.RealClock{},
		keys:     DefaultKeyMap(),
		styles:   styles,
		help:     help.New(),
		spinner:  sp,
		viewport: viewport.New(0, 0),
		interval: interval,
	}
}

// WithClock sets the clock used for the "updated" timestamp.
func (m *Model) WithClock(clock domain.Clock) *Model {
	m.clock = clock
	return m
}

// Init starts the first load and the refresh timer.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.loadFeed(), m.tick())
}

// Items returns the items currently displayed.
func (m *Model) Items() []domain.FeedItem {
	return m.items
}

// Interval returns the refresh interval.
func (m *Model) Interval() time.Duration {
	return m.interval
}

// loadFeed returns a command that fetches the feed.
func (m *Model) loadFeed() tea.Cmd {
	provider := m.provider
	clock := m.clock
	return func() tea.Msg {
		env := provider.GetData(context.Background())
		return MsgFeedLoaded{Envelope: env, At: clock.Now()}
	}
}

// tick returns a command that sends MsgTick after the refresh interval.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}
