package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// headerHeight and footerHeight are the lines reserved around the feed.
const (
	headerHeight = 4
	footerHeight = 3
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width-4, 0)
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.viewport.SetContent(m.renderItems())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MsgFeedLoaded:
		m.loading = false
		m.items = msg.Envelope.Data
		m.lastUpdated = msg.At
		m.viewport.SetContent(m.renderItems())
		return m, nil

	case MsgTick:
		// A slow fetch must not pile up concurrent loads.
		if m.loading {
			return m, m.tick()
		}
		m.loading = true
		return m, tea.Batch(m.loadFeed(), m.tick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.loadFeed()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
		return m, nil
	}
	return m, nil
}
