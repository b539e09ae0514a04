package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/issue-feed/internal/domain"
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))

	return m.styles.App.Render(b.String())
}

func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("issue-feed · " + m.provider.Name())

	var meta string
	switch {
	case m.loading:
		meta = m.spinner.View() + " refreshing"
	case !m.lastUpdated.IsZero():
		meta = "updated " + m.lastUpdated.Format("15:04:05")
	}
	if meta != "" {
		title += "  " + m.styles.HeaderMeta.Render(meta)
	}
	return m.styles.Header.Render(title)
}

// renderItems renders one line per feed item. Synthetic items are styled
// so failures stand out from real issues.
func (m *Model) renderItems() string {
	if m.items == nil {
		return ""
	}
	if len(m.items) == 0 {
		return m.styles.Empty.Render("Nothing assigned. Enjoy!")
	}

	lines := make([]string, 0, len(m.items))
	for _, item := range m.items {
		lines = append(lines, m.styles.Bullet.Render("•")+" "+m.itemStyle(item).Render(item.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) itemStyle(item domain.FeedItem) lipgloss.Style {
	switch item.Message {
	case domain.MessageFetchError:
		return m.styles.ItemError
	case domain.MessageNotInitialized:
		return m.styles.ItemWarning
	default:
		return m.styles.Item
	}
}
