package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/skiff-term/skiff/internal/config"
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250"))

	statusErrStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("224"))

	footerKeyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("234")).
			Foreground(lipgloss.Color("109")).
			Bold(true)

	footerDescStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("234")).
			Foreground(lipgloss.Color("244"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := m.renderHeader()
	status := m.renderStatus()
	footer := m.renderFooter()

	// The search-bar-position flag flips the chrome: the status line either
	// sits under the header or above the footer.
	var chrome []string
	topChrome := []string{header, status}
	bottomChrome := []string{footer}
	if m.cfg.Features.SearchBarPosition == config.SearchBarBottom {
		topChrome = []string{header}
		bottomChrome = []string{status, footer}
	}
	chrome = append(chrome, topChrome...)

	bodyHeight := m.height - len(topChrome) - len(bottomChrome)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	chrome = append(chrome, m.renderBody(bodyHeight))
	chrome = append(chrome, bottomChrome...)
	return strings.Join(chrome, "\n")
}

func (m Model) renderBody(height int) string {
	top := m.nav.Top()
	if top == nil {
		return fitHeight("", height)
	}
	body := top.View(max(1, m.width), height)
	if m.nav.IsModal(top) {
		modal := modalStyle.Render(top.View(max(20, m.width-12), max(4, height-4)))
		body = lipgloss.Place(max(1, m.width), max(1, height), lipgloss.Center, lipgloss.Center, modal)
	}
	return fitHeight(body, height)
}

func (m Model) renderHeader() string {
	title := "skiff"
	if top := m.nav.Top(); top != nil && top.Title() != "" {
		title = "skiff · " + top.Title()
	}
	right := fmt.Sprintf("%d tabs", m.tabCount)
	if m.tabCount == 1 {
		right = "1 tab"
	}
	return renderBar(headerStyle, m.width, title, right)
}

func (m Model) renderStatus() string {
	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}
	text := m.status
	if strings.TrimSpace(text) == "" {
		text = "Ready"
	}
	return renderBar(style, m.width, text, "")
}

func (m Model) renderFooter() string {
	bindings := m.keys.Help(m.ActiveScope())
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, footerKeyStyle.Render(h.Key)+footerDescStyle.Render(" "+h.Desc))
	}
	line := strings.Join(parts, footerDescStyle.Render("  "))
	if line == "" {
		line = footerDescStyle.Render("no shortcuts")
	}
	return renderBar(footerDescStyle, m.width, line, "")
}

func renderBar(style lipgloss.Style, width int, left, right string) string {
	left = ansi.Truncate(strings.ReplaceAll(left, "\n", " "), max(1, width), "…")
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		right = ""
		gap = max(1, width-ansi.StringWidth(left))
	}
	line := left + strings.Repeat(" ", gap) + right
	return style.Width(max(1, width)).MaxWidth(max(1, width)).Render(line)
}

func fitHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
