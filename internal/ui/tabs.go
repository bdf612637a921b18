package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/router"
)

// TabsScreen is the tab switcher: open tabs, most recent first. Enter brings
// the selected tab to the front, x closes it.
type TabsScreen struct {
	tabs   []TabItem
	cursor int
}

func NewTabsScreen(tabs []TabItem, activeID string) *TabsScreen {
	s := &TabsScreen{tabs: tabs}
	for i, tab := range tabs {
		if tab.ID == activeID {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *TabsScreen) Title() string { return "Tabs" }
func (s *TabsScreen) Scope() string { return "tabs" }

func (s *TabsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.tabs)-1 {
			s.cursor++
		}
	case "enter":
		if len(s.tabs) == 0 {
			return s, nil, false
		}
		id := s.tabs[s.cursor].ID
		return s, func() tea.Msg { return TabSelectedMsg{ID: id} }, true
	case "x":
		if len(s.tabs) == 0 {
			return s, nil, false
		}
		id := s.tabs[s.cursor].ID
		s.tabs = append(s.tabs[:s.cursor], s.tabs[s.cursor+1:]...)
		if s.cursor >= len(s.tabs) && s.cursor > 0 {
			s.cursor--
		}
		return s, func() tea.Msg { return TabClosedMsg{ID: id} }, false
	}
	return s, nil, false
}

func (s *TabsScreen) View(width, height int) string {
	lines := []string{titleStyle.Render("Tabs"), ""}
	if len(s.tabs) == 0 {
		lines = append(lines, dimStyle.Render("no open tabs"))
	}
	for i, tab := range s.tabs {
		marker := "  "
		if i == s.cursor {
			marker = cursorStyle.Render("▶ ")
		}
		label := tab.Title
		if label == "" {
			label = tab.URL
		}
		if tab.Private {
			label = privateStyle.Render("[private] ") + label
		}
		lines = append(lines, marker+label, dimStyle.Render("    "+tab.URL))
	}
	lines = append(lines, "", dimStyle.Render(fmt.Sprintf("%d tabs  enter: switch  x: close  esc: back", len(s.tabs))))
	return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}
