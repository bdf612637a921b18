package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
)

type settingsRow struct {
	section route.SettingsSection
	label   string
}

var settingsRows = []settingsRow{
	{route.SettingsGeneral, "Start at home"},
	{route.SettingsNewTab, "New tab page"},
	{route.SettingsHomepage, "Homepage"},
	{route.SettingsSearch, "Search bar position"},
	{route.SettingsClearPrivateData, "Clear history"},
	{route.SettingsPassword, "Passwords"},
}

// SettingsScreen lists settings sections; enter toggles option-valued rows
// in place or fires the row's action.
type SettingsScreen struct {
	cfg    config.Config
	cursor int
}

// NewSettingsScreen opens settings with the cursor on section.
func NewSettingsScreen(cfg config.Config, section route.SettingsSection) *SettingsScreen {
	s := &SettingsScreen{cfg: cfg}
	for i, row := range settingsRows {
		if row.section == section {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *SettingsScreen) Title() string { return "Settings" }
func (s *SettingsScreen) Scope() string { return "settings" }

func (s *SettingsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch key.String() {
	case "esc", "q":
		return s, nil, true
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(settingsRows)-1 {
			s.cursor++
		}
	case "enter", " ":
		return s, s.activate(), false
	}
	return s, nil, false
}

func (s *SettingsScreen) activate() tea.Cmd {
	row := settingsRows[s.cursor]
	switch row.section {
	case route.SettingsGeneral:
		next := nextStartAtHome(s.cfg.Features.StartAtHome)
		s.cfg.Features.StartAtHome = next
		return settingCmd(row.section, string(next))
	case route.SettingsNewTab:
		next := config.NewTabBlank
		if s.cfg.Features.NewTabPage == config.NewTabBlank {
			next = config.NewTabHome
		}
		s.cfg.Features.NewTabPage = next
		return settingCmd(row.section, string(next))
	case route.SettingsSearch:
		next := config.SearchBarTop
		if s.cfg.Features.SearchBarPosition == config.SearchBarTop {
			next = config.SearchBarBottom
		}
		s.cfg.Features.SearchBarPosition = next
		return settingCmd(row.section, string(next))
	case route.SettingsClearPrivateData:
		return func() tea.Msg { return ClearHistoryMsg{} }
	}
	return nil
}

// nextStartAtHome cycles through the start-at-home options in order.
func nextStartAtHome(v config.StartAtHomeSetting) config.StartAtHomeSetting {
	switch v {
	case config.StartAtHomeAlways:
		return config.StartAtHomeAfterFourHours
	case config.StartAtHomeAfterFourHours:
		return config.StartAtHomeDisabled
	}
	return config.StartAtHomeAlways
}

func (s *SettingsScreen) value(section route.SettingsSection) string {
	switch section {
	case route.SettingsGeneral:
		return string(s.cfg.Features.StartAtHome)
	case route.SettingsNewTab:
		return string(s.cfg.Features.NewTabPage)
	case route.SettingsHomepage:
		return s.cfg.Browser.Homepage
	case route.SettingsSearch:
		return string(s.cfg.Features.SearchBarPosition)
	case route.SettingsClearPrivateData:
		return "enter to clear"
	case route.SettingsPassword:
		return "not available in the shell"
	}
	return ""
}

func (s *SettingsScreen) View(width, height int) string {
	lines := []string{titleStyle.Render("Settings"), ""}
	for i, row := range settingsRows {
		marker := "  "
		if i == s.cursor {
			marker = cursorStyle.Render("▶ ")
		}
		line := fmt.Sprintf("%s%-22s", marker, row.label)
		if v := s.value(row.section); v != "" {
			line += dimStyle.Render(v)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", dimStyle.Render("enter: change  esc: back"))
	return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}

func settingCmd(section route.SettingsSection, value string) tea.Cmd {
	return func() tea.Msg { return SettingChangedMsg{Section: section, Value: value} }
}
