package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/suggest"
)

// DispatchMsg asks the shell to route a navigation intent through the
// coordinator tree.
type DispatchMsg struct {
	Route route.Route
}

// DispatchCmd wraps a route into a command.
func DispatchCmd(r route.Route) tea.Cmd {
	return func() tea.Msg { return DispatchMsg{Route: r} }
}

// StatusMsg updates the footer status line.
type StatusMsg struct {
	Text  string
	IsErr bool
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

// SuggestionsMsg delivers ranked suggestions to the search screen.
type SuggestionsMsg struct {
	Query string
	Items []suggest.Suggestion
	Err   error
}

// QueryChangedMsg reports the search screen's current input so the shell can
// refresh suggestions.
type QueryChangedMsg struct {
	Query string
}

// LibraryItem is one row of a library panel.
type LibraryItem struct {
	URL   string
	Title string
	When  string
}

// LibraryLoadedMsg fills a library panel after its data command completes.
type LibraryLoadedMsg struct {
	Section route.HomepanelSection
	Items   []LibraryItem
	Err     error
}

// LibraryFilterMsg narrows a library panel to rows matching Term; an empty
// term restores the full panel.
type LibraryFilterMsg struct {
	Section route.HomepanelSection
	Term    string
}

// SessionStatsMsg refreshes the tab counter in the shell chrome.
type SessionStatsMsg struct {
	Tabs int
}

// TabItem is one row of the tab switcher.
type TabItem struct {
	ID      string
	URL     string
	Title   string
	Private bool
}

// TabSelectedMsg asks the shell to bring an open tab to the front.
type TabSelectedMsg struct {
	ID string
}

// TabClosedMsg reports that the tab's screen was dismissed and its session
// row should go.
type TabClosedMsg struct {
	ID string
}

// OnboardingDoneMsg signals the launch flow finished or was skipped.
type OnboardingDoneMsg struct {
	Skipped bool
}

// SettingChangedMsg reports one settings edit to apply and persist.
type SettingChangedMsg struct {
	Section route.SettingsSection
	Value   string
}

// ClearHistoryMsg asks the shell to drop the session visit log.
type ClearHistoryMsg struct{}
