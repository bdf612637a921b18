// Package tui is the terminal shell. It owns the bubbletea Model, feeds key
// presses through the keymap and the screen stack, and relays screen
// messages to the browser coordinator.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/coordinator"
	"github.com/skiff-term/skiff/internal/keymap"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
	"github.com/skiff-term/skiff/internal/ui"
)

// Model is the root bubbletea model.
type Model struct {
	width     int
	height    int
	nav       *router.Router
	browser   *coordinator.BrowserCoordinator
	keys      *keymap.Registry
	cfg       config.Config
	status    string
	statusErr bool
	tabCount  int
	quitting  bool

	// SaveConfig persists settings edits. Overridable in tests.
	SaveConfig func(config.Config) error
}

func NewModel(cfg config.Config, nav *router.Router, browser *coordinator.BrowserCoordinator, keys *keymap.Registry) Model {
	return Model{
		width:      100,
		height:     32,
		nav:        nav,
		browser:    browser,
		keys:       keys,
		cfg:        cfg,
		status:     "Ready",
		SaveConfig: config.Save,
	}
}

func (m Model) Init() tea.Cmd {
	return m.browser.Start()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case ui.StatusMsg:
		m.status, m.statusErr = msg.Text, msg.IsErr
		return m, nil

	case ui.SessionStatsMsg:
		m.tabCount = msg.Tabs
		return m, nil

	case ui.DispatchMsg:
		return m, m.browser.Dispatch(msg.Route)

	case ui.QueryChangedMsg:
		return m, m.browser.SuggestCmd(msg.Query)

	case ui.LibraryFilterMsg:
		return m, m.browser.FilterHistoryCmd(msg.Term)

	case ui.TabSelectedMsg:
		return m, m.browser.SwitchTab(msg.ID)

	case ui.TabClosedMsg:
		return m, m.browser.CloseTab(msg.ID)

	case ui.SettingChangedMsg:
		return m, m.applySetting(msg)

	case ui.ClearHistoryMsg:
		return m, m.browser.ClearHistoryCmd()

	case ui.OnboardingDoneMsg:
		return m, m.finishOnboarding(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.forwardToTop(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return *m, tea.Quit
	}

	scope := m.ActiveScope()

	// Text-entry screens get every key; everything else consults the keymap
	// first so global shortcuts work from any screen.
	if !m.textEntryActive(scope) {
		switch m.keys.Action(msg, scope) {
		case "quit":
			m.quitting = true
			return *m, tea.Quit
		case "open-search":
			return *m, m.browser.ShowSearch("", m.cfg.Browser.PrivateByDefault)
		case "new-tab":
			return *m, m.browser.Dispatch(route.Homepanel{Section: route.HomepanelNewTab})
		case "new-private-tab":
			return *m, m.browser.Dispatch(route.Homepanel{Section: route.HomepanelNewPrivateTab})
		case "show-history":
			return *m, m.browser.Dispatch(route.Homepanel{Section: route.HomepanelHistory})
		case "show-bookmarks":
			return *m, m.browser.Dispatch(route.Homepanel{Section: route.HomepanelBookmarks})
		case "open-settings":
			return *m, m.browser.Dispatch(route.Settings{Section: route.SettingsGeneral})
		case "show-tabs":
			return *m, m.browser.Dispatch(route.Action{Kind: route.ActionShowTabs})
		case "back":
			m.dismissTop()
			return *m, nil
		}
	}

	return *m, m.forwardToTop(msg)
}

// forwardToTop routes a message to the visible screen and handles its pop
// request.
func (m *Model) forwardToTop(msg tea.Msg) tea.Cmd {
	top := m.nav.Top()
	if top == nil {
		return nil
	}
	next, cmd, pop := top.Update(msg)
	if pop {
		m.dismissTop()
		return cmd
	}
	if next != nil && next != top {
		m.nav.ReplaceTop(next)
	}
	return cmd
}

// dismissTop removes the visible screen and tells the coordinator tree its
// scope went away. The root screen stays put.
func (m *Model) dismissTop() {
	top := m.nav.Top()
	if top == nil || m.nav.Len() <= 1 {
		return
	}
	scope := top.Scope()
	m.nav.Dismiss()
	m.browser.DidDismissScope(scope)
}

func (m *Model) applySetting(msg ui.SettingChangedMsg) tea.Cmd {
	switch msg.Section {
	case route.SettingsGeneral:
		m.cfg.Features.StartAtHome = config.StartAtHomeSetting(msg.Value)
	case route.SettingsNewTab:
		m.cfg.Features.NewTabPage = config.NewTabPage(msg.Value)
	case route.SettingsSearch:
		m.cfg.Features.SearchBarPosition = config.SearchBarPosition(msg.Value)
	default:
		return nil
	}
	if err := m.cfg.Features.Validate(); err != nil {
		return ui.ErrorCmd(err)
	}
	if err := m.SaveConfig(m.cfg); err != nil {
		return ui.ErrorCmd(err)
	}
	return ui.StatusCmd("setting saved")
}

func (m *Model) finishOnboarding(msg ui.OnboardingDoneMsg) tea.Cmd {
	m.browser.DidDismissScope("onboarding")
	if msg.Skipped {
		return ui.StatusCmd("onboarding skipped")
	}
	m.cfg.Browser.OnboardingComplete = true
	if err := m.SaveConfig(m.cfg); err != nil {
		return ui.ErrorCmd(err)
	}
	return ui.StatusCmd("welcome to skiff")
}

// textEntryActive reports whether the visible screen is capturing text, so
// keys must bypass the keymap.
func (m *Model) textEntryActive(scope string) bool {
	if scope == "search" {
		return true
	}
	if f, ok := m.nav.Top().(interface{ Filtering() bool }); ok {
		return f.Filtering()
	}
	return false
}

// ActiveScope is the scope of the visible screen, "app" before any.
func (m Model) ActiveScope() string {
	if top := m.nav.Top(); top != nil {
		return top.Scope()
	}
	return "app"
}

func (m Model) Config() config.Config { return m.cfg }
