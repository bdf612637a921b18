package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/suggest"
)

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

// dispatchOf runs cmd, unwrapping batches, and returns the DispatchMsg in it.
func dispatchOf(t *testing.T, cmd tea.Cmd) DispatchMsg {
	t.Helper()
	msg := runCmd(t, cmd)
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if d, ok := c().(DispatchMsg); ok {
				return d
			}
		}
		t.Fatal("batch contained no DispatchMsg")
	}
	d, ok := msg.(DispatchMsg)
	if !ok {
		t.Fatalf("expected DispatchMsg, got %T", msg)
	}
	return d
}

func typeText(s *SearchScreen, text string) *SearchScreen {
	for _, r := range text {
		next, _, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		s = next.(*SearchScreen)
	}
	return s
}

func TestSearchSubmitDispatchesRoute(t *testing.T) {
	s := typeText(NewSearchScreen("", false), "example.com")
	_, cmd, pop := s.Update(press("enter"))
	if !pop {
		t.Fatal("submit should dismiss the screen")
	}
	d := dispatchOf(t, cmd)
	sr, ok := d.Route.(route.Search)
	if !ok {
		t.Fatalf("expected Search route, got %#v", d.Route)
	}
	if sr.URL.Host != "example.com" {
		t.Errorf("host = %q", sr.URL.Host)
	}
}

func TestSearchEmptySubmitJustCloses(t *testing.T) {
	s := NewSearchScreen("", false)
	_, cmd, pop := s.Update(press("enter"))
	if !pop {
		t.Fatal("empty submit should still dismiss")
	}
	if cmd != nil {
		t.Fatal("empty submit should not dispatch")
	}
}

func TestSearchQueryChangeRequestsSuggestions(t *testing.T) {
	s := NewSearchScreen("", false)
	next, cmd, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	_ = next
	msg := runCmd(t, cmd)
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if q, ok := msg.(QueryChangedMsg); ok && q.Query == "w" {
			return
		}
		t.Fatalf("expected QueryChangedMsg, got %T", msg)
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if q, ok := c().(QueryChangedMsg); ok {
			if q.Query != "w" {
				t.Errorf("query = %q, want %q", q.Query, "w")
			}
			return
		}
	}
	t.Fatal("no QueryChangedMsg in batch")
}

func TestSearchSuggestionSelection(t *testing.T) {
	s := typeText(NewSearchScreen("", true), "wiki")
	next, _, _ := s.Update(SuggestionsMsg{Query: "wiki", Items: []suggest.Suggestion{
		{URL: "https://wikipedia.org", Title: "Wikipedia"},
	}})
	s = next.(*SearchScreen)
	next, _, _ = s.Update(press("down"))
	s = next.(*SearchScreen)
	_, cmd, pop := s.Update(press("enter"))
	if !pop {
		t.Fatal("selection should dismiss")
	}
	d := dispatchOf(t, cmd)
	sr, ok := d.Route.(route.Search)
	if !ok {
		t.Fatalf("expected Search route, got %#v", d.Route)
	}
	if sr.URL.Host != "wikipedia.org" {
		t.Errorf("host = %q", sr.URL.Host)
	}
	if !sr.IsPrivate {
		t.Error("private flag should carry into the route")
	}
}

func TestSearchStaleSuggestionsIgnored(t *testing.T) {
	s := typeText(NewSearchScreen("", false), "fresh")
	next, _, _ := s.Update(SuggestionsMsg{Query: "stale", Items: []suggest.Suggestion{
		{URL: "https://old.example"},
	}})
	s = next.(*SearchScreen)
	if len(s.suggestions) != 0 {
		t.Error("suggestions for an old query should be dropped")
	}
}

func TestSettingsToggleNewTab(t *testing.T) {
	cfg := config.Config{}
	cfg.Features.NewTabPage = config.NewTabHome
	s := NewSettingsScreen(cfg, route.SettingsNewTab)
	_, cmd, _ := s.Update(press("enter"))
	ch, ok := runCmd(t, cmd).(SettingChangedMsg)
	if !ok {
		t.Fatal("expected SettingChangedMsg")
	}
	if ch.Section != route.SettingsNewTab || ch.Value != string(config.NewTabBlank) {
		t.Errorf("changed %v to %q", ch.Section, ch.Value)
	}
}

func TestSettingsCycleStartAtHome(t *testing.T) {
	cfg := config.Config{}
	cfg.Features.StartAtHome = config.StartAtHomeAlways
	s := NewSettingsScreen(cfg, route.SettingsGeneral)

	_, cmd, _ := s.Update(press("enter"))
	ch, ok := runCmd(t, cmd).(SettingChangedMsg)
	if !ok {
		t.Fatal("expected SettingChangedMsg")
	}
	if ch.Section != route.SettingsGeneral || ch.Value != string(config.StartAtHomeAfterFourHours) {
		t.Errorf("changed %v to %q", ch.Section, ch.Value)
	}

	_, cmd, _ = s.Update(press("enter"))
	ch, ok = runCmd(t, cmd).(SettingChangedMsg)
	if !ok || ch.Value != string(config.StartAtHomeDisabled) {
		t.Errorf("second press should reach %q, got %q", config.StartAtHomeDisabled, ch.Value)
	}
}

func TestSettingsClearHistory(t *testing.T) {
	s := NewSettingsScreen(config.Config{}, route.SettingsClearPrivateData)
	_, cmd, _ := s.Update(press("enter"))
	if _, ok := runCmd(t, cmd).(ClearHistoryMsg); !ok {
		t.Fatal("expected ClearHistoryMsg")
	}
}

func TestSettingsPasswordRowIsStub(t *testing.T) {
	s := NewSettingsScreen(config.Config{}, route.SettingsPassword)
	if settingsRows[s.cursor].section != route.SettingsPassword {
		t.Fatalf("cursor landed on %v, want the password row", settingsRows[s.cursor].section)
	}
	_, cmd, _ := s.Update(press("enter"))
	if cmd != nil {
		t.Error("password row has nothing to activate")
	}
}

func TestSettingsEscDismisses(t *testing.T) {
	s := NewSettingsScreen(config.Config{}, route.SettingsGeneral)
	_, _, pop := s.Update(press("esc"))
	if !pop {
		t.Fatal("esc should dismiss settings")
	}
}

func TestLibraryLoadAndOpen(t *testing.T) {
	s := NewLibraryScreen(route.HomepanelHistory, false)
	next, _, _ := s.Update(LibraryLoadedMsg{Section: route.HomepanelHistory, Items: []LibraryItem{
		{URL: "https://first.example", Title: "First"},
		{URL: "https://second.example", Title: "Second"},
	}})
	s = next.(*LibraryScreen)
	if len(s.Items()) != 2 {
		t.Fatalf("items = %d, want 2", len(s.Items()))
	}
	next, _, _ = s.Update(press("down"))
	s = next.(*LibraryScreen)
	_, cmd, pop := s.Update(press("enter"))
	if !pop {
		t.Fatal("open should dismiss the panel")
	}
	d := dispatchOf(t, cmd)
	sr, ok := d.Route.(route.Search)
	if !ok || sr.URL.Host != "second.example" {
		t.Fatalf("route = %#v, want second.example", d.Route)
	}
}

func TestLibraryIgnoresOtherSections(t *testing.T) {
	s := NewLibraryScreen(route.HomepanelHistory, false)
	next, _, _ := s.Update(LibraryLoadedMsg{Section: route.HomepanelBookmarks, Items: []LibraryItem{
		{URL: "https://x.example"},
	}})
	s = next.(*LibraryScreen)
	if len(s.Items()) != 0 {
		t.Error("items for another section should be ignored")
	}
}

func TestBrowseEscClosesTab(t *testing.T) {
	s := NewBrowseScreen("tab-1", "https://example.com", "Example", false)
	_, cmd, pop := s.Update(press("esc"))
	if !pop {
		t.Fatal("esc should dismiss the browse screen")
	}
	closed, ok := runCmd(t, cmd).(TabClosedMsg)
	if !ok {
		t.Fatal("expected TabClosedMsg")
	}
	if closed.ID != "tab-1" {
		t.Errorf("closed tab = %q, want tab-1", closed.ID)
	}
}

func TestTabsSwitcherSelect(t *testing.T) {
	s := NewTabsScreen([]TabItem{
		{ID: "a", URL: "https://a.example"},
		{ID: "b", URL: "https://b.example"},
	}, "b")
	_, cmd, pop := s.Update(press("enter"))
	if !pop {
		t.Fatal("selecting a tab should dismiss the switcher")
	}
	sel, ok := runCmd(t, cmd).(TabSelectedMsg)
	if !ok {
		t.Fatal("expected TabSelectedMsg")
	}
	if sel.ID != "b" {
		t.Errorf("selected %q, want the active tab b", sel.ID)
	}
}

func TestTabsSwitcherClose(t *testing.T) {
	s := NewTabsScreen([]TabItem{
		{ID: "a", URL: "https://a.example"},
		{ID: "b", URL: "https://b.example"},
	}, "a")
	next, cmd, pop := s.Update(press("x"))
	if pop {
		t.Fatal("closing a tab keeps the switcher open")
	}
	closed, ok := runCmd(t, cmd).(TabClosedMsg)
	if !ok {
		t.Fatal("expected TabClosedMsg")
	}
	if closed.ID != "a" {
		t.Errorf("closed %q, want a", closed.ID)
	}
	s = next.(*TabsScreen)
	if len(s.tabs) != 1 || s.tabs[0].ID != "b" {
		t.Errorf("remaining tabs = %#v, want just b", s.tabs)
	}
}

func TestLibraryHistoryFilter(t *testing.T) {
	s := NewLibraryScreen(route.HomepanelHistory, false)
	next, _, _ := s.Update(press("/"))
	s = next.(*LibraryScreen)
	if !s.Filtering() {
		t.Fatal("/ should start filtering on the history panel")
	}

	next, cmd, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("go")})
	s = next.(*LibraryScreen)
	f, ok := runCmd(t, cmd).(LibraryFilterMsg)
	if !ok {
		t.Fatal("expected LibraryFilterMsg")
	}
	if f.Term != "go" || f.Section != route.HomepanelHistory {
		t.Errorf("filter msg = %#v", f)
	}

	next, _, _ = s.Update(press("enter"))
	s = next.(*LibraryScreen)
	if s.Filtering() {
		t.Error("enter should leave filter entry")
	}

	next, cmd, _ = s.Update(press("/"))
	s = next.(*LibraryScreen)
	next, cmd, _ = s.Update(press("esc"))
	s = next.(*LibraryScreen)
	f = runCmd(t, cmd).(LibraryFilterMsg)
	if f.Term != "" {
		t.Errorf("esc should clear the filter, got %q", f.Term)
	}
}

func TestLibraryFilterOnlyOnHistory(t *testing.T) {
	s := NewLibraryScreen(route.HomepanelBookmarks, false)
	next, _, _ := s.Update(press("/"))
	s = next.(*LibraryScreen)
	if s.Filtering() {
		t.Error("bookmarks panel has no filter")
	}
}

func TestOnboardingFinishesOnLastCard(t *testing.T) {
	s := NewIntroScreen()
	var cmd tea.Cmd
	var pop bool
	for i := 0; i < len(introCards); i++ {
		next, c, p := s.Update(press("enter"))
		s = next.(*OnboardingScreen)
		cmd, pop = c, p
	}
	if !pop {
		t.Fatal("last card should finish the flow")
	}
	done, ok := runCmd(t, cmd).(OnboardingDoneMsg)
	if !ok {
		t.Fatal("expected OnboardingDoneMsg")
	}
	if done.Skipped {
		t.Error("completing all cards is not a skip")
	}
}

func TestOnboardingEscSkips(t *testing.T) {
	s := NewIntroScreen()
	_, cmd, pop := s.Update(press("esc"))
	if !pop {
		t.Fatal("esc should dismiss onboarding")
	}
	done, ok := runCmd(t, cmd).(OnboardingDoneMsg)
	if !ok || !done.Skipped {
		t.Fatal("esc should report a skip")
	}
}
