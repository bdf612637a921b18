package coordinator

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
	"github.com/skiff-term/skiff/internal/session/repository"
	"github.com/skiff-term/skiff/internal/suggest"
	"github.com/skiff-term/skiff/internal/ui"
)

// Stores groups the session repositories the browser needs.
type Stores struct {
	Tabs   *repository.TabRepo
	Visits *repository.VisitRepo
}

// BrowserCoordinator is the root of the navigation tree. It handles search
// and action routes itself and spawns child coordinators for everything
// else on demand.
type BrowserCoordinator struct {
	Base
	ctx     context.Context
	cfg     config.Config
	stores  Stores
	suggest *suggest.Service

	activeTab string
}

func NewBrowser(ctx context.Context, cfg config.Config, nav router.Navigator, stores Stores, sg *suggest.Service) *BrowserCoordinator {
	return &BrowserCoordinator{
		Base:    NewBase(nav),
		ctx:     ctx,
		cfg:     cfg,
		stores:  stores,
		suggest: sg,
	}
}

// Start installs the landing screen, opens the configured homepage when the
// start-at-home flag asks for it, and on first run attaches the launch
// coordinator and opens its flow.
func (bc *BrowserCoordinator) Start() tea.Cmd {
	home := ui.NewHomeScreen(bc.cfg.Browser.PrivateByDefault)
	bc.Router().SetRoot(home)
	cmds := []tea.Cmd{bc.topSitesCmd()}

	if bc.startsAtHome() {
		u, err := url.Parse(bc.cfg.Browser.Homepage)
		if err != nil || u.Host == "" {
			cmds = append(cmds, ui.StatusCmd(fmt.Sprintf("bad homepage %q", bc.cfg.Browser.Homepage)))
		} else {
			cmds = append(cmds, bc.openURL(u, bc.cfg.Browser.PrivateByDefault))
		}
	}

	if launch := NewLaunch(bc.cfg, bc.Router(), bc); launch.LaunchType() != LaunchNone {
		bc.Add(launch)
		cmds = append(cmds, launch.Handle(route.Action{Kind: route.ActionShowIntro}))
	}
	return tea.Batch(cmds...)
}

// startsAtHome reports whether this launch lands on the homepage. The
// session is per-process, so a fresh start always exceeds the four-hour
// idle window.
func (bc *BrowserCoordinator) startsAtHome() bool {
	if bc.cfg.Browser.Homepage == "" {
		return false
	}
	switch bc.cfg.Features.StartAtHome {
	case config.StartAtHomeAlways, config.StartAtHomeAfterFourHours:
		return true
	}
	return false
}

// Dispatch implements the caller side of the route contract: find a handler
// in the tree, create and attach one when the search misses, then hand the
// route over.
func (bc *BrowserCoordinator) Dispatch(r route.Route) tea.Cmd {
	node := Find(bc, r)
	if node == nil {
		node = bc.spawnHandler(r)
	}
	if node == nil {
		return ui.StatusCmd(fmt.Sprintf("nothing handles %T", r))
	}
	return node.(RouteHandler).Handle(r)
}

// spawnHandler creates the child coordinator for routes no attached node
// handles. The returned node is already attached.
func (bc *BrowserCoordinator) spawnHandler(r route.Route) Coordinator {
	var child Coordinator
	switch r.(type) {
	case route.Settings:
		child = NewSettings(bc.cfg, bc.Router(), bc)
	case route.Homepanel:
		child = NewLibrary(bc.ctx, bc.cfg, bc.Router(), bc.stores.Visits, bc)
	case route.DefaultBrowser:
		child = NewLaunch(bc.cfg, bc.Router(), bc)
	default:
		return nil
	}
	bc.Add(child)
	return child
}

func (bc *BrowserCoordinator) CanHandle(r route.Route) bool {
	switch r.(type) {
	case route.Search, route.SearchQuery, route.Action:
		return true
	}
	return false
}

func (bc *BrowserCoordinator) Handle(r route.Route) tea.Cmd {
	switch r := r.(type) {
	case route.Search:
		return bc.openURL(r.URL, r.IsPrivate)
	case route.SearchQuery:
		u, err := bc.searchURL(r.Query)
		if err != nil {
			return ui.ErrorCmd(err)
		}
		return bc.openURL(u, r.IsPrivate)
	case route.Action:
		return bc.runAction(r.Kind)
	}
	return nil
}

// DidFinish detaches a completed child.
func (bc *BrowserCoordinator) DidFinish(child Coordinator) tea.Cmd {
	bc.Remove(child)
	return nil
}

// DidDismissScope detaches any child whose screens live in scope. The shell
// calls this when a screen pops itself, so coordinators spawned for a single
// screen do not linger in the tree. Iterates a copy: Remove shifts the child
// list in place.
func (bc *BrowserCoordinator) DidDismissScope(scope string) {
	for _, c := range slices.Clone(bc.Children()) {
		if sc, ok := c.(interface{ ScreenScope() string }); ok && sc.ScreenScope() == scope {
			bc.Remove(c)
		}
	}
}

// ShowSearch presents the address bar. Not a route: the bar is chrome, the
// routes are what it produces.
func (bc *BrowserCoordinator) ShowSearch(initial string, private bool) tea.Cmd {
	bc.Router().Present(ui.NewSearchScreen(initial, private))
	return bc.SuggestCmd("")
}

// SuggestCmd ranks suggestions for the current address-bar input.
func (bc *BrowserCoordinator) SuggestCmd(query string) tea.Cmd {
	if bc.suggest == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := bc.suggest.Rank(bc.ctx, query)
		return ui.SuggestionsMsg{Query: query, Items: items, Err: err}
	}
}

// ActiveTab returns the id of the tab last navigated in, "" before any.
func (bc *BrowserCoordinator) ActiveTab() string { return bc.activeTab }

// ClearHistoryCmd wipes the visit log.
func (bc *BrowserCoordinator) ClearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		if err := bc.stores.Visits.Clear(bc.ctx); err != nil {
			return ui.StatusMsg{Text: err.Error(), IsErr: true}
		}
		return ui.StatusMsg{Text: "history cleared"}
	}
}

func (bc *BrowserCoordinator) openURL(u *url.URL, private bool) tea.Cmd {
	target := u.String()
	title := u.Host
	tab, err := bc.stores.Tabs.Open(bc.ctx, target, title, private)
	if err != nil {
		return ui.ErrorCmd(err)
	}
	bc.activeTab = tab.ID
	if err := bc.stores.Visits.Record(bc.ctx, repository.Visit{
		TabID:     &tab.ID,
		URL:       target,
		Title:     title,
		IsPrivate: private,
	}); err != nil {
		return ui.ErrorCmd(err)
	}
	bc.Router().Push(ui.NewBrowseScreen(tab.ID, target, title, private))
	return tea.Batch(ui.StatusCmd("opened "+target), bc.statsCmd())
}

func (bc *BrowserCoordinator) runAction(kind route.ActionKind) tea.Cmd {
	switch kind {
	case route.ActionClosePrivateTabs:
		n, err := bc.stores.Tabs.CloseAllPrivate(bc.ctx)
		if err != nil {
			return ui.ErrorCmd(err)
		}
		if err := bc.stores.Visits.PurgePrivate(bc.ctx); err != nil {
			return ui.ErrorCmd(err)
		}
		return tea.Batch(ui.StatusCmd(fmt.Sprintf("closed %d private tabs", n)), bc.statsCmd())
	case route.ActionShowIntro:
		launch := NewLaunch(bc.cfg, bc.Router(), bc)
		bc.Add(launch)
		return launch.Handle(route.Action{Kind: route.ActionShowIntro})
	case route.ActionShowTabs:
		return bc.showTabs()
	}
	return nil
}

func (bc *BrowserCoordinator) showTabs() tea.Cmd {
	tabs, err := bc.stores.Tabs.List(bc.ctx, true)
	if err != nil {
		return ui.ErrorCmd(err)
	}
	items := make([]ui.TabItem, 0, len(tabs))
	for _, t := range tabs {
		items = append(items, ui.TabItem{ID: t.ID, URL: t.URL, Title: t.Title, Private: t.IsPrivate})
	}
	bc.Router().Present(ui.NewTabsScreen(items, bc.activeTab))
	return nil
}

// SwitchTab brings an open tab back to the front, bumping its access time.
func (bc *BrowserCoordinator) SwitchTab(id string) tea.Cmd {
	tab, err := bc.stores.Tabs.Get(bc.ctx, id)
	if err != nil {
		return ui.ErrorCmd(err)
	}
	if tab == nil {
		return ui.StatusCmd("tab is gone")
	}
	if err := bc.stores.Tabs.Touch(bc.ctx, tab.ID, tab.URL, tab.Title); err != nil {
		return ui.ErrorCmd(err)
	}
	bc.activeTab = tab.ID
	bc.Router().Push(ui.NewBrowseScreen(tab.ID, tab.URL, tab.Title, tab.IsPrivate))
	return bc.statsCmd()
}

// CloseTab drops a tab's session row after its screen was dismissed.
func (bc *BrowserCoordinator) CloseTab(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	if err := bc.stores.Tabs.Close(bc.ctx, id); err != nil {
		return ui.ErrorCmd(err)
	}
	if bc.activeTab == id {
		bc.activeTab = ""
	}
	return bc.statsCmd()
}

// FilterHistoryCmd routes a history-panel filter to the attached library
// coordinator; a no-op when no panel is open.
func (bc *BrowserCoordinator) FilterHistoryCmd(term string) tea.Cmd {
	node := Find(bc, route.Homepanel{Section: route.HomepanelHistory})
	lc, ok := node.(*LibraryCoordinator)
	if !ok {
		return nil
	}
	return lc.SearchCmd(term)
}

func (bc *BrowserCoordinator) searchURL(query string) (*url.URL, error) {
	tpl := bc.cfg.Search.EngineTemplate
	if !strings.Contains(tpl, "%s") {
		return nil, fmt.Errorf("search engine template %q has no %%s placeholder", tpl)
	}
	raw := strings.Replace(tpl, "%s", url.QueryEscape(query), 1)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("search engine template: %w", err)
	}
	return u, nil
}

func (bc *BrowserCoordinator) topSitesCmd() tea.Cmd {
	return func() tea.Msg {
		visits, err := bc.stores.Visits.Recent(bc.ctx, 50)
		if err != nil {
			return ui.LibraryLoadedMsg{Section: route.HomepanelTopSites, Err: err}
		}
		return ui.LibraryLoadedMsg{Section: route.HomepanelTopSites, Items: topSites(visits, 8)}
	}
}

func (bc *BrowserCoordinator) statsCmd() tea.Cmd {
	return func() tea.Msg {
		n, err := bc.stores.Tabs.Count(bc.ctx)
		if err != nil {
			return ui.StatusMsg{Text: err.Error(), IsErr: true}
		}
		return ui.SessionStatsMsg{Tabs: n}
	}
}

// topSites folds the visit log into unique sites, most visited first.
func topSites(visits []repository.Visit, limit int) []ui.LibraryItem {
	counts := map[string]int{}
	titles := map[string]string{}
	order := []string{}
	for _, v := range visits {
		if _, seen := counts[v.URL]; !seen {
			order = append(order, v.URL)
			titles[v.URL] = v.Title
		}
		counts[v.URL]++
	}
	// stable selection sort by count; the log is small
	out := make([]ui.LibraryItem, 0, limit)
	for len(out) < limit && len(order) > 0 {
		best := 0
		for i, u := range order {
			if counts[u] > counts[order[best]] {
				best = i
			}
		}
		u := order[best]
		out = append(out, ui.LibraryItem{URL: u, Title: titles[u]})
		order = append(order[:best], order[best+1:]...)
	}
	return out
}
