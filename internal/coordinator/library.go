package coordinator

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
	"github.com/skiff-term/skiff/internal/session/repository"
	"github.com/skiff-term/skiff/internal/ui"
)

// LibraryCoordinator presents library panels (history and friends) for
// homepanel routes.
type LibraryCoordinator struct {
	Base
	ctx    context.Context
	cfg    config.Config
	visits *repository.VisitRepo
	parent ParentDelegate
}

func NewLibrary(ctx context.Context, cfg config.Config, nav router.Navigator, visits *repository.VisitRepo, parent ParentDelegate) *LibraryCoordinator {
	return &LibraryCoordinator{Base: NewBase(nav), ctx: ctx, cfg: cfg, visits: visits, parent: parent}
}

func (lc *LibraryCoordinator) CanHandle(r route.Route) bool {
	_, ok := r.(route.Homepanel)
	return ok
}

func (lc *LibraryCoordinator) Handle(r route.Route) tea.Cmd {
	hp, ok := r.(route.Homepanel)
	if !ok {
		return nil
	}
	switch hp.Section {
	case route.HomepanelNewTab, route.HomepanelNewPrivateTab:
		private := hp.Section == route.HomepanelNewPrivateTab
		if lc.cfg.Features.NewTabPage == config.NewTabBlank {
			lc.Router().Push(ui.NewBlankScreen(private))
			return nil
		}
		lc.Router().Push(ui.NewHomeScreen(private))
		return lc.loadCmd(route.HomepanelTopSites)
	}
	lc.Router().Present(ui.NewLibraryScreen(hp.Section, false))
	return lc.loadCmd(hp.Section)
}

func (lc *LibraryCoordinator) ScreenScope() string { return "library" }

// loadCmd fetches panel rows. Panels with no session-side source (bookmarks,
// downloads, reading list) load empty; the screen says so.
func (lc *LibraryCoordinator) loadCmd(section route.HomepanelSection) tea.Cmd {
	return func() tea.Msg {
		switch section {
		case route.HomepanelHistory:
			visits, err := lc.visits.Recent(lc.ctx, 100)
			if err != nil {
				return ui.LibraryLoadedMsg{Section: section, Err: err}
			}
			return ui.LibraryLoadedMsg{Section: section, Items: visitItems(visits)}
		case route.HomepanelTopSites:
			visits, err := lc.visits.Recent(lc.ctx, 100)
			if err != nil {
				return ui.LibraryLoadedMsg{Section: section, Err: err}
			}
			return ui.LibraryLoadedMsg{Section: section, Items: topSites(visits, 8)}
		}
		return ui.LibraryLoadedMsg{Section: section}
	}
}

// SearchCmd narrows the history panel to visits matching term; an empty term
// restores the full panel.
func (lc *LibraryCoordinator) SearchCmd(term string) tea.Cmd {
	if strings.TrimSpace(term) == "" {
		return lc.loadCmd(route.HomepanelHistory)
	}
	return func() tea.Msg {
		visits, err := lc.visits.Search(lc.ctx, term, 100)
		if err != nil {
			return ui.LibraryLoadedMsg{Section: route.HomepanelHistory, Err: err}
		}
		return ui.LibraryLoadedMsg{Section: route.HomepanelHistory, Items: visitItems(visits)}
	}
}

func visitItems(visits []repository.Visit) []ui.LibraryItem {
	items := make([]ui.LibraryItem, 0, len(visits))
	for _, v := range visits {
		items = append(items, ui.LibraryItem{
			URL:   v.URL,
			Title: v.Title,
			When:  v.VisitedAt.Format("15:04"),
		})
	}
	return items
}
