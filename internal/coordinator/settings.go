package coordinator

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
	"github.com/skiff-term/skiff/internal/ui"
)

// SettingsCoordinator presents the settings screen for settings routes.
type SettingsCoordinator struct {
	Base
	cfg    config.Config
	parent ParentDelegate
}

func NewSettings(cfg config.Config, nav router.Navigator, parent ParentDelegate) *SettingsCoordinator {
	return &SettingsCoordinator{Base: NewBase(nav), cfg: cfg, parent: parent}
}

func (sc *SettingsCoordinator) CanHandle(r route.Route) bool {
	_, ok := r.(route.Settings)
	return ok
}

func (sc *SettingsCoordinator) Handle(r route.Route) tea.Cmd {
	s, ok := r.(route.Settings)
	if !ok {
		return nil
	}
	sc.Router().Present(ui.NewSettingsScreen(sc.cfg, s.Section))
	return nil
}

// ScreenScope ties this coordinator's lifetime to its screen.
func (sc *SettingsCoordinator) ScreenScope() string { return "settings" }

// Finish reports completion upward.
func (sc *SettingsCoordinator) Finish() tea.Cmd {
	if sc.parent == nil {
		return nil
	}
	return sc.parent.DidFinish(sc)
}
