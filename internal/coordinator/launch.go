package coordinator

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
	"github.com/skiff-term/skiff/internal/ui"
)

// LaunchType is what the launch coordinator decides to show on start.
type LaunchType int

const (
	LaunchNone LaunchType = iota
	LaunchIntro
)

// LaunchCoordinator owns the first-run and default-browser flows.
type LaunchCoordinator struct {
	Base
	cfg    config.Config
	parent ParentDelegate
}

func NewLaunch(cfg config.Config, nav router.Navigator, parent ParentDelegate) *LaunchCoordinator {
	return &LaunchCoordinator{Base: NewBase(nav), cfg: cfg, parent: parent}
}

// LaunchType decides the flow for this start of the shell.
func (lc *LaunchCoordinator) LaunchType() LaunchType {
	if !lc.cfg.Browser.OnboardingComplete {
		return LaunchIntro
	}
	return LaunchNone
}

func (lc *LaunchCoordinator) CanHandle(r route.Route) bool {
	switch r := r.(type) {
	case route.DefaultBrowser:
		return true
	case route.Action:
		return r.Kind == route.ActionShowIntro
	}
	return false
}

func (lc *LaunchCoordinator) Handle(r route.Route) tea.Cmd {
	switch r := r.(type) {
	case route.DefaultBrowser:
		lc.Router().Present(ui.NewDefaultBrowserScreen(r.Section))
	case route.Action:
		if r.Kind == route.ActionShowIntro {
			lc.Router().Present(ui.NewIntroScreen())
		}
	}
	return nil
}

func (lc *LaunchCoordinator) ScreenScope() string { return "onboarding" }

// Finish reports completion upward.
func (lc *LaunchCoordinator) Finish() tea.Cmd {
	if lc.parent == nil {
		return nil
	}
	return lc.parent.DidFinish(lc)
}
