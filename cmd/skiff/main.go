package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/config"
	"github.com/skiff-term/skiff/internal/coordinator"
	"github.com/skiff-term/skiff/internal/keymap"
	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
	"github.com/skiff-term/skiff/internal/session"
	"github.com/skiff-term/skiff/internal/session/repository"
	"github.com/skiff-term/skiff/internal/suggest"
	"github.com/skiff-term/skiff/internal/tui"
	"github.com/skiff-term/skiff/internal/ui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := session.Open()
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer db.Close()

	tabs := repository.NewTabRepo(db)
	visits := repository.NewVisitRepo(db, cfg.Browser.HistoryLimit)

	keys, err := keymap.LoadFile(keymapPath())
	if err != nil {
		log.Fatalf("keymap: %v", err)
	}

	sg := &suggest.Service{Visits: visits, Limit: cfg.Search.MaxSuggestions}
	nav := router.New()
	browser := coordinator.NewBrowser(ctx, cfg, nav,
		coordinator.Stores{Tabs: tabs, Visits: visits}, sg)

	startup, err := startupRoute(os.Args[1:])
	if err != nil {
		log.Fatalf("deeplink: %v", err)
	}

	m := tui.NewModel(cfg, nav, browser, keys)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if startup != nil {
		go p.Send(ui.DispatchMsg{Route: startup})
	}
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// startupRoute parses an optional deeplink or URL argument, e.g.
// skiff://settings/general or https://example.com.
func startupRoute(args []string) (route.Route, error) {
	if len(args) == 0 {
		return nil, nil
	}
	u, err := url.Parse(args[0])
	if err != nil {
		return nil, err
	}
	if u.Scheme == route.Scheme {
		return route.ParseDeeplink(u)
	}
	return route.ParseUserInput(args[0], false), nil
}

func keymapPath() string {
	if p := os.Getenv("SKIFF_KEYMAP"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "skiff", "keymap.toml")
}
