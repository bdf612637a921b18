// Package ui holds the concrete screens coordinators present. Every screen
// implements the router screen contract; screens talk back to the shell only
// through messages, never by reaching into coordinators.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/skiff-term/skiff/internal/router"
)

// BrowseScreen stands in for a rendered page: it shows the tab's URL and
// title. Content rendering is out of scope for the shell.
type BrowseScreen struct {
	TabID     string
	URL       string
	PageTitle string
	Private   bool
}

func NewBrowseScreen(tabID, url, title string, private bool) *BrowseScreen {
	return &BrowseScreen{TabID: tabID, URL: url, PageTitle: title, Private: private}
}

func (s *BrowseScreen) Title() string {
	if s.PageTitle != "" {
		return s.PageTitle
	}
	return s.URL
}

func (s *BrowseScreen) Scope() string { return "browse" }

// Update closes the tab on esc; the screen is the tab's only surface, so
// leaving it ends the tab.
func (s *BrowseScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		id := s.TabID
		return s, func() tea.Msg { return TabClosedMsg{ID: id} }, true
	}
	return s, nil, false
}

func (s *BrowseScreen) View(width, height int) string {
	header := urlStyle.Render(ansi.Truncate(s.URL, max(1, width-4), "…"))
	if s.Private {
		header = privateStyle.Render("[private] ") + header
	}
	body := dimStyle.Render("page content is not rendered in the shell")
	lines := []string{header, "", body}
	if s.PageTitle != "" {
		lines = []string{header, titleStyle.Render(s.PageTitle), "", body}
	}
	lines = append(lines, "", dimStyle.Render("esc: close tab"))
	return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}

// HomeScreen is the new-tab landing screen: top sites from the session plus
// a hint line. With Blank set it shows nothing but the title, for the blank
// new-tab-page setting.
type HomeScreen struct {
	TopSites []LibraryItem
	Private  bool
	Blank    bool
}

func NewHomeScreen(private bool) *HomeScreen {
	return &HomeScreen{Private: private}
}

// NewBlankScreen is the blank variant of the new-tab page.
func NewBlankScreen(private bool) *HomeScreen {
	return &HomeScreen{Private: private, Blank: true}
}

func (s *HomeScreen) Title() string { return "New Tab" }
func (s *HomeScreen) Scope() string { return "home" }

func (s *HomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd, bool) {
	if m, ok := msg.(LibraryLoadedMsg); ok && m.Err == nil && !s.Blank {
		s.TopSites = m.Items
	}
	return s, nil, false
}

func (s *HomeScreen) View(width, height int) string {
	title := titleStyle.Render("Skiff")
	if s.Private {
		title += privateStyle.Render("  private browsing")
	}
	lines := []string{title, ""}
	if s.Blank {
		lines = append(lines, dimStyle.Render("ctrl+l search"))
		return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
	}
	if len(s.TopSites) == 0 {
		lines = append(lines, dimStyle.Render("no sites visited yet"))
	} else {
		lines = append(lines, "Top sites:")
		for i, site := range s.TopSites {
			if i == 8 {
				break
			}
			label := site.Title
			if label == "" {
				label = site.URL
			}
			lines = append(lines, fmt.Sprintf("  %s  %s", label, dimStyle.Render(site.URL)))
		}
	}
	lines = append(lines, "", dimStyle.Render("ctrl+l search  ctrl+h history  ctrl+o settings"))
	return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
