package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
)

// LibraryScreen shows one library panel (history, bookmarks, ...). Items
// arrive asynchronously via LibraryLoadedMsg; enter opens the selected item.
// The history panel supports a / filter over the visit log.
type LibraryScreen struct {
	Section route.HomepanelSection
	items   []LibraryItem
	cursor  int
	loadErr error
	private bool

	filter    string
	filtering bool
}

func NewLibraryScreen(section route.HomepanelSection, private bool) *LibraryScreen {
	return &LibraryScreen{Section: section, private: private}
}

func (s *LibraryScreen) Title() string {
	t := strings.ReplaceAll(string(s.Section), "-", " ")
	if t == "" {
		return "Library"
	}
	return strings.ToUpper(t[:1]) + t[1:]
}

func (s *LibraryScreen) Scope() string { return "library" }

// Items returns the loaded rows, for the shell's status line.
func (s *LibraryScreen) Items() []LibraryItem { return s.items }

// Filtering reports whether the / filter is capturing keys, so the shell
// keeps global shortcuts away from it.
func (s *LibraryScreen) Filtering() bool { return s.filtering }

func (s *LibraryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case LibraryLoadedMsg:
		if msg.Section != s.Section {
			return s, nil, false
		}
		s.loadErr = msg.Err
		if msg.Err == nil {
			s.items = msg.Items
			if s.cursor >= len(s.items) {
				s.cursor = 0
			}
		}
		return s, nil, false
	case tea.KeyMsg:
		if s.filtering {
			return s.updateFilter(msg)
		}
		switch msg.String() {
		case "esc", "q":
			return s, nil, true
		case "/":
			if s.Section == route.HomepanelHistory {
				s.filtering = true
			}
			return s, nil, false
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.items)-1 {
				s.cursor++
			}
		case "enter":
			if len(s.items) == 0 {
				return s, nil, false
			}
			r := route.ParseUserInput(s.items[s.cursor].URL, s.private)
			return s, DispatchCmd(r), true
		}
	}
	return s, nil, false
}

// updateFilter edits the filter text. Enter keeps the filter and returns to
// list navigation; esc drops it.
func (s *LibraryScreen) updateFilter(msg tea.KeyMsg) (router.Screen, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		s.filtering = false
		return s, nil, false
	case tea.KeyEsc:
		s.filtering = false
		if s.filter == "" {
			return s, nil, false
		}
		s.filter = ""
		return s, s.filterCmd(), false
	case tea.KeyBackspace:
		if s.filter == "" {
			return s, nil, false
		}
		runes := []rune(s.filter)
		s.filter = string(runes[:len(runes)-1])
		return s, s.filterCmd(), false
	case tea.KeyRunes:
		s.filter += string(msg.Runes)
		s.cursor = 0
		return s, s.filterCmd(), false
	}
	return s, nil, false
}

func (s *LibraryScreen) filterCmd() tea.Cmd {
	section, term := s.Section, s.filter
	return func() tea.Msg { return LibraryFilterMsg{Section: section, Term: term} }
}

func (s *LibraryScreen) View(width, height int) string {
	lines := []string{titleStyle.Render(s.Title()), ""}
	if s.filtering || s.filter != "" {
		prompt := "/" + s.filter
		if s.filtering {
			prompt += cursorStyle.Render("_")
		}
		lines = append(lines, prompt, "")
	}
	switch {
	case s.loadErr != nil:
		lines = append(lines, dimStyle.Render("load failed: "+s.loadErr.Error()))
	case len(s.items) == 0:
		lines = append(lines, dimStyle.Render("nothing here yet"))
	default:
		limit := len(s.items)
		if height > 8 && limit > height-8 {
			limit = height - 8
		}
		for i := 0; i < limit; i++ {
			item := s.items[i]
			marker := "  "
			if i == s.cursor {
				marker = cursorStyle.Render("▶ ")
			}
			label := item.Title
			if label == "" {
				label = item.URL
			}
			line := marker + label
			if item.When != "" {
				line += dimStyle.Render("  " + item.When)
			}
			lines = append(lines, line)
			if label != item.URL {
				lines = append(lines, dimStyle.Render("    "+item.URL))
			}
		}
	}
	hint := fmt.Sprintf("%d items  enter: open  esc: back", len(s.items))
	if s.Section == route.HomepanelHistory {
		hint += "  /: filter"
	}
	lines = append(lines, "", dimStyle.Render(hint))
	return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}
