package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
	"github.com/skiff-term/skiff/internal/suggest"
)

// SearchScreen is the address bar: free text plus ranked suggestions.
// Submitting dispatches the parsed route and dismisses the screen.
type SearchScreen struct {
	input       textinput.Model
	suggestions []suggest.Suggestion
	cursor      int // 0 = the raw input, 1..n = suggestion n-1
	private     bool
}

func NewSearchScreen(initial string, private bool) *SearchScreen {
	inp := textinput.New()
	inp.Prompt = "› "
	inp.Placeholder = "search or enter address"
	inp.SetValue(initial)
	inp.Focus()
	return &SearchScreen{input: inp, private: private}
}

func (s *SearchScreen) Title() string { return "Search" }
func (s *SearchScreen) Scope() string { return "search" }

func (s *SearchScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case SuggestionsMsg:
		if msg.Err == nil && msg.Query == s.input.Value() {
			s.suggestions = msg.Items
			if s.cursor > len(s.suggestions) {
				s.cursor = 0
			}
		}
		return s, nil, false
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "up":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil, false
		case "down":
			if s.cursor < len(s.suggestions) {
				s.cursor++
			}
			return s, nil, false
		case "enter":
			r := s.selectedRoute()
			if r == nil {
				return s, nil, true
			}
			return s, DispatchCmd(r), true
		}
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before {
		s.cursor = 0
		query := after
		cmd = tea.Batch(cmd, func() tea.Msg { return QueryChangedMsg{Query: query} })
	}
	return s, cmd, false
}

func (s *SearchScreen) selectedRoute() route.Route {
	if s.cursor > 0 && s.cursor <= len(s.suggestions) {
		return route.ParseUserInput(s.suggestions[s.cursor-1].URL, s.private)
	}
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return nil
	}
	return route.ParseUserInput(text, s.private)
}

func (s *SearchScreen) View(width, height int) string {
	lines := []string{s.input.View(), ""}
	for i, sug := range s.suggestions {
		marker := "  "
		if s.cursor == i+1 {
			marker = cursorStyle.Render("▶ ")
		}
		label := sug.Title
		if label == "" {
			label = sug.URL
		} else {
			label = fmt.Sprintf("%s  %s", label, dimStyle.Render(sug.URL))
		}
		lines = append(lines, marker+label)
	}
	hint := "enter: go  esc: cancel"
	if s.private {
		hint = privateStyle.Render("private  ") + hint
	}
	lines = append(lines, "", dimStyle.Render(hint))
	return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}
