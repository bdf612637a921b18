package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skiff-term/skiff/internal/route"
	"github.com/skiff-term/skiff/internal/router"
)

type onboardingCard struct {
	title string
	body  string
}

var introCards = []onboardingCard{
	{"Welcome to Skiff", "A keyboard-driven browser shell. Everything is a few keys away."},
	{"Search from anywhere", "ctrl+l opens the address bar; type a URL or a search query."},
	{"Private tabs", "ctrl+n opens a private tab; its visits never reach history."},
}

var defaultBrowserCards = map[route.DefaultBrowserSection][]onboardingCard{
	route.DefaultBrowserTutorial: {
		{"Make Skiff your default", "Point your terminal launcher at skiff to open links here."},
		{"Deeplinks", "skiff://open-url?url=... opens straight into a tab."},
	},
	route.DefaultBrowserSystemSettings: {
		{"System settings", "Set the default URL handler in your desktop environment."},
	},
}

// OnboardingScreen pages through cards; the last card finishes the flow.
type OnboardingScreen struct {
	cards []onboardingCard
	page  int
}

// NewIntroScreen builds the first-run intro flow.
func NewIntroScreen() *OnboardingScreen {
	return &OnboardingScreen{cards: introCards}
}

// NewDefaultBrowserScreen builds the default-browser flow for section.
func NewDefaultBrowserScreen(section route.DefaultBrowserSection) *OnboardingScreen {
	cards := defaultBrowserCards[section]
	if len(cards) == 0 {
		cards = defaultBrowserCards[route.DefaultBrowserTutorial]
	}
	return &OnboardingScreen{cards: cards}
}

func (s *OnboardingScreen) Title() string { return "Welcome" }
func (s *OnboardingScreen) Scope() string { return "onboarding" }

func (s *OnboardingScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil, false
	}
	switch key.String() {
	case "esc":
		return s, func() tea.Msg { return OnboardingDoneMsg{Skipped: true} }, true
	case "left", "h":
		if s.page > 0 {
			s.page--
		}
	case "right", "l", "enter", " ":
		if s.page < len(s.cards)-1 {
			s.page++
			return s, nil, false
		}
		return s, func() tea.Msg { return OnboardingDoneMsg{} }, true
	}
	return s, nil, false
}

func (s *OnboardingScreen) View(width, height int) string {
	card := s.cards[s.page]
	lines := []string{
		titleStyle.Render(card.title),
		"",
		card.body,
		"",
		dimStyle.Render(fmt.Sprintf("%d/%d  enter: next  esc: skip", s.page+1, len(s.cards))),
	}
	return panelStyle.Width(max(10, width-2)).Render(strings.Join(lines, "\n"))
}
