package route

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scheme is the deeplink scheme the shell registers.
const Scheme = "skiff"

// deeplink hosts
const (
	hostOpenURL        = "open-url"
	hostOpenText       = "open-text"
	hostHome           = "home"
	hostHomepanel      = "homepanel"
	hostSettings       = "settings"
	hostDefaultBrowser = "default-browser"
	hostAction         = "action"
)

var knownHosts = []string{
	hostOpenURL, hostOpenText, hostHome, hostHomepanel,
	hostSettings, hostDefaultBrowser, hostAction,
}

// UnknownHostError reports a deeplink host that is not registered. When a
// known host is close enough, Suggestion carries a "did you mean" candidate.
type UnknownHostError struct {
	Host       string
	Suggestion string
}

func (e *UnknownHostError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown deeplink host %q (did you mean %q?)", e.Host, e.Suggestion)
	}
	return fmt.Sprintf("unknown deeplink host %q", e.Host)
}

// ParseDeeplink maps a skiff:// URL onto a Route.
//
//	skiff://open-url?url=https://example.com&private=true
//	skiff://open-text?text=weather+melbourne
//	skiff://home
//	skiff://homepanel/bookmarks
//	skiff://settings/newtab
//	skiff://default-browser/tutorial
//	skiff://action/close-private-tabs
func ParseDeeplink(u *url.URL) (Route, error) {
	if u == nil {
		return nil, fmt.Errorf("nil deeplink URL")
	}
	if !strings.EqualFold(u.Scheme, Scheme) {
		return nil, fmt.Errorf("unsupported deeplink scheme %q", u.Scheme)
	}

	host := strings.ToLower(u.Host)
	q := u.Query()
	private := parseBool(q.Get("private"))

	switch host {
	case hostOpenURL:
		raw := q.Get("url")
		if raw == "" {
			return nil, fmt.Errorf("open-url deeplink missing url parameter")
		}
		target, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("open-url deeplink: %w", err)
		}
		return Search{URL: target, IsPrivate: private}, nil
	case hostOpenText:
		text := strings.TrimSpace(q.Get("text"))
		if text == "" {
			return nil, fmt.Errorf("open-text deeplink missing text parameter")
		}
		return SearchQuery{Query: text, IsPrivate: private}, nil
	case hostHome:
		return Homepanel{Section: HomepanelTopSites}, nil
	case hostHomepanel:
		return parseHomepanel(firstPathSegment(u))
	case hostSettings:
		return parseSettings(firstPathSegment(u))
	case hostDefaultBrowser:
		return parseDefaultBrowser(firstPathSegment(u))
	case hostAction:
		return parseAction(firstPathSegment(u))
	}

	return nil, &UnknownHostError{Host: host, Suggestion: closestHost(host)}
}

// ParseUserInput classifies address-bar input: anything that parses as a web
// URL (with or without an explicit scheme) navigates, everything else is a
// search query.
func ParseUserInput(input string, private bool) Route {
	text := strings.TrimSpace(input)
	if text == "" {
		return Homepanel{Section: HomepanelNewTab}
	}
	if u := fixupURL(text); u != nil {
		return Search{URL: u, IsPrivate: private}
	}
	return SearchQuery{Query: text, IsPrivate: private}
}

// fixupURL attempts to read text as a navigable URL, prepending https:// for
// bare hosts like "example.com". Returns nil when the text is a search.
func fixupURL(text string) *url.URL {
	if strings.ContainsAny(text, " \t") {
		return nil
	}
	if u, err := url.Parse(text); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return u
	}
	// bare host: needs at least one dot or be localhost
	host := text
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	if host != "localhost" && !strings.Contains(host, ".") {
		return nil
	}
	u, err := url.Parse("https://" + text)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}

func parseHomepanel(section string) (Route, error) {
	switch HomepanelSection(section) {
	case HomepanelHistory, HomepanelBookmarks, HomepanelDownloads,
		HomepanelReadingList, HomepanelTopSites, HomepanelNewTab, HomepanelNewPrivateTab:
		return Homepanel{Section: HomepanelSection(section)}, nil
	case "":
		return Homepanel{Section: HomepanelTopSites}, nil
	}
	return nil, fmt.Errorf("unknown homepanel section %q", section)
}

func parseSettings(section string) (Route, error) {
	switch SettingsSection(section) {
	case SettingsGeneral, SettingsNewTab, SettingsHomepage,
		SettingsSearch, SettingsClearPrivateData, SettingsPassword:
		return Settings{Section: SettingsSection(section)}, nil
	case "":
		return Settings{Section: SettingsGeneral}, nil
	}
	return nil, fmt.Errorf("unknown settings section %q", section)
}

func parseDefaultBrowser(section string) (Route, error) {
	switch DefaultBrowserSection(section) {
	case DefaultBrowserTutorial, DefaultBrowserSystemSettings:
		return DefaultBrowser{Section: DefaultBrowserSection(section)}, nil
	case "":
		return DefaultBrowser{Section: DefaultBrowserTutorial}, nil
	}
	return nil, fmt.Errorf("unknown default-browser section %q", section)
}

func parseAction(kind string) (Route, error) {
	switch ActionKind(kind) {
	case ActionClosePrivateTabs, ActionShowIntro, ActionShowTabs:
		return Action{Kind: ActionKind(kind)}, nil
	}
	return nil, fmt.Errorf("unknown action %q", kind)
}

// closestHost returns the known host nearest to host, or "" when nothing is
// plausibly close (distance above a third of the host length, minimum 2).
func closestHost(host string) string {
	best := ""
	bestDist := -1
	for _, k := range knownHosts {
		d := levenshtein.ComputeDistance(host, k)
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	limit := len(host) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}

func firstPathSegment(u *url.URL) string {
	p := strings.Trim(u.Path, "/")
	if i := strings.Index(p, "/"); i >= 0 {
		p = p[:i]
	}
	return strings.ToLower(p)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
