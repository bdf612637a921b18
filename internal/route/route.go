// Package route defines the navigation intents the coordinator tree
// dispatches on: typed URLs, search queries, library panels, settings
// sections, and launch flows. Routes are plain values; parsing of deeplinks
// and address-bar input lives in builder.go.
package route

import "net/url"

// Route is a tagged descriptor of a navigation intent. The set of variants
// is closed: only types in this package implement it.
type Route interface {
	isRoute()
}

// Search opens a URL, optionally in a private tab.
type Search struct {
	URL       *url.URL
	IsPrivate bool
}

// SearchQuery carries free-text address-bar input that is not a URL.
type SearchQuery struct {
	Query     string
	IsPrivate bool
}

// HomepanelSection identifies a library panel.
type HomepanelSection string

const (
	HomepanelHistory       HomepanelSection = "history"
	HomepanelBookmarks     HomepanelSection = "bookmarks"
	HomepanelDownloads     HomepanelSection = "downloads"
	HomepanelReadingList   HomepanelSection = "reading-list"
	HomepanelTopSites      HomepanelSection = "top-sites"
	HomepanelNewTab        HomepanelSection = "new-tab"
	HomepanelNewPrivateTab HomepanelSection = "new-private-tab"
)

// Homepanel shows a library panel.
type Homepanel struct {
	Section HomepanelSection
}

// SettingsSection identifies a settings screen section.
type SettingsSection string

const (
	SettingsGeneral          SettingsSection = "general"
	SettingsNewTab           SettingsSection = "newtab"
	SettingsHomepage         SettingsSection = "homepage"
	SettingsSearch           SettingsSection = "search"
	SettingsClearPrivateData SettingsSection = "clear-private-data"
	SettingsPassword         SettingsSection = "password"
)

// Settings opens a settings section.
type Settings struct {
	Section SettingsSection
}

// DefaultBrowserSection identifies a step of the default-browser flow.
type DefaultBrowserSection string

const (
	DefaultBrowserTutorial       DefaultBrowserSection = "tutorial"
	DefaultBrowserSystemSettings DefaultBrowserSection = "system-settings"
)

// DefaultBrowser enters the default-browser onboarding flow.
type DefaultBrowser struct {
	Section DefaultBrowserSection
}

// ActionKind enumerates one-shot app actions expressible as routes.
type ActionKind string

const (
	ActionClosePrivateTabs ActionKind = "close-private-tabs"
	ActionShowIntro        ActionKind = "show-intro-onboarding"
	ActionShowTabs         ActionKind = "show-tabs"
)

// Action triggers a one-shot app action.
type Action struct {
	Kind ActionKind
}

func (Search) isRoute()         {}
func (SearchQuery) isRoute()    {}
func (Homepanel) isRoute()      {}
func (Settings) isRoute()       {}
func (DefaultBrowser) isRoute() {}
func (Action) isRoute()         {}
