package config

import "fmt"

// Feature flag option values. Each flag is a closed set of strings validated
// at load time; an unknown value is a config error, not a silent fallback.

// SearchBarPosition places the address bar in the shell layout.
type SearchBarPosition string

const (
	SearchBarTop    SearchBarPosition = "top"
	SearchBarBottom SearchBarPosition = "bottom"
)

// StartAtHomeSetting controls when a fresh launch lands on the homepage
// instead of restoring the last screen.
type StartAtHomeSetting string

const (
	StartAtHomeAlways         StartAtHomeSetting = "always"
	StartAtHomeAfterFourHours StartAtHomeSetting = "after-four-hours"
	StartAtHomeDisabled       StartAtHomeSetting = "disabled"
)

// NewTabPage selects what a new tab shows.
type NewTabPage string

const (
	NewTabHome  NewTabPage = "home"
	NewTabBlank NewTabPage = "blank"
)

// FeatureConfig holds the option-valued feature flags.
type FeatureConfig struct {
	SearchBarPosition SearchBarPosition  `mapstructure:"search_bar_position"`
	StartAtHome       StartAtHomeSetting `mapstructure:"start_at_home"`
	NewTabPage        NewTabPage         `mapstructure:"new_tab_page"`
}

// Validate rejects unknown option values.
func (f FeatureConfig) Validate() error {
	switch f.SearchBarPosition {
	case SearchBarTop, SearchBarBottom:
	default:
		return fmt.Errorf("invalid search_bar_position %q", f.SearchBarPosition)
	}
	switch f.StartAtHome {
	case StartAtHomeAlways, StartAtHomeAfterFourHours, StartAtHomeDisabled:
	default:
		return fmt.Errorf("invalid start_at_home %q", f.StartAtHome)
	}
	switch f.NewTabPage {
	case NewTabHome, NewTabBlank:
	default:
		return fmt.Errorf("invalid new_tab_page %q", f.NewTabPage)
	}
	return nil
}
