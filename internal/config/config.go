package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Browser  BrowserConfig
	Search   SearchConfig
	Features FeatureConfig
}

// BrowserConfig holds shell behavior settings.
type BrowserConfig struct {
	Homepage           string `mapstructure:"homepage"`
	PrivateByDefault   bool   `mapstructure:"private_by_default"`
	OnboardingComplete bool   `mapstructure:"onboarding_complete"`
	HistoryLimit       int    `mapstructure:"history_limit"`
}

// SearchConfig holds search engine settings.
type SearchConfig struct {
	// EngineTemplate has %s replaced with the escaped query.
	EngineTemplate string `mapstructure:"engine_template"`
	MaxSuggestions int    `mapstructure:"max_suggestions"`
}

// Load reads configuration from file and env. Env var overrides use prefix SKIFF_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("browser.homepage", "https://start.duckduckgo.com")
	v.SetDefault("browser.private_by_default", false)
	v.SetDefault("browser.onboarding_complete", false)
	v.SetDefault("browser.history_limit", 500)
	v.SetDefault("search.engine_template", "https://duckduckgo.com/?q=%s")
	v.SetDefault("search.max_suggestions", 5)
	v.SetDefault("features.search_bar_position", string(SearchBarBottom))
	v.SetDefault("features.start_at_home", string(StartAtHomeAfterFourHours))
	v.SetDefault("features.new_tab_page", string(NewTabHome))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SKIFF_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "skiff"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SKIFF")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Features.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the settings screen for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("SKIFF_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "skiff", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("browser.homepage", cfg.Browser.Homepage)
	v.Set("browser.private_by_default", cfg.Browser.PrivateByDefault)
	v.Set("browser.onboarding_complete", cfg.Browser.OnboardingComplete)
	v.Set("browser.history_limit", cfg.Browser.HistoryLimit)
	v.Set("search.engine_template", cfg.Search.EngineTemplate)
	v.Set("search.max_suggestions", cfg.Search.MaxSuggestions)
	v.Set("features.search_bar_position", string(cfg.Features.SearchBarPosition))
	v.Set("features.start_at_home", string(cfg.Features.StartAtHome))
	v.Set("features.new_tab_page", string(cfg.Features.NewTabPage))

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
