package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Themes in cycling order.
var Themes = []string{"auto", "dark", "light"}

// Config holds user settings stored at ~/.tagbuilder/config.yaml.
type Config struct {
	Catalog           string `yaml:"catalog,omitempty"`
	LimitEnabled      bool   `yaml:"limit_enabled"`
	DedupAlternatives bool   `yaml:"dedup_alternatives"`
	Theme             string `yaml:"theme"`
	Autosave          bool   `yaml:"autosave"`
	ShowAlternative   bool   `yaml:"show_alternative"`
}

// Defaults returns the settings used when no config file exists.
func Defaults() Config {
	return Config{
		LimitEnabled:    true,
		Theme:           "auto",
		Autosave:        true,
		ShowAlternative: true,
	}
}

// Dir returns the settings directory, ~/.tagbuilder.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tagbuilder")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// StatePath returns the location of the autosave and catalog cache database.
func StatePath() string {
	return filepath.Join(Dir(), "state.db")
}

// Load reads the config file. A missing file yields Defaults; keys absent
// from the file keep their default values.
func Load() (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(Path())
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if !validTheme(cfg.Theme) {
		return nil, fmt.Errorf("config theme %q: want one of auto, dark, light", cfg.Theme)
	}

	return &cfg, nil
}

// Save writes the config to disk with owner-only permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// CycleTheme advances auto -> dark -> light -> auto and returns the new theme.
func (c *Config) CycleTheme() string {
	next := Themes[0]
	for i, t := range Themes {
		if t == c.Theme {
			next = Themes[(i+1)%len(Themes)]
			break
		}
	}
	c.Theme = next
	return next
}

func validTheme(t string) bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}
