// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Config is the notch configuration.
// Loaded from ~/.config/notch/notch.toml
type Config struct {
	Timing       TimingConfig        `toml:"timing"`
	Appearance   AppearanceConfig    `toml:"appearance"`
	Content      ContentConfig       `toml:"content"`
	Source       SourceConfig        `toml:"source"`
	QuickActions []QuickActionConfig `toml:"quick_actions"`
	Audio        AudioConfig         `toml:"audio"`
}

// TimingConfig holds every timer and animation duration.
type TimingConfig struct {
	ClickWindow  Duration `toml:"click_window"`  // Rolling window for triple press
	Hover        Duration `toml:"hover"`         // Enlarge / restore on enter / leave
	Anticipation Duration `toml:"anticipation"`  // First stage of expand / collapse
	Expand       Duration `toml:"expand"`        // Second stage of expand / collapse
	RevealDelay  Duration `toml:"reveal_delay"`  // Pause before content appears
	AutoRestore  Duration `toml:"auto_restore"`  // Expanded lifetime without interaction
	Transient    Duration `toml:"transient"`     // Banner lifetime
	MarqueeTick  Duration `toml:"marquee_tick"`  // Scroll step interval
	Frame        Duration `toml:"frame"`         // Animation frame interval
	PollInterval Duration `toml:"poll_interval"` // Media source poll
	ProbeTimeout Duration `toml:"probe_timeout"` // Upper bound on a single poll
}

// AppearanceConfig holds colors as hex strings.
type AppearanceConfig struct {
	Fill   string `toml:"fill"`
	Text   string `toml:"text"`
	Accent string `toml:"accent"` // Banner icon
	Folder string `toml:"folder"` // Slot icon
	Theme  string `toml:"theme"`  // Window CSS theme name
}

// ContentConfig selects what the expanded notch shows.
type ContentConfig struct {
	Expanded      string `toml:"expanded"` // "folders" or "quick-actions"
	Caption       string `toml:"caption"`  // Left caption for quick actions
	Placeholder   string `toml:"placeholder"`
	DefaultDetail string `toml:"default_detail"` // Right banner text when the source has none
}

// SourceConfig describes the external media source.
type SourceConfig struct {
	Players []string `toml:"players"` // Case-insensitive substrings of player name or identity
	Launch  []string `toml:"launch"`  // Executables tried when no player is running
}

// QuickActionConfig is one icon in the quick-actions content.
type QuickActionConfig struct {
	Name   string   `toml:"name"`
	Color  string   `toml:"color"`
	Match  []string `toml:"match"`  // Window title substrings
	Launch []string `toml:"launch"` // Fallback executables
}

// AudioConfig holds the optional banner cue.
type AudioConfig struct {
	Enabled   bool   `toml:"enabled"`
	Volume    int    `toml:"volume"` // 0-100
	BannerCue string `toml:"banner_cue"`
}

// ExpandedMode names the content shown while expanded.
type ExpandedMode string

const (
	ExpandedFolders      ExpandedMode = "folders"
	ExpandedQuickActions ExpandedMode = "quick-actions"
)

// ValidExpandedModes returns all valid expanded content modes.
func ValidExpandedModes() []ExpandedMode {
	return []ExpandedMode{ExpandedFolders, ExpandedQuickActions}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Timing: TimingConfig{
			ClickWindow:  Duration(500 * time.Millisecond),
			Hover:        Duration(200 * time.Millisecond),
			Anticipation: Duration(150 * time.Millisecond),
			Expand:       Duration(250 * time.Millisecond),
			RevealDelay:  Duration(100 * time.Millisecond),
			AutoRestore:  Duration(5 * time.Second),
			Transient:    Duration(3 * time.Second),
			MarqueeTick:  Duration(40 * time.Millisecond),
			Frame:        Duration(16 * time.Millisecond),
			PollInterval: Duration(time.Second),
			ProbeTimeout: Duration(800 * time.Millisecond),
		},
		Appearance: AppearanceConfig{
			Fill:   "#000000",
			Text:   "#ffffff",
			Accent: "#e61a1a",
			Folder: "#3d8bfd",
			Theme:  "default",
		},
		Content: ContentConfig{
			Expanded:      string(ExpandedFolders),
			Caption:       "Quick actions",
			Placeholder:   "Choose folder",
			DefaultDetail: "Now playing",
		},
		Source: SourceConfig{
			Players: []string{"cloudmusic", "netease", "spotify"},
			Launch:  []string{"netease-cloud-music"},
		},
		QuickActions: []QuickActionConfig{
			{Name: "WeChat", Color: "#07c160", Match: []string{"WeChat", "微信"}, Launch: []string{"wechat"}},
			{Name: "Meeting", Color: "#2673ff", Match: []string{"Tencent Meeting", "腾讯会议"}, Launch: []string{"wemeetapp"}},
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
	}
}

// Path returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notch", "notch.toml")
}

// Load loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns the default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Array tables decode element-wise into an existing slice, so a file's
	// [[quick_actions]] must start from empty rather than the defaults.
	defaultActions := cfg.QuickActions
	cfg.QuickActions = nil

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.QuickActions == nil {
		cfg.QuickActions = defaultActions
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	durations := map[string]Duration{
		"click_window":  c.Timing.ClickWindow,
		"hover":         c.Timing.Hover,
		"anticipation":  c.Timing.Anticipation,
		"expand":        c.Timing.Expand,
		"auto_restore":  c.Timing.AutoRestore,
		"transient":     c.Timing.Transient,
		"marquee_tick":  c.Timing.MarqueeTick,
		"frame":         c.Timing.Frame,
		"poll_interval": c.Timing.PollInterval,
		"probe_timeout": c.Timing.ProbeTimeout,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("timing.%s must be positive, got %s", name, d.Duration())
		}
	}
	if c.Timing.RevealDelay < 0 {
		return fmt.Errorf("timing.reveal_delay must not be negative")
	}

	for name, hex := range map[string]string{
		"fill":   c.Appearance.Fill,
		"text":   c.Appearance.Text,
		"accent": c.Appearance.Accent,
		"folder": c.Appearance.Folder,
	} {
		if _, err := ParseColor(hex); err != nil {
			return fmt.Errorf("appearance.%s: %w", name, err)
		}
	}

	if !slices.Contains(ValidExpandedModes(), ExpandedMode(c.Content.Expanded)) {
		return fmt.Errorf("invalid content.expanded %q, must be one of: %v", c.Content.Expanded, ValidExpandedModes())
	}

	for i, qa := range c.QuickActions {
		if qa.Name == "" {
			return fmt.Errorf("quick_actions[%d]: name is required", i)
		}
		if _, err := ParseColor(qa.Color); err != nil {
			return fmt.Errorf("quick_actions[%d]: %w", i, err)
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	return nil
}

// ParseColor parses a "#rrggbb" hex string into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustColor parses hex and falls back to fallback on error. Validated
// configs never hit the fallback.
func MustColor(hex string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		return fallback
	}
	return c
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
