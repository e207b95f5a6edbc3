package audio

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/notch/internal/config"
	"github.com/jmylchreest/notch/internal/platform"
)

// Cue plays the banner cue as configured.
type Cue struct {
	mu      sync.Mutex
	player  *Player
	logger  *slog.Logger
	enabled bool
	path    string
}

var _ platform.Cue = (*Cue)(nil)

// NewCue creates a cue from cfg.
func NewCue(cfg config.AudioConfig, logger *slog.Logger) *Cue {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cue{player: NewPlayer(logger), logger: logger}
	c.Apply(cfg)
	return c
}

// Apply takes a new audio configuration. A configured file is decoded again
// so edits to it are picked up.
func (c *Cue) Apply(cfg config.AudioConfig) {
	c.mu.Lock()
	c.enabled = cfg.Enabled
	c.path = config.ExpandPath(cfg.BannerCue)
	path, enabled := c.path, c.enabled
	c.mu.Unlock()

	c.player.SetVolume(float64(cfg.Volume) / 100)
	c.player.Invalidate()

	if enabled && path != "" {
		if err := c.player.Preload(path); err != nil {
			c.logger.Warn("banner cue unavailable, using chime", "path", path, "error", err)
		}
	}
}

// Play plays the cue. It does nothing while disabled. A file that fails to
// load falls back to the chime.
func (c *Cue) Play() error {
	c.mu.Lock()
	enabled, path := c.enabled, c.path
	c.mu.Unlock()

	if !enabled {
		return nil
	}
	if path != "" {
		if err := c.player.Play(path); err == nil {
			return nil
		}
	}
	return c.player.Play("")
}

// Close releases the audio device.
func (c *Cue) Close() {
	c.player.Close()
}
