package theme

import (
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader owns the CSS provider installed on the display.
type Loader struct {
	mu       sync.Mutex
	logger   *slog.Logger
	provider *gtk.CSSProvider
	dir      string
	theme    *Theme
	applied  bool
}

// NewLoader creates a loader reading user themes from Dir.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := Dir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
	}
	return &Loader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
		dir:      dir,
	}
}

// Dir returns the directory user themes are read from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load resolves name and loads it into the provider. An unknown name loads
// the default theme and is only logged.
func (l *Loader) Load(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := Resolve(name, l.dir)
	if err != nil {
		l.logger.Warn("theme not found, using default", "theme", name, "error", err)
	}
	if t == nil {
		return
	}
	l.theme = t
	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "bundled", t.Bundled())
}

// Apply installs the provider on display, or the default display when nil.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.applied {
		return
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	l.applied = true
}

// Reload rereads the current file theme and reloads the provider when its
// CSS changed.
func (l *Loader) Reload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil {
		return
	}
	changed, err := l.theme.Reload()
	if err != nil {
		l.logger.Warn("failed to reload theme", "theme", l.theme.Name, "error", err)
		return
	}
	if changed {
		l.provider.LoadFromString(l.theme.CSS)
		l.logger.Info("hot-reloaded theme", "name", l.theme.Name)
	}
}

// Current returns the loaded theme name.
func (l *Loader) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.theme == nil {
		return ""
	}
	return l.theme.Name
}
