package daemon

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/notch/internal/config"
)

// defaultDebounce folds the burst of events an editor save produces.
const defaultDebounce = 150 * time.Millisecond

// ConfigWatcher reloads the configuration file and reports theme edits.
// Callbacks run on a watcher goroutine.
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	configPath string
	themesDir  string
	debounce   time.Duration
	dirs       []string

	mu       sync.Mutex
	watched  map[string]bool
	running  bool
	done     chan struct{}
	pending  map[string]*time.Timer
	onConfig func(*config.Config)
	onTheme  func(name string)
}

// NewConfigWatcher watches configPath and, when set, the themes directory.
func NewConfigWatcher(configPath, themesDir string, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, dir := range []string{filepath.Dir(configPath), themesDir} {
		if dir == "" || dir == "." {
			continue
		}
		dirs = append(dirs, filepath.Clean(dir))
	}
	return &ConfigWatcher{
		watcher:    w,
		logger:     logger,
		configPath: configPath,
		themesDir:  themesDir,
		debounce:   defaultDebounce,
		dirs:       dirs,
		watched:    make(map[string]bool),
		done:       make(chan struct{}),
		pending:    make(map[string]*time.Timer),
	}, nil
}

// SetConfigCallback sets the function receiving each valid reloaded config.
func (w *ConfigWatcher) SetConfigCallback(fn func(*config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onConfig = fn
}

// SetThemeCallback sets the function called with the name of an edited theme.
func (w *ConfigWatcher) SetThemeCallback(fn func(name string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onTheme = fn
}

// Start begins watching. The config directory is watched rather than the
// file so atomic saves are seen. A directory that does not exist yet is
// waited for through its nearest existing ancestor.
func (w *ConfigWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.addWatches()
	w.running = true
	go w.watch()
	w.logger.Debug("config watcher started", "config", w.configPath, "themes", w.themesDir, "dirs", len(w.watched))
	return nil
}

// addWatches watches every directory not yet watched, or its nearest
// existing ancestor while it is missing. It returns the directories that
// became watched. Callers hold w.mu.
func (w *ConfigWatcher) addWatches() []string {
	var added []string
	for _, dir := range w.dirs {
		if w.watched[dir] {
			continue
		}
		// Re-resolve after each Add: the directory may appear between the
		// stat and the watch, and its Create would then be missed.
		target := ""
		for {
			next := nearestExisting(dir)
			if next == "" || next == target {
				break
			}
			target = next
			if err := w.watcher.Add(target); err != nil {
				w.logger.Warn("failed to watch directory", "dir", target, "error", err)
				target = ""
				break
			}
		}
		switch target {
		case dir:
			w.watched[dir] = true
			added = append(added, dir)
		case "":
		default:
			w.logger.Debug("waiting for directory", "dir", dir, "via", target)
		}
	}
	return added
}

// nearestExisting returns dir or its closest ancestor that is a directory.
func nearestExisting(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// refresh picks up directories created since the last pass. A config file
// written before its directory was watched is reloaded.
func (w *ConfigWatcher) refresh() {
	w.mu.Lock()
	if !w.running || len(w.watched) == len(w.dirs) {
		w.mu.Unlock()
		return
	}
	added := w.addWatches()
	w.mu.Unlock()

	for _, dir := range added {
		if dir != filepath.Clean(filepath.Dir(w.configPath)) {
			continue
		}
		if _, err := os.Stat(w.configPath); err == nil {
			w.route(w.configPath)
		}
	}
}

// Stop stops watching and drops pending reloads.
func (w *ConfigWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	for key, t := range w.pending {
		t.Stop()
		delete(w.pending, key)
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *ConfigWatcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.refresh()
			}
			w.route(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *ConfigWatcher) route(name string) {
	switch {
	case filepath.Clean(name) == filepath.Clean(w.configPath):
		w.schedule("config", w.reloadConfig)
	case w.themesDir != "" && filepath.Dir(name) == filepath.Clean(w.themesDir) && filepath.Ext(name) == ".css":
		theme := strings.TrimSuffix(filepath.Base(name), ".css")
		w.schedule("theme:"+theme, func() { w.themeChanged(theme) })
	}
}

// schedule runs fn once events for key have been quiet for the debounce.
func (w *ConfigWatcher) schedule(key string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if t, ok := w.pending[key]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[key] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, key)
		running := w.running
		w.mu.Unlock()
		if running {
			fn()
		}
	})
}

func (w *ConfigWatcher) reloadConfig() {
	cfg, err := config.Load(w.configPath)
	if err != nil {
		w.logger.Warn("ignoring invalid config", "path", w.configPath, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.configPath)

	w.mu.Lock()
	fn := w.onConfig
	w.mu.Unlock()
	if fn != nil {
		fn(cfg)
	}
}

func (w *ConfigWatcher) themeChanged(name string) {
	w.logger.Debug("theme changed", "theme", name)

	w.mu.Lock()
	fn := w.onTheme
	w.mu.Unlock()
	if fn != nil {
		fn(name)
	}
}
