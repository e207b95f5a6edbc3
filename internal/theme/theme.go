package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// importRegex matches @import "x.css"; @import 'x.css'; and @import url("x.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet.
type Theme struct {
	Name    string
	Path    string // Empty for bundled themes
	CSS     string
	ModTime time.Time
}

// Bundled reports whether the theme came from the binary.
func (t *Theme) Bundled() bool {
	return t.Path == ""
}

// Resolve finds a theme by name. A file in dir wins over a bundled theme of
// the same name; an unknown name falls back to the default theme.
func Resolve(name, dir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if dir != "" {
		p := filepath.Join(dir, name+".css")
		if _, err := os.Stat(p); err == nil {
			return Open(name, p)
		}
	}

	if css, ok := Bundled(name); ok && !strings.HasPrefix(name, "_") {
		return &Theme{Name: name, CSS: ProcessImports(css, "", nil)}, nil
	}

	css, _ := Bundled(DefaultThemeName)
	return &Theme{Name: DefaultThemeName, CSS: ProcessImports(css, "", nil)},
		fmt.Errorf("theme %q not found", name)
}

// Open reads a theme file and inlines its imports.
func Open(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// Reload rereads a file theme when it changed on disk. It reports whether
// the CSS differs.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled() {
		return false, nil
	}
	fresh, err := Open(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	changed := fresh.CSS != t.CSS
	t.CSS, t.ModTime = fresh.CSS, fresh.ModTime
	return changed, nil
}

// ProcessImports inlines @import statements. Paths resolve against baseDir,
// then against the bundled partials. seen guards against cycles.
func ProcessImports(css, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		sub := importRegex.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		ref := sub[1]

		full := ref
		if !filepath.IsAbs(ref) {
			full = filepath.Join(baseDir, ref)
		}
		if seen[full] {
			return "/* circular import prevented: " + ref + " */"
		}
		seen[full] = true

		data, err := os.ReadFile(full)
		if err != nil {
			if embedded, ok := Bundled(filepath.Base(ref)); ok {
				return "/* imported (embedded): " + ref + " */\n" +
					ProcessImports(embedded, "", seen)
			}
			return "/* import failed: " + ref + " */"
		}
		return "/* imported: " + ref + " */\n" +
			ProcessImports(string(data), filepath.Dir(full), seen)
	})
}

// Dir returns the user themes directory.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "notch", "themes"), nil
}

// Available lists bundled and user theme names without duplicates.
func Available(dir string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range BundledThemes() {
		seen[n] = true
		names = append(names, n)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || filepath.Ext(n) != ".css" || strings.HasPrefix(n, "_") {
			continue
		}
		n = strings.TrimSuffix(n, ".css")
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
