package theme

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed themes/*.css
var bundled embed.FS

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "default"

const bundledDir = "themes"

// Bundled returns the CSS of a bundled theme or partial. Partials are the
// files whose name starts with an underscore.
func Bundled(name string) (string, bool) {
	name = strings.TrimSuffix(name, ".css")
	data, err := bundled.ReadFile(path.Join(bundledDir, name+".css"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// BundledThemes lists the bundled theme names, excluding partials.
func BundledThemes() []string {
	entries, err := fs.ReadDir(bundled, bundledDir)
	if err != nil {
		return []string{DefaultThemeName}
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || path.Ext(name) != ".css" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".css"))
	}
	sort.Strings(names)
	return names
}

// IsBundled reports whether name is a bundled theme.
func IsBundled(name string) bool {
	if strings.HasPrefix(name, "_") {
		return false
	}
	_, ok := Bundled(name)
	return ok
}
