package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundled_Default(t *testing.T) {
	css, found := Bundled("default")
	require.True(t, found)
	assert.Contains(t, css, `@import "_base.css"`)
	assert.Contains(t, css, "drawingarea.notch-canvas")
}

func TestBundled_Partial(t *testing.T) {
	css, found := Bundled("_base.css")
	require.True(t, found)
	assert.Contains(t, css, "background: transparent")
}

func TestBundled_NotFound(t *testing.T) {
	css, found := Bundled("nonexistent")
	assert.False(t, found)
	assert.Empty(t, css)
}

func TestBundledThemes(t *testing.T) {
	themes := BundledThemes()
	assert.Equal(t, []string{"debug", "default"}, themes)
	assert.NotContains(t, themes, "_base", "partials are not themes")
}

func TestIsBundled(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"default", true},
		{"debug", true},
		{"_base", false},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBundled(tt.name))
		})
	}
}
