package guidelines

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandmap/brandmap/pkg/types"
)

func TestRender(t *testing.T) {
	branding := &types.Branding{
		ColorScheme: "dark",
		Colors: types.BrandColors{
			Primary:     "#ff6600",
			Secondary:   "#0044cc",
			Background:  "#0b0b0f",
			TextPrimary: "#ffffff",
		},
		Typography: types.Typography{
			HeadingFont:  "Inter",
			BodyFont:     "Inter",
			FontFamilies: []string{"Inter", "monospace"},
			BaseFontSize: "16px",
		},
		Personality: &types.Personality{
			Tone:           "confident",
			Energy:         "high",
			TargetAudience: "developers",
		},
	}

	var b strings.Builder
	require.NoError(t, Render(&b, branding, "https://www.firecrawl.dev"))
	out := b.String()

	assert.Contains(t, out, "# Firecrawl.dev Brand Guidelines")
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "**Color Scheme**: Dark")
	assert.Contains(t, out, "**Brand Tone**: confident")
	assert.Contains(t, out, "## Color Palette")
	assert.Contains(t, out, "`#ff6600` RGB(255, 102, 0)")
	assert.Contains(t, out, "### Background & Text")
	assert.Contains(t, out, "## Typography")
	assert.Contains(t, out, "`Inter`")
	assert.Contains(t, out, "16px")
}

func TestRenderSparseDocument(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Render(&b, &types.Branding{}, ""))
	out := b.String()

	assert.Contains(t, out, "# Website Brand Guidelines")
	assert.NotContains(t, out, "## Color Palette")
	assert.NotContains(t, out, "## Typography")
	assert.NotContains(t, out, "## Overview")
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
		ok      bool
	}{
		{"#ffffff", 255, 255, 255, true},
		{"#000000", 0, 0, 0, true},
		{"#ff6600", 255, 102, 0, true},
		{"ff6600", 255, 102, 0, true},
		{"#fff", 0, 0, 0, false},
		{"", 0, 0, 0, false},
		{"#zzzzzz", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			r, g, b, ok := hexToRGB(tt.hex)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
			}
		})
	}
}
