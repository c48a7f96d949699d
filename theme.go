package lumen

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ThemeFileName is the file the resource bundle must contain; its
// absence is the configuration error that keeps the loop from starting.
const ThemeFileName = "theme.toml"

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float32 `toml:"r"`
	G float32 `toml:"g"`
	B float32 `toml:"b"`
	A float32 `toml:"a"`
}

func gray(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// Theme carries the visual defaults shared by all windows. Widget
// toolkits consume it; the run loop only resolves the font path out of
// it during configuration.
type Theme struct {
	// FontPath is the UI font file, relative to the resource bundle
	// unless absolute.
	FontPath string `toml:"font_path"`
	// FontSize is 1 em in pixels.
	FontSize int `toml:"font_size"`

	DefaultMargin        int `toml:"default_margin"`
	DefaultLayoutSpacing int `toml:"default_layout_spacing"`

	BackgroundColor Color `toml:"background_color"`
	TextColor       Color `toml:"text_color"`
	HighlightColor  Color `toml:"highlight_color"`

	BorderWidth  int   `toml:"border_width"`
	BorderRadius int   `toml:"border_radius"`
	BorderColor  Color `toml:"border_color"`
}

// DefaultTheme returns the built-in dark theme. Values are in unscaled
// pixels; windows apply their own scale factor.
func DefaultTheme() Theme {
	return Theme{
		FontPath:             "Roboto-Medium.ttf",
		FontSize:             16, // 1 em
		DefaultMargin:        8,  // 0.5 em
		DefaultLayoutSpacing: 6,  // 0.333 em
		BackgroundColor:      gray(0.175),
		TextColor:            gray(0.875),
		HighlightColor:       gray(0.5),
		BorderWidth:          1,
		BorderRadius:         3,
		BorderColor:          gray(0.5),
	}
}

// LoadTheme reads a theme.toml, layering it over the defaults so a
// bundle only has to specify what it changes.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("lumen: read theme: %w", err)
	}
	th := DefaultTheme()
	if err := toml.Unmarshal(data, &th); err != nil {
		return Theme{}, fmt.Errorf("lumen: parse %s: %w", path, err)
	}
	return th, nil
}
