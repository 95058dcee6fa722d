// Package styles provides the lipgloss v2 palette, theme classes, and markdown
// style shared by inline fields and the pencil host program.
package styles

import (
	"fmt"
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
	// Hover is the background of a hovered value, derived from Primary
	// and Background.
	Hover color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// hoverBlend is how far Hover moves from Background toward Primary.
const hoverBlend = 0.2

// themeHex lists a palette as hex strings in Palette field order, without
// the derived Hover color.
type themeHex [9]string

var themeTable = map[string]themeHex{
	//              primary    secondary  foreground muted      background surface    success    warning    error
	"tokyo-night": {"#7aa2f7", "#7dcfff", "#c0caf5", "#565f89", "#1a1b26", "#3b4261", "#9ece6a", "#e0af68", "#f7768e"},
	"gruvbox":     {"#83a598", "#8ec07c", "#ebdbb2", "#665c54", "#282828", "#3c3836", "#b8bb26", "#fabd2f", "#fb4934"},
	"catppuccin":  {"#89b4fa", "#94e2d5", "#cdd6f4", "#6c7086", "#1e1e2e", "#313244", "#a6e3a1", "#f9e2af", "#f38ba8"},
	"kanagawa":    {"#7e9cd8", "#7fb4ca", "#dcd7ba", "#727169", "#1f1f28", "#2a2a37", "#76946a", "#dca561", "#c34043"},
	"onedark":     {"#61afef", "#56b6c2", "#abb2bf", "#5c6370", "#282c34", "#3e4452", "#98c379", "#e5c07b", "#e06c75"},
}

// themes holds the built-in named palettes.
var themes = buildThemes(themeTable)

func buildThemes(table map[string]themeHex) map[string]Palette {
	out := make(map[string]Palette, len(table))
	for name, hex := range table {
		p, err := paletteFromHex(hex)
		if err != nil {
			panic(fmt.Sprintf("theme %q: %v", name, err))
		}
		out[name] = p
	}
	return out
}

func paletteFromHex(hex themeHex) (Palette, error) {
	var parsed [len(hex)]colorful.Color
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, err
		}
		parsed[i] = c
	}

	col := func(i int) color.Color { return lipgloss.Color(parsed[i].Hex()) }
	hover := parsed[4].BlendLab(parsed[0], hoverBlend).Clamped()

	return Palette{
		Primary:    col(0),
		Secondary:  col(1),
		Foreground: col(2),
		Muted:      col(3),
		Background: col(4),
		Surface:    col(5),
		Success:    col(6),
		Warning:    col(7),
		Error:      col(8),
		Hover:      lipgloss.Color(hover.Hex()),
	}, nil
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
// Document margins are removed so rendered instructions sit flush under the
// field they describe.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorMuted)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	noMargin := uint(0)
	cfg.Document.Margin = &noMargin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary
	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
