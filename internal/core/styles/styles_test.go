package styles

import (
	"testing"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsNonDecreasing(t, names)
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	assert.True(t, ok)

	SetTheme(p)
	assert.Equal(t, p.Primary, ColorPrimary)
	assert.Equal(t, p, CurrentPalette)

	_, ok = GetPalette("does-not-exist")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	t.Cleanup(ResetClasses)

	t.Run("unknown classes are ignored", func(t *testing.T) {
		st := Resolve("nope also-nope", "")
		assert.Equal(t, "x", st.Render("x"))
	})

	t.Run("prefix is stripped for built-ins", func(t *testing.T) {
		withPrefix := Resolve("my-inline-hover-on", "my-")
		plain := Resolve(ClassHoverOn, "")
		assert.Equal(t, plain.GetUnderline(), withPrefix.GetUnderline())
		assert.True(t, withPrefix.GetUnderline())
	})

	t.Run("earlier classes win", func(t *testing.T) {
		RegisterClass("bold", lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0000")))
		st := Resolve("bold "+ClassHoverOn, "")
		assert.True(t, st.GetBold())
		assert.Equal(t, lipgloss.Color("#ff0000"), st.GetForeground())
		assert.True(t, st.GetUnderline())
	})

	t.Run("user class overrides built-in", func(t *testing.T) {
		RegisterClass(ClassHoverOn, lipgloss.NewStyle().Italic(true))
		st := Resolve(ClassHoverOn, "")
		assert.True(t, st.GetItalic())
		assert.False(t, st.GetUnderline())
	})
}

func TestHasClass(t *testing.T) {
	assert.True(t, HasClass("a pencil-icon b", ClassPencilIcon))
	assert.False(t, HasClass("a pencil-iconx", ClassPencilIcon))
	assert.False(t, HasClass("", ClassPencilIcon))
}

func TestGlamourStyle(t *testing.T) {
	cfg := GlamourStyle()
	if assert.NotNil(t, cfg.Document.Margin) {
		assert.Zero(t, *cfg.Document.Margin)
	}
	assert.NotNil(t, cfg.Paragraph.Color)
}

func TestPaletteFromHex(t *testing.T) {
	t.Run("derives hover between background and primary", func(t *testing.T) {
		p, err := paletteFromHex(themeTable[DefaultTheme])
		require.NoError(t, err)

		hover, ok := colorful.MakeColor(p.Hover)
		require.True(t, ok)
		bg, _ := colorful.MakeColor(p.Background)
		primary, _ := colorful.MakeColor(p.Primary)

		assert.NotEqual(t, bg.Hex(), hover.Hex())
		assert.Less(t, hover.DistanceLab(bg), primary.DistanceLab(bg))
	})

	t.Run("rejects invalid hex", func(t *testing.T) {
		bad := themeTable[DefaultTheme]
		bad[2] = "white"
		_, err := paletteFromHex(bad)
		assert.Error(t, err)
	})
}

func TestBuiltinThemesParse(t *testing.T) {
	for name := range themeTable {
		p, ok := GetPalette(name)
		assert.True(t, ok, name)
		assert.NotNil(t, p.Hover, name)
	}
}
