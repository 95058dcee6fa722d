package styles

import (
	"image/color"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
	ColorHover      color.Color
)

// Style exports.
var (
	TextForegroundStyle  lipgloss.Style
	TextMutedStyle       lipgloss.Style
	TextPrimaryStyle     lipgloss.Style
	TextPrimaryBoldStyle lipgloss.Style

	FormTitleStyle        lipgloss.Style
	FormFieldStyle        lipgloss.Style
	FormFieldFocusedStyle lipgloss.Style
	FormErrorStyle        lipgloss.Style
	FormHelpStyle         lipgloss.Style

	ButtonStyle         lipgloss.Style
	ButtonSelectedStyle lipgloss.Style

	CheckboxCursorStyle lipgloss.Style
	PlaceholderStyle    lipgloss.Style

	TextForegroundBoldStyle lipgloss.Style
	HeaderStyle             lipgloss.Style
	StatusBarStyle          lipgloss.Style

	ModalStyle          lipgloss.Style
	ConfirmMessageStyle lipgloss.Style

	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style

	ToastInfoStyle    lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
)

// Built-in class names understood by Resolve. Inline fields prepend a
// caller-configurable prefix to each of them.
const (
	ClassWrapper       = "inline-wrapper"
	ClassEditWrapper   = "inline-edit-wrapper"
	ClassComponentWrap = "inline-component-wrapper"
	ClassButtonWrapper = "inline-button-wrapper"
	ClassButton        = "inline-button"
	ClassNotAllowed    = "inline-not-allowed"
	ClassHoverOn       = "inline-hover-on"
	ClassPencilIcon    = "pencil-icon"

	// DefaultHoverClass selects the built-in hover treatment.
	DefaultHoverClass = "on-hover"
)

var (
	builtinClasses map[string]lipgloss.Style
	userClasses    = map[string]lipgloss.Style{}
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorHover = p.Hover

	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextPrimaryStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	FormTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	FormFieldStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	FormFieldFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	FormErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	FormHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)

	CheckboxCursorStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ConfirmMessageStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		MarginBottom(1)

	HelpDialogModalStyle = ModalStyle
	HelpDialogSectionStyle = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().Foreground(ColorMuted).MarginTop(1)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(ColorForeground)
	ToastInfoStyle = toastBase.BorderForeground(ColorPrimary)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError)

	builtinClasses = map[string]lipgloss.Style{
		ClassWrapper:       lipgloss.NewStyle().Foreground(ColorForeground),
		ClassEditWrapper:   lipgloss.NewStyle(),
		ClassComponentWrap: lipgloss.NewStyle(),
		ClassButtonWrapper: lipgloss.NewStyle(),
		ClassButton:        ButtonStyle,
		ClassNotAllowed:    lipgloss.NewStyle().Foreground(ColorMuted).Faint(true),
		ClassHoverOn:       lipgloss.NewStyle().Foreground(ColorPrimary).Background(ColorHover).Underline(true),
		ClassPencilIcon:    lipgloss.NewStyle(),
	}
}

// RegisterClass adds or replaces a user-defined class. User classes take
// precedence over built-ins of the same name.
func RegisterClass(name string, style lipgloss.Style) {
	userClasses[name] = style
}

// ResetClasses removes all user-defined classes.
func ResetClasses() {
	userClasses = map[string]lipgloss.Style{}
}

// Resolve folds a space separated class list into a single style. prefix is
// stripped from tokens before built-in lookup. Earlier classes win when two
// classes set the same property; unknown classes are ignored.
func Resolve(classes, prefix string) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, token := range strings.Fields(classes) {
		if cls, ok := lookupClass(token, prefix); ok {
			st = st.Inherit(cls)
		}
	}
	return st
}

// HasClass reports whether class appears in a space separated class list.
func HasClass(classes, class string) bool {
	for _, token := range strings.Fields(classes) {
		if token == class {
			return true
		}
	}
	return false
}

func lookupClass(token, prefix string) (lipgloss.Style, bool) {
	if st, ok := userClasses[token]; ok {
		return st, true
	}
	name := strings.TrimPrefix(token, prefix)
	st, ok := builtinClasses[name]
	return st, ok
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
