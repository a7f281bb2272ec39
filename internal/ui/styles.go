package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
)

// Palette shared by every view and by the fang help screen.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorHighlight = lipgloss.Color("#f048ff") // Pink

	ColorText     = lipgloss.Color("#F9FAFB")
	ColorTextDim  = lipgloss.Color("#9CA3AF")
	ColorTextMute = lipgloss.Color("#6B7280")
	ColorSurface  = lipgloss.Color("#374151")
)

// styleWrapper wraps a lipgloss style
type styleWrapper struct {
	style lipgloss.Style
}

func (s styleWrapper) Render(str string) string {
	return s.style.Render(str)
}

// Bold returns a copy with bold toggled.
func (s styleWrapper) Bold(v bool) styleWrapper {
	return styleWrapper{s.style.Bold(v)}
}

// Style exposes the underlying lipgloss style for bubbles components.
func (s styleWrapper) Style() lipgloss.Style { return s.style }

var (
	Bold      = styleWrapper{lipgloss.NewStyle().Bold(true)}
	Dim       = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim)}
	Muted     = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextMute)}
	Success   = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	Warning   = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
	Error     = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	Primary   = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary)}
	Secondary = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}
	Highlight = styleWrapper{lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)}
)

func GetCheckMark() string { return Success.Render("✓") }
func GetCrossMark() string { return Error.Render("✗") }
func GetWarnMark() string  { return Warning.Render("⚠") }
func GetInfoMark() string  { return Secondary.Render("ℹ") }
func GetBullet() string    { return Muted.Render("•") }

type boxWrapper struct {
	style lipgloss.Style
}

func (b boxWrapper) Render(str string) string {
	return b.style.Render(str)
}

// Width returns a copy of the box constrained to w columns.
func (b boxWrapper) Width(w int) boxWrapper {
	return boxWrapper{b.style.Width(w)}
}

func roundedBox(c color.Color) boxWrapper {
	return boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1)}
}

var (
	Box          = roundedBox(ColorMuted)
	HighlightBox = roundedBox(ColorPrimary)
	SuccessBox   = roundedBox(ColorSuccess)
	ErrorBox     = roundedBox(ColorError)
)

var (
	Title         = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)}
	Subtitle      = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim).Italic(true)}
	SectionHeader = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)}
)

// Tabs for the dataset-type strip on the datasets page.
var (
	ActiveTab   = styleWrapper{lipgloss.NewStyle().Foreground(ColorText).Background(ColorPrimary).Bold(true).Padding(0, 1)}
	InactiveTab = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim).Padding(0, 1)}
)

// Preview grid cells.
var (
	TableHeader   = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true).Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderForeground(ColorMuted).BorderBottom(true)}
	TableSelected = styleWrapper{lipgloss.NewStyle().Foreground(ColorText).Background(ColorSurface)}
	TableCell     = styleWrapper{lipgloss.NewStyle().Padding(0, 1)}
)

// FormatKeyValue formats a key-value pair with styling
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// FormatStatus prefixes message with the icon for status
// (success, error, warning, info).
func FormatStatus(status, message string) string {
	var icon string
	switch status {
	case "success":
		icon = GetCheckMark()
	case "error":
		icon = GetCrossMark()
	case "warning":
		icon = GetWarnMark()
	case "info":
		icon = GetInfoMark()
	default:
		icon = GetBullet()
	}
	return icon + " " + message
}

// OutcomeBox renders a submission outcome: the backend message in a success
// box, or the failure message in an error box.
func OutcomeBox(ok bool, message string) string {
	if ok {
		return SuccessBox.Render(GetCheckMark() + " " + message)
	}
	return ErrorBox.Render(GetCrossMark() + " " + Error.Render(message))
}

// KeyHelp renders key/action pairs as "key: action · key: action".
func KeyHelp(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+": "+pairs[i+1])
	}
	return Dim.Render(strings.Join(parts, " · "))
}

// FangColorScheme maps the palette onto fang's help and error screens.
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#1F2937"), lipgloss.Color("#2F2E36")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorHighlight,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is printed above the console and the root help.
const BannerASCII = `
     _
  __| |___  __ _  ___ _ __
 / _' / __|/ _' |/ _ \ '_ \
| (_| \__ \ (_| |  __/ | | |
 \__,_|___/\__, |\___|_| |_|
           |___/
`

// RenderBanner renders the banner in the secondary color.
func RenderBanner() string {
	return Secondary.Render(BannerASCII)
}
