package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Design System Colors - Adaptive based on terminal background
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
	ColorSurface   lipgloss.Color
	ColorOverlay   lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	if os.Getenv("GLAMOUR_STYLE") == "light" {
		setLightThemeColors()
		return
	}
	if os.Getenv("GLAMOUR_STYLE") == "dark" {
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")

	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")
	ColorInfo = lipgloss.Color("12")

	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorSurface = lipgloss.Color("236")
	ColorOverlay = lipgloss.Color("234")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")

	ColorSuccess = lipgloss.Color("22")
	ColorWarning = lipgloss.Color("136")
	ColorError = lipgloss.Color("160")
	ColorInfo = lipgloss.Color("24")

	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorSurface = lipgloss.Color("254")
	ColorOverlay = lipgloss.Color("253")
}

// Component Styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	StyleText = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StyleTextDim = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	StyleUnselected = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)

	StyleFormLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true).
			Padding(0, 3)

	StyleContentContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(1, 2).
				MarginTop(1).
				MarginBottom(1)

	StyleMetadata = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Padding(0, 1)

	StyleOffline = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorWarning).
			Bold(true).
			Padding(0, 1)
)

// CreateMainHeader renders the page title
func CreateMainHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

// CreateHelp renders dimmed keybinding help text
func CreateHelp(text string) string {
	return StyleTextDim.Render(text)
}

// CreateStatus renders a transient status message
func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// CreateSyncStatus renders the connectivity indicator for the status bar
func CreateSyncStatus(online, pending bool) string {
	if online {
		if pending {
			return StyleMetadata.Render("Online · syncing queued prompts")
		}
		return StyleMetadata.Render("Online")
	}
	if pending {
		return StyleOffline.Render("Offline · saves queued")
	}
	return StyleOffline.Render("Offline")
}

// CreateOption renders a selectable option row with a cursor
func CreateOption(label string, isSelected bool) string {
	if isSelected {
		return StyleFocused.Render("▶ " + label)
	}
	return StyleUnselected.Render("  " + label)
}

// AddMainPadding indents main content from the left edge
func AddMainPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}

// AddFormPadding indents form content from the left edge
func AddFormPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(3).Render(content)
}

// TruncateHelp shortens help text to fit the terminal width
func TruncateHelp(text string, width int) string {
	if width > 0 && len(text) > width-4 {
		text = text[:width-7] + "..."
	}
	return StyleTextDim.Render(text)
}

// RenderSliderTrack draws a simple horizontal gauge for a numeric range
func RenderSliderTrack(value, min, max float64, width int) string {
	if width < 10 {
		width = 10
	}
	filled := 0
	if max > min {
		filled = int((value - min) / (max - min) * float64(width))
	}
	if filled > width {
		filled = width
	}
	track := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return StyleText.Render(track)
}
