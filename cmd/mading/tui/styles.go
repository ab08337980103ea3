package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette, matching the site's rose theme
	colorPrimary = lipgloss.Color("#E11D48")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#F3F4F6")
	colorBorder  = lipgloss.Color("#4B5563")

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Card and list styles
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				PaddingLeft(2)

	unselectedItemStyle = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(4)

	likedStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			SetString("♥")

	unlikedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			SetString("♡")

	// Box styles
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	// Button styles
	activeButtonStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorPrimary).
				Padding(0, 3).
				Bold(true)

	inactiveButtonStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Background(lipgloss.Color("#1F2937")).
				Padding(0, 3)

	// Category filter chips
	chipActiveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Padding(0, 1)

	// Notification banner styles
	bannerErrorStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDanger).
				Padding(0, 2)

	bannerSuccessStyle = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSuccess).
				Padding(0, 2)

	bannerLoadingStyle = lipgloss.NewStyle().
				Foreground(colorInfo).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorInfo).
				Padding(0, 2)

	// Help styles
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Pagination styles
	pageActiveStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 1)

	pageStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Padding(0, 1)
)

// FormatKey formats a help key
func FormatKey(key, description string) string {
	return helpKeyStyle.Render(key) + " " + mutedStyle.Render(description)
}

// FormatLike renders the like indicator for an article.
func FormatLike(liked bool) string {
	if liked {
		return likedStyle.Render()
	}
	return unlikedStyle.Render()
}
