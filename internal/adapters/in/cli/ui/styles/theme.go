// Package styles provides the terminal styles used by the keyflush CLI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#00ccff")
	ColorSuccess   = lipgloss.Color("#00ff88")
	ColorWarning   = lipgloss.Color("#fbbf24")
	ColorError     = lipgloss.Color("#ff4444")
	ColorText      = lipgloss.Color("#e5e5e5")
	ColorTextMuted = lipgloss.Color("#737373")
	ColorBorder    = lipgloss.Color("#404040")
	ColorBg        = lipgloss.Color("#000000")
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "›"
	IconLock    = "●"
	IconBullet  = "▸"
)

// Theme contains the composed styles.
var Theme = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	BadgeSuccess lipgloss.Style
	BadgeError   lipgloss.Style
	BadgeInfo    lipgloss.Style
	BadgePending lipgloss.Style

	ListItem lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary),

	Muted: lipgloss.NewStyle().
		Foreground(ColorTextMuted),

	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText),

	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Info:    lipgloss.NewStyle().Foreground(ColorPrimary),

	BadgeSuccess: lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(ColorSuccess).
		Padding(0, 1),

	BadgeError: lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(ColorError).
		Padding(0, 1),

	BadgeInfo: lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(ColorPrimary).
		Padding(0, 1),

	BadgePending: lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(ColorTextMuted).
		Padding(0, 1),

	ListItem: lipgloss.NewStyle().
		Foreground(ColorText).
		PaddingLeft(2),
}

// RenderBadge returns a styled badge for a run status or trigger kind.
func RenderBadge(status string) string {
	switch status {
	case "succeeded", "protected":
		return Theme.BadgeSuccess.Render(status)
	case "failed":
		return Theme.BadgeError.Render(status)
	case "disabled":
		return Theme.BadgePending.Render(status)
	default:
		return Theme.BadgeInfo.Render(status)
	}
}

// RenderSuccess returns a success line with icon.
func RenderSuccess(msg string) string {
	return Theme.Success.Render(IconSuccess + " " + msg)
}

// RenderError returns an error line with icon.
func RenderError(msg string) string {
	return Theme.Error.Render(IconError + " " + msg)
}

// RenderWarning returns a warning line with icon.
func RenderWarning(msg string) string {
	return Theme.Warning.Render(IconWarning + " " + msg)
}

// RenderInfo returns an info line with icon.
func RenderInfo(msg string) string {
	return Theme.Info.Render(IconInfo + " " + msg)
}

// RenderListItem returns a bulleted list entry.
func RenderListItem(msg string) string {
	return Theme.ListItem.Render(IconBullet + " " + msg)
}
