package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	// CompactHeightThreshold is the height below which the menu drops
	// the large banner.
	CompactHeightThreshold = 30

	// MaxContentWidth caps the width of cards and text blocks.
	MaxContentWidth = 72
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentWidth returns the width of the centered content column.
func ContentWidth(width int) int {
	return min(max(width-6, 20), MaxContentWidth)
}

// Center places block in the middle of a width x height area.
func Center(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// RenderMinSizeMessage asks the player to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Terminal too small!"),
		"",
		theme.Body.Render(fmt.Sprintf("Freedom Quest needs at least %d x %d.", MinWidth, MinHeight)),
		theme.Hint.Render(fmt.Sprintf("Current size: %d x %d", width, height)),
	)
	return Center(body, width, height)
}

// RenderHeader renders the application header bar: game name, screen
// title and the XP chip.
func RenderHeader(title string, xp int, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  Freedom Quest")
	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)
	right := theme.XPChip.Render(fmt.Sprintf("★ %d XP", xp)) + " "

	inner := max(width-2, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	row := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	// Saffron over green, like the flag's outer bands.
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.ThickBorder(), true, false, false, false).
		BorderForeground(theme.Primary).
		Render(row) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("━", max(width, 0)))
}

// RenderFooter renders the key hint bar. Hints are separated by a dot
// and wrap when the terminal is narrow.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := descStyle.Render("  ·  ")

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(theme.Border).
		Render(strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
