package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Overlay composites the 'overlay' string on top of the 'base' string,
// centered both horizontally and vertically.
// It avoids ANSI corruption by completely replacing the horizontal rows
// occupied by the overlay.
func Overlay(base, overlay string, width, height int) string {
	overlayHeight := lipgloss.Height(overlay)
	return replaceRows(base, overlay, width, height, (height-overlayHeight)/2)
}

// OverlayBottom composites 'overlay' over the last rows of 'base', the way a
// playback controller sits on top of the video surface.
func OverlayBottom(base, overlay string, width, height int) string {
	overlayHeight := lipgloss.Height(overlay)
	return replaceRows(base, overlay, width, height, height-overlayHeight)
}

func replaceRows(base, overlay string, width, height, startY int) string {
	if base == "" {
		return overlay
	}

	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	// Ensure base has enough lines to fill the screen
	for len(baseLines) < height {
		baseLines = append(baseLines, strings.Repeat(" ", width))
	}

	result := make([]string, len(baseLines))
	copy(result, baseLines)

	for y, oLine := range overlayLines {
		baseY := startY + y
		if baseY < 0 || baseY >= len(baseLines) {
			continue
		}

		// Replace the entire background line rather than splicing into the
		// background's escape sequences.
		result[baseY] = lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(oLine)
	}

	return strings.Join(result, "\n")
}

// Ellipsis truncates a string to a max width and adds ... if needed.
func Ellipsis(s string, maxWidth int) string {
	w := runewidth.StringWidth(s)
	if w <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth-3, "...")
}
