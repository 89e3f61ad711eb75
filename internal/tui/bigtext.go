package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bigTextHeight = 5

// Block-digit glyphs for the countdown display, 3 cells wide and 5
// rows tall.
var charArt = map[rune][bigTextHeight]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {" █ ", "██ ", " █ ", " █ ", "███"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {"   ", " █ ", "   ", " █ ", "   "},
}

var blankArt = [bigTextHeight]string{"   ", "   ", "   ", "   ", "   "}

// renderBigText draws text in block digits, one space between glyphs.
func renderBigText(text string, style lipgloss.Style) string {
	var rows [bigTextHeight][]string
	for _, c := range text {
		art, ok := charArt[c]
		if !ok {
			art = blankArt
		}
		for i := 0; i < bigTextHeight; i++ {
			rows[i] = append(rows[i], art[i])
		}
	}

	lines := make([]string, bigTextHeight)
	for i := range rows {
		lines[i] = style.Render(strings.Join(rows[i], " "))
	}
	return strings.Join(lines, "\n")
}
