package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// TruncateDisplay cuts str to the given display width, appending "..." when
// something was cut. Width-aware so CJK text lines up in prompt lists.
func TruncateDisplay(str string, width int) string {
	if runewidth.StringWidth(str) <= width {
		return str
	}
	return runewidth.Truncate(str, width, "...")
}
