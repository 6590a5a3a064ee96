package lunar

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCodeFrame renders a one-line excerpt of source with a caret under
// the given position. It returns "" when the position falls outside the
// source, so callers can append it to an error message unconditionally.
func FormatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineText)+1 {
		column = len(lineText) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
