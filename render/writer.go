package render

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const errorColor = "#d9534f"

// Accumulates the first write error, so that drawing code can write line by line without checking
// each one.
type writer struct {
	output  io.Writer
	options Options
	err     error
}

func (w *writer) line(text string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.output, text+"\n")
}

func (w *writer) bold(text string) string {
	if !w.options.ANSI {
		return text
	}
	return "\x1b[1m" + text + "\x1b[0m"
}

// Colors the text with a "#rrggbb" color, if ANSI is enabled.
func (w *writer) colored(text string, hexColor string) string {
	if !w.options.ANSI {
		return text
	}

	red, green, blue, ok := parseHexColor(hexColor)
	if !ok {
		return text
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", red, green, blue, text)
}

func parseHexColor(hexColor string) (red uint8, green uint8, blue uint8, ok bool) {
	hex := strings.TrimPrefix(hexColor, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(value >> 16), uint8(value >> 8), uint8(value), true
}

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Renders **bold** segments of an insight, as bold text with ANSI or as plain text without.
func Insight(text string, ansi bool) string {
	if ansi {
		return boldPattern.ReplaceAllString(text, "\x1b[1m$1\x1b[0m")
	}
	return boldPattern.ReplaceAllString(text, "$1")
}
