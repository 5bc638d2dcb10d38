package display

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to clipped text.
const Ellipsis = "…"

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Truncator clips answers to a display width.
type Truncator struct {
	// Limit is the maximum number of runes kept; <= 0 disables clipping.
	Limit int

	// Placeholder replaces empty input.
	Placeholder string
}

// Truncate flattens newlines, trims, and clips text to t.Limit runes plus
// an ellipsis.
func (t Truncator) Truncate(text string) string {
	flat := strings.TrimSpace(newlineReplacer.Replace(text))
	if flat == "" {
		return t.Placeholder
	}
	if t.Limit <= 0 || utf8.RuneCountInString(flat) <= t.Limit {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:t.Limit]) + Ellipsis
}

// Truncate clips text to limit runes with an empty placeholder.
func Truncate(text string, limit int) string {
	return Truncator{Limit: limit}.Truncate(text)
}
