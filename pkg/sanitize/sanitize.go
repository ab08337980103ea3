// Package sanitize strips executable markup from article HTML before it
// reaches the terminal renderer.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// HTML removes scripts, event handlers and other executable markup while
// keeping ordinary formatting tags.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}

// Text strips all tags, leaving plain text.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// Excerpt strips all tags and truncates the remaining text to at most
// n runes, appending an ellipsis when something was cut. Card views use
// it for article previews.
func Excerpt(input string, n int) string {
	text := Text(input)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
