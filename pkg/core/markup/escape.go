package markup

import (
	"html"
	"regexp"
	"strings"
)

// escaper replaces the five markup-significant characters. A Replacer scans
// the input once, so "&" introduced by one replacement is never re-escaped.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var reTag = regexp.MustCompile(`<[^>]*>`)

// Escape makes text safe to embed in markup. It is not idempotent: escaping
// "&amp;" again yields "&amp;amp;".
func Escape(text string) string {
	return escaper.Replace(text)
}

// Strip removes every tag from rendered markup and resolves the entities the
// formatter produced, leaving the plain text a reader would see.
func Strip(markup string) string {
	return html.UnescapeString(reTag.ReplaceAllString(markup, ""))
}
