package mdtex

import (
	"html"
	"strings"
)

// The backslash is replaced with this placeholder before the other rules run,
// and rewritten to the final command form afterwards. The NUL bytes guarantee
// that no later rule can match inside it.
const backslashMark = "\x00bs\x00"

// escapeRules is applied in order. The order is load-bearing: the backslash
// rule must run before the rules that introduce backslashes, and the
// placeholder is only rewritten once all brace-escaping rules have run.
var escapeRules = [...]struct{ old, new string }{
	{`\`, backslashMark},
	{`#`, `\#`},
	{`$`, `\$`},
	{`%`, `\%`},
	{`&`, `\&`},
	{`_`, `\_`},
	{`{`, `\{`},
	{`}`, `\}`},
	{backslashMark, `\textbackslash{}`},
	{`~`, `\textasciitilde{}`},
	{`^`, `\textasciicircum{}`},
}

// Escape makes raw text safe for LaTeX running text. HTML entities left over
// from the parsing stage are decoded first, then the special characters
// \ # $ % & _ { } ~ ^ are rewritten. Escape is not idempotent: apply it
// exactly once, at the point text becomes a LaTeX literal.
func Escape(text string) string {
	text = html.UnescapeString(text)
	for _, r := range escapeRules {
		text = strings.ReplaceAll(text, r.old, r.new)
	}
	return text
}
