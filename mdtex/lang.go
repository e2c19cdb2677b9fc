package mdtex

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// CanonicalLang maps a fenced-code language tag to the canonical lexer name
// used for the lstlisting language option. Aliases are resolved through the
// chroma registry ("py" becomes "python"); when the tag is empty the code is
// analysed, and an unknown tag is returned as written.
func CanonicalLang(tag string, code string) string {
	tag = strings.TrimSpace(tag)

	var l chroma.Lexer
	if tag != "" {
		l = lexers.Get(tag)
	} else if code != "" {
		l = lexers.Analyse(code)
	}
	if l == nil {
		return tag
	}

	return strings.ToLower(l.Config().Name)
}
