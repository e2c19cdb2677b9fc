package mdtex

import (
	"bytes"
	"strings"

	"github.com/hesusruiz/mdtex/sliceedit"
)

// Conditional-compilation markers recognized in embedded script code. A
// marker occupies a whole line, optionally indented.
const (
	markIfdef  = "#ifdef"
	markIfndef = "#ifndef"
	markElse   = "#else"
	markEndif  = "#endif"
)

// AdjustCode filters embedded script code against a conditional-compilation
// symbol: bodies guarded by #ifdef on the given define (or #ifndef on another
// symbol) are kept, the other branches are dropped, and the marker lines
// themselves never reach the output. Code without markers passes through
// unchanged. Marker regions nest; a branch is emitted only when every
// enclosing branch is active.
func AdjustCode(code string, define string) string {
	if !strings.Contains(code, markIfdef) && !strings.Contains(code, markIfndef) {
		return code
	}

	src := []byte(code)
	buf := sliceedit.NewBuffer(src)

	// Active flags of the enclosing branches, innermost last.
	var stack []bool

	for start := 0; start < len(src); {
		next := len(src)
		if i := bytes.IndexByte(src[start:], '\n'); i >= 0 {
			next = start + i + 1
		}
		line := strings.TrimSpace(string(src[start:next]))

		switch {
		case strings.HasPrefix(line, markIfdef+" "):
			name := strings.TrimSpace(line[len(markIfdef):])
			stack = append(stack, name == define)
			buf.Delete(start, next)

		case strings.HasPrefix(line, markIfndef+" "):
			name := strings.TrimSpace(line[len(markIfndef):])
			stack = append(stack, name != define)
			buf.Delete(start, next)

		case line == markElse:
			if len(stack) > 0 {
				stack[len(stack)-1] = !stack[len(stack)-1]
			}
			buf.Delete(start, next)

		case line == markEndif:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			buf.Delete(start, next)

		default:
			if !allActive(stack) {
				buf.Delete(start, next)
			}
		}

		start = next
	}

	return buf.String()
}

func allActive(stack []bool) bool {
	for _, active := range stack {
		if !active {
			return false
		}
	}
	return true
}
