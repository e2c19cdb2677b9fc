package mdtex

import "io"

// LatexDefine is the conditional-compilation symbol in effect while rendering
// LaTeX. Embedded script code blocks are adjusted against it.
const LatexDefine = "LATEX"

// ScriptLang is the fenced-code language tag of the embedded scripting
// dialect. Code blocks carrying it are passed through AdjustCode before
// emission.
const ScriptLang = "script"

// Context bundles the output sink, the line-break policy and the rendering
// options threaded through every call. It is an immutable value: descending
// into a region that needs a different break policy (a table cell, say)
// derives a new Context instead of mutating the parent's, so a suppressed
// policy can never leak into a sibling block.
type Context struct {
	// Out receives the rendered LaTeX text. Writes are sequential and the
	// sink is owned by the caller.
	Out io.StringWriter

	// Newline is the line terminator used by the standard break policy.
	Newline string

	// Break emits one line separator under the currently active policy.
	Break func()

	// Labels resolves indirect link and image references.
	Labels LabelTable

	// Numbers requests line numbers in rendered listings.
	Numbers bool

	// Define is the conditional-compilation symbol for embedded script code.
	Define string
}

// WithBreak returns a copy of ctx with a different line-break policy.
func (ctx Context) WithBreak(brk func()) Context {
	ctx.Break = brk
	return ctx
}

// newlineBreak returns the standard policy: one newline per break.
func (ctx Context) newlineBreak() func() {
	return func() {
		ctx.print(ctx.Newline)
	}
}

// noBreak is the suppressed policy used inside densely packed regions such as
// table cells.
func noBreak() {}

func (ctx Context) print(ss ...string) {
	for _, s := range ss {
		_, _ = ctx.Out.WriteString(s)
	}
}
