package mdtex

import "io"

// A Renderer holds the document-wide settings of one rendering run. The zero
// value renders with Unix newlines, no label table, no macros and no
// resolvers; placeholders then degrade as documented on their node types.
type Renderer struct {
	// Labels resolves indirect link and image references.
	Labels LabelTable

	// Substitutions is the {{name}} macro table applied to literal text.
	Substitutions map[string]string

	// Newline overrides the line terminator. Empty means "\n".
	Newline string

	// Code resolves symbolic code references into literal source text.
	Code CodeResolver

	// Links resolves cross-document link placeholders.
	Links LinkResolver

	// Numbers requests line numbers in rendered listings.
	Numbers bool
}

// Render runs the substitution pass over blocks and writes the resulting
// LaTeX text to out. The input tree is not modified; rendering the same tree
// twice writes byte-identical output.
func (r Renderer) Render(out io.StringWriter, blocks []Block) error {
	newline := r.Newline
	if newline == "" {
		newline = "\n"
	}

	sc := SubstContext{
		Labels:        r.Labels,
		Substitutions: r.Substitutions,
		Newline:       newline,
		Code:          r.Code,
		Links:         r.Links,
		Define:        LatexDefine,
	}
	expanded, err := sc.Substitute(blocks)
	if err != nil {
		return err
	}

	// The top-level sequence starts under the suppressed policy; RenderBlocks
	// installs the newline policy itself.
	ctx := Context{
		Out:     out,
		Newline: newline,
		Break:   noBreak,
		Labels:  r.Labels,
		Numbers: r.Numbers,
		Define:  LatexDefine,
	}
	return RenderBlocks(ctx, expanded)
}

// RenderDocument renders blocks to sink in one call, for callers that do not
// retain the settings between runs.
func RenderDocument(sink io.StringWriter, labels LabelTable, substitutions map[string]string,
	newline string, code CodeResolver, links LinkResolver, numbers bool, blocks []Block) error {
	r := Renderer{
		Labels:        labels,
		Substitutions: substitutions,
		Newline:       newline,
		Code:          code,
		Links:         links,
		Numbers:       numbers,
	}
	return r.Render(sink, blocks)
}
