// Package mdtex renders a parsed Markdown document tree to LaTeX source text.
//
// The tree is built by an external parser (see the markdown package) and is
// never mutated here. Rendering is a single synchronous depth-first pass that
// writes sequentially to an output sink; rendering the same tree with the
// same Context twice produces byte-identical output.
package mdtex

import "strings"

// A Span is an inline content node: text, emphasis, links, inline code, math...
// The variant set is closed; every variant has exactly one rendering rule in
// RenderSpan. External code extends the set only through EmbedSpan.
type Span interface {
	span()
}

// Text is a literal text run. It is escaped before reaching the LaTeX output.
type Text struct {
	Text string
	Line int
}

// Emph is emphasized inline content.
type Emph struct {
	Body []Span
}

// Strong is strongly emphasized inline content.
type Strong struct {
	Body []Span
}

// CodeSpan is inline code. Unlike code blocks, its body is escaped.
type CodeSpan struct {
	Text string
}

// Math is an inline or display math run. The body is trusted LaTeX and is
// emitted verbatim between the math delimiters.
type Math struct {
	Text    string
	Display bool
	Line    int
}

// HardBreak is an explicit line break inside a paragraph.
type HardBreak struct{}

// Anchor is a named target for intra-document links. It has no LaTeX text
// representation and renders to nothing.
type Anchor struct {
	Name string
}

// Link is a hyperlink with an already resolved target.
type Link struct {
	Target string
	Title  string
	Body   []Span
}

// RefLink is a hyperlink referencing a label defined elsewhere in the
// document. If the label cannot be resolved against the label table, the
// label text itself is used as the target.
type RefLink struct {
	Label string
	Body  []Span
}

// Image is an image with an already resolved target. A non-blank Alt text
// turns the image into a captioned figure.
type Image struct {
	Target string
	Title  string
	Alt    string
}

// RefImage is an image referencing a label defined elsewhere in the document,
// with the same fallback policy as RefLink.
type RefImage struct {
	Label string
	Alt   string
}

// DocLink is a cross-document link placeholder. The substitution pass resolves
// it into a Link before rendering; a leftover DocLink renders as a direct link.
type DocLink struct {
	Target string
	Body   []Span
}

// A SpanExpander produces ordinary spans at render time. Expansion may depend
// on the rendering context (for example on the line-numbering mode), so it is
// performed lazily during the pass instead of being baked into the tree.
type SpanExpander interface {
	ExpandSpan(ctx Context) ([]Span, error)
}

// EmbedSpan wraps a caller-provided expander as an inline node.
type EmbedSpan struct {
	SpanExpander
}

func (Text) span()      {}
func (Emph) span()      {}
func (Strong) span()    {}
func (CodeSpan) span()  {}
func (Math) span()      {}
func (HardBreak) span() {}
func (Anchor) span()    {}
func (Link) span()      {}
func (RefLink) span()   {}
func (Image) span()     {}
func (RefImage) span()  {}
func (DocLink) span()   {}
func (EmbedSpan) span() {}

// A Block is a paragraph-level content node. Like Span, the variant set is
// closed and exhaustively handled by RenderBlock; EmbedBlock is the only
// extension point.
type Block interface {
	block()
}

// Heading is a section heading. Levels 1 to 5 map to the LaTeX sectioning
// commands; any other level degrades to an empty command.
type Heading struct {
	Level int
	Body  []Span
}

// Para is an ordinary paragraph, a sequence of spans.
type Para struct {
	Spans []Span
}

// Rule is a horizontal rule.
type Rule struct{}

// CodeBlock is a fenced code block. The body is emitted verbatim inside a
// lstlisting environment; when Lang names the embedded scripting dialect the
// body first goes through the conditional-compilation adjuster.
type CodeBlock struct {
	Lang string
	Text string
}

// OutputBlock holds captured output (for example execution results). It is
// rendered like a code block but never adjusted.
type OutputBlock struct {
	Kind string
	Text string
}

// Alignment is the horizontal alignment of a table column.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// A Cell is the content of one table cell, itself a sequence of blocks.
type Cell []Block

// Table is a table with per-column alignments, an optional header row and a
// sequence of body rows.
type Table struct {
	Aligns []Alignment
	Header []Cell
	Rows   [][]Cell
}

// List is an ordered or unordered list. Each item is a sequence of blocks.
type List struct {
	Ordered bool
	Items   [][]Block
}

// Quote is a quoted block of nested content.
type Quote struct {
	Body []Block
}

// HTMLBlock is raw markup emitted verbatim.
type HTMLBlock struct {
	Text string
}

// Env is a raw LaTeX environment: its lines are already valid LaTeX and are
// emitted without escaping.
type Env struct {
	Name  string
	Lines []string
}

// Opaque is the escape hatch for content with no dedicated variant. Each raw
// fragment is wrapped in its own listing.
type Opaque struct {
	Fragments []string
}

// FrontMatter is the document metadata header. It renders to nothing.
type FrontMatter struct {
	Text string
}

// SpanBlock wraps a single span as a block, without block-level decoration.
type SpanBlock struct {
	Span Span
}

// CodeRef is an embedded-code placeholder naming a symbolic code reference.
// The substitution pass expands it into a CodeBlock.
type CodeRef struct {
	Name string
	Lang string
}

// A BlockExpander produces ordinary blocks at render time, the block-level
// counterpart of SpanExpander.
type BlockExpander interface {
	ExpandBlock(ctx Context) ([]Block, error)
}

// EmbedBlock wraps a caller-provided expander as a block node.
type EmbedBlock struct {
	BlockExpander
}

func (Heading) block()     {}
func (Para) block()        {}
func (Rule) block()        {}
func (CodeBlock) block()   {}
func (OutputBlock) block() {}
func (Table) block()       {}
func (List) block()        {}
func (Quote) block()       {}
func (HTMLBlock) block()   {}
func (Env) block()         {}
func (Opaque) block()      {}
func (FrontMatter) block() {}
func (SpanBlock) block()   {}
func (CodeRef) block()     {}
func (EmbedBlock) block()  {}

// RefTarget is the resolved target of a reference label.
type RefTarget struct {
	URL   string
	Title string
}

// A LabelTable maps reference labels to their targets. It is read-only during
// rendering.
type LabelTable map[string]RefTarget

// Resolve looks up a label, tolerating labels that were split across source
// lines. It tries the label unmodified and then four normalized variants, in
// this order: CRLF removed, CRLF collapsed to a space, LF removed, LF
// collapsed to a space. The first hit wins.
func (t LabelTable) Resolve(label string) (RefTarget, bool) {
	if ref, ok := t[label]; ok {
		return ref, true
	}
	variants := []string{
		strings.ReplaceAll(label, "\r\n", ""),
		strings.ReplaceAll(label, "\r\n", " "),
		strings.ReplaceAll(label, "\n", ""),
		strings.ReplaceAll(label, "\n", " "),
	}
	for _, v := range variants {
		if ref, ok := t[v]; ok {
			return ref, true
		}
	}
	return RefTarget{}, false
}
