package mdtex

import (
	"fmt"
	"strings"

	"github.com/hesusruiz/mdtex/sliceedit"
)

// A CodeResolver resolves a symbolic code reference to literal source text.
type CodeResolver interface {
	ResolveCode(name string) (string, error)
}

// A LinkResolver resolves a document-internal cross reference to a URL or
// URL fragment.
type LinkResolver interface {
	ResolveLink(target string) (string, error)
}

// SubstContext carries everything the substitution pass needs: the label
// table, the macro table, the newline convention, the two resolvers and the
// conditional-define symbol for embedded script code.
type SubstContext struct {
	Labels        LabelTable
	Substitutions map[string]string
	Newline       string
	Code          CodeResolver
	Links         LinkResolver
	Define        string
}

// Substitute returns a new block sequence with embedded-code and
// cross-document-link placeholders expanded into ordinary renderable nodes,
// and {{name}} macros replaced in literal text. The input sequence is not
// modified. A placeholder whose resolver is missing is left in place; a
// resolver failure aborts the pass.
func (sc SubstContext) Substitute(blocks []Block) ([]Block, error) {
	return sc.substBlocks(blocks)
}

func (sc SubstContext) substBlocks(blocks []Block) ([]Block, error) {
	out := make([]Block, 0, len(blocks))

	for _, block := range blocks {
		switch b := block.(type) {

		case CodeRef:
			if sc.Code == nil {
				out = append(out, b)
				continue
			}
			text, err := sc.Code.ResolveCode(b.Name)
			if err != nil {
				return nil, fmt.Errorf("resolving code reference %q: %w", b.Name, err)
			}
			if isScriptLang(b.Lang) {
				// Referenced script code comes from outside the document, so
				// it is adjusted here; render-time adjustment then finds no
				// markers left.
				text = AdjustCode(text, sc.Define)
			}
			out = append(out, CodeBlock{Lang: b.Lang, Text: text})

		case Heading:
			body, err := sc.substSpans(b.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, Heading{Level: b.Level, Body: body})

		case Para:
			spans, err := sc.substSpans(b.Spans)
			if err != nil {
				return nil, err
			}
			out = append(out, Para{Spans: spans})

		case Table:
			header, err := sc.substCells(b.Header)
			if err != nil {
				return nil, err
			}
			rows := make([][]Cell, 0, len(b.Rows))
			for _, row := range b.Rows {
				cells, err := sc.substCells(row)
				if err != nil {
					return nil, err
				}
				rows = append(rows, cells)
			}
			out = append(out, Table{Aligns: b.Aligns, Header: header, Rows: rows})

		case List:
			items := make([][]Block, 0, len(b.Items))
			for _, item := range b.Items {
				sub, err := sc.substBlocks(item)
				if err != nil {
					return nil, err
				}
				items = append(items, sub)
			}
			out = append(out, List{Ordered: b.Ordered, Items: items})

		case Quote:
			body, err := sc.substBlocks(b.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, Quote{Body: body})

		case SpanBlock:
			spans, err := sc.substSpans([]Span{b.Span})
			if err != nil {
				return nil, err
			}
			for _, s := range spans {
				out = append(out, SpanBlock{Span: s})
			}

		default:
			out = append(out, block)
		}
	}

	return out, nil
}

func (sc SubstContext) substCells(cells []Cell) ([]Cell, error) {
	if cells == nil {
		return nil, nil
	}
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		sub, err := sc.substBlocks(c)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func (sc SubstContext) substSpans(spans []Span) ([]Span, error) {
	out := make([]Span, 0, len(spans))

	for _, span := range spans {
		switch s := span.(type) {

		case DocLink:
			body, err := sc.substSpans(s.Body)
			if err != nil {
				return nil, err
			}
			if sc.Links == nil {
				out = append(out, DocLink{Target: s.Target, Body: body})
				continue
			}
			url, err := sc.Links.ResolveLink(s.Target)
			if err != nil {
				return nil, fmt.Errorf("resolving document link %q: %w", s.Target, err)
			}
			out = append(out, Link{Target: url, Body: body})

		case Text:
			out = append(out, Text{Text: sc.applyMacros(s.Text), Line: s.Line})

		case Emph:
			body, err := sc.substSpans(s.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, Emph{Body: body})

		case Strong:
			body, err := sc.substSpans(s.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, Strong{Body: body})

		case Link:
			body, err := sc.substSpans(s.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, Link{Target: s.Target, Title: s.Title, Body: body})

		case RefLink:
			body, err := sc.substSpans(s.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, RefLink{Label: s.Label, Body: body})

		default:
			out = append(out, span)
		}
	}

	return out, nil
}

// applyMacros replaces {{name}} occurrences with the values of the macro
// table, queuing all the edits on the source text and applying them at once.
func (sc SubstContext) applyMacros(text string) string {
	if len(sc.Substitutions) == 0 || !strings.Contains(text, "{{") {
		return text
	}
	buf := sliceedit.NewBuffer([]byte(text))
	for name, value := range sc.Substitutions {
		buf.ReplaceAllString("{{"+name+"}}", value)
	}
	return buf.String()
}
