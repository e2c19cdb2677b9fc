// Package markdown parses Markdown source into the document tree rendered by
// the mdtex package.
//
// Parsing is delegated to goldmark with the table extension enabled; this
// package only converts the goldmark tree into mdtex nodes, harvests the
// reference definitions into a label table and strips the YAML front matter
// into a configuration object.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hesusruiz/mdtex/mdtex"
	"github.com/hesusruiz/vcutils/yaml"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// A Document is a parsed Markdown file: the block tree, the reference label
// table and the front matter configuration.
type Document struct {
	Blocks []mdtex.Block
	Labels mdtex.LabelTable
	Config *yaml.YAML
}

// Parse converts Markdown source into a Document.
func Parse(src []byte) (*Document, error) {
	front, body := splitFrontMatter(src)

	config, err := yaml.ParseYaml(front)
	if err != nil {
		return nil, fmt.Errorf("malformed YAML front matter: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	pc := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))

	conv := &converter{src: body}
	blocks, err := conv.blocks(root)
	if err != nil {
		return nil, err
	}
	if front != "" {
		blocks = append([]mdtex.Block{mdtex.FrontMatter{Text: front}}, blocks...)
	}

	labels := mdtex.LabelTable{}
	for _, ref := range pc.References() {
		labels[string(ref.Label())] = mdtex.RefTarget{
			URL:   string(ref.Destination()),
			Title: string(ref.Title()),
		}
	}

	return &Document{Blocks: blocks, Labels: labels, Config: config}, nil
}

// splitFrontMatter separates the YAML metadata header from the document body.
// The header is accepted only at the very beginning of the file, between two
// "---" lines; without one the whole source is the body.
func splitFrontMatter(src []byte) (string, []byte) {
	if !bytes.HasPrefix(src, []byte("---")) {
		return "", src
	}

	var sb strings.Builder
	rest := src
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		return "", src
	}

	for len(rest) > 0 {
		line := rest
		next := []byte(nil)
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line = rest[:i]
			next = rest[i+1:]
		}
		if bytes.HasPrefix(line, []byte("---")) {
			return sb.String(), next
		}
		sb.Write(line)
		sb.WriteString("\n")
		if next == nil {
			break
		}
		rest = next
	}

	// No closing delimiter; treat the file as having no front matter.
	return "", src
}

type converter struct {
	src []byte
}

func (c *converter) blocks(parent gmast.Node) ([]mdtex.Block, error) {
	var out []mdtex.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		b, err := c.block(n)
		if err != nil {
			return nil, err
		}
		if b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (c *converter) block(node gmast.Node) (mdtex.Block, error) {
	switch n := node.(type) {

	case *gmast.Heading:
		body, err := c.spans(n)
		if err != nil {
			return nil, err
		}
		return mdtex.Heading{Level: n.Level, Body: body}, nil

	case *gmast.Paragraph:
		spans, err := c.spans(n)
		if err != nil {
			return nil, err
		}
		return mdtex.Para{Spans: spans}, nil

	case *gmast.TextBlock:
		spans, err := c.spans(n)
		if err != nil {
			return nil, err
		}
		return mdtex.Para{Spans: spans}, nil

	case *gmast.ThematicBreak:
		return mdtex.Rule{}, nil

	case *gmast.FencedCodeBlock:
		lang := string(n.Language(c.src))
		code := c.nodeLines(n)
		if name, ok := includeDirective(code); ok {
			return mdtex.CodeRef{Name: name, Lang: lang}, nil
		}
		return mdtex.CodeBlock{Lang: lang, Text: code}, nil

	case *gmast.CodeBlock:
		return mdtex.CodeBlock{Text: c.nodeLines(n)}, nil

	case *gmast.Blockquote:
		body, err := c.blocks(n)
		if err != nil {
			return nil, err
		}
		return mdtex.Quote{Body: body}, nil

	case *gmast.List:
		var items [][]mdtex.Block
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			blocks, err := c.blocks(item)
			if err != nil {
				return nil, err
			}
			items = append(items, blocks)
		}
		return mdtex.List{Ordered: n.IsOrdered(), Items: items}, nil

	case *gmast.HTMLBlock:
		return mdtex.HTMLBlock{Text: c.nodeLines(n)}, nil

	case *extast.Table:
		return c.table(n)

	default:
		return nil, fmt.Errorf("markdown: unsupported block node %v", node.Kind())
	}
}

func (c *converter) table(t *extast.Table) (mdtex.Block, error) {
	aligns := make([]mdtex.Alignment, 0, len(t.Alignments))
	for _, a := range t.Alignments {
		switch a {
		case extast.AlignLeft:
			aligns = append(aligns, mdtex.AlignLeft)
		case extast.AlignCenter:
			aligns = append(aligns, mdtex.AlignCenter)
		case extast.AlignRight:
			aligns = append(aligns, mdtex.AlignRight)
		default:
			aligns = append(aligns, mdtex.AlignDefault)
		}
	}

	table := mdtex.Table{Aligns: aligns}
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		cells, err := c.cells(row)
		if err != nil {
			return nil, err
		}
		if _, ok := row.(*extast.TableHeader); ok {
			table.Header = cells
			continue
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

func (c *converter) cells(row gmast.Node) ([]mdtex.Cell, error) {
	var cells []mdtex.Cell
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		spans, err := c.spans(cell)
		if err != nil {
			return nil, err
		}
		blocks := make(mdtex.Cell, 0, len(spans))
		for _, s := range spans {
			blocks = append(blocks, mdtex.SpanBlock{Span: s})
		}
		cells = append(cells, blocks)
	}
	return cells, nil
}

func (c *converter) spans(parent gmast.Node) ([]mdtex.Span, error) {
	var out []mdtex.Span
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		spans, err := c.span(n)
		if err != nil {
			return nil, err
		}
		out = append(out, spans...)
	}
	return out, nil
}

func (c *converter) span(node gmast.Node) ([]mdtex.Span, error) {
	switch n := node.(type) {

	case *gmast.Text:
		spans := []mdtex.Span{mdtex.Text{Text: string(n.Segment.Value(c.src))}}
		if n.HardLineBreak() {
			spans = append(spans, mdtex.HardBreak{})
		} else if n.SoftLineBreak() {
			spans = append(spans, mdtex.Text{Text: " "})
		}
		return spans, nil

	case *gmast.String:
		return []mdtex.Span{mdtex.Text{Text: string(n.Value)}}, nil

	case *gmast.CodeSpan:
		return []mdtex.Span{mdtex.CodeSpan{Text: string(n.Text(c.src))}}, nil

	case *gmast.Emphasis:
		body, err := c.spans(n)
		if err != nil {
			return nil, err
		}
		if n.Level >= 2 {
			return []mdtex.Span{mdtex.Strong{Body: body}}, nil
		}
		return []mdtex.Span{mdtex.Emph{Body: body}}, nil

	case *gmast.Link:
		body, err := c.spans(n)
		if err != nil {
			return nil, err
		}
		target := string(n.Destination)
		if isDocTarget(target) {
			return []mdtex.Span{mdtex.DocLink{Target: target, Body: body}}, nil
		}
		return []mdtex.Span{mdtex.Link{Target: target, Title: string(n.Title), Body: body}}, nil

	case *gmast.AutoLink:
		url := string(n.URL(c.src))
		return []mdtex.Span{mdtex.Link{Target: url, Body: []mdtex.Span{mdtex.Text{Text: url}}}}, nil

	case *gmast.Image:
		return []mdtex.Span{mdtex.Image{
			Target: string(n.Destination),
			Title:  string(n.Title),
			Alt:    string(n.Text(c.src)),
		}}, nil

	case *gmast.RawHTML:
		// Inline markup has no LaTeX representation and is dropped.
		return nil, nil

	default:
		return nil, fmt.Errorf("markdown: unsupported inline node %v", node.Kind())
	}
}

// nodeLines concatenates the source lines spanned by a block node.
func (c *converter) nodeLines(node gmast.Node) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.src))
	}
	return sb.String()
}

// includeDirective recognizes a fenced block whose whole body is a single
// "{{#include name}}" line and returns the referenced name.
func includeDirective(code string) (string, bool) {
	line := strings.TrimSpace(code)
	if !strings.HasPrefix(line, "{{#include ") || !strings.HasSuffix(line, "}}") {
		return "", false
	}
	if strings.Contains(line, "\n") {
		return "", false
	}
	name := strings.TrimSpace(line[len("{{#include ") : len(line)-len("}}")])
	if name == "" {
		return "", false
	}
	return name, true
}

// isDocTarget reports whether a link destination points at another Markdown
// document, so it must go through the link resolver before rendering.
func isDocTarget(target string) bool {
	if strings.Contains(target, "://") {
		return false
	}
	return strings.HasSuffix(target, ".md") || strings.Contains(target, ".md#")
}
