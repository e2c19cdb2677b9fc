// Package diagram renders embedded D2 diagrams into SVG files and replaces
// the source blocks with image references, so the LaTeX output includes the
// generated figures instead of the diagram text.
package diagram

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hesusruiz/mdtex/mdtex"
	"go.uber.org/zap"
	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// assetsDir is where generated images land, relative to the document root.
const assetsDir = "builtassets"

// A Pass converts top-level D2 code blocks into image references, generating
// the SVG files under RootDir/builtassets.
type Pass struct {
	// RootDir is the directory of the document being processed; generated
	// assets and the image references are relative to it.
	RootDir string

	// Log receives progress messages. It must be set.
	Log *zap.SugaredLogger
}

// Apply returns a new block sequence with every "d2" code block replaced by an
// image reference to the rendered SVG. Other blocks pass through untouched.
// Nested blocks (inside quotes or list items) are not inspected; diagrams are
// a top-level construct.
func (p *Pass) Apply(blocks []mdtex.Block) ([]mdtex.Block, error) {
	out := make([]mdtex.Block, 0, len(blocks))
	for _, block := range blocks {
		cb, ok := block.(mdtex.CodeBlock)
		if !ok || !strings.EqualFold(strings.TrimSpace(cb.Lang), "d2") {
			out = append(out, block)
			continue
		}
		target, err := p.render(cb.Text)
		if err != nil {
			return nil, err
		}
		out = append(out, mdtex.SpanBlock{Span: mdtex.Image{Target: target}})
	}
	return out, nil
}

// render generates the SVG for one diagram and returns the image path
// relative to the document root. The file name carries the hash of the
// diagram source, so an unchanged diagram reuses the file from a previous
// run and a modified one gets a fresh name.
func (p *Pass) render(src string) (string, error) {
	hash := md5.Sum([]byte(src))
	name := fmt.Sprintf("d2_%x.svg", hash)

	dir := filepath.Join(p.RootDir, assetsDir)
	fileName := filepath.Join(dir, name)
	relativeFileName := filepath.Join(assetsDir, name)

	if _, err := os.Stat(fileName); err == nil {
		return relativeFileName, nil
	}
	p.Log.Infow("generating diagram", "file", fileName)

	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return "", fmt.Errorf("creating text ruler: %w", err)
	}
	defaultLayout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(context.Background(), src, &d2lib.CompileOptions{
		Layout: defaultLayout,
		Ruler:  ruler,
	})
	if err != nil {
		return "", fmt.Errorf("compiling diagram: %w", err)
	}
	body, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
	if err != nil {
		return "", fmt.Errorf("rendering diagram: %w", err)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	if err := os.WriteFile(fileName, body, 0664); err != nil {
		return "", err
	}
	return relativeFileName, nil
}
