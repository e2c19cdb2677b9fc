package mdtex

import (
	"fmt"
	"strings"
)

// RenderSpans renders a span sequence in order.
func RenderSpans(ctx Context, spans []Span) error {
	for _, s := range spans {
		if err := RenderSpan(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// RenderSpan writes the LaTeX text of one span to the context's sink.
func RenderSpan(ctx Context, span Span) error {
	switch s := span.(type) {

	case Math:
		// The math body is trusted LaTeX and is never escaped.
		if s.Display {
			ctx.print("$$", s.Text, "$$")
		} else {
			ctx.print("$", s.Text, "$")
		}

	case EmbedSpan:
		expanded, err := s.ExpandSpan(ctx)
		if err != nil {
			return err
		}
		return RenderSpans(ctx, expanded)

	case Text:
		ctx.print(Escape(s.Text))

	case HardBreak:
		// A blank-line-style break, not a LaTeX \\.
		ctx.Break()
		ctx.Break()

	case Anchor:
		// Anchors have no LaTeX text representation.

	case Link:
		return renderLink(ctx, s.Target, s.Body)

	case RefLink:
		target := s.Label
		if ref, ok := ctx.Labels.Resolve(s.Label); ok {
			target = ref.URL
		}
		return renderLink(ctx, target, s.Body)

	case DocLink:
		// The substitution pass resolves these; a leftover one degrades to a
		// direct link on its literal target.
		return renderLink(ctx, s.Target, s.Body)

	case Image:
		renderImage(ctx, s.Target, s.Alt)

	case RefImage:
		target := s.Label
		if ref, ok := ctx.Labels.Resolve(s.Label); ok {
			target = ref.URL
		}
		renderImage(ctx, target, s.Alt)

	case Strong:
		ctx.print(`\textbf{`)
		if err := RenderSpans(ctx, s.Body); err != nil {
			return err
		}
		ctx.print(`}`)

	case CodeSpan:
		ctx.print(`\texttt{`, Escape(s.Text), `}`)

	case Emph:
		ctx.print(`\emph{`)
		if err := RenderSpans(ctx, s.Body); err != nil {
			return err
		}
		ctx.print(`}`)

	default:
		return fmt.Errorf("mdtex: no rendering rule for span %T", span)
	}

	return nil
}

func renderLink(ctx Context, target string, body []Span) error {
	ctx.print(`\href{`, Escape(target), `}{`)
	if err := RenderSpans(ctx, body); err != nil {
		return err
	}
	ctx.print(`}`)
	return nil
}

func renderImage(ctx Context, target, alt string) {
	captioned := strings.TrimSpace(alt) != ""
	if captioned {
		ctx.print(`\begin{figure}`)
		ctx.Break()
		ctx.print(`\centering`)
		ctx.Break()
	}
	ctx.print(`\includegraphics[width=1.0\textwidth]{`, Escape(target), `}`)
	if captioned {
		ctx.Break()
		ctx.print(`\caption{`, Escape(alt), `}`)
		ctx.Break()
		ctx.print(`\end{figure}`)
	}
}
