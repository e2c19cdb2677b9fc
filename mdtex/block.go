package mdtex

import (
	"fmt"
	"strings"
)

// RenderBlocks renders a block sequence under the standard newline break
// policy, installing it for the duration of the whole sequence.
func RenderBlocks(ctx Context, blocks []Block) error {
	// The count is taken up front so the last position is known; all
	// positions currently share the same break policy.
	count := len(blocks)
	seq := ctx.WithBreak(ctx.newlineBreak())
	for i := 0; i < count; i++ {
		if err := RenderBlock(seq, blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

// renderSeq renders blocks under the caller's break policy, unchanged. Table
// cells and list items use it so their policy decision sticks.
func renderSeq(ctx Context, blocks []Block) error {
	for _, b := range blocks {
		if err := RenderBlock(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// RenderBlock writes the LaTeX text of one block to the context's sink,
// followed by one separator from the current break policy.
func RenderBlock(ctx Context, block Block) error {
	switch b := block.(type) {

	case Env:
		ctx.Break()
		ctx.Break()
		ctx.print(`\begin{`, b.Name, `}`)
		ctx.Break()
		for _, line := range b.Lines {
			ctx.print(line)
			ctx.Break()
		}
		ctx.print(`\end{`, b.Name, `}`)
		ctx.Break()

	case EmbedBlock:
		expanded, err := b.ExpandBlock(ctx)
		if err != nil {
			return err
		}
		if err := renderSeq(ctx, expanded); err != nil {
			return err
		}

	case Heading:
		ctx.print(headingCommand(b.Level), `{`)
		if err := RenderSpans(ctx, b.Body); err != nil {
			return err
		}
		ctx.print(`}`)

	case Para:
		ctx.Break()
		ctx.Break()
		if err := RenderSpans(ctx, b.Spans); err != nil {
			return err
		}

	case Rule:
		ctx.print(`\rule{\textwidth}{0.5pt}`)
		ctx.Break()

	case CodeBlock:
		if isScriptLang(b.Lang) {
			// Adjusted script code is never a language the lexers know.
			renderListing(ctx, "", AdjustCode(b.Text, ctx.Define))
			break
		}
		renderListing(ctx, CanonicalLang(b.Lang, b.Text), b.Text)

	case OutputBlock:
		renderListing(ctx, "", b.Text)

	case Table:
		return renderTable(ctx, b)

	case List:
		env := "itemize"
		if b.Ordered {
			env = "enumerate"
		}
		ctx.print(`\begin{`, env, `}`)
		ctx.Break()
		for _, item := range b.Items {
			ctx.print(`\item `)
			// The last block of the item already emits the trailing separator.
			if err := renderSeq(ctx, item); err != nil {
				return err
			}
		}
		ctx.print(`\end{`, env, `}`)

	case Quote:
		ctx.print(`\begin{quote}`)
		if err := renderSeq(ctx, b.Body); err != nil {
			return err
		}
		ctx.print(`\end{quote}`)

	case SpanBlock:
		if err := RenderSpan(ctx, b.Span); err != nil {
			return err
		}

	case HTMLBlock:
		ctx.print(b.Text)

	case Opaque:
		for _, fragment := range b.Fragments {
			renderListing(ctx, "", fragment)
		}

	case FrontMatter:
		// Front matter carries no LaTeX content, not even a separator.
		return nil

	case CodeRef:
		// An unexpanded placeholder means the substitution pass never saw a
		// resolver for it; degrade to a comment instead of failing the pass.
		ctx.print(`% unresolved code reference: `, b.Name)

	default:
		return fmt.Errorf("mdtex: no rendering rule for block %T", block)
	}

	// Uniform post-block separator under the current policy.
	ctx.Break()
	return nil
}

// headingCommand maps a heading level to its LaTeX sectioning command.
// Out-of-range levels degrade to an empty command; the heading text is still
// rendered, wrapped in bare braces.
func headingCommand(level int) string {
	switch level {
	case 1:
		return `\section*`
	case 2:
		return `\subsection*`
	case 3:
		return `\subsubsection*`
	case 4:
		return `\paragraph`
	case 5:
		return `\subparagraph`
	}
	return ""
}

func isScriptLang(lang string) bool {
	return strings.EqualFold(strings.TrimSpace(lang), ScriptLang)
}

// renderListing wraps text verbatim in a lstlisting environment. The body is
// trusted literal content and is never escaped.
func renderListing(ctx Context, lang string, text string) {
	ctx.Break()
	ctx.print(`\begin{lstlisting}`)
	var opts []string
	if lang != "" {
		opts = append(opts, "language="+lang)
	}
	if ctx.Numbers {
		opts = append(opts, "numbers=left")
	}
	if len(opts) > 0 {
		ctx.print(`[`, strings.Join(opts, ","), `]`)
	}
	ctx.Break()
	ctx.print(text)
	if !strings.HasSuffix(text, ctx.Newline) {
		ctx.Break()
	}
	ctx.print(`\end{lstlisting}`)
}

func renderTable(ctx Context, t Table) error {
	var spec strings.Builder
	for _, a := range t.Aligns {
		switch a {
		case AlignRight:
			spec.WriteString("|r")
		case AlignCenter:
			spec.WriteString("|c")
		default:
			spec.WriteString("|l")
		}
	}

	ctx.print(`\begin{tabular}{`, spec.String(), `|}\hline`)
	ctx.Break()

	// Cells must not introduce blank lines, so they render under a context
	// whose break operation is a no-op. The parent context is untouched.
	cell := ctx.WithBreak(noBreak)

	if len(t.Header) > 0 {
		for i, c := range t.Header {
			if i > 0 {
				ctx.print(` & `)
			}
			ctx.print(`\textbf{`)
			if err := renderSeq(cell, c); err != nil {
				return err
			}
			ctx.print(`}`)
		}
		ctx.print(` \\ \hline\hline`)
		ctx.Break()
	}

	for _, row := range t.Rows {
		for i, c := range row {
			if i > 0 {
				ctx.print(` & `)
			}
			if err := renderSeq(cell, c); err != nil {
				return err
			}
		}
		ctx.print(` \\ \hline`)
		ctx.Break()
	}

	ctx.print(`\end{tabular}`)
	ctx.Break()
	return nil
}
