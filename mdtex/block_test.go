package mdtex

import "testing"

func renderBlocksString(t *testing.T, numbers bool, blocks []Block) string {
	t.Helper()
	br := &ByteRenderer{}
	ctx := Context{Out: br, Newline: "\n", Break: noBreak, Numbers: numbers, Define: LatexDefine}
	if err := RenderBlocks(ctx, blocks); err != nil {
		t.Fatalf("RenderBlocks() error = %v", err)
	}
	return br.String()
}

func TestRenderBlockHeadings(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  string
	}{
		{name: "Level 1", level: 1, want: "\\section*{T}\n"},
		{name: "Level 2", level: 2, want: "\\subsection*{T}\n"},
		{name: "Level 3", level: 3, want: "\\subsubsection*{T}\n"},
		{name: "Level 4", level: 4, want: "\\paragraph{T}\n"},
		{name: "Level 5", level: 5, want: "\\subparagraph{T}\n"},
		{name: "Level 6 degrades to bare braces", level: 6, want: "{T}\n"},
		{name: "Level 0 degrades to bare braces", level: 0, want: "{T}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := []Block{Heading{Level: tt.level, Body: []Span{Text{Text: "T"}}}}
			if got := renderBlocksString(t, false, blocks); got != tt.want {
				t.Errorf("RenderBlocks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderBlock(t *testing.T) {
	tests := []struct {
		name  string
		block Block
		want  string
	}{
		{
			name:  "Paragraph",
			block: Para{Spans: []Span{Text{Text: "A & B"}}},
			want:  "\n\nA \\& B\n",
		},
		{
			name:  "Rule",
			block: Rule{},
			want:  "\\rule{\\textwidth}{0.5pt}\n\n",
		},
		{
			name:  "Code block with a known language",
			block: CodeBlock{Lang: "go", Text: "func main() {}\n"},
			want:  "\n\\begin{lstlisting}[language=go]\nfunc main() {}\n\\end{lstlisting}\n",
		},
		{
			name:  "Output block has no language and gains a final newline",
			block: OutputBlock{Text: "two\nlines"},
			want:  "\n\\begin{lstlisting}\ntwo\nlines\n\\end{lstlisting}\n",
		},
		{
			name: "Unordered list",
			block: List{Items: [][]Block{
				{SpanBlock{Span: Text{Text: "one"}}},
				{SpanBlock{Span: Text{Text: "two"}}},
			}},
			want: "\\begin{itemize}\n\\item one\n\\item two\n\\end{itemize}\n",
		},
		{
			name: "Ordered list",
			block: List{Ordered: true, Items: [][]Block{
				{SpanBlock{Span: Text{Text: "first"}}},
			}},
			want: "\\begin{enumerate}\n\\item first\n\\end{enumerate}\n",
		},
		{
			name:  "Quote",
			block: Quote{Body: []Block{Para{Spans: []Span{Text{Text: "q"}}}}},
			want:  "\\begin{quote}\n\nq\n\\end{quote}\n",
		},
		{
			name:  "Raw environment",
			block: Env{Name: "center", Lines: []string{`\Large Hello`}},
			want:  "\n\n\\begin{center}\n\\Large Hello\n\\end{center}\n\n",
		},
		{
			name:  "Raw markup block",
			block: HTMLBlock{Text: "<br/>"},
			want:  "<br/>\n",
		},
		{
			name:  "Front matter renders to nothing",
			block: FrontMatter{Text: "title: T\n"},
			want:  "",
		},
		{
			name:  "Unresolved code reference degrades to a comment",
			block: CodeRef{Name: "lib.go"},
			want:  "% unresolved code reference: lib.go\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderBlocksString(t, false, []Block{tt.block}); got != tt.want {
				t.Errorf("RenderBlocks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderBlockListingNumbers(t *testing.T) {
	got := renderBlocksString(t, true, []Block{OutputBlock{Text: "result"}})
	want := "\n\\begin{lstlisting}[numbers=left]\nresult\n\\end{lstlisting}\n"
	if got != want {
		t.Errorf("RenderBlocks() = %q, want %q", got, want)
	}
}

func TestRenderBlockScriptCode(t *testing.T) {
	code := "#ifdef LATEX\nkept\n#else\ndropped\n#endif\n"
	got := renderBlocksString(t, false, []Block{CodeBlock{Lang: "script", Text: code}})
	want := "\n\\begin{lstlisting}\nkept\n\\end{lstlisting}\n"
	if got != want {
		t.Errorf("RenderBlocks() = %q, want %q", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	table := Table{
		Aligns: []Alignment{AlignLeft, AlignCenter, AlignRight},
		Header: []Cell{
			{SpanBlock{Span: Text{Text: "A"}}},
			{SpanBlock{Span: Text{Text: "B"}}},
			{SpanBlock{Span: Text{Text: "C"}}},
		},
		Rows: [][]Cell{
			{
				{SpanBlock{Span: Text{Text: "a"}}},
				{SpanBlock{Span: Text{Text: "b"}}},
				{SpanBlock{Span: Text{Text: "c"}}},
			},
		},
	}

	want := `\begin{tabular}{|l|c|r|}\hline
\textbf{A} & \textbf{B} & \textbf{C} \\ \hline\hline
a & b & c \\ \hline
\end{tabular}
`
	if got := renderBlocksString(t, false, []Block{table}); got != want {
		t.Errorf("RenderBlocks() = %q, want %q", got, want)
	}
}

func TestRenderTableCellSuppressesBreaks(t *testing.T) {
	// A paragraph inside a cell must not produce blank lines.
	table := Table{
		Aligns: []Alignment{AlignDefault},
		Rows: [][]Cell{
			{{Para{Spans: []Span{Text{Text: "dense"}}}}},
		},
	}
	want := `\begin{tabular}{|l|}\hline
dense \\ \hline
\end{tabular}
`
	if got := renderBlocksString(t, false, []Block{table}); got != want {
		t.Errorf("RenderBlocks() = %q, want %q", got, want)
	}
}

func TestRenderBlocksDeterministic(t *testing.T) {
	blocks := []Block{
		Heading{Level: 1, Body: []Span{Text{Text: "Title"}}},
		Para{Spans: []Span{Text{Text: "body"}, Emph{Body: []Span{Text{Text: "em"}}}}},
		List{Items: [][]Block{{SpanBlock{Span: Text{Text: "item"}}}}},
	}
	first := renderBlocksString(t, false, blocks)
	second := renderBlocksString(t, false, blocks)
	if first != second {
		t.Errorf("RenderBlocks() differs between runs:\n%q\n%q", first, second)
	}
	if want := "\\section*{Title}\n\n\nbody\\emph{em}\n\\begin{itemize}\n\\item item\n\\end{itemize}\n"; first != want {
		t.Errorf("RenderBlocks() = %q, want %q", first, want)
	}
}
