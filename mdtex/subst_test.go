package mdtex

import (
	"fmt"
	"reflect"
	"testing"
)

type codeMap map[string]string

func (m codeMap) ResolveCode(name string) (string, error) {
	code, ok := m[name]
	if !ok {
		return "", fmt.Errorf("unknown code reference %q", name)
	}
	return code, nil
}

type linkMap map[string]string

func (m linkMap) ResolveLink(target string) (string, error) {
	url, ok := m[target]
	if !ok {
		return "", fmt.Errorf("unknown document %q", target)
	}
	return url, nil
}

func TestSubstitute(t *testing.T) {
	sc := SubstContext{
		Substitutions: map[string]string{"version": "1.2.0"},
		Code: codeMap{
			"hello.go": "package main\n",
			"demo":     "#ifdef LATEX\nyes\n#endif\n",
		},
		Links:  linkMap{"guide.md#setup": "guide.pdf#setup"},
		Define: "LATEX",
	}

	tests := []struct {
		name    string
		blocks  []Block
		want    []Block
		wantErr bool
	}{
		{
			name:   "Code reference becomes a code block",
			blocks: []Block{CodeRef{Name: "hello.go", Lang: "go"}},
			want:   []Block{CodeBlock{Lang: "go", Text: "package main\n"}},
		},
		{
			name:   "Script code reference is adjusted during expansion",
			blocks: []Block{CodeRef{Name: "demo", Lang: "script"}},
			want:   []Block{CodeBlock{Lang: "script", Text: "yes\n"}},
		},
		{
			name:    "Unknown code reference fails the pass",
			blocks:  []Block{CodeRef{Name: "nope"}},
			wantErr: true,
		},
		{
			name: "Document link becomes a direct link",
			blocks: []Block{Para{Spans: []Span{
				DocLink{Target: "guide.md#setup", Body: []Span{Text{Text: "setup"}}},
			}}},
			want: []Block{Para{Spans: []Span{
				Link{Target: "guide.pdf#setup", Body: []Span{Text{Text: "setup"}}},
			}}},
		},
		{
			name: "Unknown document link fails the pass",
			blocks: []Block{Para{Spans: []Span{
				DocLink{Target: "missing.md", Body: []Span{Text{Text: "x"}}},
			}}},
			wantErr: true,
		},
		{
			name:   "Macros are replaced in literal text",
			blocks: []Block{Para{Spans: []Span{Text{Text: "release {{version}} is out"}}}},
			want:   []Block{Para{Spans: []Span{Text{Text: "release 1.2.0 is out"}}}},
		},
		{
			name: "Macros inside emphasis",
			blocks: []Block{Para{Spans: []Span{
				Emph{Body: []Span{Text{Text: "{{version}}"}}},
			}}},
			want: []Block{Para{Spans: []Span{
				Emph{Body: []Span{Text{Text: "1.2.0"}}},
			}}},
		},
		{
			name: "Nested blocks are walked",
			blocks: []Block{Quote{Body: []Block{
				List{Items: [][]Block{{CodeRef{Name: "hello.go", Lang: "go"}}}},
			}}},
			want: []Block{Quote{Body: []Block{
				List{Items: [][]Block{{CodeBlock{Lang: "go", Text: "package main\n"}}}},
			}}},
		},
		{
			name:   "Other blocks pass through",
			blocks: []Block{Rule{}, HTMLBlock{Text: "<hr/>"}},
			want:   []Block{Rule{}, HTMLBlock{Text: "<hr/>"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sc.Substitute(tt.blocks)
			if (err != nil) != tt.wantErr {
				t.Errorf("Substitute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Substitute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubstituteWithoutResolvers(t *testing.T) {
	sc := SubstContext{}
	blocks := []Block{
		CodeRef{Name: "hello.go"},
		Para{Spans: []Span{DocLink{Target: "guide.md", Body: []Span{Text{Text: "g"}}}}},
	}
	got, err := sc.Substitute(blocks)
	if err != nil {
		t.Fatalf("Substitute() error = %v", err)
	}
	if !reflect.DeepEqual(got, blocks) {
		t.Errorf("Substitute() = %v, want placeholders preserved", got)
	}
}

func TestRendererRender(t *testing.T) {
	r := Renderer{
		Substitutions: map[string]string{"name": "world"},
		Code:          codeMap{"hello.go": "package main\n"},
	}
	blocks := []Block{
		Heading{Level: 1, Body: []Span{Text{Text: "Title"}}},
		Para{Spans: []Span{Text{Text: "hello {{name}}"}}},
		CodeRef{Name: "hello.go", Lang: "go"},
	}

	br := &ByteRenderer{}
	if err := r.Render(br, blocks); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "\\section*{Title}\n" +
		"\n\nhello world\n" +
		"\n\\begin{lstlisting}[language=go]\npackage main\n\\end{lstlisting}\n"
	if got := br.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
