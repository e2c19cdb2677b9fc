package mdtex

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "Plain text unchanged",
			text: "nothing special here",
			want: "nothing special here",
		},
		{
			name: "Percent ampersand dollar",
			text: "100% done & $5",
			want: `100\% done \& \$5`,
		},
		{
			name: "Backslash",
			text: `a\b`,
			want: `a\textbackslash{}b`,
		},
		{
			name: "Backslash before special characters",
			text: `\&`,
			want: `\textbackslash{}\&`,
		},
		{
			name: "Braces",
			text: "{x}",
			want: `\{x\}`,
		},
		{
			name: "Hash and underscore",
			text: "#tag my_id",
			want: `\#tag my\_id`,
		},
		{
			name: "Tilde and circumflex",
			text: "~/dir a^2",
			want: `\textasciitilde{}/dir a\textasciicircum{}2`,
		},
		{
			name: "HTML entities decoded first",
			text: "Tom &amp; Jerry &lt;3",
			want: `Tom \& Jerry <3`,
		},
		{
			name: "Empty",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.text); got != tt.want {
				t.Errorf("Escape() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelTableResolve(t *testing.T) {
	labels := LabelTable{
		"mylabel":   {URL: "https://example.com/joined"},
		"two words": {URL: "https://example.com/spaced"},
		"exact":     {URL: "https://example.com/exact"},
	}

	tests := []struct {
		name    string
		label   string
		wantURL string
		wantOK  bool
	}{
		{
			name:    "Exact match",
			label:   "exact",
			wantURL: "https://example.com/exact",
			wantOK:  true,
		},
		{
			name:    "CRLF removed",
			label:   "my\r\nlabel",
			wantURL: "https://example.com/joined",
			wantOK:  true,
		},
		{
			name:    "LF removed",
			label:   "my\nlabel",
			wantURL: "https://example.com/joined",
			wantOK:  true,
		},
		{
			name:    "LF replaced by space",
			label:   "two\nwords",
			wantURL: "https://example.com/spaced",
			wantOK:  true,
		},
		{
			name:    "Miss",
			label:   "unknown",
			wantURL: "",
			wantOK:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := labels.Resolve(tt.label)
			if ok != tt.wantOK {
				t.Errorf("Resolve() ok = %v, want %v", ok, tt.wantOK)
				return
			}
			if got.URL != tt.wantURL {
				t.Errorf("Resolve() = %v, want %v", got.URL, tt.wantURL)
			}
		})
	}
}
