package mdtex

import "testing"

func TestCanonicalLang(t *testing.T) {
	type args struct {
		tag  string
		code string
	}
	tests := []struct {
		name string
		args args
		want string
	}{
		{name: "Alias resolves to canonical name", args: args{tag: "py"}, want: "python"},
		{name: "Canonical name stays put", args: args{tag: "go"}, want: "go"},
		{name: "Case is normalized", args: args{tag: "Go"}, want: "go"},
		{name: "Unknown tag is returned as written", args: args{tag: "made-up-lang"}, want: "made-up-lang"},
		{name: "Empty tag and empty code stay empty", args: args{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalLang(tt.args.tag, tt.args.code); got != tt.want {
				t.Errorf("CanonicalLang() = %v, want %v", got, tt.want)
			}
		})
	}
}
