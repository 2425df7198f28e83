//nolint:testpackage // white-box tests for the argv tokenizer
package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []Token
	}{
		{
			name: "none",
			args: nil,
			want: []Token{{Kind: EOF}},
		},
		{
			name: "flags and values",
			args: []string{"ping", "--message", "hi there", "-v"},
			want: []Token{
				{Kind: Ident, Text: "ping", Span: Span{0, 4}},
				{Kind: LongFlag, Text: "message", Span: Span{5, 14}},
				{Kind: Ident, Text: "hi there", Span: Span{15, 23}},
				{Kind: ShortFlag, Text: "v", Span: Span{24, 26}},
				{Kind: EOF, Span: Span{26, 26}},
			},
		},
		{
			name: "literals keep their kind",
			args: []string{"42", "1.5", "false"},
			want: []Token{
				{Kind: Int, Text: "42", Int: 42, Base: 10, Span: Span{0, 2}},
				{Kind: Float, Text: "1.5", Float: 1.5, Span: Span{3, 6}},
				{Kind: Bool, Text: "false", Span: Span{7, 12}},
				{Kind: EOF, Span: Span{12, 12}},
			},
		},
		{
			name: "quotes are stripped without escape processing",
			args: []string{`"a\n"`, `'x'`, `"`},
			want: []Token{
				{Kind: String, Text: `a\n`, Span: Span{0, 5}},
				{Kind: String, Text: "x", Span: Span{6, 9}},
				{Kind: Ident, Text: `"`, Span: Span{10, 11}},
				{Kind: EOF, Span: Span{11, 11}},
			},
		},
		{
			name: "anything else is an identifier",
			args: []string{"*", "", "-", "a b"},
			want: []Token{
				{Kind: Ident, Text: "*", Span: Span{0, 1}},
				{Kind: Ident, Text: "", Span: Span{2, 2}},
				{Kind: Ident, Text: "-", Span: Span{3, 4}},
				{Kind: Ident, Text: "a b", Span: Span{5, 8}},
				{Kind: EOF, Span: Span{8, 8}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromArgs(tt.args)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromArgs(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}
