//nolint:testpackage // white-box tests for the scanner
package lexer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "",
			want:  []Token{{Kind: EOF, Span: Span{0, 0}}},
		},
		{
			name:  "flags and words",
			input: "ds list --max 5 -v",
			want: []Token{
				{Kind: Ident, Text: "ds", Span: Span{0, 2}},
				{Kind: Ident, Text: "list", Span: Span{3, 7}},
				{Kind: LongFlag, Text: "max", Span: Span{8, 13}},
				{Kind: Int, Text: "5", Int: 5, Base: 10, Span: Span{14, 15}},
				{Kind: ShortFlag, Text: "v", Span: Span{16, 18}},
				{Kind: EOF, Span: Span{18, 18}},
			},
		},
		{
			name:  "combined short flags stay one token",
			input: "-abc",
			want: []Token{
				{Kind: ShortFlag, Text: "abc", Span: Span{0, 4}},
				{Kind: EOF, Span: Span{4, 4}},
			},
		},
		{
			name:  "bare dashes are identifiers",
			input: "- --",
			want: []Token{
				{Kind: Ident, Text: "-", Span: Span{0, 1}},
				{Kind: Ident, Text: "--", Span: Span{2, 4}},
				{Kind: EOF, Span: Span{4, 4}},
			},
		},
		{
			name:  "quoted strings",
			input: `"a b" 'c\'d' "x\ty"`,
			want: []Token{
				{Kind: String, Text: "a b", Span: Span{0, 5}},
				{Kind: String, Text: "c'd", Span: Span{6, 12}},
				{Kind: String, Text: "x\ty", Span: Span{13, 19}},
				{Kind: EOF, Span: Span{19, 19}},
			},
		},
		{
			name:  "literals",
			input: "0x1F 0b101 1_000 3.5 2e3 true false *",
			want: []Token{
				{Kind: Int, Text: "0x1F", Int: 31, Base: 16, Span: Span{0, 4}},
				{Kind: Int, Text: "0b101", Int: 5, Base: 2, Span: Span{5, 10}},
				{Kind: Int, Text: "1_000", Int: 1000, Base: 10, Span: Span{11, 16}},
				{Kind: Float, Text: "3.5", Float: 3.5, Span: Span{17, 20}},
				{Kind: Float, Text: "2e3", Float: 2000, Exponent: true, Span: Span{21, 24}},
				{Kind: Bool, Text: "true", Bool: true, Span: Span{25, 29}},
				{Kind: Bool, Text: "false", Span: Span{30, 35}},
				{Kind: Wildcard, Text: "*", Span: Span{36, 37}},
				{Kind: EOF, Span: Span{37, 37}},
			},
		},
		{
			name:  "malformed numbers degrade",
			input: "0x 12ab 1. 99999999999999999999 /u/user",
			want: []Token{
				{Kind: Ident, Text: "0x", Span: Span{0, 2}},
				{Kind: Ident, Text: "12ab", Span: Span{3, 7}},
				{Kind: Ident, Text: "1.", Span: Span{8, 10}},
				{Kind: Ident, Text: "99999999999999999999", Span: Span{11, 31}},
				{Kind: Ident, Text: "/u/user", Span: Span{32, 39}},
				{Kind: EOF, Span: Span{39, 39}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		line  int
		col   int
		msg   string
	}{
		{
			name:  "unterminated",
			input: `echo "abc`,
			kind:  ErrUnterminatedString,
			line:  1, col: 6,
			msg: "<input> (1:6): unclosed string literal",
		},
		{
			name:  "newline in string",
			input: "'abc\ndef'",
			kind:  ErrUnterminatedString,
			line:  1, col: 1,
			msg: "<input> (1:1): unclosed string literal",
		},
		{
			name:  "trailing backslash",
			input: `"abc\`,
			kind:  ErrUnterminatedString,
			line:  1, col: 1,
			msg: "<input> (1:1): unclosed string literal",
		},
		{
			name:  "unknown escape",
			input: `x "a\qb"`,
			kind:  ErrUnknownEscape,
			line:  1, col: 5,
			msg: `<input> (1:5): unknown escape sequence "\\q"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("Tokenize(%q) error = %v, want *Error", tt.input, err)
			}
			if lexErr.Kind != tt.kind || lexErr.Line != tt.line || lexErr.Col != tt.col {
				t.Errorf("got kind=%v at %d:%d, want %v at %d:%d",
					lexErr.Kind, lexErr.Line, lexErr.Col, tt.kind, tt.line, tt.col)
			}
			if err.Error() != tt.msg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.msg)
			}
			if !errors.Is(err, &Error{Kind: tt.kind}) {
				t.Errorf("errors.Is did not match kind %v", tt.kind)
			}
		})
	}
}

func TestLexerWithSource(t *testing.T) {
	_, err := New(`"open`).WithSource("<repl>").Next()
	if err == nil || err.Error() != "<repl> (1:1): unclosed string literal" {
		t.Errorf("Next() error = %v", err)
	}
}

func TestLexerRepeatsEOF(t *testing.T) {
	l := New("x")
	if tok, _ := l.Next(); tok.Kind != Ident {
		t.Fatalf("first token = %v", tok.Kind)
	}
	for range 2 {
		if tok, _ := l.Next(); tok.Kind != EOF {
			t.Errorf("token after end = %v, want EOF", tok.Kind)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: LongFlag, Text: "file"}, "--file"},
		{Token{Kind: ShortFlag, Text: "f"}, "-f"},
		{Token{Kind: String, Text: `a "b"`}, `"a \"b\""`},
		{Token{Kind: Int, Text: "0x10", Int: 16}, "0x10"},
		{Token{Kind: EOF}, "<eof>"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.tok.Kind, got, tt.want)
		}
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
