// Package lexer turns a command line, or the already-split argv of a process,
// into typed tokens for the argument parser.
package lexer

import "strconv"

// Kind classifies a token.
type Kind uint8

const (
	EOF       Kind = iota // end of input
	LongFlag              // --name
	ShortFlag             // -n, or -abc for combined flags
	String                // "quoted" or 'quoted'
	Int                   // 42, 0x2a, 0b101010, 1_000
	Float                 // 3.14, 1e6, 2.5e-3
	Bool                  // true, false
	Ident                 // any other bare word
	Wildcard              // *
)

var kindNames = [...]string{
	EOF:       "end of input",
	LongFlag:  "long flag",
	ShortFlag: "short flag",
	String:    "string literal",
	Int:       "integer literal",
	Float:     "float literal",
	Bool:      "boolean literal",
	Ident:     "identifier",
	Wildcard:  "wildcard",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Span is a half-open [Start, End) byte range into the logical input.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Start }

// Token is an immutable lexical unit.
//
// Text holds the payload: the flag name without dashes, the unescaped body of
// a string literal, or the literal spelling of every other kind. The numeric
// and boolean fields are only meaningful for their own kind.
type Token struct {
	Kind Kind
	Text string
	Span Span

	Int      int64
	Base     int
	Float    float64
	Exponent bool
	Bool     bool
}

// IsFlag reports whether t is a long or short flag.
func (t Token) IsFlag() bool {
	return t.Kind == LongFlag || t.Kind == ShortFlag
}

// IsEOF reports whether t terminates the stream.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// String renders t roughly as it was typed.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<eof>"
	case LongFlag:
		return "--" + t.Text
	case ShortFlag:
		return "-" + t.Text
	case String:
		return strconv.Quote(t.Text)
	default:
		return t.Text
	}
}
