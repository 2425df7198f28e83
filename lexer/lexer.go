package lexer

import (
	"strconv"
	"strings"

	"github.com/dzonerzy/go-zcli/internal/intern"
)

// DefaultSource names the input in error locations.
const DefaultSource = "<input>"

// Lexer scans a single command line.
type Lexer struct {
	src    string
	source string
	pos    int
}

// New returns a lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, source: DefaultSource}
}

// WithSource sets the name used in error locations.
func (l *Lexer) WithSource(name string) *Lexer {
	l.source = name
	return l
}

// Next returns the next token. Once EOF is returned every later call returns
// EOF again.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return Token{Kind: EOF, Span: Span{Start: len(l.src), End: len(l.src)}}, nil
	}

	start := l.pos
	if c := l.src[start]; c == '"' || c == '\'' {
		return l.scanString(c)
	}

	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) {
		l.pos++
	}
	tok := Classify(l.src[start:l.pos])
	tok.Span = Span{Start: start, End: l.pos}
	return tok, nil
}

// Tokenize lexes src in full. The result always ends with an EOF token.
func Tokenize(src string) ([]Token, error) {
	return TokenizeInto(nil, src)
}

// TokenizeInto appends the tokens of src to dst.
func TokenizeInto(dst []Token, src string) ([]Token, error) {
	l := New(src)
	for {
		tok, err := l.Next()
		if err != nil {
			return dst, err
		}
		dst = append(dst, tok)
		if tok.Kind == EOF {
			return dst, nil
		}
	}
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) scanString(quote byte) (Token, error) {
	start := l.pos
	l.pos++

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == quote:
			l.pos++
			return Token{Kind: String, Text: b.String(), Span: Span{Start: start, End: l.pos}}, nil
		case c == '\n':
			return Token{}, newError(ErrUnterminatedString, l.source, l.src, start, "")
		case c == '\\':
			if l.pos+1 >= len(l.src) {
				return Token{}, newError(ErrUnterminatedString, l.source, l.src, start, "")
			}
			r, ok := unescape(l.src[l.pos+1])
			if !ok {
				return Token{}, newError(ErrUnknownEscape, l.source, l.src, l.pos, strconv.Quote(l.src[l.pos:l.pos+2]))
			}
			b.WriteByte(r)
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return Token{}, newError(ErrUnterminatedString, l.source, l.src, start, "")
}

func unescape(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return c, true
	}
	return 0, false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Classify assigns a kind to one unquoted word. The returned token has no
// span.
func Classify(word string) Token {
	switch {
	case len(word) > 2 && strings.HasPrefix(word, "--"):
		return Token{Kind: LongFlag, Text: intern.Intern(word[2:])}
	case len(word) > 1 && word[0] == '-' && word[1] != '-':
		return Token{Kind: ShortFlag, Text: intern.Intern(word[1:])}
	case word == "true" || word == "false":
		return Token{Kind: Bool, Text: word, Bool: word == "true"}
	case word == "*":
		return Token{Kind: Wildcard, Text: word}
	}
	if tok, ok := classifyNumber(word); ok {
		return tok
	}
	return Token{Kind: Ident, Text: word}
}

func classifyNumber(word string) (Token, bool) {
	if word == "" || !isDigit(word[0]) {
		return Token{}, false
	}
	if tok, ok := parseInt(word); ok {
		return tok, true
	}
	return parseFloat(word)
}

func parseInt(word string) (Token, bool) {
	base, digits := 10, word
	if len(word) > 1 && word[0] == '0' {
		switch word[1] {
		case 'x', 'X':
			base, digits = 16, word[2:]
		case 'b', 'B':
			base, digits = 2, word[2:]
		}
	}
	if digits == "" || digits[0] == '_' || digits[len(digits)-1] == '_' {
		return Token{}, false
	}

	clean := make([]byte, 0, len(digits))
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c == '_' {
			continue
		}
		if !isBaseDigit(c, base) {
			return Token{}, false
		}
		clean = append(clean, c)
	}

	v, err := strconv.ParseInt(string(clean), base, 64)
	if err != nil {
		return Token{}, false
	}
	return Token{Kind: Int, Text: word, Int: v, Base: base}, true
}

func parseFloat(word string) (Token, bool) {
	i := scanDigits(word, 0)
	if i == 0 {
		return Token{}, false
	}
	sawDot, sawExp := false, false
	if i < len(word) && word[i] == '.' {
		j := scanDigits(word, i+1)
		if j == i+1 {
			return Token{}, false
		}
		sawDot, i = true, j
	}
	if i < len(word) && (word[i] == 'e' || word[i] == 'E') {
		k := i + 1
		if k < len(word) && (word[k] == '+' || word[k] == '-') {
			k++
		}
		j := scanDigits(word, k)
		if j == k {
			return Token{}, false
		}
		sawExp, i = true, j
	}
	if i != len(word) || (!sawDot && !sawExp) {
		return Token{}, false
	}

	v, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return Token{}, false
	}
	return Token{Kind: Float, Text: word, Float: v, Exponent: sawExp}, true
}

func scanDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isBaseDigit(c byte, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 16:
		return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return isDigit(c)
	}
}
