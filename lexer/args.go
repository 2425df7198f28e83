package lexer

// FromArgs tokenizes process arguments. Every element is one token; spans
// are computed as if the elements had been joined with single spaces. The
// result ends with an EOF token and never fails.
func FromArgs(args []string) []Token {
	return FromArgsInto(make([]Token, 0, len(args)+1), args)
}

// FromArgsInto appends the tokens of args to dst.
func FromArgsInto(dst []Token, args []string) []Token {
	pos := 0
	for _, arg := range args {
		tok := classifyArg(arg)
		tok.Span = Span{Start: pos, End: pos + len(arg)}
		dst = append(dst, tok)
		pos += len(arg) + 1
	}
	end := max(pos-1, 0)
	return append(dst, Token{Kind: EOF, Span: Span{Start: end, End: end}})
}

func classifyArg(arg string) Token {
	if n := len(arg); n >= 2 && (arg[0] == '"' || arg[0] == '\'') && arg[n-1] == arg[0] {
		return Token{Kind: String, Text: arg[1 : n-1]}
	}
	tok := Classify(arg)
	switch tok.Kind {
	case LongFlag, ShortFlag, Int, Float, Bool:
		return tok
	}
	return Token{Kind: Ident, Text: arg}
}
