package zcli

import "github.com/dzonerzy/go-zcli/lexer"

// coerce converts tok into a value for an argument of the given kind. A none
// result means the token cannot serve as such a value.
func coerce(tok lexer.Token, kind ArgKind) ArgValue {
	switch kind {
	case Flag:
		switch tok.Kind {
		case lexer.Bool:
			return BoolValue(tok.Bool)
		case lexer.Ident, lexer.String:
			return BoolValue(tok.Text == "true")
		}
	case Single, Positional:
		switch tok.Kind {
		case lexer.Int:
			v := IntValue(tok.Int)
			v.lit = tok.Text
			return v
		case lexer.Float:
			v := FloatValue(tok.Float)
			v.lit = tok.Text
			return v
		case lexer.Bool, lexer.String, lexer.Ident, lexer.Wildcard:
			return StringValue(tok.Text)
		}
	case Multiple:
		switch tok.Kind {
		case lexer.Int, lexer.Float, lexer.Bool, lexer.String, lexer.Ident, lexer.Wildcard:
			return StringValue(tok.Text)
		}
	}
	return NoValue()
}

// denotesBool reports whether tok may serve as the explicit value of a flag.
func denotesBool(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Bool:
		return true
	case lexer.Ident, lexer.String:
		return tok.Text == "true" || tok.Text == "false"
	}
	return false
}
