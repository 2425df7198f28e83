package lexer

import "fmt"

// ErrorKind enumerates structural lexing failures.
type ErrorKind int

const (
	ErrUnterminatedString ErrorKind = iota + 1
	ErrUnknownEscape
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnterminatedString:
		return "unclosed string literal"
	case ErrUnknownEscape:
		return "unknown escape sequence"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a hard lexing failure. Line and Col are 1-based.
type Error struct {
	Kind   ErrorKind
	Source string
	Offset int
	Line   int
	Col    int
	Detail string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	return fmt.Sprintf("%s (%d:%d): %s", e.Source, e.Line, e.Col, msg)
}

// Is matches errors of the same kind, so callers can test with a zero-offset
// template such as &Error{Kind: ErrUnknownEscape}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, source, src string, offset int, detail string) *Error {
	line, col := 1, 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &Error{Kind: kind, Source: source, Offset: offset, Line: line, Col: col, Detail: detail}
}
