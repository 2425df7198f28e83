package zcli

import "maps"

// Status is the outcome of a parse.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusHelpRequested
	StatusParseError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusHelpRequested:
		return "help requested"
	case StatusParseError:
		return "parse error"
	default:
		return "unknown"
	}
}

// ParseResult is what parsing produced for the command that finished the
// walk: bound values, status and exit code.
type ParseResult struct {
	Status       Status
	ExitCode     int
	ErrorMessage string
	// Suggestion is the nearest known spelling offered for an unknown option
	// or command, without the surrounding "Did you mean" text.
	Suggestion  string
	CommandPath string

	Keywords    map[string]ArgValue
	Positionals map[string]ArgValue
	// Dynamic holds undeclared long options captured by a command with
	// dynamic keywords enabled.
	Dynamic map[string]ArgValue

	command *Command
	errType ErrorType
	cause   error
}

func newResult(cmd *Command, path string) *ParseResult {
	return &ParseResult{
		CommandPath: path,
		Keywords:    make(map[string]ArgValue, len(cmd.keywords)),
		Positionals: make(map[string]ArgValue, len(cmd.positionals)),
		Dynamic:     make(map[string]ArgValue),
		command:     cmd,
	}
}

func errorResult(typ ErrorType, msg string, cause error) *ParseResult {
	return &ParseResult{
		Status:       StatusParseError,
		ExitCode:     ExitFailure,
		ErrorMessage: msg,
		Keywords:     map[string]ArgValue{},
		Positionals:  map[string]ArgValue{},
		Dynamic:      map[string]ArgValue{},
		errType:      typ,
		cause:        cause,
	}
}

// Command is the command the walk ended on. It is nil for failures raised
// before the root command ran, such as lexer errors.
func (r *ParseResult) Command() *Command { return r.command }

// OK reports a successful parse.
func (r *ParseResult) OK() bool { return r.Status == StatusSuccess }

// Err returns a *ParseError for failed parses and nil otherwise.
func (r *ParseResult) Err() error {
	if r.Status != StatusParseError {
		return nil
	}
	return &ParseError{
		Type:        r.errType,
		Message:     r.ErrorMessage,
		Suggestion:  r.Suggestion,
		CommandPath: r.CommandPath,
		Cause:       r.cause,
	}
}

// Value looks name up among keyword, positional and dynamic values, in that
// order.
func (r *ParseResult) Value(name string) (ArgValue, bool) {
	if v, ok := r.Keywords[name]; ok {
		return v, true
	}
	if v, ok := r.Positionals[name]; ok {
		return v, true
	}
	v, ok := r.Dynamic[name]
	return v, ok
}

// Has reports whether name holds a non-empty value.
func (r *ParseResult) Has(name string) bool {
	v, ok := r.Value(name)
	return ok && !v.IsNone()
}

// declared returns the default declared for name on the owning command.
func (r *ParseResult) declared(name string) ArgValue {
	if r.command == nil {
		return NoValue()
	}
	if d := r.command.keywordByName(name); d != nil {
		return d.Default
	}
	for _, d := range r.command.positionals {
		if d.Name == name {
			return d.Default
		}
	}
	return NoValue()
}

// lookup returns the bound value when it satisfies ok, falling back to the
// declared default.
func (r *ParseResult) lookup(name string, ok func(ArgValue) bool) ArgValue {
	if v, found := r.Value(name); found && ok(v) {
		return v
	}
	return r.declared(name)
}

// Bool returns the boolean bound to name, or its declared default.
func (r *ParseResult) Bool(name string) bool {
	b, _ := r.lookup(name, ArgValue.IsBool).AsBool()
	return b
}

// Int returns the integer bound to name, or its declared default.
func (r *ParseResult) Int(name string) int64 {
	i, _ := r.lookup(name, ArgValue.IsInt).AsInt()
	return i
}

// Float returns the float bound to name, or its declared default. Integer
// values are widened.
func (r *ParseResult) Float(name string) float64 {
	v := r.lookup(name, func(v ArgValue) bool { return v.IsFloat() || v.IsInt() })
	if i, ok := v.AsInt(); ok {
		return float64(i)
	}
	f, _ := v.AsFloat()
	return f
}

// String returns the value bound to name as text. Scalars of other kinds are
// rendered; lists and empty values fall back to the declared default.
func (r *ParseResult) String(name string) string {
	v := r.lookup(name, func(v ArgValue) bool { return !v.IsNone() && !v.IsList() })
	if v.IsNone() || v.IsList() {
		return ""
	}
	return v.String()
}

// StringSlice returns the list bound to name, or its declared default.
func (r *ParseResult) StringSlice(name string) []string {
	l, _ := r.lookup(name, ArgValue.IsList).AsList()
	return l
}

// Clone returns a deep copy of r.
func (r *ParseResult) Clone() *ParseResult {
	c := *r
	c.Keywords = cloneValues(r.Keywords)
	c.Positionals = cloneValues(r.Positionals)
	c.Dynamic = cloneValues(r.Dynamic)
	return &c
}

func cloneValues(m map[string]ArgValue) map[string]ArgValue {
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = v.Clone()
	}
	return out
}
