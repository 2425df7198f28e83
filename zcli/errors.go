package zcli

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration error kinds. Compare with errors.Is.
var (
	ErrEmptyName      = errors.New("empty name")
	ErrReservedName   = errors.New("reserved name")
	ErrDuplicateName  = errors.New("duplicate name")
	ErrDuplicateAlias = errors.New("duplicate alias")
	ErrSelfAlias      = errors.New("alias equals command name")
	ErrInvalidAlias   = errors.New("invalid alias")
	ErrInvalidKind    = errors.New("invalid argument kind")
	ErrInvalidDefault = errors.New("invalid default value")
	ErrNilCommand     = errors.New("nil command")
)

// ConfigError reports a mis-registered command tree. These are programming
// errors: Must turns them into a panic at startup.
type ConfigError struct {
	Err     error
	Command string
	Name    string
	Detail  string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command %q: %v", e.Command, e.Err)
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErr(cmd string, kind error, name, detail string) *ConfigError {
	return &ConfigError{Err: kind, Command: cmd, Name: name, Detail: detail}
}

// Must panics with err when it is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// ErrorType categorises parse errors.
type ErrorType string

const (
	ErrorTypeUnknownFlag        ErrorType = "unknown_flag"
	ErrorTypeUnknownCommand     ErrorType = "unknown_command"
	ErrorTypeMissingValue       ErrorType = "missing_value"
	ErrorTypeInvalidValue       ErrorType = "invalid_value"
	ErrorTypeAmbiguousAlias     ErrorType = "ambiguous_alias"
	ErrorTypeMissingRequired    ErrorType = "missing_required"
	ErrorTypeUnexpectedArgument ErrorType = "unexpected_argument"
	ErrorTypeConflict           ErrorType = "conflicting_options"
	ErrorTypeLex                ErrorType = "lex_error"
	ErrorTypeNoArguments        ErrorType = "no_arguments"
)

// ParseError is the error form of a failed ParseResult.
type ParseError struct {
	Type        ErrorType
	Message     string
	Suggestion  string
	CommandPath string
	Cause       error
}

func (e *ParseError) Error() string {
	if e.Suggestion == "" {
		return e.Message
	}
	return e.Message + " " + didYouMean(e.Suggestion)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func didYouMean(s string) string {
	return "Did you mean '" + s + "'?"
}
