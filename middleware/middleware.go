// Package middleware wraps command handlers with cross-cutting behaviour:
// panic recovery, execution logging and pre-run validation.
//
// The package only depends on the Context interface below, so the zcli
// package can import it without a cycle. *zcli.Context satisfies Context.
package middleware

import (
	"fmt"
	"io"
)

// Context is the view of a parsed invocation that middleware relies on.
type Context interface {
	// Path is the space-separated command path, e.g. "zowex ping".
	Path() string

	// Args renders the bound positional values in declaration order.
	Args() []string

	// Has reports whether an argument was bound by the input or a default.
	Has(name string) bool

	String(name string) string
	Int(name string) int64
	Bool(name string) bool
	Float(name string) float64
	StringSlice(name string) []string

	// Set stores a value for later middleware or the handler. Keys should be
	// namespaced, e.g. "logger.start".
	Set(key string, value any)

	// Get returns a value stored with Set, or nil.
	Get(key string) any

	Stdout() io.Writer
	Stderr() io.Writer
}

// HandlerFunc runs a command and returns its exit code.
type HandlerFunc func(ctx Context) int

// Middleware decorates a handler.
type Middleware func(next HandlerFunc) HandlerFunc

// MiddlewareChain is an ordered list of middleware. The first element is
// the outermost wrapper.
type MiddlewareChain []Middleware

// Apply wraps h with every middleware of the chain.
func (chain MiddlewareChain) Apply(h HandlerFunc) HandlerFunc {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

// Use returns a new chain with mw appended.
func (chain MiddlewareChain) Use(mw ...Middleware) MiddlewareChain {
	out := make(MiddlewareChain, 0, len(chain)+len(mw))
	out = append(out, chain...)
	return append(out, mw...)
}

// Chain builds a chain preserving order.
func Chain(mw ...Middleware) MiddlewareChain {
	return MiddlewareChain(mw)
}

// ExitFailure is returned by middleware that stops a handler.
const ExitFailure = 1

// Metadata keys set by the built-in middleware.
const (
	KeyRecovered  = "recovery.error"
	KeyValidation = "validation.error"
	KeyStartTime  = "logger.start"
)

// ValidationError reports a failed validator.
type ValidationError struct {
	Field   string
	Value   any
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// RecoveryError describes a panic caught in a handler.
type RecoveryError struct {
	Panic   any
	Command string
	Stack   []byte
}

func (e *RecoveryError) Error() string {
	return "command '" + e.Command + "' panicked: " + toString(e.Panic)
}

// Config holds the knobs shared by the built-in middleware.
type Config struct {
	LogLevel    LogLevel
	LogFormat   LogFormat
	LogOutput   io.Writer // nil means the context's stderr
	IncludeArgs bool
	PrintStack  bool
	StackSize   int
	Validators  []NamedValidator
}

// LogLevel filters what the Logger middleware writes.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelDebug
)

// LogFormat selects text or JSON lines.
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// Option configures a built-in middleware.
type Option func(*Config)

// DefaultConfig logs successes and failures as text, includes arguments
// and captures 4 KiB of stack on panic without printing it.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    LogLevelInfo,
		LogFormat:   LogFormatText,
		IncludeArgs: true,
		StackSize:   4096,
	}
}

func newConfig(opts []Option) *Config {
	c := DefaultConfig()
	for _, o := range opts {
		o(c)
	}
	return c
}

func WithLogLevel(level LogLevel) Option { return func(c *Config) { c.LogLevel = level } }

func WithLogFormat(f LogFormat) Option { return func(c *Config) { c.LogFormat = f } }

// WithOutput redirects log lines and panic stacks to w.
func WithOutput(w io.Writer) Option { return func(c *Config) { c.LogOutput = w } }

func WithArgs(enabled bool) Option { return func(c *Config) { c.IncludeArgs = enabled } }

func WithStackTrace(enabled bool) Option { return func(c *Config) { c.PrintStack = enabled } }

// WithValidators appends validators run by Validator.
func WithValidators(v ...NamedValidator) Option {
	return func(c *Config) { c.Validators = append(c.Validators, v...) }
}

func (c *Config) output(ctx Context) io.Writer {
	if c.LogOutput != nil {
		return c.LogOutput
	}
	return ctx.Stderr()
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
