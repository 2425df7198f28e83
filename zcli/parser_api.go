package zcli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dzonerzy/go-zcli/internal/fuzzy"
	"github.com/dzonerzy/go-zcli/internal/pool"
	cliio "github.com/dzonerzy/go-zcli/io"
	"github.com/dzonerzy/go-zcli/lexer"
	"github.com/dzonerzy/go-zcli/middleware"
)

// DefaultPrompt is shown before each line in interactive mode.
const DefaultPrompt = "> "

// InteractiveFlag is the root keyword registered by WithInteractive.
const InteractiveFlag = "interactive"

var tokenBuffers = pool.NewSlicePool[lexer.Token](32, 1024)

// ArgumentParser owns the root command and turns argv or a typed line into a
// dispatched ParseResult.
type ArgumentParser struct {
	root    *Command
	io      *cliio.IOManager
	log     *cliio.Logger
	mw      []middleware.Middleware
	matcher *fuzzy.Matcher
	prompt  string
	trace   bool

	replFlag    bool
	interactive bool
}

// Option configures an ArgumentParser.
type Option func(*ArgumentParser)

// WithIO replaces the default stdin/stdout/stderr manager.
func WithIO(m *cliio.IOManager) Option {
	return func(p *ArgumentParser) { p.io = m }
}

// WithLogger replaces the default logger.
func WithLogger(l *cliio.Logger) Option {
	return func(p *ArgumentParser) { p.log = l }
}

// WithTrace logs every binding decision at debug level.
func WithTrace(on bool) Option {
	return func(p *ArgumentParser) { p.trace = on }
}

// WithMiddleware wraps every handler.
func WithMiddleware(mw ...middleware.Middleware) Option {
	return func(p *ArgumentParser) { p.mw = append(p.mw, mw...) }
}

// WithInteractive registers --interactive (alias --it) on the root command.
// Passing it without a sub-command starts Interactive instead of printing the
// root usage.
func WithInteractive() Option {
	return func(p *ArgumentParser) { p.replFlag = true }
}

// WithPrompt sets the interactive prompt.
func WithPrompt(prompt string) Option {
	return func(p *ArgumentParser) { p.prompt = prompt }
}

// WithSuggestionDistance changes how far a suggestion may be from the
// unknown word.
func WithSuggestionDistance(n int) Option {
	return func(p *ArgumentParser) { p.matcher = fuzzy.NewMatcher(n) }
}

// New creates a parser whose root command is named prog.
func New(prog, description string, opts ...Option) *ArgumentParser {
	p := &ArgumentParser{
		root:    NewCommand(prog, description),
		matcher: fuzzy.NewMatcher(fuzzy.DefaultMaxDistance),
		prompt:  DefaultPrompt,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.io == nil {
		p.io = cliio.New()
	}
	if p.log == nil {
		p.log = cliio.NewLogger(p.io).WithFormat(cliio.LogFormatTagged)
	}
	if p.trace {
		p.log.WithLevel(cliio.LevelDebug)
	}
	if p.replFlag {
		p.root.Keyword(InteractiveFlag).Alias("--it").Help("interactive (REPL) mode").MustAdd()
	}
	return p
}

// RootCommand returns the root of the command tree.
func (p *ArgumentParser) RootCommand() *Command { return p.root }

// IO returns the I/O manager used for help and diagnostics.
func (p *ArgumentParser) IO() *cliio.IOManager { return p.io }

// Logger returns the parser's logger.
func (p *ArgumentParser) Logger() *cliio.Logger { return p.log }

// Use appends global handler middleware.
func (p *ArgumentParser) Use(mw ...middleware.Middleware) *ArgumentParser {
	p.mw = append(p.mw, mw...)
	return p
}

// Parse handles a full process argv, program name included.
func (p *ArgumentParser) Parse(argv []string) *ParseResult {
	if len(argv) == 0 {
		res := errorResult(ErrorTypeNoArguments, "no arguments provided", nil)
		res.CommandPath = p.root.name
		writeDiagnostic(p.io.Err(), p.io, res.ErrorMessage, "")
		return res
	}
	return p.ParseArgs(argv[1:])
}

// ParseArgs handles process arguments without the program name.
func (p *ArgumentParser) ParseArgs(args []string) *ParseResult {
	buf := tokenBuffers.Get()
	defer tokenBuffers.Put(buf)
	*buf = lexer.FromArgsInto(*buf, args)
	return p.run(*buf)
}

// ParseLine lexes and handles a single line, as typed in interactive mode.
func (p *ArgumentParser) ParseLine(line string) *ParseResult {
	buf := tokenBuffers.Get()
	defer tokenBuffers.Put(buf)

	toks, err := lexer.TokenizeInto(*buf, line)
	*buf = toks
	if err != nil {
		res := errorResult(ErrorTypeLex, err.Error(), err)
		res.CommandPath = p.root.name
		errw := p.io.Err()
		writeDiagnostic(errw, p.io, "lexer error: "+err.Error(), "")
		p.root.WriteHelp(errw, p.root.name)
		return res
	}
	return p.run(toks)
}

func (p *ArgumentParser) run(tokens []lexer.Token) *ParseResult {
	w := &walk{
		tokens:  tokens,
		io:      p.io,
		log:     p.log,
		mw:      p.mw,
		matcher: p.matcher,
	}
	if p.replFlag {
		w.root, w.repl = p.root, p.Interactive
	}
	return p.root.parse(w, "")
}

// Execute parses args and reports a non-zero exit code as an *ExitError.
func (p *ArgumentParser) Execute(args []string) error {
	res := p.ParseArgs(args)
	if res.ExitCode == ExitSuccess {
		return nil
	}
	return &ExitError{Code: res.ExitCode, Err: res.Err()}
}

// Run parses os.Args and returns the exit code.
func (p *ArgumentParser) Run() int {
	return p.Parse(os.Args).ExitCode
}

// WriteBashCompletion writes a bash completion script for the whole tree.
func (p *ArgumentParser) WriteBashCompletion(w io.Writer) error {
	return p.root.WriteBashCompletion(w, p.root.name)
}

// WriteZshCompletion writes a zsh completion script for the whole tree.
func (p *ArgumentParser) WriteZshCompletion(w io.Writer) error {
	return p.root.WriteZshCompletion(w, p.root.name)
}

// Interactive reads lines from the input stream and runs each one until EOF
// or a line reading "exit" or "quit". It returns the exit code of the last
// command run. Calling it from a handler that is already running inside an
// interactive session is a no-op.
func (p *ArgumentParser) Interactive() int {
	if p.interactive {
		p.log.Warning("already in interactive mode")
		return ExitSuccess
	}
	p.interactive = true
	defer func() { p.interactive = false }()

	out := p.io.Out()
	sc := bufio.NewScanner(p.io.In())
	code := ExitSuccess
	for {
		fmt.Fprint(out, p.prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		code = p.ParseLine(line).ExitCode
	}
	if err := sc.Err(); err != nil {
		p.log.Error("read input: %v", err)
		return ExitFailure
	}
	return code
}

// InInteractive reports whether Interactive is running.
func (p *ArgumentParser) InInteractive() bool { return p.interactive }
