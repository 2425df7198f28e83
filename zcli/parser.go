package zcli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dzonerzy/go-zcli/internal/fuzzy"
	cliio "github.com/dzonerzy/go-zcli/io"
	"github.com/dzonerzy/go-zcli/lexer"
	"github.com/dzonerzy/go-zcli/middleware"
)

// walk is the state of one top-level parse. The cursor only moves forward
// and is shared by every command level.
type walk struct {
	tokens  []lexer.Token
	pos     int
	io      *cliio.IOManager
	log     *cliio.Logger
	mw      []middleware.Middleware
	matcher *fuzzy.Matcher

	// repl runs when root ends the walk with --interactive set.
	root *Command
	repl func() int
}

func (w *walk) more() bool {
	return w.pos < len(w.tokens) && w.tokens[w.pos].Kind != lexer.EOF
}

func (w *walk) peek() lexer.Token { return w.tokens[w.pos] }

// valueAhead reports whether the token at the cursor can be consumed as a
// value.
func (w *walk) valueAhead() bool {
	return w.more() && !w.peek().IsFlag()
}

// binding is the per-command mutable state of the walk.
type binding struct {
	cmd      *Command
	res      *ParseResult
	seen     map[string]struct{}
	posIndex int
}

func (b *binding) markSeen(name string) { b.seen[name] = struct{}{} }

func (b *binding) wasSeen(name string) bool {
	_, ok := b.seen[name]
	return ok
}

// parse binds tokens against c starting at the cursor. prefix is the path of
// the parent command followed by a space, or "" for the root.
func (c *Command) parse(w *walk, prefix string) *ParseResult {
	b := &binding{
		cmd:  c,
		res:  newResult(c, prefix+c.name),
		seen: make(map[string]struct{}),
	}
	for _, d := range c.keywords {
		if !d.isHelp {
			b.res.Keywords[d.Name] = d.Default.Clone()
		}
	}
	w.log.Debug("parse %q at token %d", b.res.CommandPath, w.pos)

	for w.more() {
		tok := w.peek()
		switch {
		case tok.Kind == lexer.ShortFlag && len(tok.Text) > 1:
			if done := c.bindCombined(w, b, tok); done {
				return b.res
			}
		case tok.IsFlag():
			if done := c.bindFlag(w, b, tok); done {
				return b.res
			}
		default:
			if tok.Kind == lexer.Ident && b.posIndex == 0 {
				sub, ambiguous := c.matchCommand(tok.Text)
				if ambiguous {
					return w.fail(b, ErrorTypeAmbiguousAlias,
						fmt.Sprintf("ambiguous alias '%s' matches multiple subcommands.", tok.Text), "")
				}
				if sub != nil {
					w.pos++
					w.log.Debug("descend into %q", sub.name)
					return sub.parse(w, b.res.CommandPath+" ")
				}
				if len(c.commands) > 0 && c.handler == nil {
					return w.fail(b, ErrorTypeUnknownCommand,
						"unknown command or group: "+tok.Text, c.suggestCommand(w, tok.Text))
				}
			}
			if done := c.bindPositional(w, b, tok); done {
				return b.res
			}
		}
	}

	if res := c.finish(w, b); res != nil {
		return res
	}
	return c.dispatch(w, b)
}

// bindCombined handles -abc, where every letter must be a plain flag.
func (c *Command) bindCombined(w *walk, b *binding, tok lexer.Token) bool {
	for _, r := range tok.Text {
		short := string(r)
		d := c.findShort(short)
		if d == nil {
			w.fail(b, ErrorTypeUnknownFlag, "unknown option in combined flags: -"+short, "")
			return true
		}
		if d.isHelp {
			w.help(b)
			return true
		}
		if d.Kind != Flag {
			w.fail(b, ErrorTypeMissingValue,
				fmt.Sprintf("option -%s requires a value and cannot be combined.", short), "")
			return true
		}
		c.setFlag(b, d, true)
	}
	w.pos++
	return false
}

// bindFlag handles a single --name or -n token.
func (c *Command) bindFlag(w *walk, b *binding, tok lexer.Token) bool {
	var d *ArgumentDef
	if tok.Kind == lexer.LongFlag {
		d = c.findLong(tok.Text)
	} else {
		d = c.findShort(tok.Text)
	}
	if d == nil {
		if tok.Kind == lexer.LongFlag && c.dynamic != nil {
			return c.bindDynamic(w, b, tok)
		}
		w.fail(b, ErrorTypeUnknownFlag, "unknown option: "+tok.String(), c.suggestFlag(w, tok.Text))
		return true
	}
	if d.isHelp {
		w.help(b)
		return true
	}
	w.pos++

	switch d.Kind {
	case Flag:
		on := true
		if w.valueAhead() && denotesBool(w.peek()) {
			on, _ = coerce(w.peek(), Flag).AsBool()
			w.pos++
		}
		c.setFlag(b, d, on)
	case Single:
		if !w.valueAhead() {
			w.fail(b, ErrorTypeMissingValue, "option "+d.DisplayName()+" requires a value.", "")
			return true
		}
		v := coerce(w.peek(), Single)
		if v.IsNone() {
			w.fail(b, ErrorTypeInvalidValue, "invalid value for option "+d.DisplayName(), "")
			return true
		}
		w.pos++
		b.res.Keywords[d.Name] = v
		b.markSeen(d.Name)
	case Multiple:
		if !w.valueAhead() {
			w.fail(b, ErrorTypeMissingValue, "option "+d.DisplayName()+" requires a value.", "")
			return true
		}
		list := NoValue()
		if prev := b.res.Keywords[d.Name]; b.wasSeen(d.Name) && prev.IsList() {
			list = prev
		}
		items, ok := takeValues(w)
		if !ok {
			w.fail(b, ErrorTypeInvalidValue, "invalid value for option "+d.DisplayName(), "")
			return true
		}
		b.res.Keywords[d.Name] = list.Append(items...)
		b.markSeen(d.Name)
	}
	w.log.Debug("bind %s = %s", d.Name, b.res.Keywords[d.Name])
	return false
}

// takeValues consumes every non-flag token at the cursor as a string.
func takeValues(w *walk) ([]string, bool) {
	var items []string
	for w.valueAhead() {
		s, ok := coerce(w.peek(), Multiple).AsString()
		if !ok {
			return items, false
		}
		items = append(items, s)
		w.pos++
	}
	return items, true
}

func (c *Command) bindDynamic(w *walk, b *binding, tok lexer.Token) bool {
	w.pos++
	name := tok.Text
	switch c.dynamic.kind {
	case Single:
		if !w.valueAhead() {
			w.fail(b, ErrorTypeMissingValue, "option --"+name+" requires a value.", "")
			return true
		}
		v := coerce(w.peek(), Single)
		if v.IsNone() {
			w.fail(b, ErrorTypeInvalidValue, "invalid value for option --"+name, "")
			return true
		}
		w.pos++
		b.res.Dynamic[name] = v
	case Multiple:
		if !w.valueAhead() {
			w.fail(b, ErrorTypeMissingValue, "option --"+name+" requires at least one value.", "")
			return true
		}
		items, ok := takeValues(w)
		if !ok {
			w.fail(b, ErrorTypeInvalidValue, "invalid value for option --"+name, "")
			return true
		}
		b.res.Dynamic[name] = b.res.Dynamic[name].Append(items...)
	}
	w.log.Debug("bind dynamic %s = %s", name, b.res.Dynamic[name])
	return false
}

// setFlag binds a boolean and keeps a negation pair consistent.
func (c *Command) setFlag(b *binding, d *ArgumentDef, on bool) {
	b.res.Keywords[d.Name] = BoolValue(on)
	b.markSeen(d.Name)
	if d.negates != "" {
		b.res.Keywords[d.negates] = BoolValue(!on)
		b.markSeen(d.negates)
	}
	if d.negation != "" {
		b.res.Keywords[d.negation] = BoolValue(!on)
		b.markSeen(d.negation)
	}
}

// bindPositional fills the next positional slot with tok, or skips it when
// every slot is taken.
func (c *Command) bindPositional(w *walk, b *binding, tok lexer.Token) bool {
	if b.posIndex >= len(c.positionals) {
		if tok.Kind == lexer.Ident || tok.Kind == lexer.String {
			w.log.Debug("skip surplus argument %s", tok)
			w.pos++
			b.posIndex++
			return false
		}
		w.fail(b, ErrorTypeUnexpectedArgument, "unexpected argument: "+tok.String(), "")
		return true
	}

	d := c.positionals[b.posIndex]
	if d.Kind == Multiple {
		items, ok := takeValues(w)
		if !ok {
			w.fail(b, ErrorTypeInvalidValue, fmt.Sprintf("invalid value for positional argument '%s'", d.Name), "")
			return true
		}
		b.res.Positionals[d.Name] = ListValue(items...)
	} else {
		v := coerce(tok, d.Kind)
		if v.IsNone() {
			w.fail(b, ErrorTypeInvalidValue, fmt.Sprintf("invalid value for positional argument '%s'", d.Name), "")
			return true
		}
		b.res.Positionals[d.Name] = v
		w.pos++
	}
	w.log.Debug("bind positional %s = %s", d.Name, b.res.Positionals[d.Name])
	b.posIndex++
	return false
}

// finish runs the checks that need the whole token window: required options,
// positional defaults and conflicts. It returns a failed result or nil.
func (c *Command) finish(w *walk, b *binding) *ParseResult {
	for _, d := range c.keywords {
		if d.Required && !d.isHelp && !b.wasSeen(d.Name) {
			return w.fail(b, ErrorTypeMissingRequired, "missing required option: "+d.DisplayName(), "")
		}
	}

	bound := min(b.posIndex, len(c.positionals))
	for _, d := range c.positionals[bound:] {
		if d.Required {
			return w.fail(b, ErrorTypeMissingRequired, "missing required positional argument: "+d.Name, "")
		}
		if !d.Default.IsNone() {
			b.res.Positionals[d.Name] = d.Default.Clone()
		}
	}

	if pairs := c.conflicts(b); len(pairs) > 0 {
		return w.fail(b, ErrorTypeConflict, "conflicting options provided: "+strings.Join(pairs, "; "), "")
	}
	return nil
}

func (c *Command) conflicts(b *binding) []string {
	set := make(map[[2]string]struct{})
	for _, d := range c.keywords {
		if !b.wasSeen(d.Name) {
			continue
		}
		for _, other := range d.ConflictsWith {
			if other == d.Name || !b.wasSeen(other) {
				continue
			}
			pair := [2]string{d.Name, other}
			if pair[1] < pair[0] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			set[pair] = struct{}{}
		}
	}
	keys := make([][2]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y [2]string) int {
		if x[0] != y[0] {
			return strings.Compare(x[0], y[0])
		}
		return strings.Compare(x[1], y[1])
	})
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = "--" + k[0] + " conflicts with --" + k[1]
	}
	return out
}

// dispatch runs the handler, or prints usage for a pure command group.
func (c *Command) dispatch(w *walk, b *binding) *ParseResult {
	res := b.res
	res.Status = StatusSuccess
	res.ExitCode = ExitSuccess

	switch {
	case c.handler != nil:
		ctx := newContext(res, w.io, w.log)
		chain := make(middleware.MiddlewareChain, 0, len(w.mw)+len(c.middleware))
		chain = append(chain, w.mw...)
		chain = append(chain, c.middleware...)
		h := chain.Apply(func(mc middleware.Context) int {
			return c.handler(mc.(*Context))
		})
		w.log.Debug("run handler for %q", res.CommandPath)
		res.ExitCode = h(ctx)
	case w.repl != nil && c == w.root && res.Bool(InteractiveFlag):
		w.log.Debug("start interactive mode")
		res.ExitCode = w.repl()
	case len(c.commands) > 0:
		c.WriteHelp(w.io.Out(), res.CommandPath)
		res.Status = StatusHelpRequested
	}
	return res
}

func (c *Command) findLong(name string) *ArgumentDef {
	for _, d := range c.keywords {
		if d.matchesLong(name) {
			return d
		}
	}
	return nil
}

func (c *Command) findShort(name string) *ArgumentDef {
	for _, d := range c.keywords {
		if d.matchesShort(name) {
			return d
		}
	}
	return nil
}

// matchCommand resolves word against sub-command names, then aliases. An
// alias claimed by two sub-commands is reported as ambiguous.
func (c *Command) matchCommand(word string) (*Command, bool) {
	if sub, ok := c.commands[word]; ok {
		return sub, false
	}
	var found *Command
	for _, sub := range c.Commands() {
		if sub.HasAlias(word) {
			if found != nil {
				return nil, true
			}
			found = sub
		}
	}
	return found, false
}

func (c *Command) suggestFlag(w *walk, text string) string {
	var cands []fuzzy.Candidate
	for _, d := range c.keywords {
		if d.Hidden {
			continue
		}
		cands = append(cands, fuzzy.Candidate{Key: d.Name, Label: "--" + d.Name})
		for _, a := range d.Aliases {
			cands = append(cands, fuzzy.Candidate{Key: strings.TrimLeft(a, "-"), Label: a})
		}
	}
	return w.matcher.Suggest(text, cands)
}

func (c *Command) suggestCommand(w *walk, word string) string {
	var cands []fuzzy.Candidate
	for _, sub := range c.Commands() {
		cands = append(cands, fuzzy.Candidate{Key: sub.name, Label: sub.name})
		for _, a := range sub.aliases {
			cands = append(cands, fuzzy.Candidate{Key: a, Label: a})
		}
	}
	return w.matcher.Suggest(word, cands)
}

// help writes usage to the output stream and marks the result.
func (w *walk) help(b *binding) {
	b.cmd.WriteHelp(w.io.Out(), b.res.CommandPath)
	b.res.Status = StatusHelpRequested
	b.res.ExitCode = ExitSuccess
}

// fail records a parse error and writes the diagnostic followed by the
// command's help to the error stream.
func (w *walk) fail(b *binding, typ ErrorType, msg, suggestion string) *ParseResult {
	res := b.res
	res.Status = StatusParseError
	res.ExitCode = ExitFailure
	res.ErrorMessage = msg
	res.Suggestion = suggestion
	res.errType = typ

	errw := w.io.Err()
	writeDiagnostic(errw, w.io, msg, suggestion)
	b.cmd.WriteHelp(errw, res.CommandPath)
	return res
}

func writeDiagnostic(out io.Writer, iom *cliio.IOManager, msg, suggestion string) {
	theme := iom.Theme()
	fmt.Fprintf(out, "%s %s\n", iom.Style(theme.Error, "error:"), msg)
	if suggestion != "" {
		fmt.Fprintln(out, iom.Style(theme.Hint, didYouMean(suggestion)))
	}
	fmt.Fprintln(out)
}
