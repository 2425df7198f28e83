package zcli

import (
	"slices"
	"strings"

	"github.com/dzonerzy/go-zcli/middleware"
)

// HandlerFunc runs a command once its arguments are bound. The return value
// becomes the process exit code.
type HandlerFunc func(ctx *Context) int

// Example is a titled sample invocation shown in help.
type Example struct {
	Title   string
	Command string
}

type dynamicKeywords struct {
	kind        ArgKind
	placeholder string
	help        string
}

// Command is one node of the command tree. Build it during start-up and do
// not mutate it while a parse is running.
type Command struct {
	name        string
	help        string
	aliases     []string
	keywords    []*ArgumentDef
	positionals []*ArgumentDef
	commands    map[string]*Command
	handler     HandlerFunc
	middleware  []middleware.Middleware
	examples    []Example
	dynamic     *dynamicKeywords
}

// NewCommand returns a command that already carries the -h/--help flag.
func NewCommand(name, help string) *Command {
	c := &Command{name: name, help: help, commands: make(map[string]*Command)}
	c.ensureHelp()
	return c
}

func (c *Command) ensureHelp() {
	for _, d := range c.keywords {
		if d.isHelp {
			return
		}
	}
	c.keywords = append([]*ArgumentDef{{
		Name:    helpName,
		Aliases: []string{"-h", "--help"},
		Help:    "show this help message and exit",
		Kind:    Flag,
		Default: BoolValue(false),
		isHelp:  true,
	}}, c.keywords...)
}

func (c *Command) Name() string { return c.name }

// Description is the one-line help shown in usage and command tables.
func (c *Command) Description() string { return c.help }

// Aliases returns a copy of the command's aliases.
func (c *Command) Aliases() []string { return slices.Clone(c.aliases) }

// KeywordArgs returns the keyword definitions in declaration order.
func (c *Command) KeywordArgs() []*ArgumentDef { return slices.Clone(c.keywords) }

// PositionalArgs returns the positional definitions in declaration order.
func (c *Command) PositionalArgs() []*ArgumentDef { return slices.Clone(c.positionals) }

// Examples returns the registered examples.
func (c *Command) Examples() []Example { return slices.Clone(c.examples) }

// Commands returns the sub-commands sorted by name.
func (c *Command) Commands() []*Command {
	names := make([]string, 0, len(c.commands))
	for n := range c.commands {
		names = append(names, n)
	}
	slices.Sort(names)
	out := make([]*Command, len(names))
	for i, n := range names {
		out[i] = c.commands[n]
	}
	return out
}

// Command returns the sub-command registered under name (not alias).
func (c *Command) Command(name string) (*Command, bool) {
	sub, ok := c.commands[name]
	return sub, ok
}

// HasHandler reports whether a handler is set.
func (c *Command) HasHandler() bool { return c.handler != nil }

// HasAlias reports whether alias is one of the command's aliases.
func (c *Command) HasAlias(alias string) bool { return slices.Contains(c.aliases, alias) }

func (c *Command) keywordByName(name string) *ArgumentDef {
	for _, d := range c.keywords {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// AddKeywordArg registers a keyword argument.
func (c *Command) AddKeywordArg(name string, aliases []string, help string, kind ArgKind, required bool, def ArgValue) error {
	return c.AddKeyword(ArgumentDef{
		Name:     name,
		Aliases:  aliases,
		Help:     help,
		Kind:     kind,
		Required: required,
		Default:  def,
	})
}

// AddKeyword registers a fully described keyword argument. A Flag that
// defaults to true also gets a "no-<name>" flag spelled --no-<name>.
func (c *Command) AddKeyword(def ArgumentDef) error {
	d := def.clone()
	d.isHelp, d.negates, d.negation = false, "", ""

	if err := c.validateKeyword(d, nil); err != nil {
		return err
	}
	if d.Kind == Flag && d.Default.IsNone() {
		d.Default = BoolValue(false)
	}

	added := []*ArgumentDef{d}
	if on, _ := d.Default.AsBool(); d.Kind == Flag && on {
		neg := &ArgumentDef{
			Name:    negationPrefix + d.Name,
			Aliases: []string{"--" + negationPrefix + d.Name},
			Help:    "disable the --" + d.Name + " flag",
			Kind:    Flag,
			Default: BoolValue(false),
			Hidden:  d.Hidden,
			negates: d.Name,
		}
		if err := c.checkKeywordSpellings(neg, added); err != nil {
			return err
		}
		d.negation = neg.Name
		added = append(added, neg)
	}

	c.keywords = append(c.keywords, added...)
	return nil
}

func (c *Command) validateKeyword(d *ArgumentDef, pending []*ArgumentDef) error {
	switch {
	case d.Name == "":
		return configErr(c.name, ErrEmptyName, "", "keyword argument")
	case d.Name == helpName:
		return configErr(c.name, ErrReservedName, d.Name, "added automatically")
	case strings.HasPrefix(d.Name, negationPrefix):
		return configErr(c.name, ErrReservedName, d.Name, "the no- prefix is reserved for negation flags")
	case d.Kind == Positional:
		return configErr(c.name, ErrInvalidKind, d.Name, "keyword arguments cannot be positional")
	}
	if d.Kind == Flag && !d.Default.IsNone() && !d.Default.IsBool() {
		return configErr(c.name, ErrInvalidDefault, d.Name, "flags take a boolean default")
	}
	for _, a := range d.Aliases {
		if strings.HasPrefix(a, "--"+negationPrefix) {
			return configErr(c.name, ErrReservedName, a, "the --no- prefix is reserved for negation flags")
		}
		// -abc on the command line is three combined flags.
		if len(a) > 2 && a[0] == '-' && a[1] != '-' {
			return configErr(c.name, ErrInvalidAlias, a, "short aliases are a single character")
		}
	}
	return c.checkKeywordSpellings(d, pending)
}

// checkKeywordSpellings rejects a name or alias already claimed by another
// keyword argument, including its implicit --<name> spelling.
func (c *Command) checkKeywordSpellings(d *ArgumentDef, pending []*ArgumentDef) error {
	others := append(slices.Clone(c.keywords), pending...)
	for _, o := range others {
		if o.Name == d.Name {
			return configErr(c.name, ErrDuplicateName, d.Name, "")
		}
	}

	seen := make(map[string]struct{}, len(d.Aliases))
	for _, a := range d.Aliases {
		if _, dup := seen[a]; dup {
			return configErr(c.name, ErrDuplicateAlias, a, "listed twice")
		}
		seen[a] = struct{}{}
		for _, o := range others {
			if slices.Contains(o.Aliases, a) || a == "--"+o.Name {
				return configErr(c.name, ErrDuplicateAlias, a, "already used by --"+o.Name)
			}
		}
	}
	long := "--" + d.Name
	for _, o := range others {
		if slices.Contains(o.Aliases, long) {
			return configErr(c.name, ErrDuplicateAlias, long, "already used by --"+o.Name)
		}
	}
	return nil
}

// AddPositionalArg registers a positional argument.
func (c *Command) AddPositionalArg(name, help string, kind ArgKind, required bool, def ArgValue) error {
	return c.AddPositional(ArgumentDef{
		Name:     name,
		Help:     help,
		Kind:     kind,
		Required: required,
		Default:  def,
	})
}

// AddPositional registers a fully described positional argument.
func (c *Command) AddPositional(def ArgumentDef) error {
	d := def.clone()
	d.isHelp, d.negates, d.negation = false, "", ""
	d.Aliases = nil

	switch {
	case d.Name == "":
		return configErr(c.name, ErrEmptyName, "", "positional argument")
	case d.Kind == Flag:
		return configErr(c.name, ErrInvalidKind, d.Name, "positional arguments cannot be flags")
	}
	for _, o := range c.positionals {
		if o.Name == d.Name {
			return configErr(c.name, ErrDuplicateName, d.Name, "")
		}
	}
	c.positionals = append(c.positionals, d)
	return nil
}

// AddCommand attaches sub as a child. Its name and aliases must not clash
// with any sibling.
func (c *Command) AddCommand(sub *Command) error {
	if sub == nil {
		return configErr(c.name, ErrNilCommand, "", "")
	}
	if slices.Contains(sub.aliases, sub.name) {
		return configErr(c.name, ErrSelfAlias, sub.name, "")
	}
	for name, sib := range c.commands {
		if name == sub.name || sib.HasAlias(sub.name) {
			return configErr(c.name, ErrDuplicateName, sub.name, "clashes with command "+name)
		}
		for _, a := range sub.aliases {
			if a == name || sib.HasAlias(a) {
				return configErr(c.name, ErrDuplicateAlias, a, "clashes with command "+name)
			}
		}
	}
	sub.ensureHelp()
	c.commands[sub.name] = sub
	return nil
}

// RemoveCommand detaches the sub-command registered under name and reports
// whether one was found.
func (c *Command) RemoveCommand(name string) bool {
	if _, ok := c.commands[name]; !ok {
		return false
	}
	delete(c.commands, name)
	return true
}

// AddAlias adds an alternative name for the command.
func (c *Command) AddAlias(alias string) error {
	switch {
	case alias == c.name:
		return configErr(c.name, ErrSelfAlias, alias, "")
	case alias == "":
		return configErr(c.name, ErrEmptyName, "", "alias")
	case c.HasAlias(alias):
		return configErr(c.name, ErrDuplicateAlias, alias, "")
	}
	c.aliases = append(c.aliases, alias)
	return nil
}

// SetHandler installs h and returns c.
func (c *Command) SetHandler(h HandlerFunc) *Command {
	c.handler = h
	return c
}

// Use appends handler middleware that only applies to this command.
func (c *Command) Use(mw ...middleware.Middleware) *Command {
	c.middleware = append(c.middleware, mw...)
	return c
}

// AddExample appends a titled example to the help output.
func (c *Command) AddExample(title, command string) *Command {
	c.examples = append(c.examples, Example{Title: title, Command: command})
	return c
}

// EnableDynamicKeywords lets the command accept long options it does not
// declare. Their values land in ParseResult.Dynamic. kind must be Single or
// Multiple.
func (c *Command) EnableDynamicKeywords(kind ArgKind, placeholder, help string) error {
	if kind != Single && kind != Multiple {
		return configErr(c.name, ErrInvalidKind, placeholder, "dynamic keywords take Single or Multiple values")
	}
	c.dynamic = &dynamicKeywords{kind: kind, placeholder: placeholder, help: help}
	return nil
}

// MustCommand is AddCommand that panics on error and returns sub for
// chaining.
func (c *Command) MustCommand(sub *Command) *Command {
	Must(c.AddCommand(sub))
	return sub
}
