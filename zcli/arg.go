package zcli

import (
	"slices"
	"strings"
)

// ArgKind says how an argument consumes tokens.
type ArgKind uint8

const (
	// Flag is a boolean switch. It may be followed by an explicit true/false.
	Flag ArgKind = iota
	// Single takes exactly one value.
	Single
	// Multiple takes one or more values.
	Multiple
	// Positional is a single-valued positional slot.
	Positional
)

func (k ArgKind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Single:
		return "single"
	case Multiple:
		return "multiple"
	case Positional:
		return "positional"
	default:
		return "unknown"
	}
}

const (
	helpName       = "help"
	negationPrefix = "no-"
)

// ArgumentDef declares one keyword or positional argument.
type ArgumentDef struct {
	Name     string
	Aliases  []string
	Help     string
	Kind     ArgKind
	Required bool
	Default  ArgValue

	// Hidden arguments parse normally but are left out of help and completion.
	Hidden bool
	// ConflictsWith names keyword arguments that may not be given together
	// with this one.
	ConflictsWith []string

	isHelp   bool
	negates  string
	negation string
}

// IsHelpFlag reports whether d is the built-in help flag.
func (d *ArgumentDef) IsHelpFlag() bool { return d.isHelp }

// Negates returns the flag that d switches off, or "" for ordinary arguments.
func (d *ArgumentDef) Negates() string { return d.negates }

// DisplayName renders a keyword argument the way help text lists it, for
// example "-f, --file <value>".
func (d *ArgumentDef) DisplayName() string {
	parts := make([]string, 0, len(d.Aliases)+1)
	for _, a := range d.Aliases {
		if a != "" {
			parts = append(parts, a)
		}
	}
	if long := "--" + d.Name; d.Name != "" && !slices.Contains(d.Aliases, long) {
		parts = append(parts, long)
	}
	s := strings.Join(parts, ", ")
	switch d.Kind {
	case Single, Positional:
		s += " <value>"
	case Multiple:
		s += " <value>..."
	}
	return s
}

func (d *ArgumentDef) clone() *ArgumentDef {
	c := *d
	c.Aliases = slices.Clone(d.Aliases)
	c.ConflictsWith = slices.Clone(d.ConflictsWith)
	c.Default = d.Default.Clone()
	return &c
}

func (d *ArgumentDef) matchesLong(name string) bool {
	if d.Name == name {
		return true
	}
	for _, a := range d.Aliases {
		if len(a) > 2 && a[:2] == "--" && a[2:] == name {
			return true
		}
	}
	return false
}

func (d *ArgumentDef) matchesShort(name string) bool {
	if d.Name == name {
		return true
	}
	for _, a := range d.Aliases {
		if len(a) > 1 && a[0] == '-' && a[1] != '-' && a[1:] == name {
			return true
		}
	}
	return false
}

// ArgBuilder is a fluent front end for AddKeyword and AddPositional.
//
//	cmd.Keyword("message").Alias("-m").Single().
//		Default(zcli.StringValue("Hello")).Help("text to send").MustAdd()
type ArgBuilder struct {
	cmd        *Command
	def        ArgumentDef
	positional bool
}

// Keyword starts a keyword argument. The kind defaults to Flag.
func (c *Command) Keyword(name string) *ArgBuilder {
	return &ArgBuilder{cmd: c, def: ArgumentDef{Name: name, Kind: Flag}}
}

// Positional starts a positional argument. The kind defaults to Single.
func (c *Command) Positional(name string) *ArgBuilder {
	return &ArgBuilder{cmd: c, def: ArgumentDef{Name: name, Kind: Single}, positional: true}
}

func (b *ArgBuilder) Alias(aliases ...string) *ArgBuilder {
	b.def.Aliases = append(b.def.Aliases, aliases...)
	return b
}

func (b *ArgBuilder) Help(text string) *ArgBuilder {
	b.def.Help = text
	return b
}

func (b *ArgBuilder) Kind(k ArgKind) *ArgBuilder {
	b.def.Kind = k
	return b
}

func (b *ArgBuilder) Flag() *ArgBuilder     { return b.Kind(Flag) }
func (b *ArgBuilder) Single() *ArgBuilder   { return b.Kind(Single) }
func (b *ArgBuilder) Multiple() *ArgBuilder { return b.Kind(Multiple) }

func (b *ArgBuilder) Required() *ArgBuilder {
	b.def.Required = true
	return b
}

func (b *ArgBuilder) Default(v ArgValue) *ArgBuilder {
	b.def.Default = v
	return b
}

func (b *ArgBuilder) Hidden() *ArgBuilder {
	b.def.Hidden = true
	return b
}

func (b *ArgBuilder) ConflictsWith(names ...string) *ArgBuilder {
	b.def.ConflictsWith = append(b.def.ConflictsWith, names...)
	return b
}

// Add registers the argument on its command.
func (b *ArgBuilder) Add() error {
	if b.positional {
		return b.cmd.AddPositional(b.def)
	}
	return b.cmd.AddKeyword(b.def)
}

// MustAdd registers the argument and panics on a configuration error. It
// returns the owning command for chaining.
func (b *ArgBuilder) MustAdd() *Command {
	Must(b.Add())
	return b.cmd
}
