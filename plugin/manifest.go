package plugin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dzonerzy/go-zcli/zcli"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// ErrInvalidManifest wraps every manifest validation failure.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest declares a plugin and the commands it adds.
type Manifest struct {
	Name     string        `yaml:"name" toml:"name"`
	Version  string        `yaml:"version" toml:"version"`
	Commands []CommandSpec `yaml:"commands" toml:"commands"`

	// Filename is the base name the manifest was loaded from, if any.
	Filename string `yaml:"-" toml:"-"`
}

// CommandSpec declares one command. A command without sub-commands must
// name a program in Exec.
type CommandSpec struct {
	Name        string        `yaml:"name" toml:"name"`
	Help        string        `yaml:"help" toml:"help"`
	Aliases     []string      `yaml:"aliases" toml:"aliases"`
	Exec        []string      `yaml:"exec" toml:"exec"`
	Dir         string        `yaml:"dir" toml:"dir"`
	Keywords    []ArgSpec     `yaml:"keywords" toml:"keywords"`
	Positionals []ArgSpec     `yaml:"positionals" toml:"positionals"`
	Examples    []ExampleSpec `yaml:"examples" toml:"examples"`
	Commands    []CommandSpec `yaml:"commands" toml:"commands"`
}

// ArgSpec declares a keyword or positional argument. Kind is one of flag,
// single or multiple; keywords default to flag and positionals to single.
type ArgSpec struct {
	Name          string   `yaml:"name" toml:"name"`
	Help          string   `yaml:"help" toml:"help"`
	Aliases       []string `yaml:"aliases" toml:"aliases"`
	Kind          string   `yaml:"kind" toml:"kind"`
	Required      bool     `yaml:"required" toml:"required"`
	Hidden        bool     `yaml:"hidden" toml:"hidden"`
	Default       any      `yaml:"default" toml:"default"`
	ConflictsWith []string `yaml:"conflicts_with" toml:"conflicts_with"`
}

type ExampleSpec struct {
	Title   string `yaml:"title" toml:"title"`
	Command string `yaml:"command" toml:"command"`
}

func formatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return 0, false
}

// LoadManifest reads a manifest, picking the decoder from the extension.
func LoadManifest(path string) (*Manifest, error) {
	format, ok := formatFor(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w: unsupported extension %q", path, ErrInvalidManifest, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Filename = filepath.Base(path)
	return m, nil
}

// ParseManifest decodes and validates a manifest. Unknown keys are errors.
func ParseManifest(r io.Reader, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&m)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidManifest, undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the parts of a manifest the command tree cannot check
// itself.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: missing plugin name", ErrInvalidManifest)
	}
	if len(m.Commands) == 0 {
		return fmt.Errorf("%w: plugin %s declares no commands", ErrInvalidManifest, m.Name)
	}
	for i := range m.Commands {
		if err := m.Commands[i].validate(m.Name); err != nil {
			return err
		}
	}
	return nil
}

func (c *CommandSpec) validate(path string) error {
	if c.Name == "" {
		return fmt.Errorf("%w: command without a name under %s", ErrInvalidManifest, path)
	}
	path += " " + c.Name
	if len(c.Commands) == 0 && len(c.Exec) == 0 {
		return fmt.Errorf("%w: command %s has neither exec nor sub-commands", ErrInvalidManifest, path)
	}
	for _, a := range c.Keywords {
		if _, err := parseKind(a.Kind, zcli.Flag); err != nil {
			return fmt.Errorf("%w: %s --%s: %w", ErrInvalidManifest, path, a.Name, err)
		}
	}
	for _, a := range c.Positionals {
		if _, err := parseKind(a.Kind, zcli.Single); err != nil {
			return fmt.Errorf("%w: %s <%s>: %w", ErrInvalidManifest, path, a.Name, err)
		}
	}
	for i := range c.Commands {
		if err := c.Commands[i].validate(path); err != nil {
			return err
		}
	}
	return nil
}

func parseKind(s string, def zcli.ArgKind) (zcli.ArgKind, error) {
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "flag":
		return zcli.Flag, nil
	case "single":
		return zcli.Single, nil
	case "multiple":
		return zcli.Multiple, nil
	}
	return def, fmt.Errorf("unknown kind %q", s)
}

// toValue converts a decoded default into an ArgValue. YAML yields int and
// TOML int64 for integers; both are accepted.
func toValue(v any) (zcli.ArgValue, error) {
	switch x := v.(type) {
	case nil:
		return zcli.NoValue(), nil
	case bool:
		return zcli.BoolValue(x), nil
	case int:
		return zcli.IntValue(int64(x)), nil
	case int64:
		return zcli.IntValue(x), nil
	case float64:
		return zcli.FloatValue(x), nil
	case string:
		return zcli.StringValue(x), nil
	case []any:
		items := make([]string, len(x))
		for i, item := range x {
			items[i] = fmt.Sprint(item)
		}
		return zcli.ListValue(items...), nil
	}
	return zcli.NoValue(), fmt.Errorf("unsupported default of type %T", v)
}

func (a ArgSpec) def(positional bool) (zcli.ArgumentDef, error) {
	kindDefault := zcli.Flag
	if positional {
		kindDefault = zcli.Single
	}
	kind, err := parseKind(a.Kind, kindDefault)
	if err != nil {
		return zcli.ArgumentDef{}, err
	}
	val, err := toValue(a.Default)
	if err != nil {
		return zcli.ArgumentDef{}, fmt.Errorf("%s: %w", a.Name, err)
	}
	return zcli.ArgumentDef{
		Name:          a.Name,
		Aliases:       a.Aliases,
		Help:          a.Help,
		Kind:          kind,
		Required:      a.Required,
		Default:       val,
		Hidden:        a.Hidden,
		ConflictsWith: a.ConflictsWith,
	}, nil
}
