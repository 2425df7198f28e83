//nolint:testpackage // exercises unexported kind and value helpers
package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dzonerzy/go-zcli/zcli"
	"github.com/google/go-cmp/cmp"
)

const helloYAML = `
name: hello
version: 1.2.0
commands:
  - name: greet
    help: print a greeting
    aliases: [g]
    exec: ["echo", "Hello", "{name}"]
    keywords:
      - name: name
        aliases: ["-n"]
        kind: single
        default: world
      - name: loud
        default: true
      - name: retries
        kind: single
        default: 3
    positionals:
      - name: files
        kind: multiple
  - name: jobs
    commands:
      - name: list
        exec: ["jobs"]
`

const helloTOML = `
name = "hello"
version = "1.2.0"

[[commands]]
name = "greet"
help = "print a greeting"
aliases = ["g"]
exec = ["echo", "Hello", "{name}"]

[[commands.keywords]]
name = "name"
aliases = ["-n"]
kind = "single"
default = "world"

[[commands.keywords]]
name = "loud"
default = true

[[commands.keywords]]
name = "retries"
kind = "single"
default = 3

[[commands.positionals]]
name = "files"
kind = "multiple"

[[commands]]
name = "jobs"

[[commands.commands]]
name = "list"
exec = ["jobs"]
`

func wantHello(retries any) *Manifest {
	return &Manifest{
		Name:    "hello",
		Version: "1.2.0",
		Commands: []CommandSpec{
			{
				Name:    "greet",
				Help:    "print a greeting",
				Aliases: []string{"g"},
				Exec:    []string{"echo", "Hello", "{name}"},
				Keywords: []ArgSpec{
					{Name: "name", Aliases: []string{"-n"}, Kind: "single", Default: "world"},
					{Name: "loud", Default: true},
					{Name: "retries", Kind: "single", Default: retries},
				},
				Positionals: []ArgSpec{{Name: "files", Kind: "multiple"}},
			},
			{
				Name:     "jobs",
				Commands: []CommandSpec{{Name: "list", Exec: []string{"jobs"}}},
			},
		},
	}
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
		want   *Manifest
	}{
		{name: "yaml", src: helloYAML, format: FormatYAML, want: wantHello(3)},
		{name: "toml", src: helloTOML, format: FormatTOML, want: wantHello(int64(3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest(strings.NewReader(tt.src), tt.format)
			if err != nil {
				t.Fatalf("ParseManifest: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("manifest (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		format  Format
		invalid bool
	}{
		{name: "empty yaml", src: "", format: FormatYAML, invalid: true},
		{name: "no commands", src: "name: x\n", format: FormatYAML, invalid: true},
		{name: "leaf without exec", src: "name: x\ncommands:\n  - name: a\n", format: FormatYAML, invalid: true},
		{name: "unnamed command", src: "name: x\ncommands:\n  - exec: [ls]\n", format: FormatYAML, invalid: true},
		{
			name:    "bad kind",
			src:     "name: x\ncommands:\n  - name: a\n    exec: [ls]\n    keywords:\n      - name: k\n        kind: many\n",
			format:  FormatYAML,
			invalid: true,
		},
		{name: "unknown yaml field", src: "name: x\ncolour: red\n", format: FormatYAML},
		{name: "unknown toml key", src: "name = \"x\"\ncolour = \"red\"\n", format: FormatTOML, invalid: true},
		{name: "broken toml", src: "name = \n", format: FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(strings.NewReader(tt.src), tt.format)
			if err == nil {
				t.Fatal("ParseManifest() succeeded")
			}
			if got := errors.Is(err, ErrInvalidManifest); got != tt.invalid {
				t.Errorf("errors.Is(ErrInvalidManifest) = %v for %v", got, err)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.yml")
	if err := os.WriteFile(path, []byte(helloYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Filename != "hello.yml" || m.Name != "hello" {
		t.Errorf("manifest = %s from %s", m.Name, m.Filename)
	}

	if _, err := LoadManifest(filepath.Join(dir, "hello.json")); !errors.Is(err, ErrInvalidManifest) {
		t.Errorf("unsupported extension error = %v", err)
	}
	if _, err := LoadManifest(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		in   any
		want zcli.ArgValue
	}{
		{in: nil, want: zcli.NoValue()},
		{in: true, want: zcli.BoolValue(true)},
		{in: 7, want: zcli.IntValue(7)},
		{in: int64(8), want: zcli.IntValue(8)},
		{in: 1.5, want: zcli.FloatValue(1.5)},
		{in: "x", want: zcli.StringValue("x")},
		{in: []any{"a", 1}, want: zcli.ListValue("a", "1")},
	}
	for _, tt := range tests {
		got, err := toValue(tt.in)
		if err != nil {
			t.Errorf("toValue(%v): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("toValue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := toValue(map[string]any{}); err == nil {
		t.Error("toValue(map) succeeded")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]zcli.ArgKind{"": zcli.Single, "FLAG": zcli.Flag, "multiple": zcli.Multiple} {
		if got, err := parseKind(in, zcli.Single); err != nil || got != want {
			t.Errorf("parseKind(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseKind("positional", zcli.Single); err == nil {
		t.Error("positional accepted as manifest kind")
	}
}
