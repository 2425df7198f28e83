package plugin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dzonerzy/go-zcli/zcli"
)

// EnvCommandPath is set for programs run by manifest commands.
const EnvCommandPath = "ZOWEX_COMMAND"

// ManifestProvider installs the commands declared by a Manifest.
type ManifestProvider struct {
	manifest *Manifest
}

func NewManifestProvider(m *Manifest) *ManifestProvider {
	return &ManifestProvider{manifest: m}
}

func (p *ManifestProvider) Metadata() Metadata {
	return Metadata{Name: p.manifest.Name, Version: p.manifest.Version, Filename: p.manifest.Filename}
}

func (p *ManifestProvider) Register(r Registrar) error {
	for i := range p.manifest.Commands {
		if err := p.build(r, nil, &p.manifest.Commands[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *ManifestProvider) build(r Registrar, parent *zcli.Command, spec *CommandSpec) error {
	cmd := r.NewCommand(spec.Name, spec.Help)
	for _, a := range spec.Aliases {
		if err := cmd.AddAlias(a); err != nil {
			return err
		}
	}
	for _, a := range spec.Keywords {
		def, err := a.def(false)
		if err != nil {
			return err
		}
		if err := cmd.AddKeyword(def); err != nil {
			return err
		}
	}
	for _, a := range spec.Positionals {
		def, err := a.def(true)
		if err != nil {
			return err
		}
		if err := cmd.AddPositional(def); err != nil {
			return err
		}
	}
	for _, ex := range spec.Examples {
		cmd.AddExample(ex.Title, ex.Command)
	}
	if len(spec.Exec) > 0 {
		cmd.SetHandler(execHandler(spec.Exec, spec.Dir))
	}
	for i := range spec.Commands {
		if err := p.build(r, cmd, &spec.Commands[i]); err != nil {
			return err
		}
	}
	return r.AddCommand(parent, cmd)
}

// execHandler runs argv after placeholder expansion with the invocation's
// streams. The program's exit status becomes the command's exit code.
func execHandler(argv []string, dir string) zcli.HandlerFunc {
	return func(ctx *zcli.Context) int {
		args := ExpandArgs(argv, ctx.ParseResult)
		if len(args) == 0 || args[0] == "" {
			fmt.Fprintf(ctx.Stderr(), "error: %s: no program to run\n", ctx.Path())
			return zcli.ExitFailure
		}
		cmd := exec.Command(args[0], args[1:]...) //nolint:gosec // the manifest author chose the program
		cmd.Dir = dir
		cmd.Stdin = ctx.Stdin()
		cmd.Stdout = ctx.Stdout()
		cmd.Stderr = ctx.Stderr()
		cmd.Env = append(os.Environ(), EnvCommandPath+"="+ctx.Path())

		ctx.Logger().Debug("exec %q", args)
		err := cmd.Run()
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			return zcli.ExitSuccess
		case errors.As(err, &exitErr):
			return exitErr.ExitCode()
		default:
			fmt.Fprintf(ctx.Stderr(), "error: %v\n", err)
			return zcli.ExitFailure
		}
	}
}

// ExpandArgs substitutes {name} placeholders with bound values. An element
// that is exactly one placeholder bound to a list expands into one element
// per item, and to nothing when the value is empty. Embedded placeholders
// are replaced by the value's text. "{{" and "}}" stand for literal braces.
func ExpandArgs(argv []string, res *zcli.ParseResult) []string {
	out := make([]string, 0, len(argv))
	for _, a := range argv {
		if name, ok := wholePlaceholder(a); ok {
			v, _ := res.Value(name)
			switch {
			case v.IsList():
				items, _ := v.AsList()
				out = append(out, items...)
			case v.IsNone():
			default:
				out = append(out, v.String())
			}
			continue
		}
		out = append(out, expandInline(a, res))
	}
	return out
}

func wholePlaceholder(s string) (string, bool) {
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' || strings.HasPrefix(s, "{{") {
		return "", false
	}
	name := s[1 : len(s)-1]
	if strings.ContainsAny(name, "{}") {
		return "", false
	}
	return name, true
}

func expandInline(s string, res *zcli.ParseResult) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				b.WriteString(s[i:])
				return b.String()
			}
			name := s[i+1 : i+end]
			if v, ok := res.Value(name); ok && !v.IsNone() {
				b.WriteString(textOf(v))
			}
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func textOf(v zcli.ArgValue) string {
	if items, ok := v.AsList(); ok {
		return strings.Join(items, " ")
	}
	return v.String()
}
