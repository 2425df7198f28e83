// Package plugin lets independent providers contribute commands to a zcli
// command tree. Providers are either Go values implementing Provider or
// declarative manifests (YAML or TOML) whose commands run external programs.
package plugin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	cliio "github.com/dzonerzy/go-zcli/io"
	"github.com/dzonerzy/go-zcli/zcli"
)

// Metadata describes an installed provider.
type Metadata struct {
	Name     string
	Version  string
	Filename string
}

// Registrar is the surface a provider registers commands through.
type Registrar interface {
	// Root returns the command new top-level commands attach to.
	Root() *zcli.Command
	// NewCommand creates a detached command. Attach it with AddCommand.
	NewCommand(name, help string) *zcli.Command
	// AddCommand attaches child under parent, or under Root when parent is
	// nil.
	AddCommand(parent, child *zcli.Command) error
}

// Provider contributes commands.
type Provider interface {
	Metadata() Metadata
	Register(r Registrar) error
}

type funcProvider struct {
	meta Metadata
	fn   func(Registrar) error
}

func (p funcProvider) Metadata() Metadata { return p.meta }

func (p funcProvider) Register(r Registrar) error { return p.fn(r) }

// ProviderFunc adapts a function to Provider.
func ProviderFunc(meta Metadata, fn func(Registrar) error) Provider {
	return funcProvider{meta: meta, fn: fn}
}

type attachment struct {
	parent, child *zcli.Command
}

// registrar records every attachment so a failed provider can be undone.
type registrar struct {
	root     *zcli.Command
	attached []attachment
}

func (r *registrar) Root() *zcli.Command { return r.root }

func (r *registrar) NewCommand(name, help string) *zcli.Command {
	return zcli.NewCommand(name, help)
}

func (r *registrar) AddCommand(parent, child *zcli.Command) error {
	if parent == nil {
		parent = r.root
	}
	if err := parent.AddCommand(child); err != nil {
		return err
	}
	r.attached = append(r.attached, attachment{parent: parent, child: child})
	return nil
}

// rollback detaches, newest first, everything attached through r.
func (r *registrar) rollback() {
	for i := len(r.attached) - 1; i >= 0; i-- {
		a := r.attached[i]
		if cur, ok := a.parent.Command(a.child.Name()); ok && cur == a.child {
			a.parent.RemoveCommand(a.child.Name())
		}
	}
	r.attached = nil
}

// Manager collects providers and installs them into a command tree.
type Manager struct {
	providers    []Provider
	loaded       []Metadata
	unregistered []string
	log          *cliio.Logger
}

// NewManager returns an empty manager. log may be nil.
func NewManager(log *cliio.Logger) *Manager {
	return &Manager{log: log}
}

// Add queues providers for Install.
func (m *Manager) Add(p ...Provider) {
	m.providers = append(m.providers, p...)
}

// LoadDir queues a ManifestProvider for every manifest in dir. Files that
// are not manifests are remembered and reported by Unregistered. A missing
// directory is not an error.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read plugin dir: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, ok := formatFor(path); !ok {
			m.unregistered = append(m.unregistered, e.Name())
			continue
		}
		mf, err := LoadManifest(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m.Add(NewManifestProvider(mf))
	}
	return errors.Join(errs...)
}

// Install registers every queued provider under root. A failing provider is
// skipped and its error joined into the result; the commands it attached
// before failing are removed again and the others still install.
func (m *Manager) Install(root *zcli.Command) error {
	var errs []error
	for _, p := range m.providers {
		meta := p.Metadata()
		r := &registrar{root: root}
		if err := register(p, r); err != nil {
			r.rollback()
			m.logf(cliio.LevelError, "plugin %s: %v", meta.Name, err)
			errs = append(errs, fmt.Errorf("plugin %s: %w", meta.Name, err))
			continue
		}
		m.logf(cliio.LevelDebug, "installed plugin %s %s", meta.Name, meta.Version)
		m.loaded = append(m.loaded, meta)
	}
	m.providers = nil
	return errors.Join(errs...)
}

// register turns a configuration panic from zcli.Must into an error.
func register(p Provider, r Registrar) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		var cerr *zcli.ConfigError
		if e, ok := rec.(error); ok && errors.As(e, &cerr) {
			err = e
			return
		}
		panic(rec)
	}()
	return p.Register(r)
}

func (m *Manager) logf(level cliio.LogLevel, format string, args ...any) {
	if m.log != nil {
		m.log.Log(level, format, args...)
	}
}

// Loaded returns the installed providers in install order.
func (m *Manager) Loaded() []Metadata { return slices.Clone(m.loaded) }

// Unregistered returns the non-manifest files seen by LoadDir, sorted.
func (m *Manager) Unregistered() []string {
	out := slices.Clone(m.unregistered)
	slices.Sort(out)
	return out
}

// WriteList prints installed plugins followed by unregistered files.
func (m *Manager) WriteList(w io.Writer) {
	var b strings.Builder
	for _, meta := range m.loaded {
		b.WriteString(meta.Name)
		if meta.Filename != "" {
			fmt.Fprintf(&b, " (%s)", meta.Filename)
		}
		version := meta.Version
		if version == "" {
			version = "n/a"
		}
		fmt.Fprintf(&b, "\n  Version: %s\n\n", version)
	}
	if files := m.Unregistered(); len(files) > 0 {
		b.WriteString("The following unregistered plug-ins were found in the plugins dir:\n")
		for _, f := range files {
			b.WriteString(f + "\n\n")
		}
	}
	_, _ = io.WriteString(w, b.String())
}
