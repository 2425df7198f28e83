//nolint:testpackage // drives the unexported app builder
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cliio "github.com/dzonerzy/go-zcli/io"
	"github.com/dzonerzy/go-zcli/zcli"
)

type app struct {
	p   *zcli.ArgumentParser
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T, input string, cfg config) *app {
	t.Helper()
	a := &app{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	iom := cliio.New().WithIn(strings.NewReader(input)).WithOut(a.out).WithErr(a.err).NoColor()
	a.p, _ = newApp(iom, cfg)
	return a
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "ping default", args: []string{"ping"}, wantOut: "Hello from zowex!\n"},
		{name: "ping alias", args: []string{"p", "-m", "hi"}, wantOut: "hi\n"},
		{name: "version", args: []string{"version"}, wantOut: "zowex " + version + "\n"},
		{name: "bash completion", args: []string{"completion"}, wantOut: "complete -F"},
		{name: "zsh completion", args: []string{"completion", "zsh"}, wantOut: "bashcompinit"},
		{
			name:     "bad shell",
			args:     []string{"completion", "fish"},
			wantCode: zcli.ExitFailure,
			wantErr:  `error: unsupported shell "fish"`,
		},
		{
			name:     "typo",
			args:     []string{"pnig"},
			wantCode: zcli.ExitFailure,
			wantErr:  "Did you mean 'ping'?",
		},
		{name: "usage", args: nil, wantOut: "--interactive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, "", config{})
			res := a.p.ParseArgs(tt.args)
			if res.ExitCode != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", res.ExitCode, tt.wantCode, a.err.String())
			}
			if !strings.Contains(a.out.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want it to contain %q", a.out.String(), tt.wantOut)
			}
			if !strings.Contains(a.err.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", a.err.String(), tt.wantErr)
			}
		})
	}
}

func TestInteractiveSession(t *testing.T) {
	a := newTestApp(t, "ping -m one\nversion\nquit\n", config{})
	if code := a.p.ParseArgs([]string{"--it"}).ExitCode; code != zcli.ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	want := "zowex> one\nzowex> zowex " + version + "\nzowex> "
	if got := a.out.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestPlugins(t *testing.T) {
	dir := t.TempDir()
	manifest := "name: jobs\nversion: 2.0.0\ncommands:\n  - name: jobs\n    help: job commands\n    commands:\n      - name: list\n        exec: [\"true\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "jobs.yaml"), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, "", config{pluginDir: dir})
	if code := a.p.ParseArgs([]string{"plugins"}).ExitCode; code != zcli.ExitSuccess {
		t.Fatalf("plugins exit code = %d", code)
	}
	want := "jobs (jobs.yaml)\n  Version: 2.0.0\n\n" +
		"The following unregistered plug-ins were found in the plugins dir:\nREADME\n\n"
	if got := a.out.String(); got != want {
		t.Errorf("plugins output = %q, want %q", got, want)
	}
	if _, ok := a.p.RootCommand().Command("jobs"); !ok {
		t.Error("plugin command not installed")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(envPluginDir, "/opt/zowex/plugins")
	t.Setenv(envTrace, "1")
	if got := configFromEnv(); got != (config{pluginDir: "/opt/zowex/plugins", trace: true}) {
		t.Errorf("configFromEnv() = %+v", got)
	}
}
