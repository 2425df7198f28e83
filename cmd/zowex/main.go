// Command zowex is a small z/OS-flavoured demo of the zcli parser. It shows
// nested commands, interactive mode, shell completion and manifest plugins.
package main

import (
	"fmt"
	"os"

	cliio "github.com/dzonerzy/go-zcli/io"
	"github.com/dzonerzy/go-zcli/middleware"
	"github.com/dzonerzy/go-zcli/plugin"
	"github.com/dzonerzy/go-zcli/zcli"
)

const version = "0.3.0"

const (
	envPluginDir = "ZOWEX_PLUGIN_DIR"
	envTrace     = "ZCLI_TRACE"
)

type config struct {
	pluginDir string
	trace     bool
}

func configFromEnv() config {
	return config{
		pluginDir: os.Getenv(envPluginDir),
		trace:     os.Getenv(envTrace) != "",
	}
}

func newApp(iom *cliio.IOManager, cfg config) (*zcli.ArgumentParser, *plugin.Manager) {
	p := zcli.New("zowex", "z/OS tooling demo",
		zcli.WithIO(iom),
		zcli.WithTrace(cfg.trace),
		zcli.WithInteractive(),
		zcli.WithPrompt("zowex> "),
		zcli.WithMiddleware(middleware.Recovery()),
	)
	root := p.RootCommand()
	root.AddExample("Send a ping", "zowex ping -m hi").
		AddExample("Start the shell", "zowex --it")

	ping := root.MustCommand(zcli.NewCommand("ping", "send a ping and print the message"))
	zcli.Must(ping.AddAlias("p"))
	ping.Keyword("message").Alias("-m").Single().
		Default(zcli.StringValue("Hello from zowex!")).
		Help("message to print").MustAdd()
	ping.SetHandler(func(ctx *zcli.Context) int {
		fmt.Fprintln(ctx.Stdout(), ctx.String("message"))
		return zcli.ExitSuccess
	})

	root.MustCommand(zcli.NewCommand("version", "print the version")).
		SetHandler(func(ctx *zcli.Context) int {
			fmt.Fprintf(ctx.Stdout(), "zowex %s\n", version)
			return zcli.ExitSuccess
		})

	completion := root.MustCommand(zcli.NewCommand("completion", "print a shell completion script"))
	completion.Positional("shell").Default(zcli.StringValue("bash")).Help("bash or zsh").MustAdd()
	completion.AddExample("Load bash completion", `source <(zowex completion bash)`)
	completion.SetHandler(func(ctx *zcli.Context) int {
		var err error
		switch shell := ctx.String("shell"); shell {
		case "bash":
			err = p.WriteBashCompletion(ctx.Stdout())
		case "zsh":
			err = p.WriteZshCompletion(ctx.Stdout())
		default:
			err = fmt.Errorf("unsupported shell %q", shell)
		}
		if err != nil {
			fmt.Fprintf(ctx.Stderr(), "error: %v\n", err)
			return zcli.ExitFailure
		}
		return zcli.ExitSuccess
	})

	plugins := plugin.NewManager(p.Logger())
	root.MustCommand(zcli.NewCommand("plugins", "list installed plugins")).
		SetHandler(func(ctx *zcli.Context) int {
			plugins.WriteList(ctx.Stdout())
			return zcli.ExitSuccess
		})

	if cfg.pluginDir != "" {
		if err := plugins.LoadDir(cfg.pluginDir); err != nil {
			p.Logger().Warning("%v", err)
		}
	}
	if err := plugins.Install(root); err != nil {
		p.Logger().Warning("some plugins were not installed")
	}
	return p, plugins
}

func main() {
	p, _ := newApp(cliio.New(), configFromEnv())
	os.Exit(p.Run())
}
