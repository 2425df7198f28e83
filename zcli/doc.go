// Package zcli parses command lines against a tree of commands.
//
// A tree is built once at start-up from Commands that carry keyword
// arguments (flags, single-valued and multi-valued options), positional
// arguments, aliases and handlers. An ArgumentParser then walks process
// arguments or a typed line through the tree, binds values, reports parse
// errors with a nearest-spelling suggestion and runs the handler of the
// command the walk ended on:
//
//	p := zcli.New("zowex", "z/OS tooling")
//	ping := p.RootCommand().MustCommand(zcli.NewCommand("ping", "send a ping"))
//	ping.Keyword("message").Alias("-m").Single().
//		Default(zcli.StringValue("Hello")).Help("text to send").MustAdd()
//	ping.SetHandler(func(ctx *zcli.Context) int {
//		fmt.Fprintln(ctx.Stdout(), ctx.String("message"))
//		return 0
//	})
//	os.Exit(p.Run())
//
// Registration mistakes are reported as *ConfigError when the tree is
// built; parse failures are reported in the ParseResult.
package zcli
