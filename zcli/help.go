package zcli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dzonerzy/go-zcli/internal/pool"
)

const helpColumnGap = 2

// WriteHelp renders usage and help for c. path is the full command path
// shown in the usage line, for example "zowex data-set list"; an empty path
// uses the command name.
func (c *Command) WriteHelp(w io.Writer, path string) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)
	c.renderHelp(buf, path)
	_, _ = w.Write(buf.Bytes())
}

// HelpText returns the help for c as a string.
func (c *Command) HelpText(path string) string {
	var b strings.Builder
	c.renderHelp(&b, path)
	return b.String()
}

func (c *Command) renderHelp(w io.Writer, path string) {
	if path == "" {
		path = c.name
	}

	var keywords []*ArgumentDef
	for _, d := range c.keywords {
		if !d.Hidden {
			keywords = append(keywords, d)
		}
	}
	var positionals []*ArgumentDef
	for _, d := range c.positionals {
		if !d.Hidden {
			positionals = append(positionals, d)
		}
	}
	subs := c.Commands()
	hasOptions := len(keywords) > 0 || c.dynamic != nil

	fmt.Fprintf(w, "Usage: %s", path)
	if len(subs) > 0 {
		fmt.Fprint(w, " <command>")
	}
	for _, d := range positionals {
		open, closing := "[", "]"
		if d.Required {
			open, closing = "<", ">"
		}
		fmt.Fprintf(w, " %s%s%s", open, d.Name, closing)
		if d.Kind == Multiple {
			fmt.Fprint(w, "...")
		}
	}
	if hasOptions {
		fmt.Fprint(w, " [options]")
	}
	fmt.Fprint(w, "\n\n")

	if c.help != "" {
		fmt.Fprintf(w, "%s\n\n", c.help)
	}

	if len(positionals) > 0 {
		width := 0
		for _, d := range positionals {
			width = max(width, len(d.Name))
		}
		fmt.Fprintln(w, "Arguments:")
		for _, d := range positionals {
			fmt.Fprintf(w, "  %-*s%s", width+helpColumnGap, d.Name, d.Help)
			if !d.Default.IsNone() {
				fmt.Fprintf(w, " (default: %s)", d.Default)
			}
			if !d.Required {
				fmt.Fprint(w, " [optional]")
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if hasOptions {
		dynamicLabel := ""
		if c.dynamic != nil {
			dynamicLabel = "--<" + c.dynamic.placeholder + "> <value>"
			if c.dynamic.kind == Multiple {
				dynamicLabel = "--<" + c.dynamic.placeholder + "> <value>..."
			}
		}
		width := len(dynamicLabel)
		for _, d := range keywords {
			width = max(width, len(d.DisplayName()))
		}

		fmt.Fprintln(w, "Options:")
		for _, d := range keywords {
			fmt.Fprintf(w, "  %-*s%s", width+helpColumnGap, d.DisplayName(), d.Help)
			if on, isBool := d.Default.AsBool(); !d.Default.IsNone() && (!isBool || on) {
				fmt.Fprintf(w, " (default: %s)", d.Default)
			}
			if d.Required {
				fmt.Fprint(w, " [required]")
			}
			fmt.Fprintln(w)
		}
		if c.dynamic != nil {
			fmt.Fprintf(w, "  %-*s%s\n", width+helpColumnGap, dynamicLabel, c.dynamic.help)
		}
		fmt.Fprintln(w)
	}

	if len(subs) > 0 {
		labels := make([]string, len(subs))
		width := 0
		for i, sub := range subs {
			labels[i] = sub.name
			if len(sub.aliases) > 0 {
				labels[i] += " (" + strings.Join(sub.aliases, ", ") + ")"
			}
			width = max(width, len(labels[i]))
		}
		fmt.Fprintln(w, "Commands:")
		for i, sub := range subs {
			fmt.Fprintf(w, "  %-*s%s\n", width+helpColumnGap, labels[i], sub.help)
		}
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", path)
	}

	if len(c.examples) > 0 {
		if len(subs) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, "Examples:\n\n")
		for _, ex := range c.examples {
			fmt.Fprintf(w, "   - %s:\n\n      $ %s\n\n", ex.Title, ex.Command)
		}
	}
}
