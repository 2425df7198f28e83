package zcli

import (
	"io"

	cliio "github.com/dzonerzy/go-zcli/io"
)

// Context is handed to handlers. It embeds the ParseResult, so typed
// accessors such as ctx.String("message") are available directly, and adds
// the I/O streams and a scratch map for middleware.
type Context struct {
	*ParseResult

	io     *cliio.IOManager
	logger *cliio.Logger
	meta   map[string]any
}

func newContext(res *ParseResult, iom *cliio.IOManager, logger *cliio.Logger) *Context {
	return &Context{ParseResult: res, io: iom, logger: logger}
}

// Path implements middleware.Context.
func (c *Context) Path() string { return c.CommandPath }

// Args renders the bound positional values in declaration order. List values
// contribute one element per item.
func (c *Context) Args() []string {
	if c.command == nil {
		return nil
	}
	var out []string
	for _, d := range c.command.positionals {
		v, ok := c.Positionals[d.Name]
		if !ok || v.IsNone() {
			continue
		}
		if l, isList := v.AsList(); isList {
			out = append(out, l...)
			continue
		}
		out = append(out, v.String())
	}
	return out
}

// Set stores a value for later middleware or the handler.
func (c *Context) Set(key string, value any) {
	if c.meta == nil {
		c.meta = make(map[string]any)
	}
	c.meta[key] = value
}

// Get returns a value stored with Set, or nil.
func (c *Context) Get(key string) any { return c.meta[key] }

func (c *Context) Stdin() io.Reader  { return c.io.In() }
func (c *Context) Stdout() io.Writer { return c.io.Out() }
func (c *Context) Stderr() io.Writer { return c.io.Err() }

// IO returns the parser's I/O manager.
func (c *Context) IO() *cliio.IOManager { return c.io }

// Logger returns the parser's logger.
func (c *Context) Logger() *cliio.Logger { return c.logger }
