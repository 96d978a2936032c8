package commands

import (
	"strings"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/manual"
)

type EchoCommand struct{}

func (c *EchoCommand) Name() string        { return "echo" }
func (c *EchoCommand) Description() string { return "Repeat a message back at you" }
func (c *EchoCommand) Aliases() []string   { return nil }
func (c *EchoCommand) Category() string    { return CategoryFun }

func (c *EchoCommand) Params() []manual.Parameter {
	return []manual.Parameter{
		manual.GreedyParam("message", manual.T(manual.TypeString)),
	}
}

func (c *EchoCommand) Document(d *manual.Documentation) {
	d.ExampleUsage("echo hello there", "Says \"hello there\".")
}

func (c *EchoCommand) Run(ctx *command.Context) error {
	words := ctx.Args.All("message")
	if len(words) == 0 {
		return ctx.Reply("...silence.")
	}
	return ctx.Reply(strings.Join(words, " "))
}
