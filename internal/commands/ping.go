package commands

import (
	"fmt"
	"time"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/manual"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check whether the bot is alive" }
func (c *PingCommand) Aliases() []string   { return []string{"pong"} }
func (c *PingCommand) Category() string    { return CategoryInfo }

func (c *PingCommand) Document(d *manual.Documentation) {
	d.ExampleUsage("ping", "Replies with the gateway latency.").
		Cooldown(3, 10*time.Second, manual.BucketUser)
}

func (c *PingCommand) Run(ctx *command.Context) error {
	if ctx.Session == nil {
		return ctx.Reply("Pong!")
	}
	return ctx.Reply(fmt.Sprintf("Pong! %s", ctx.Session.HeartbeatLatency().Round(time.Millisecond)))
}
