package commands

import (
	"fmt"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/version"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Show version and build info" }
func (c *AboutCommand) Aliases() []string   { return nil }
func (c *AboutCommand) Category() string    { return CategoryInfo }

func (c *AboutCommand) Run(ctx *command.Context) error {
	return ctx.Reply(fmt.Sprintf("%s %s (built %s)", version.AppName, version.Version, version.BuildDate))
}
