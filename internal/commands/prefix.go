package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/config"
	"github.com/davren/server-scribe/internal/manual"
)

type PrefixCommand struct {
	cfg *config.Config
}

func (c *PrefixCommand) Name() string        { return "prefix" }
func (c *PrefixCommand) Description() string { return "Show or change the command prefix" }
func (c *PrefixCommand) Aliases() []string   { return nil }
func (c *PrefixCommand) Category() string    { return CategoryModeration }

func (c *PrefixCommand) Params() []manual.Parameter {
	return []manual.Parameter{
		manual.Opt("new_prefix", manual.T(manual.TypeString), ""),
	}
}

func (c *PrefixCommand) Document(d *manual.Documentation) {
	d.Argument("new_prefix", "The prefix to switch to. Omit to see the current one.").
		Restrict(manual.Check{ID: manual.CheckHasPerms, Perms: discordgo.PermissionManageGuild}).
		ExampleUsage("prefix", "Shows the current prefix.").
		ExampleUsage("prefix ?", "Switches the prefix to `?`.")
}

func (c *PrefixCommand) Run(ctx *command.Context) error {
	newPrefix, ok := ctx.Args.Get("new_prefix")
	if !ok || newPrefix == "" {
		return ctx.Reply(fmt.Sprintf("The current prefix is `%s`.", c.cfg.Prefix))
	}
	if len(newPrefix) > 3 {
		return ctx.Reply("Keep the prefix to 3 characters or fewer.")
	}
	c.cfg.Prefix = newPrefix
	return ctx.Reply(fmt.Sprintf("Prefix changed to `%s`.", newPrefix))
}
