package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/manual"
)

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Bulk-delete recent messages" }
func (c *PurgeCommand) Aliases() []string   { return []string{"clean"} }
func (c *PurgeCommand) Category() string    { return CategoryModeration }

func (c *PurgeCommand) Params() []manual.Parameter {
	return []manual.Parameter{
		manual.Required("count", manual.T(manual.TypeInt)),
	}
}

func (c *PurgeCommand) Document(d *manual.Documentation) {
	d.Argument("count", "How many messages to delete, up to 100.").
		Restrict(manual.Check{ID: manual.CheckGuildOnly}).
		Restrict(manual.Check{ID: manual.CheckHasPerms, Perms: discordgo.PermissionManageMessages}).
		Restrict(manual.Check{ID: manual.CheckBotPerms, Perms: discordgo.PermissionManageMessages}).
		Cooldown(2, 30*time.Second, manual.BucketChannel).
		Concurrent(1, manual.BucketGuild).
		ExampleUsage("purge 25", "Deletes the last 25 messages in this channel.")
}

func (c *PurgeCommand) Run(ctx *command.Context) error {
	raw, _ := ctx.Args.Get("count")
	count, err := strconv.Atoi(raw)
	if err != nil || count < 1 || count > 100 {
		return ctx.Reply("Give me a number between 1 and 100.")
	}
	if ctx.Session == nil {
		return nil
	}

	msgs, err := ctx.Session.ChannelMessages(ctx.ChannelID(), count, ctx.Message.ID, "", "")
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return ctx.Reply("Nothing to delete.")
	}
	if err := ctx.Session.ChannelMessagesBulkDelete(ctx.ChannelID(), ids); err != nil {
		return fmt.Errorf("failed to bulk delete: %w", err)
	}
	return ctx.Reply(fmt.Sprintf("Deleted %d messages.", len(ids)))
}
