// Package command is the dispatch layer: the command contract, the
// registry that builds the manual from registered commands, message
// argument parsing driven by the documented parameter descriptors, and
// the middleware chain (cooldowns, concurrency caps, access checks).
package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/davren/server-scribe/internal/manual"
)

// Command is the universal contract: identity plus execution. Everything
// else (parameters, subcommands, extra documentation) is declared through
// the optional provider interfaces below.
type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Category() string
	Run(ctx *Context) error
}

// ParamProvider declares the command's formal parameter list. The list
// is read once at registration and drives both argument parsing and
// signature enumeration.
type ParamProvider interface {
	Params() []manual.Parameter
}

// SubcommandProvider declares nested subcommands.
type SubcommandProvider interface {
	Subcommands() []Command
}

// DocProvider lets a command annotate its generated documentation with
// argument help, examples, restrictions, and limits. Called once at
// registration, before the manual is finalized.
type DocProvider interface {
	Document(d *manual.Documentation)
}

// HiddenMarker excludes a command from the table of contents.
type HiddenMarker interface {
	Hidden() bool
}

// Context is what the runtime hands a command on invocation. Session
// and Message are nil when the command runs outside Discord (CLI,
// tests); commands that only render text work in both settings.
type Context struct {
	Context context.Context
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Manual  *manual.Manual
	Args    *Args
	Rest    string
}

// Reply sends plain text to the invoking channel. A no-op without a
// session.
func (c *Context) Reply(text string) error {
	if c.Session == nil || c.Message == nil {
		return nil
	}
	_, err := c.Session.ChannelMessageSend(c.Message.ChannelID, text)
	return err
}

// ReplyEmbed sends a rich embed to the invoking channel.
func (c *Context) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	if c.Session == nil || c.Message == nil {
		return nil
	}
	_, err := c.Session.ChannelMessageSendEmbed(c.Message.ChannelID, embed)
	return err
}

// GuildID returns the originating guild, empty in direct messages.
func (c *Context) GuildID() string {
	if c.Message == nil {
		return ""
	}
	return c.Message.GuildID
}

// ChannelID returns the originating channel.
func (c *Context) ChannelID() string {
	if c.Message == nil {
		return ""
	}
	return c.Message.ChannelID
}

// UserID returns the invoking user.
func (c *Context) UserID() string {
	if c.Message == nil || c.Message.Author == nil {
		return ""
	}
	return c.Message.Author.ID
}
