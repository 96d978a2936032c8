package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/manual"
)

// helpStyles are the render styles a user may append to the query.
var helpStyles = map[string]bool{
	"short":     true,
	"full":      true,
	"examples":  true,
	"signature": true,
	"normal":    true,
}

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Browse the command manual" }
func (c *HelpCommand) Aliases() []string   { return []string{"man"} }
func (c *HelpCommand) Category() string    { return CategoryInfo }

func (c *HelpCommand) Params() []manual.Parameter {
	p := manual.CatchAll("query")
	p.Help = "A command name, optionally followed by a render style."
	return []manual.Parameter{p}
}

func (c *HelpCommand) Document(d *manual.Documentation) {
	d.ExampleUsage("help", "Shows the table of contents.").
		ExampleUsage("help tag add", "Shows everything about the `tag add` subcommand.").
		ExampleUsage("help purge full", "Shows the purge help with examples included.").
		Discuss("Styles", "Append `short`, `full`, `examples`, or `signature` to the query to pick which sections are shown.")
}

func (c *HelpCommand) Run(ctx *command.Context) error {
	query, _ := ctx.Args.Get("query")
	query = strings.TrimSpace(query)

	if query == "" {
		embed, _ := ctx.Manual.TOC()
		return ctx.ReplyEmbed(embed)
	}

	style := manual.StyleNormal
	tokens := strings.Fields(query)
	if last := tokens[len(tokens)-1]; len(tokens) > 1 && helpStyles[strings.ToLower(last)] {
		style = manual.ParseStyle(last)
		tokens = tokens[:len(tokens)-1]
	}

	embed, _, err := ctx.Manual.RenderHelp(strings.Join(tokens, " "), style)
	if err != nil {
		// An unknown name is an answer for the user, not a failure.
		var notFound *manual.NoSuchCommandError
		if errors.As(err, &notFound) {
			msg := fmt.Sprintf("No such command: `%s`.", notFound.Query)
			if notFound.Suggestion != "" {
				msg += fmt.Sprintf(" Did you mean `%s`?", notFound.Suggestion)
			}
			return ctx.Reply(msg)
		}
		return err
	}
	return ctx.ReplyEmbed(embed)
}
