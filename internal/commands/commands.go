// Package commands holds the bot's command set. Each command declares
// its parameters and documentation; the registry and manual do the
// rest.
package commands

import (
	"github.com/rs/zerolog"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/config"
)

// Command categories, in the order they appear in the manual.
const (
	CategoryInfo       = "🕯️ Information"
	CategoryFun        = "🎲 Fun & Games"
	CategoryModeration = "🔨 Moderation"
)

// RegisterAll registers every command of the bot on the given
// registry. The logging middleware wraps each one.
func RegisterAll(reg *command.Registry, cfg *config.Config, log zerolog.Logger) error {
	cmds := []command.Command{
		&HelpCommand{},
		&AboutCommand{},
		&PingCommand{},
		&EchoCommand{},
		&RollCommand{},
		&PrefixCommand{cfg: cfg},
		NewTagCommand(),
		&PurgeCommand{},
	}
	for _, c := range cmds {
		if err := reg.Register(c, command.WithCommandLogger(log)); err != nil {
			return err
		}
	}
	return nil
}
