// Package discord is the gateway adapter: it owns the discordgo
// session, routes prefix messages to registered commands, and serves
// help from the finalized manual.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/config"
	"github.com/davren/server-scribe/internal/manual"
)

// Bot ties the session to the command registry and the manual. The
// manual pointer is swapped atomically on reload; handlers only ever
// read a finalized instance.
type Bot struct {
	cfg *config.Config
	reg *command.Registry
	man atomic.Pointer[manual.Manual]
	log zerolog.Logger

	session *discordgo.Session
}

// NewBot wires a bot around an already-built registry and finalized
// manual.
func NewBot(cfg *config.Config, reg *command.Registry, man *manual.Manual, log zerolog.Logger) *Bot {
	b := &Bot{cfg: cfg, reg: reg, log: log}
	b.man.Store(man)
	return b
}

// Manual returns the manual currently visible to handlers.
func (b *Bot) Manual() *manual.Manual {
	return b.man.Load()
}

// SwapManual atomically replaces the manual with a new finalized
// instance. The old one keeps serving in-flight handlers.
func (b *Bot) SwapManual(m *manual.Manual) {
	b.man.Store(m)
}

// Run opens the gateway session and blocks until the context is
// cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.session = dg

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, closing session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Str("prefix", b.cfg.Prefix).
		Msg("bot is running")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	body, ok := strings.CutPrefix(m.Content, b.cfg.Prefix)
	if !ok {
		return
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}

	ctx := &command.Context{
		Context: context.Background(),
		Session: s,
		Message: m,
		Manual:  b.Manual(),
	}

	cmd, doc, rest, err := b.resolve(body)
	if err != nil {
		b.replyLookupError(ctx, err)
		return
	}

	if doc != nil {
		args, perr := command.Parse(doc.Params(), rest)
		if perr != nil {
			usage := strings.Join(doc.Synopsis(), "\n")
			_ = ctx.Reply(fmt.Sprintf("%v\nUsage:\n%s", perr, usage))
			return
		}
		ctx.Args = args

		checks := b.Manual().EffectiveChecks(doc.CallPath())
		ok, reason, cerr := command.EvaluateChecks(checks, ctx, b.reg.OwnerSet())
		if cerr != nil {
			b.log.Error().Err(cerr).Str("command", doc.CallPath()).Msg("check evaluation failed")
			return
		}
		if !ok {
			_ = ctx.Reply(reason)
			return
		}
	}
	ctx.Rest = rest

	if err := cmd.Run(ctx); err != nil {
		b.log.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
		_ = ctx.Reply("Something went wrong running that command.")
	}
}

// maxCommandDepth bounds how many leading tokens can name a command
// path; anything deeper is argument text.
const maxCommandDepth = 3

// resolve matches the longest leading token run against the manual
// (canonical paths and alias paths alike), then walks the registry's
// command tree along the canonical path. Returns the command to run,
// its documentation entry, and the leftover argument text.
func (b *Bot) resolve(body string) (command.Command, *manual.Documentation, string, error) {
	tokens := strings.Fields(body)
	man := b.Manual()

	for n := min(len(tokens), maxCommandDepth); n >= 1; n-- {
		doc, err := man.Lookup(strings.Join(tokens[:n], " "))
		if err != nil {
			continue
		}
		cmd := b.commandFor(doc.CallPath())
		if cmd == nil {
			return nil, nil, "", fmt.Errorf("documented command %q has no runnable registration", doc.CallPath())
		}
		return cmd, doc, strings.Join(tokens[n:], " "), nil
	}

	_, err := man.Lookup(tokens[0])
	return nil, nil, "", err
}

// commandFor descends the registered command tree along a canonical
// call path.
func (b *Bot) commandFor(callPath string) command.Command {
	parts := strings.Fields(callPath)
	cmd, ok := b.reg.Get(parts[0])
	if !ok {
		return nil
	}
	for _, name := range parts[1:] {
		sp, ok := cmd.(command.SubcommandProvider)
		if !ok {
			return nil
		}
		var next command.Command
		for _, sub := range sp.Subcommands() {
			if sub.Name() == name {
				next = sub
				break
			}
		}
		if next == nil {
			return nil
		}
		cmd = next
	}
	return cmd
}

func (b *Bot) replyLookupError(ctx *command.Context, err error) {
	var notFound *manual.NoSuchCommandError
	if !errors.As(err, &notFound) {
		b.log.Error().Err(err).Msg("lookup failed")
		return
	}
	msg := fmt.Sprintf("No such command: `%s`.", notFound.Query)
	if notFound.Suggestion != "" {
		msg += fmt.Sprintf(" Did you mean `%s%s`?", b.cfg.Prefix, notFound.Suggestion)
	}
	_ = ctx.Reply(msg)
}
