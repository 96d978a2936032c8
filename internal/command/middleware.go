package command

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/davren/server-scribe/internal/manual"
)

// Middleware wraps a command (logging, limits, access checks). The
// wrapped value remains a Command.
type Middleware func(Command) Command

// Apply wraps a command with middlewares in order; the last in the
// list runs first on invocation.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

type wrapped struct {
	Command
	run func(*Context) error
}

func (w *wrapped) Run(ctx *Context) error {
	return w.run(ctx)
}

// Subcommands forwards through the wrapper so dispatch can descend a
// middleware-wrapped command tree.
func (w *wrapped) Subcommands() []Command {
	if sp, ok := w.Command.(SubcommandProvider); ok {
		return sp.Subcommands()
	}
	return nil
}

// Params forwards through the wrapper for the same reason.
func (w *wrapped) Params() []manual.Parameter {
	if pp, ok := w.Command.(ParamProvider); ok {
		return pp.Params()
	}
	return nil
}

// bucketKey derives the tracking key for a limit bucket from the
// invocation context.
func bucketKey(b manual.Bucket, ctx *Context) string {
	switch b {
	case manual.BucketUser:
		return "u:" + ctx.UserID()
	case manual.BucketGuild:
		return "g:" + ctx.GuildID()
	case manual.BucketChannel:
		return "c:" + ctx.ChannelID()
	case manual.BucketMember:
		return "m:" + ctx.GuildID() + ":" + ctx.UserID()
	}
	return "global"
}

// WithCooldown enforces the documented rate limit with one token
// bucket per tracking key. A limited invocation gets a cooldown notice
// instead of running.
func WithCooldown(spec manual.CooldownSpec) Middleware {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[key]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(float64(spec.Rate)/spec.Per.Seconds()), spec.Rate)
			limiters[key] = lim
		}
		return lim
	}

	return func(cmd Command) Command {
		return &wrapped{Command: cmd, run: func(ctx *Context) error {
			if !limiterFor(bucketKey(spec.Bucket, ctx)).Allow() {
				return ctx.Reply(fmt.Sprintf(
					"Slow down. This command runs at most %d times every %s %s.",
					spec.Rate, spec.Per, spec.Bucket.Scope(),
				))
			}
			return cmd.Run(ctx)
		}}
	}
}

// WithMaxConcurrency caps simultaneous runs per tracking key.
func WithMaxConcurrency(spec manual.ConcurrencySpec) Middleware {
	var mu sync.Mutex
	slots := make(map[string]chan struct{})

	slotsFor := func(key string) chan struct{} {
		mu.Lock()
		defer mu.Unlock()
		ch, ok := slots[key]
		if !ok {
			ch = make(chan struct{}, spec.Max)
			slots[key] = ch
		}
		return ch
	}

	return func(cmd Command) Command {
		return &wrapped{Command: cmd, run: func(ctx *Context) error {
			ch := slotsFor(bucketKey(spec.Bucket, ctx))
			select {
			case ch <- struct{}{}:
			default:
				return ctx.Reply("This command is already running; try again in a moment.")
			}
			defer func() { <-ch }()
			return cmd.Run(ctx)
		}}
	}
}

// WithChecks enforces the documented access-control checks. Checks
// needing a session are skipped when there is none (CLI, tests); the
// owner set comes from configuration.
func WithChecks(checks []manual.Check, owners ...string) Middleware {
	ownerSet := make(map[string]bool, len(owners))
	for _, id := range owners {
		ownerSet[id] = true
	}

	return func(cmd Command) Command {
		return &wrapped{Command: cmd, run: func(ctx *Context) error {
			ok, reason, err := EvaluateChecks(checks, ctx, ownerSet)
			if err != nil {
				return err
			}
			if !ok {
				return ctx.Reply(reason)
			}
			return cmd.Run(ctx)
		}}
	}
}

// EvaluateChecks runs every check against the invocation context and
// returns the first denial reason, if any. Exposed so the dispatch
// layer can enforce checks on resolved subcommands too.
func EvaluateChecks(checks []manual.Check, ctx *Context, owners map[string]bool) (bool, string, error) {
	for _, c := range checks {
		ok, reason, err := evaluateCheck(c, ctx, owners)
		if err != nil || !ok {
			return ok, reason, err
		}
	}
	return true, "", nil
}

func evaluateCheck(c manual.Check, ctx *Context, owners map[string]bool) (bool, string, error) {
	switch c.ID {
	case manual.CheckGuildOnly:
		if ctx.GuildID() == "" {
			return false, "This command only works in a server.", nil
		}
	case manual.CheckDMOnly:
		if ctx.GuildID() != "" {
			return false, "This command only works in direct messages.", nil
		}
	case manual.CheckOwnerOnly:
		if !owners[ctx.UserID()] {
			return false, "This command is reserved for the bot owner.", nil
		}
	case manual.CheckHasPerms, manual.CheckDeniesPerms:
		if ctx.Session == nil || ctx.GuildID() == "" {
			return true, "", nil
		}
		perms, err := ctx.Session.UserChannelPermissions(ctx.UserID(), ctx.ChannelID())
		if err != nil {
			return false, "", fmt.Errorf("failed to get user permissions: %w", err)
		}
		if perms&discordgo.PermissionAdministrator != 0 {
			return true, "", nil
		}
		if c.ID == manual.CheckHasPerms && perms&c.Perms != c.Perms {
			return false, "You need these permissions: " + manual.PermissionList(c.Perms&^perms), nil
		}
		if c.ID == manual.CheckDeniesPerms && perms&c.Perms != 0 {
			return false, "This command is denied to holders of: " + manual.PermissionList(c.Perms&perms), nil
		}
	case manual.CheckBotPerms:
		if ctx.Session == nil || ctx.GuildID() == "" || ctx.Session.State.User == nil {
			return true, "", nil
		}
		perms, err := ctx.Session.UserChannelPermissions(ctx.Session.State.User.ID, ctx.ChannelID())
		if err != nil {
			return false, "", fmt.Errorf("failed to get bot permissions: %w", err)
		}
		if missing := c.Perms &^ perms; missing != 0 {
			return false, "I need these permissions: " + manual.PermissionList(missing), nil
		}
	}
	return true, "", nil
}

// WithCommandLogger records each invocation.
func WithCommandLogger(log zerolog.Logger) Middleware {
	return func(cmd Command) Command {
		return &wrapped{Command: cmd, run: func(ctx *Context) error {
			start := time.Now()
			err := cmd.Run(ctx)
			evt := log.Info()
			if err != nil {
				evt = log.Error().Err(err)
			}
			evt.Str("command", cmd.Name()).
				Str("user", ctx.UserID()).
				Str("guild", ctx.GuildID()).
				Dur("took", time.Since(start)).
				Msg("command invoked")
			return err
		}}
	}
}
