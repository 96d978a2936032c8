package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/config"
	"github.com/davren/server-scribe/internal/manual"
)

type stubCommand struct {
	name     string
	aliases  []string
	subs     []command.Command
	document func(*manual.Documentation)
}

func (s *stubCommand) Name() string                   { return s.name }
func (s *stubCommand) Description() string            { return s.name + " does things" }
func (s *stubCommand) Aliases() []string              { return s.aliases }
func (s *stubCommand) Category() string               { return "Test" }
func (s *stubCommand) Run(*command.Context) error     { return nil }
func (s *stubCommand) Subcommands() []command.Command { return s.subs }

func (s *stubCommand) Document(d *manual.Documentation) {
	if s.document != nil {
		s.document(d)
	}
}

// Every command is registered through the logging middleware, the way
// RegisterAll does it, so resolution is exercised on wrapped commands.
func newTestBot(t *testing.T) *Bot {
	t.Helper()
	reg := command.NewRegistry()
	mw := command.WithCommandLogger(zerolog.Nop())
	require.NoError(t, reg.Register(&stubCommand{name: "ping", aliases: []string{"pong"}}, mw))
	require.NoError(t, reg.Register(&stubCommand{
		name:    "tag",
		aliases: []string{"t"},
		subs:    []command.Command{&stubCommand{name: "add", aliases: []string{"set"}}},
		document: func(d *manual.Documentation) {
			d.Restrict(manual.Check{ID: manual.CheckGuildOnly})
		},
	}, mw))

	man, err := reg.BuildManual()
	require.NoError(t, err)
	return NewBot(&config.Config{Prefix: "!"}, reg, man, zerolog.Nop())
}

func TestResolveTopLevel(t *testing.T) {
	b := newTestBot(t)

	cmd, doc, rest, err := b.resolve("ping")
	require.NoError(t, err)
	require.Equal(t, "ping", cmd.Name())
	require.Equal(t, "ping", doc.CallPath())
	require.Empty(t, rest)
}

// The longest leading token run naming a command wins; everything
// after it is argument text.
func TestResolveSubcommandWithArgs(t *testing.T) {
	b := newTestBot(t)

	cmd, doc, rest, err := b.resolve("tag add rules Be nice")
	require.NoError(t, err)
	require.Equal(t, "add", cmd.Name())
	require.Equal(t, "tag add", doc.CallPath())
	require.Equal(t, "rules Be nice", rest)
}

func TestResolveAliasPath(t *testing.T) {
	b := newTestBot(t)

	cmd, doc, _, err := b.resolve("t set rules")
	require.NoError(t, err)
	require.Equal(t, "add", cmd.Name())
	require.Equal(t, "tag add", doc.CallPath())
}

func TestResolveUnknown(t *testing.T) {
	b := newTestBot(t)

	_, _, _, err := b.resolve("nonsense at all")
	require.ErrorAs(t, err, new(*manual.NoSuchCommandError))
}

// A parent's guild-only check gates its subcommands in direct
// messages, matching the restriction text the help advertises.
func TestDispatchEnforcesInheritedChecks(t *testing.T) {
	b := newTestBot(t)

	_, doc, _, err := b.resolve("tag add rules")
	require.NoError(t, err)

	checks := b.Manual().EffectiveChecks(doc.CallPath())
	require.NotEmpty(t, checks)

	dm := &command.Context{Message: &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "c1",
		Author:    &discordgo.User{ID: "u1"},
	}}}
	ok, reason, err := command.EvaluateChecks(checks, dm, nil)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "This command only works in a server.", reason)
}

func TestSwapManual(t *testing.T) {
	b := newTestBot(t)
	old := b.Manual()

	fresh := manual.New()
	require.NoError(t, fresh.Finalize())
	b.SwapManual(fresh)

	require.NotSame(t, old, b.Manual())
	require.Same(t, fresh, b.Manual())
}
