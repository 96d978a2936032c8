package command

import (
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/davren/server-scribe/internal/manual"
)

func msgContext(guild, channel, user string) *Context {
	return &Context{Message: &discordgo.MessageCreate{Message: &discordgo.Message{
		GuildID:   guild,
		ChannelID: channel,
		Author:    &discordgo.User{ID: user},
	}}}
}

func TestApplyOrder(t *testing.T) {
	var calls []string
	mw := func(tag string) Middleware {
		return func(cmd Command) Command {
			return &wrapped{Command: cmd, run: func(ctx *Context) error {
				calls = append(calls, tag)
				return cmd.Run(ctx)
			}}
		}
	}

	cmd := Apply(&fakeCommand{name: "noop"}, mw("inner"), mw("outer"))
	require.NoError(t, cmd.Run(&Context{}))
	require.Equal(t, []string{"outer", "inner"}, calls)
}

// Wrapping must not hide the provider interfaces: a logged or limited
// group command still exposes its subcommands and parameters.
func TestWrappedPreservesProviders(t *testing.T) {
	inner := &fakeCommand{
		name:   "tag",
		params: []manual.Parameter{manual.Required("name", manual.T(manual.TypeString))},
		subs:   []Command{&fakeCommand{name: "add"}},
	}
	cmd := Apply(inner, WithCommandLogger(zerolog.Nop()), WithChecks([]manual.Check{{ID: manual.CheckGuildOnly}}))

	sp, ok := cmd.(SubcommandProvider)
	require.True(t, ok)
	require.Len(t, sp.Subcommands(), 1)
	require.Equal(t, "add", sp.Subcommands()[0].Name())

	pp, ok := cmd.(ParamProvider)
	require.True(t, ok)
	require.Len(t, pp.Params(), 1)
}

func TestCooldownLimitsBurst(t *testing.T) {
	inner := &fakeCommand{name: "ping"}
	cmd := WithCooldown(manual.CooldownSpec{Rate: 2, Per: time.Minute, Bucket: manual.BucketUser})(inner)

	ctx := msgContext("g1", "c1", "u1")
	for i := 0; i < 5; i++ {
		require.NoError(t, cmd.Run(ctx))
	}
	require.Equal(t, 2, inner.runs)
}

// Buckets are independent: a limit spent by one user leaves another
// user's budget untouched.
func TestCooldownBucketsAreIndependent(t *testing.T) {
	inner := &fakeCommand{name: "ping"}
	cmd := WithCooldown(manual.CooldownSpec{Rate: 1, Per: time.Minute, Bucket: manual.BucketUser})(inner)

	require.NoError(t, cmd.Run(msgContext("g1", "c1", "u1")))
	require.NoError(t, cmd.Run(msgContext("g1", "c1", "u2")))
	require.Equal(t, 2, inner.runs)
}

func TestMaxConcurrency(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var mu sync.Mutex
	runs := 0

	inner := &fakeCommand{name: "slow", run: func(*Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		close(started)
		<-release
		return nil
	}}
	cmd := WithMaxConcurrency(manual.ConcurrencySpec{Max: 1, Bucket: manual.BucketGuild})(inner)
	ctx := msgContext("g1", "c1", "u1")

	done := make(chan error, 1)
	go func() { done <- cmd.Run(ctx) }()
	<-started

	// Slot is taken; the second invocation is turned away.
	require.NoError(t, cmd.Run(ctx))
	mu.Lock()
	require.Equal(t, 1, runs)
	mu.Unlock()

	close(release)
	require.NoError(t, <-done)
}

func TestEvaluateChecksGuildOnly(t *testing.T) {
	checks := []manual.Check{{ID: manual.CheckGuildOnly}}

	ok, reason, err := EvaluateChecks(checks, msgContext("", "c1", "u1"), nil)
	require.NoError(t, err)
	require.False(t, ok)
	require.NotEmpty(t, reason)

	ok, _, err = EvaluateChecks(checks, msgContext("g1", "c1", "u1"), nil)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluateChecksDMOnly(t *testing.T) {
	checks := []manual.Check{{ID: manual.CheckDMOnly}}

	ok, _, err := EvaluateChecks(checks, msgContext("g1", "c1", "u1"), nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluateChecksOwnerOnly(t *testing.T) {
	checks := []manual.Check{{ID: manual.CheckOwnerOnly}}
	owners := map[string]bool{"u1": true}

	ok, _, err := EvaluateChecks(checks, msgContext("g1", "c1", "u1"), owners)
	require.NoError(t, err)
	require.True(t, ok)

	ok, reason, err := EvaluateChecks(checks, msgContext("g1", "c1", "u2"), owners)
	require.NoError(t, err)
	require.False(t, ok)
	require.NotEmpty(t, reason)
}

// Permission checks need a live session; without one they pass so the
// CLI and tests can run commands.
func TestEvaluateChecksSkipsPermsWithoutSession(t *testing.T) {
	checks := []manual.Check{{ID: manual.CheckHasPerms, Perms: discordgo.PermissionManageMessages}}

	ok, _, err := EvaluateChecks(checks, msgContext("g1", "c1", "u1"), nil)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluateChecksFirstDenialWins(t *testing.T) {
	checks := []manual.Check{
		{ID: manual.CheckGuildOnly},
		{ID: manual.CheckOwnerOnly},
	}

	_, reason, err := EvaluateChecks(checks, msgContext("", "c1", "u1"), nil)
	require.NoError(t, err)
	require.Equal(t, "This command only works in a server.", reason)
}

func TestBucketKey(t *testing.T) {
	ctx := msgContext("g1", "c1", "u1")
	require.Equal(t, "u:u1", bucketKey(manual.BucketUser, ctx))
	require.Equal(t, "g:g1", bucketKey(manual.BucketGuild, ctx))
	require.Equal(t, "c:c1", bucketKey(manual.BucketChannel, ctx))
	require.Equal(t, "m:g1:u1", bucketKey(manual.BucketMember, ctx))
	require.Equal(t, "global", bucketKey(manual.BucketGlobal, ctx))
}
