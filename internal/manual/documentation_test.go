package manual

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func finalized(t *testing.T, d *Documentation) *Documentation {
	t.Helper()
	require.NoError(t, d.resolve(DefaultTypeTable(), DefaultCheckRegistry()))
	d.restrictions = d.ownRestrictions(DefaultCheckRegistry())
	require.NoError(t, d.finalize(zerolog.Nop()))
	return d
}

func TestSynopsisEnumeratesSignatures(t *testing.T) {
	d := NewDocumentation("roll",
		Opt("sides", T(TypeInt), "6"),
		Opt("count", T(TypeInt), "1"),
	).Description("Roll some dice")
	finalized(t, d)

	require.Equal(t, []string{
		"roll",
		"roll [count]",
		"roll [sides]",
		"roll [sides] [count]",
	}, d.Synopsis())
}

func TestSynopsisSingleOptional(t *testing.T) {
	d := NewDocumentation("prefix", Opt("new_prefix", T(TypeString), "")).
		Description("Show or change the command prefix")
	finalized(t, d)

	require.Equal(t, []string{"", "new_prefix"}, d.signatures().Keys())
	require.Equal(t, []string{"prefix", "prefix [new_prefix]"}, d.Synopsis())
}

func TestInvocationDescribesSignature(t *testing.T) {
	d := NewDocumentation("roll", Opt("sides", T(TypeInt), "6")).
		Description("Roll some dice").
		Invocation("sides", "Roll a die with that many sides.")
	finalized(t, d)

	sig, ok := d.signatures().Get("sides")
	require.True(t, ok)
	require.Equal(t, "Roll a die with that many sides.", sig.Description)
}

func TestHideInvocationDropsSynopsisLine(t *testing.T) {
	d := NewDocumentation("roll", Opt("sides", T(TypeInt), "6")).
		Description("Roll some dice").
		HideInvocation("")
	finalized(t, d)

	require.Equal(t, []string{"roll [sides]"}, d.Synopsis())
}

func TestUnknownInvocationKeyFailsFinalize(t *testing.T) {
	d := NewDocumentation("roll").Invocation("bogus", "never happens")
	require.NoError(t, d.resolve(DefaultTypeTable(), DefaultCheckRegistry()))

	err := d.finalize(zerolog.Nop())
	require.ErrorAs(t, err, new(*BadDocumentation))
}

func TestUnknownArgumentFailsFinalize(t *testing.T) {
	d := NewDocumentation("echo").Argument("bogus", "no such parameter")
	require.NoError(t, d.resolve(DefaultTypeTable(), DefaultCheckRegistry()))

	err := d.finalize(zerolog.Nop())
	require.ErrorAs(t, err, new(*BadDocumentation))
}

// Finalize is one-way: repeated calls return the first result and the
// rendered output does not change.
func TestFinalizeIdempotent(t *testing.T) {
	d := NewDocumentation("ping").Description("Check whether the bot is alive")
	finalized(t, d)

	before := d.Sections()
	require.NoError(t, d.finalize(zerolog.Nop()))
	require.Equal(t, before, d.Sections())
}

func TestMutateAfterFinalizeIsRejected(t *testing.T) {
	d := NewDocumentation("ping").Description("alive check")
	finalized(t, d)

	d.Description("rewritten")
	require.Equal(t, "alive check", d.Summary())
}

func TestSubcommandRebasesCallPaths(t *testing.T) {
	grandchild := NewDocumentation("deep")
	child := NewDocumentation("add").Subcommand(grandchild)
	parent := NewDocumentation("tag").Subcommand(child)

	require.Equal(t, "tag", parent.CallPath())
	require.Equal(t, "tag add", child.CallPath())
	require.Equal(t, "tag add deep", grandchild.CallPath())
}

func TestSectionsOmitEmpty(t *testing.T) {
	d := NewDocumentation("about").Description("Show version info")
	finalized(t, d)

	titles := make([]string, 0, len(d.Sections()))
	for _, sec := range d.Sections() {
		titles = append(titles, sec.Title)
	}
	require.Equal(t, []string{"Synopsis", "Description", "Syntax"}, titles)
}

func TestSectionsFull(t *testing.T) {
	d := NewDocumentation("purge", Required("count", T(TypeInt))).
		Description("Bulk-delete recent messages").
		Argument("count", "How many messages to delete.").
		Restrict(Check{ID: CheckGuildOnly}).
		Cooldown(2, 30*time.Second, BucketChannel).
		Concurrent(1, BucketGuild).
		ExampleUsage("purge 25", "Deletes the last 25 messages.").
		Discuss("Limits", "Discord only bulk-deletes messages under two weeks old.").
		Alias("clean")
	finalized(t, d)

	titles := make([]string, 0, len(d.Sections()))
	byTitle := make(map[string]string)
	for _, sec := range d.Sections() {
		titles = append(titles, sec.Title)
		byTitle[sec.Title] = sec.Body
	}
	require.Equal(t, []string{
		"Synopsis", "Description", "Syntax", "Arguments",
		"Restrictions", "Examples", "Discussions", "Aliases",
	}, titles)

	require.Contains(t, byTitle["Arguments"], "`count`: How many messages to delete.")
	require.Contains(t, byTitle["Arguments"], "Accepts a whole number")
	require.Contains(t, byTitle["Restrictions"], "Servers only")
	require.Contains(t, byTitle["Restrictions"], "Rate limited: 2 times every 30s for each channel")
	require.Contains(t, byTitle["Restrictions"], "At most 1 instance of this command can run at once for each server")
	require.Contains(t, byTitle["Examples"], "`purge 25`")
	require.Equal(t, "clean", byTitle["Aliases"])
}

func TestArgumentAcceptsOverride(t *testing.T) {
	d := NewDocumentation("roll", Required("dice", T(TypeString))).
		Description("Roll dice expressions").
		ArgumentAccepts("dice", NP("dice expression", "dice expressions").With("such as 3d20"))
	finalized(t, d)

	require.Equal(t, "a dice expression such as 3d20", d.Params()[0].Accepts.One())
}
