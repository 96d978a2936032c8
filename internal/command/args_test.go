package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davren/server-scribe/internal/manual"
)

func TestParseRequired(t *testing.T) {
	params := []manual.Parameter{
		manual.Required("user", manual.T(manual.TypeUser)),
		manual.Required("channel", manual.T(manual.TypeChannel)),
	}

	args, err := Parse(params, "alice #general")
	require.NoError(t, err)

	user, ok := args.Get("user")
	require.True(t, ok)
	require.Equal(t, "alice", user)
	channel, ok := args.Get("channel")
	require.True(t, ok)
	require.Equal(t, "#general", channel)
}

func TestParseMissingRequired(t *testing.T) {
	params := []manual.Parameter{manual.Required("user", manual.T(manual.TypeUser))}

	_, err := Parse(params, "")
	var missing *MissingArgumentError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "user", missing.Param)
}

func TestParseTooMany(t *testing.T) {
	params := []manual.Parameter{manual.Required("user", manual.T(manual.TypeUser))}

	_, err := Parse(params, "alice bob")
	var extra *TooManyArgumentsError
	require.ErrorAs(t, err, &extra)
	require.Equal(t, "bob", extra.Rest)
}

func TestParseOptionalDefault(t *testing.T) {
	params := []manual.Parameter{manual.Opt("sides", manual.T(manual.TypeInt), "6")}

	args, err := Parse(params, "")
	require.NoError(t, err)
	sides, ok := args.Get("sides")
	require.True(t, ok)
	require.Equal(t, "6", sides)

	args, err = Parse(params, "20")
	require.NoError(t, err)
	sides, _ = args.Get("sides")
	require.Equal(t, "20", sides)
}

// An optional parameter yields to required parameters after it when
// there are only enough tokens for the latter.
func TestParseOptionalYieldsToRequired(t *testing.T) {
	params := []manual.Parameter{
		manual.Required("name", manual.T(manual.TypeString)),
		manual.Opt("limit", manual.T(manual.TypeInt), ""),
		manual.Required("target", manual.T(manual.TypeChannel)),
	}

	args, err := Parse(params, "rules #general")
	require.NoError(t, err)
	_, ok := args.Get("limit")
	require.False(t, ok)
	target, _ := args.Get("target")
	require.Equal(t, "#general", target)

	args, err = Parse(params, "rules 5 #general")
	require.NoError(t, err)
	limit, ok := args.Get("limit")
	require.True(t, ok)
	require.Equal(t, "5", limit)
}

func TestParseGreedy(t *testing.T) {
	params := []manual.Parameter{manual.GreedyParam("words", manual.T(manual.TypeString))}

	args, err := Parse(params, "hello out there")
	require.NoError(t, err)
	require.Equal(t, []string{"hello", "out", "there"}, args.All("words"))

	args, err = Parse(params, "")
	require.NoError(t, err)
	require.Empty(t, args.All("words"))
}

// A greedy parameter leaves tokens for required parameters after it.
func TestParseGreedyReserves(t *testing.T) {
	params := []manual.Parameter{
		manual.GreedyParam("words", manual.T(manual.TypeString)),
		manual.Required("channel", manual.T(manual.TypeChannel)),
	}

	args, err := Parse(params, "say this loudly #general")
	require.NoError(t, err)
	require.Equal(t, []string{"say", "this", "loudly"}, args.All("words"))
	channel, _ := args.Get("channel")
	require.Equal(t, "#general", channel)
}

// A final parameter takes the remaining text as one value, spaces and
// all.
func TestParseFinal(t *testing.T) {
	content := manual.CatchAll("content")
	content.Optional = false
	params := []manual.Parameter{
		manual.Required("name", manual.T(manual.TypeString)),
		content,
	}

	args, err := Parse(params, "rules Be nice to each other.")
	require.NoError(t, err)
	name, _ := args.Get("name")
	require.Equal(t, "rules", name)
	got, _ := args.Get("content")
	require.Equal(t, "Be nice to each other.", got)

	_, err = Parse(params, "rules")
	require.ErrorAs(t, err, new(*MissingArgumentError))
}

func TestParseOptionalFinal(t *testing.T) {
	params := []manual.Parameter{manual.CatchAll("query")}

	args, err := Parse(params, "")
	require.NoError(t, err)
	_, ok := args.Get("query")
	require.False(t, ok)

	args, err = Parse(params, "tag add full")
	require.NoError(t, err)
	query, _ := args.Get("query")
	require.Equal(t, "tag add full", query)
}

func TestNilArgs(t *testing.T) {
	var args *Args
	_, ok := args.Get("anything")
	require.False(t, ok)
	require.Nil(t, args.All("anything"))
}
