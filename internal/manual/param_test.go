package manual

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		param Parameter
		want  string
	}{
		{Required("user", T(TypeUser)), "<user>"},
		{Opt("reason", T(TypeString), ""), "[reason]"},
		{GreedyParam("words", T(TypeString)), "[words]..."},
		{CatchAll("rest"), "[rest...]"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.param.Placeholder())
	}
}

func TestResolveFillsDescription(t *testing.T) {
	p := Required("count", T(TypeInt))
	require.NoError(t, p.resolve("roll", DefaultTypeTable()))
	require.Equal(t, "a whole number", p.Accepts.One())
}

func TestResolveDefaultImpliesOptional(t *testing.T) {
	p := Parameter{Name: "sides", Type: T(TypeInt), Default: "6"}
	require.NoError(t, p.resolve("roll", DefaultTypeTable()))
	require.True(t, p.Optional)
}

func TestResolveRejectsFinalGreedy(t *testing.T) {
	p := Parameter{Name: "rest", Type: T(TypeString), Final: true, Greedy: true}
	err := p.resolve("broken", DefaultTypeTable())
	require.ErrorAs(t, err, new(*BadDocumentation))
}

func TestResolveRejectsEmptyName(t *testing.T) {
	p := Parameter{Type: T(TypeString)}
	err := p.resolve("broken", DefaultTypeTable())
	require.ErrorAs(t, err, new(*BadDocumentation))
}

func TestDescribeSentence(t *testing.T) {
	p := Opt("sides", T(TypeInt), "6")
	require.NoError(t, p.resolve("roll", DefaultTypeTable()))
	require.Equal(t, "Accepts a whole number (default: 6)", p.describe())

	p.Help = "How many sides each die has."
	require.Equal(t, "How many sides each die has.\nAccepts a whole number (default: 6)", p.describe())
}

func TestDescribeSentenceGreedy(t *testing.T) {
	p := GreedyParam("words", T(TypeString))
	require.NoError(t, p.resolve("echo", DefaultTypeTable()))
	require.Equal(t, "Accepts one or more pieces of text", p.describe())
}
