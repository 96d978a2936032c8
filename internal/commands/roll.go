package commands

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/manual"
)

type RollCommand struct{}

func (c *RollCommand) Name() string        { return "roll" }
func (c *RollCommand) Description() string { return "Roll some dice" }
func (c *RollCommand) Aliases() []string   { return []string{"dice"} }
func (c *RollCommand) Category() string    { return CategoryFun }

func (c *RollCommand) Params() []manual.Parameter {
	return []manual.Parameter{
		manual.Opt("sides", manual.T(manual.TypeInt), "6"),
		manual.Opt("count", manual.T(manual.TypeInt), "1"),
	}
}

func (c *RollCommand) Document(d *manual.Documentation) {
	d.Argument("sides", "How many sides each die has.").
		Argument("count", "How many dice to roll.").
		ExampleUsage("roll", "Rolls one six-sided die.").
		ExampleUsage("roll 20 3", "Rolls three twenty-sided dice.")
}

func (c *RollCommand) Run(ctx *command.Context) error {
	sides := argInt(ctx.Args, "sides", 6)
	count := argInt(ctx.Args, "count", 1)
	if sides < 2 || count < 1 || count > 20 {
		return ctx.Reply("Try dice with at least 2 sides, rolled between 1 and 20 times.")
	}

	rolls := make([]string, count)
	total := 0
	for i := range rolls {
		n := rand.Intn(sides) + 1
		total += n
		rolls[i] = strconv.Itoa(n)
	}
	if count == 1 {
		return ctx.Reply(fmt.Sprintf("🎲 %s", rolls[0]))
	}
	return ctx.Reply(fmt.Sprintf("🎲 %s = %d", strings.Join(rolls, " + "), total))
}

func argInt(args *command.Args, name string, def int) int {
	s, ok := args.Get(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
