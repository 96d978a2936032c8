// Offline manual browser: renders the table of contents or one
// command's help as plain text, without touching Discord.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/commands"
	"github.com/davren/server-scribe/internal/config"
	"github.com/davren/server-scribe/internal/logging"
	"github.com/davren/server-scribe/internal/manual"
	v "github.com/davren/server-scribe/internal/version"
)

func main() {
	style := flag.String("style", "normal", "help style: normal, short, full, examples, signature")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New("warn", "")

	reg := command.NewRegistry(cfg.OwnerIDs...)
	if err := commands.RegisterAll(reg, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("command registration failed")
	}
	man, err := reg.BuildManual(
		manual.WithTitle(v.AppName+" commands"),
		manual.WithSimilarityFloor(cfg.SimilarityFloor),
		manual.WithLogger(log),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("manual build failed")
	}

	if flag.NArg() == 0 {
		_, text := man.TOC()
		fmt.Print(text)
		return
	}

	query := strings.Join(flag.Args(), " ")
	_, text, err := man.RenderHelp(query, manual.ParseStyle(*style))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(text)
}
