package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/commands"
	"github.com/davren/server-scribe/internal/config"
	"github.com/davren/server-scribe/internal/discord"
	"github.com/davren/server-scribe/internal/logging"
	"github.com/davren/server-scribe/internal/manual"
	v "github.com/davren/server-scribe/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", v.Version).Msgf("starting %s", v.AppName)

	if err := cfg.RequireToken(); err != nil {
		log.Fatal().Err(err).Msg("configuration incomplete")
	}

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot := discord.NewBot(cfg, reg, man, log)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Stringer("signal", s).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("bot stopped")
		}
	}
}
