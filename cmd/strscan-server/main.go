// cmd/strscan-server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"strscan/internal/logging"
	"strscan/internal/server"
	"strscan/internal/servercli"
	"strscan/internal/version"
)

func main() { os.Exit(run()) }

func run() int {
	fs := servercli.NewFlagSet("strscan-server")
	opts, err := servercli.ParseArgs(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.Version {
		fmt.Printf("strscan-server version %s\n", version.Version)
		return 0
	}

	log := logging.New(logging.Options{
		Level:     opts.LogLevel,
		Format:    opts.LogFormat,
		Component: "strscan-server",
		Writer:    os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	idx, err := server.LoadIndex(ctx, opts.SeqFiles, opts.MaxPeriod)
	if err != nil {
		log.Error().Err(err).Msg("loading references failed")
		return 2
	}
	log.Info().
		Int("references", len(idx.IDs())).
		Int("max_period", opts.MaxPeriod).
		Dur("elapsed", time.Since(started)).
		Msg("references loaded")

	srv := server.New(idx, opts.Listen, opts.CORSOrigins, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
			return 3
		}
		return 0
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
			return 3
		}
		return 0
	}
}
