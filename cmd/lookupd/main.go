package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/service"
)

var (
	GitVersion string
)

const (
	GracefulShutdownTimeout = 20 * time.Second
)

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-arguments")
	}
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Str("version", GitVersion).Interface("config", cfg.SanitizedSettings()).
		Msg("starting")

	svc := service.NewService(cfg)
	// Positional arguments name lexica to build before taking requests.
	preload := append([]string{cfg.DefaultLexicon()}, cfg.Args()...)
	if err := svc.Preload(preload...); err != nil {
		log.Fatal().Err(err).Msg("preload-failed")
	}

	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL),
		nats.Name("lexlookup"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().AnErr("err", err).Msg("nats-disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("nats-reconnected")
		}))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}
	defer nc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx, nc, cfg.GetString(config.ConfigNatsSubject))
	}()
	err = <-done
	if err != nil {
		log.Err(err).Msg("serve-failed")
	}

	// Let the drain finish answering in-flight requests.
	if err := nc.Drain(); err != nil {
		log.Err(err).Msg("drain-failed")
		return
	}
	timeout := time.After(GracefulShutdownTimeout)
	for !nc.IsClosed() {
		select {
		case <-timeout:
			log.Warn().Msg("drain-timed-out")
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
	log.Info().Msg("server gracefully shutting down")
}
