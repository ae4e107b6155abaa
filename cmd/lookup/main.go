// lookup sends one query to a running lookup service and prints the answer.
//
//	lookup [flags] -- words AETR
//	lookup [flags] -- anagram RETINAS
//	lookup [flags] -- check QI ZA XU
//	lookup [flags] -- info
//	lookup [flags] -- stats
//
// The query goes to the lambda named by --lambda-function if one is set,
// and over NATS otherwise.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/service"
)

var errUsage = errors.New("usage: lookup [flags] -- words|anagram RACK | check WORD... | info | stats")

func buildRequest(cfg *config.Config) (*service.Request, error) {
	args := cfg.Args()
	if len(args) == 0 {
		return nil, errUsage
	}
	req := &service.Request{
		Lexicon: cfg.DefaultLexicon(),
		Mode:    service.Mode(strings.ToLower(args[0])),
	}
	switch req.Mode {
	case service.ModeWords, service.ModeAnagram:
		if len(args) != 2 {
			return nil, errUsage
		}
		req.Rack = args[1]
	case service.ModeCheck:
		if len(args) < 2 {
			return nil, errUsage
		}
		req.Words = args[1:]
	case service.ModeInfo, service.ModeStats:
	default:
		return nil, errUsage
	}
	return req, nil
}

func printResponse(resp *service.Response, mode service.Mode) error {
	switch mode {
	case service.ModeWords, service.ModeAnagram:
		fmt.Println(strings.Join(resp.Words, " "))
	case service.ModeCheck:
		if resp.Valid {
			fmt.Printf("valid in %s\n", resp.Lexicon)
		} else {
			fmt.Printf("not valid in %s: %s\n", resp.Lexicon, strings.Join(resp.Invalid, ", "))
		}
	default:
		bts, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(bts))
	}
	return nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-arguments")
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	req, err := buildRequest(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Leave the service its own query timeout plus some room for the trip.
	ctx, cancel := context.WithTimeout(context.Background(),
		cfg.GetDuration(config.ConfigQueryTimeout)+5*time.Second)
	defer cancel()

	var client service.Requester
	if fn := cfg.GetString(config.ConfigLambdaFunction); fn != "" {
		client, err = service.NewLambdaClient(ctx, fn)
		if err != nil {
			log.Fatal().Err(err).Msg("lambda-client")
		}
	} else {
		nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL), nats.Name("lexlookup-client"))
		if err != nil {
			log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
		}
		defer nc.Close()
		client = service.NewClient(nc, cfg.GetString(config.ConfigNatsSubject))
	}

	resp, err := client.Request(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("lookup-failed")
		os.Exit(1)
	}
	if err := printResponse(resp, req.Mode); err != nil {
		log.Fatal().Err(err).Msg("print-failed")
	}
}
