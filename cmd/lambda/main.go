package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/service"
)

var cfg *config.Config
var nc *nats.Conn

// The service outlives single invocations, so lexica stay loaded and the
// lookup statistics build up while the lambda is warm.
var svc *service.Service

// HandleRequest answers the lookup in evt. The response is returned and,
// if the event names a reply channel, also published there.
func HandleRequest(ctx context.Context, evt service.LambdaEvent) (*service.Response, error) {
	logger := log.With().
		Str("requestID", evt.RequestID).
		Str("mode", string(evt.Mode)).
		Logger()

	resp := svc.Handle(ctx, &evt.Request)
	if resp.Error != "" {
		logger.Error().Str("error", resp.Error).Msg("lookup-failed")
	}
	if evt.ReplyChannel != "" {
		if nc == nil {
			return nil, errors.New("reply channel given but there is no NATS connection")
		}
		data, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("lookup-done-sending-via-nats")
		err = retry.Do(
			func() error {
				// We're just waiting for an acknowledgement. The actual
				// data doesn't matter.
				_, err := nc.Request(evt.ReplyChannel, data, 3*time.Second)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(5),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("reply-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	// Lookup errors go back in the response rather than failing the
	// invocation.
	return resp, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-arguments")
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	svc = service.NewService(cfg)

	nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}

	lambda.Start(HandleRequest)
}
