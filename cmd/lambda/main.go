package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/bot"
	"github.com/domino14/freecell/config"
)

var cfg *config.Config
var nc *nats.Conn

func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (string, error) {
	logger := log.With().Str("id", evt.ID).Logger()

	resp := bot.NewBot(cfg).Handle(&evt.SolveRequest)
	if resp.Outcome == bot.OutcomeError {
		return "", fmt.Errorf("%s", resp.Error)
	}
	summary := fmt.Sprintf("%s in %d moves (%d nodes)", resp.Outcome, len(resp.Moves),
		resp.NodesExplored)

	if evt.ReplyChannel != "" && nc != nil {
		data, err := json.Marshal(resp)
		if err != nil {
			return "", err
		}
		logger.Info().Str("channel", evt.ReplyChannel).Msg("solve-done-sending-via-nats")
		if err := bot.SendWithAck(ctx, nc, evt.ReplyChannel, data); err != nil {
			logger.Err(err).Msg("reply-failed")
			return "", err
		}
	}
	logger.Info().Msg("exiting-fn")
	return summary, nil
}

func main() {
	cfg = &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var err error
	nc, err = bot.Connect(context.Background(), cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}

	lambda.Start(HandleRequest)
}
