package bot

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/config"
)

const (
	connectAttempts = 5
	replyTimeout    = 3 * time.Second
)

// Connect dials the NATS server, retrying with backoff.
func Connect(ctx context.Context, url string) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-failed-try-again")
		}),
	)
	if err != nil {
		return nil, err
	}
	return nc, nil
}

// SendWithAck sends data to subject as a request and waits for any reply,
// retrying with backoff until one arrives or ctx is done.
func SendWithAck(ctx context.Context, nc *nats.Conn, subject string, data []byte) error {
	return retry.Do(
		func() error {
			// We're just waiting for an acknowledgement. The actual
			// data doesn't matter.
			_, err := nc.Request(subject, data, replyTimeout)
			return err
		},
		retry.Context(ctx),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("subject", subject).
				Msg("did-not-receive-ack-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// Serve answers solve requests on subject until ctx is done. Requests are
// handled one at a time.
func (b *Bot) Serve(ctx context.Context, nc *nats.Conn, subject string) error {
	sub, err := nc.Subscribe(subject, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		if err := m.Respond(b.handle(m.Data)); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Msgf("Listening on [%s]", subject)

	<-ctx.Done()
	log.Info().Msg("draining subscription")
	return sub.Drain()
}

// Main connects using the config and serves until ctx is done.
func Main(ctx context.Context, cfg *config.Config) error {
	nc, err := Connect(ctx, cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()
	return NewBot(cfg).Serve(ctx, nc, cfg.GetString(config.ConfigNatsSubject))
}
