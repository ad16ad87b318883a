package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/oust/move"
)

type Client struct {
	// NATS connection
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

func NewClient(nc *nats.Conn, subject string) *Client {
	return &Client{nc: nc, subject: subject, timeout: 30 * time.Second}
}

func parseResponse(data []byte) ([]move.Move, *Response, error) {
	resp := &Response{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, nil, err
	}
	if resp.Error != "" {
		return nil, resp, errors.New("Bot returned: " + resp.Error)
	}
	turn, err := move.ParseTurn(resp.Moves)
	if err != nil {
		return nil, resp, err
	}
	return turn, resp, nil
}

// RequestTurn sends a position to the bot and returns the turn it plays.
// Requests that find no responder or time out are retried.
func (c *Client) RequestTurn(ctx context.Context, req Request) ([]move.Move, *Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}
	var res *nats.Msg
	err = retry.Do(
		func() error {
			rctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			var err error
			res, err = c.nc.RequestWithContext(rctx, c.subject, data)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, nats.ErrNoResponders) || errors.Is(err, context.DeadlineExceeded)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		return nil, nil, err
	}
	log.Debug().Msgf("res: %v", string(res.Data))
	return parseResponse(res.Data)
}
