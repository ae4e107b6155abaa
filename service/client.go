package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type Client struct {
	// NATS connection
	nc      *nats.Conn
	subject string
}

func NewClient(nc *nats.Conn, subject string) *Client {
	return &Client{nc: nc, subject: subject}
}

// Request sends req to whichever lookup service is listening and waits for
// its answer, or for ctx to end.
func (c *Client) Request(ctx context.Context, req *Request) (*Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	res, err := c.nc.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		log.Error().Msgf("%v for request", err)
		return nil, err
	}
	log.Debug().Msgf("res: %v", string(res.Data))

	resp := &Response{}
	if err := json.Unmarshal(res.Data, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New("lookup service returned: " + resp.Error)
	}
	return resp, nil
}

// Requester sends a lookup and waits for its answer. Client goes through
// NATS and LambdaClient invokes the lambda directly.
type Requester interface {
	Request(ctx context.Context, req *Request) (*Response, error)
}

func words(ctx context.Context, r Requester, mode Mode, lexiconName, tiles string) ([]string, error) {
	resp, err := r.Request(ctx, &Request{Lexicon: lexiconName, Mode: mode, Rack: tiles})
	if err != nil {
		return nil, err
	}
	// an empty list is left out of the JSON
	if resp.Words == nil {
		return []string{}, nil
	}
	return resp.Words, nil
}

func FindWords(ctx context.Context, r Requester, lexiconName, tiles string) ([]string, error) {
	return words(ctx, r, ModeWords, lexiconName, tiles)
}

func Anagrams(ctx context.Context, r Requester, lexiconName, tiles string) ([]string, error) {
	return words(ctx, r, ModeAnagram, lexiconName, tiles)
}

// Check returns the words that are not in the lexicon; none means all of
// them are.
func Check(ctx context.Context, r Requester, lexiconName string, toCheck ...string) ([]string, error) {
	resp, err := r.Request(ctx, &Request{Lexicon: lexiconName, Mode: ModeCheck, Words: toCheck})
	if err != nil {
		return nil, err
	}
	return resp.Invalid, nil
}
