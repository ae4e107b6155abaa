// Package service answers lexicon lookups sent over NATS. Requests and
// responses are JSON.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/lexicon"
	"github.com/domino14/lexlookup/rack"
	"github.com/domino14/lexlookup/stats"
)

type Mode string

const (
	// ModeWords finds every word that can be made from the rack.
	ModeWords Mode = "words"
	// ModeAnagram finds the words that use the whole rack.
	ModeAnagram Mode = "anagram"
	// ModeCheck checks the request's words for validity.
	ModeCheck Mode = "check"
	ModeInfo  Mode = "info"
	// ModeStats reports the timings of the lookups answered so far.
	ModeStats Mode = "stats"
)

// The queue group that responders join, so that each request is answered
// by only one of them.
const QueueGroup = "lexlookup"

type Request struct {
	// Lexicon defaults to the configured default lexicon.
	Lexicon string   `json:"lexicon,omitempty"`
	Mode    Mode     `json:"mode"`
	Rack    string   `json:"rack,omitempty"`
	Words   []string `json:"words,omitempty"`
}

type Response struct {
	Lexicon string   `json:"lexicon,omitempty"`
	Words   []string `json:"words,omitempty"`

	// For ModeCheck: whether every word was valid, and the ones that
	// were not.
	Valid   bool            `json:"valid,omitempty"`
	Invalid []string        `json:"invalid,omitempty"`
	Info    *lexicon.Info   `json:"info,omitempty"`
	Stats   []stats.Summary `json:"stats,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// LambdaEvent is what the lookup lambda is invoked with. If ReplyChannel is
// set the response is also published there.
type LambdaEvent struct {
	Request
	RequestID    string `json:"request_id"`
	ReplyChannel string `json:"reply_channel"`
}

func errorResponse(message string, err error) *Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &Response{Error: msg}
}

type Service struct {
	config  *config.Config
	timeout time.Duration
	stats   *stats.Recorder
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		config:  cfg,
		timeout: cfg.GetDuration(config.ConfigQueryTimeout),
		stats:   stats.NewRecorder(),
	}
}

// Handle answers a single request. Errors are reported in the response.
func (s *Service) Handle(ctx context.Context, req *Request) *Response {
	if req.Mode == ModeStats {
		return &Response{Stats: s.stats.Summaries()}
	}
	name := strings.ToUpper(req.Lexicon)
	if name == "" {
		name = s.config.DefaultLexicon()
	}
	lex, err := lexicon.Get(s.config, name)
	if err != nil {
		return errorResponse("Could not load lexicon", err)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	resp := &Response{Lexicon: name}
	ts := time.Now()

	switch req.Mode {
	case ModeWords, ModeAnagram:
		// An empty rack is a valid query with no answers.
		r := rack.FromString(req.Rack)
		if req.Mode == ModeWords {
			resp.Words, err = lex.FindWords(ctx, r)
		} else {
			resp.Words, err = lex.Anagrams(ctx, r)
		}
		if err != nil {
			return errorResponse("Lookup failed", err)
		}
		s.stats.Record(string(req.Mode), time.Since(ts), len(resp.Words))
	case ModeCheck:
		for _, w := range req.Words {
			ok, err := lex.HasWord(w)
			if err != nil {
				return errorResponse("Lookup failed", err)
			}
			if !ok {
				resp.Invalid = append(resp.Invalid, strings.ToUpper(w))
			}
		}
		resp.Valid = len(resp.Invalid) == 0
		s.stats.Record(string(req.Mode), time.Since(ts), len(req.Words))
	case ModeInfo:
		info, err := lex.Info()
		if err != nil {
			return errorResponse("Lookup failed", err)
		}
		resp.Info = &info
	default:
		return errorResponse("Bad request", fmt.Errorf("unknown mode %q", req.Mode))
	}
	return resp
}

// HandleBytes decodes a JSON request, answers it, and encodes the
// response.
func (s *Service) HandleBytes(ctx context.Context, data []byte) []byte {
	var resp *Response
	req := &Request{}
	if err := json.Unmarshal(data, req); err != nil {
		resp = errorResponse("Could not parse request", err)
	} else {
		resp = s.Handle(ctx, req)
	}
	out, err := json.Marshal(resp)
	if err != nil {
		// Should never happen, but the requester still needs an answer.
		return []byte(`{"error":` + fmt.Sprintf("%q", err.Error()) + `}`)
	}
	return out
}

// Serve answers requests on subject until ctx is done, then drains the
// subscription.
func (s *Service) Serve(ctx context.Context, nc *nats.Conn, subject string) error {
	sub, err := nc.QueueSubscribe(subject, QueueGroup, func(m *nats.Msg) {
		ts := time.Now()
		out := s.HandleBytes(ctx, m.Data)
		if err := m.Respond(out); err != nil {
			log.Err(err).Msg("respond-failed")
			return
		}
		log.Debug().Int("req-bytes", len(m.Data)).Int("resp-bytes", len(out)).
			Dur("elapsed", time.Since(ts)).Msg("answered")
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

// Preload builds the named lexica ahead of the first request for them.
func (s *Service) Preload(names ...string) error {
	for _, name := range lo.Uniq(names) {
		if _, err := lexicon.Get(s.config, strings.ToUpper(name)); err != nil {
			return err
		}
	}
	return nil
}
