package lexicon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/lexlookup/anagrammer"
	"github.com/domino14/lexlookup/rack"
	"github.com/domino14/lexlookup/trie"
)

// ErrNotReady is returned by every query made before the lexicon has been
// built for the first time.
var ErrNotReady = errors.New("lexicon must be built before it can be queried")

// How many lines we read between checks of the context while building.
const buildCancelCheckInterval = 4096

type Lexicon interface {
	Name() string
	HasWord(word string) (bool, error)
	FindWords(ctx context.Context, r *rack.Rack) ([]string, error)
	Anagrams(ctx context.Context, r *rack.Rack) ([]string, error)
}

// TrieLexicon is a Lexicon backed by a prefix tree. It is built once and
// can then be queried from any number of goroutines. A rebuild swaps in a
// whole new tree; queries already running finish against the old one.
type TrieLexicon struct {
	name string

	mu       sync.RWMutex
	trie     *trie.Trie
	checksum uint64
	ready    bool
}

func New(name string) *TrieLexicon {
	return &TrieLexicon{name: name}
}

func (l *TrieLexicon) Name() string {
	return l.name
}

func (l *TrieLexicon) swap(t *trie.Trie, sum uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.trie = t
	l.checksum = sum
	l.ready = true
}

// checksum hashes the set of words in t. It does not depend on the order
// or case of the word list.
func checksum(t *trie.Trie) uint64 {
	h := xxhash.New()
	t.Walk(func(word []rune, n *trie.Node) {
		if n.Terminal {
			h.Write([]byte(string(word) + "\n"))
		}
	})
	return h.Sum64()
}

func (l *TrieLexicon) snapshot() (*trie.Trie, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.ready {
		return nil, ErrNotReady
	}
	return l.trie, nil
}

// Build reads a word list, one word per line, and replaces the lexicon's
// contents with it. Surrounding whitespace is trimmed and blank lines are
// skipped. If reading fails the lexicon is left as it was.
func (l *TrieLexicon) Build(ctx context.Context, r io.Reader) error {
	ts := time.Now()
	t := trie.New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		lines++
		if lines%buildCancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		t.Insert(word)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading word list for %v: %w", l.name, err)
	}
	l.swap(t, checksum(t))
	log.Debug().Str("lexicon", l.name).Int("lines", lines).
		Int("words", t.NumWords()).Dur("elapsed", time.Since(ts)).
		Msg("built-lexicon")
	return nil
}

// BuildFromWords is like Build but takes the words from a slice.
func (l *TrieLexicon) BuildFromWords(ctx context.Context, words []string) error {
	t := trie.New()
	words = lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.TrimSpace(w)
		return w, w != ""
	})
	for i, w := range words {
		if i%buildCancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		t.Insert(w)
	}
	l.swap(t, checksum(t))
	log.Debug().Str("lexicon", l.name).Int("words", t.NumWords()).Msg("built-lexicon")
	return nil
}

// HasWord checks whether word, in any case, is in the lexicon. The empty
// word never is.
func (l *TrieLexicon) HasWord(word string) (bool, error) {
	t, err := l.snapshot()
	if err != nil {
		return false, err
	}
	return t.Contains(word), nil
}

// FindWords returns every word that can be made from the rack's tiles,
// using blanks for the letters it is short of. The order is alphabetical
// but callers should not rely on it.
func (l *TrieLexicon) FindWords(ctx context.Context, r *rack.Rack) ([]string, error) {
	t, err := l.snapshot()
	if err != nil {
		return nil, err
	}
	return anagrammer.Words(ctx, t, r)
}

// Anagrams returns the words that use every tile on the rack.
func (l *TrieLexicon) Anagrams(ctx context.Context, r *rack.Rack) ([]string, error) {
	t, err := l.snapshot()
	if err != nil {
		return nil, err
	}
	return anagrammer.Anagrams(ctx, t, r)
}

// FindWordsBatch runs FindWords for every rack concurrently. The results
// are in the same order as the racks; a nil rack counts as empty. The
// first error cancels the rest.
func (l *TrieLexicon) FindWordsBatch(ctx context.Context, racks []*rack.Rack) ([][]string, error) {
	t, err := l.snapshot()
	if err != nil {
		return nil, err
	}
	results := make([][]string, len(racks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range racks {
		if r == nil {
			results[i] = []string{}
			continue
		}
		g.Go(func() error {
			words, err := anagrammer.Words(ctx, t, r)
			if err != nil {
				return err
			}
			results[i] = words
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Trie returns the current tree, for callers that want to run their own
// anagrammer over it.
func (l *TrieLexicon) Trie() (*trie.Trie, error) {
	return l.snapshot()
}

// Info describes a built lexicon. EstimatedBytes is the approximate
// memory used by the tree. Two lexica with the same words have the same
// Checksum.
type Info struct {
	Name           string `json:"name"`
	NumWords       int    `json:"num_words"`
	NumNodes       uint32 `json:"num_nodes"`
	MaxWordLength  int    `json:"max_word_length"`
	EstimatedBytes uint64 `json:"estimated_bytes"`
	Checksum       string `json:"checksum"`
}

func (l *TrieLexicon) Info() (Info, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.ready {
		return Info{}, ErrNotReady
	}
	t := l.trie
	return Info{
		Name:           l.name,
		NumWords:       t.NumWords(),
		NumNodes:       t.AllocStates,
		MaxWordLength:  t.MaxWordLength(),
		EstimatedBytes: t.EstimatedBytes(),
		Checksum:       fmt.Sprintf("%016x", l.checksum),
	}, nil
}
