package lexicon

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lexlookup/cache"
	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/dataloaders"
)

const cacheKeyPrefix = "lexicon:"

// LoadFromFile builds a lexicon from the word list at path. Gzipped word
// lists (ending in .gz) are supported.
func LoadFromFile(ctx context.Context, name, path string) (*TrieLexicon, error) {
	f, err := dataloaders.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lex := New(name)
	if err := lex.Build(ctx, f); err != nil {
		return nil, err
	}
	logSize(lex)
	return lex, nil
}

func logSize(lex *TrieLexicon) {
	info, err := lex.Info()
	if err != nil {
		return
	}
	totalMem := memory.TotalMemory()
	evt := log.Info()
	if totalMem > 0 && info.EstimatedBytes > totalMem/4 {
		evt = log.Warn()
	}
	evt.Str("lexicon", info.Name).
		Int("words", info.NumWords).
		Uint32("nodes", info.NumNodes).
		Uint64("estimated-bytes", info.EstimatedBytes).
		Uint64("total-mem", totalMem).
		Msg("loaded-lexicon")
}

func cacheLoadFunc(cfg *config.Config, key string) (interface{}, error) {
	name := strings.TrimPrefix(key, cacheKeyPrefix)
	f, err := dataloaders.WordListForLexicon(cfg.LexiconPath(), name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lex := New(name)
	if err := lex.Build(context.Background(), f); err != nil {
		return nil, err
	}
	logSize(lex)
	return lex, nil
}

// Get returns the lexicon with the given name from the global cache,
// building it from the lexicon path in cfg the first time.
func Get(cfg *config.Config, name string) (*TrieLexicon, error) {
	obj, err := cache.Load(cfg, cacheKeyPrefix+name, cacheLoadFunc)
	if err != nil {
		return nil, err
	}
	lex, ok := obj.(*TrieLexicon)
	if !ok {
		return nil, fmt.Errorf("cache object for %v is not a lexicon", name)
	}
	return lex, nil
}

// Reload drops the cached lexicon and builds it again from disk.
func Reload(cfg *config.Config, name string) (*TrieLexicon, error) {
	cache.Evict(cacheKeyPrefix + name)
	return Get(cfg, name)
}
