package testhelpers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/lexicon"
)

// SmallWordList is a handful of words used across tests.
var SmallWordList = []string{
	"AE", "ART", "EAT", "RAT", "RATE", "TAR", "TEA", "TEAR",
	"CAT", "BAT", "HAT", "CATS", "CAST", "APE", "PALE", "LEAP", "APPLE",
}

// Lexicon builds a lexicon from the given words, or from SmallWordList if
// there are none.
func Lexicon(t testing.TB, name string, words ...string) *lexicon.TrieLexicon {
	t.Helper()
	if len(words) == 0 {
		words = SmallWordList
	}
	lex := lexicon.New(name)
	if err := lex.BuildFromWords(context.Background(), words); err != nil {
		t.Fatal(err)
	}
	return lex
}

// LexiconDir writes the given words as the word list for a lexicon called
// name into a temporary directory, and returns a config pointing at it.
func LexiconDir(t testing.TB, name string, words ...string) *config.Config {
	t.Helper()
	if len(words) == 0 {
		words = SmallWordList
	}
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, name+".txt"),
		[]byte(strings.Join(words, "\n")+"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigLexiconPath, dir)
	cfg.Set(config.ConfigDefaultLexicon, name)
	return cfg
}
