package anagrammer

import (
	"context"

	"github.com/domino14/lexlookup/rack"
	"github.com/domino14/lexlookup/trie"
)

// How many nodes we visit between checks of the context.
const cancelCheckInterval = 1024

// Anagrammer finds the words in a trie that can be made from a rack.
// The zero value works. It is not threadsafe; use one per query.
type Anagrammer struct {
	ans         []rune
	freq        map[rune]int
	blanks      int
	queryLength int
	visited     int
}

// Init prepares a query for the given rack. maxLen is a sizing hint for
// the longest word that can come out (normally the longest word in the
// trie); the answer buffer grows past it if needed.
func (a *Anagrammer) Init(r *rack.Rack, maxLen int) {
	a.freq = r.Counts()
	a.blanks = r.NumBlanks()
	a.queryLength = r.NumTiles()
	a.visited = 0
	if maxLen > a.queryLength {
		maxLen = a.queryLength
	}
	if cap(a.ans) < maxLen {
		a.ans = make([]rune, 0, maxLen)
	} else {
		a.ans = a.ans[:0]
	}
}

// blanks is passed by value; the letter counts in a.freq are shared and
// put back after every branch. If f returns error, abort iteration.
func (a *Anagrammer) iterate(ctx context.Context, node *trie.Node, blanks int,
	minLen int, f func(string) error) error {

	a.visited++
	if a.visited%cancelCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if node.Terminal && minLen <= 0 {
		if err := f(string(a.ans)); err != nil {
			return err
		}
	}
	for _, arc := range node.Arcs {
		letter := arc.Letter
		if a.freq[letter] > 0 {
			a.freq[letter]--
			a.ans = append(a.ans, letter)
			err := a.iterate(ctx, arc.Destination, blanks, minLen-1, f)
			a.ans = a.ans[:len(a.ans)-1]
			a.freq[letter]++
			if err != nil {
				return err
			}
		} else if blanks > 0 {
			a.ans = append(a.ans, letter)
			err := a.iterate(ctx, arc.Destination, blanks-1, minLen-1, f)
			a.ans = a.ans[:len(a.ans)-1]
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Subanagram calls f with every word in t that can be made from some or
// all of the tiles, a blank standing in for any letter the rack is short
// of. Words come out in alphabetical order, each exactly once.
func (a *Anagrammer) Subanagram(ctx context.Context, t *trie.Trie, f func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.iterate(ctx, t.Root, a.blanks, 1, f)
}

// Anagram is like Subanagram but only finds words that use every tile.
func (a *Anagrammer) Anagram(ctx context.Context, t *trie.Trie, f func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.queryLength == 0 {
		return nil
	}
	return a.iterate(ctx, t.Root, a.blanks, a.queryLength, f)
}

// Words is a convenience wrapper that collects all subanagrams of r.
func Words(ctx context.Context, t *trie.Trie, r *rack.Rack) ([]string, error) {
	var da Anagrammer
	da.Init(r, t.MaxWordLength())
	words := []string{}
	err := da.Subanagram(ctx, t, func(w string) error {
		words = append(words, w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// Anagrams collects the words of t that use every tile of r.
func Anagrams(ctx context.Context, t *trie.Trie, r *rack.Rack) ([]string, error) {
	var da Anagrammer
	da.Init(r, t.MaxWordLength())
	words := []string{}
	err := da.Anagram(ctx, t, func(w string) error {
		words = append(words, w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}
