package anagrammer

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"

	"github.com/domino14/lexlookup/rack"
	"github.com/domino14/lexlookup/trie"
)

func makeTrie(words ...string) *trie.Trie {
	t := trie.New()
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// canMake is the brute-force definition of a match: the letters the rack
// is short of must be covered by its blanks.
func canMake(word string, r *rack.Rack) bool {
	need := map[rune]int{}
	for _, c := range word {
		need[c]++
	}
	short := 0
	for l, n := range need {
		if have := r.Count(l); have < n {
			short += n - have
		}
	}
	return short <= r.NumBlanks()
}

func TestSubanagram(t *testing.T) {
	type anagramtest struct {
		vocab    []string
		tiles    string
		expected []string
	}
	for _, tc := range []anagramtest{
		{[]string{"TEA", "EAT", "ART", "RATE", "TAR", "RAT"}, "AETR",
			[]string{"TEA", "EAT", "ART", "RATE", "TAR", "RAT"}},
		{[]string{"TEA", "EAT", "ART", "RATE", "TAR", "AE"}, "EA",
			[]string{"AE"}},
		{[]string{"APPLE", "APE", "PALE", "LEAP"}, "APEL",
			[]string{"APE", "PALE", "LEAP"}},
		{[]string{"CAT", "BAT", "RAT", "HAT"}, "AT?",
			[]string{"CAT", "BAT", "RAT", "HAT"}},
		{[]string{"CAT", "CATS", "CAST"}, "AT??",
			[]string{"CAT", "CATS", "CAST"}},
		{[]string{"CAT", "CATS", "CAST"}, "AT?*",
			[]string{"CAT", "CATS", "CAST"}},
		{[]string{"HELLO", "WORLD", "QUIZ"}, "AETR", []string{}},
		{[]string{"A", "I", "O", "AT", "IT"}, "A", []string{"A"}},
		{[]string{"TEA", "EAT", "ART"}, "", []string{}},
		{[]string{"ZZZ", "ZZ", "Z"}, "Z?", []string{"Z", "ZZ"}},
		{[]string{"AA", "AAA"}, "??", []string{"AA"}},
	} {
		words, err := Words(context.Background(), makeTrie(tc.vocab...), rack.FromString(tc.tiles))
		assert.NoError(t, err)
		assert.ElementsMatch(t, tc.expected, words, tc.tiles)
	}
}

func TestWordsAreSorted(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("TEA", "EAT", "ART", "RATE", "TAR", "RAT")
	words, err := Words(context.Background(), tr, rack.FromString("AETR"))
	is.NoErr(err)
	is.True(sort.StringsAreSorted(words))
}

func TestAnagram(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("TEA", "EAT", "ART", "RATE", "TEAR", "TARE", "TAR", "RETIA")
	words, err := Anagrams(context.Background(), tr, rack.FromString("AETR"))
	is.NoErr(err)
	is.Equal(words, []string{"RATE", "TARE", "TEAR"})

	words, err = Anagrams(context.Background(), tr, rack.FromString("AIT?R"))
	is.NoErr(err)
	is.Equal(words, []string{"RETIA"})

	words, err = Anagrams(context.Background(), tr, rack.FromString(""))
	is.NoErr(err)
	is.Equal(words, []string{})
}

func TestRackIsNotModified(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("APPLE", "APE", "PALE", "LEAP", "PEA")
	r := rack.FromString("APEL?")
	_, err := Words(context.Background(), tr, r)
	is.NoErr(err)
	is.Equal(r.String(), "AELP?")
}

func TestBacktrackingRestoresCounts(t *testing.T) {
	is := is.New(t)
	// If the A used on the way down to AB were not put back, the sibling
	// branch AC could not be found.
	tr := makeTrie("AB", "AC", "BA", "CA")
	words, err := Words(context.Background(), tr, rack.FromString("ABC"))
	is.NoErr(err)
	is.Equal(words, []string{"AB", "AC", "BA", "CA"})
}

func TestLettersBeforeBlanks(t *testing.T) {
	is := is.New(t)
	// With A on the rack and one blank, AA is only makeable if the first A
	// is paid for with the real tile and the second with the blank.
	tr := makeTrie("AA", "AAA", "BA")
	words, err := Words(context.Background(), tr, rack.FromString("A?"))
	is.NoErr(err)
	is.Equal(words, []string{"AA", "BA"})
}

func TestBufferGrowsPastHint(t *testing.T) {
	is := is.New(t)
	long := strings.Repeat("A", 80)
	tr := makeTrie(long, "AA")
	var da Anagrammer
	da.Init(rack.FromString(strings.Repeat("?", 90)), 2)
	var words []string
	is.NoErr(da.Subanagram(context.Background(), tr, func(w string) error {
		words = append(words, w)
		return nil
	}))
	is.Equal(words, []string{"AA", long})
}

func TestAnagrammerReuse(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("CAT", "BAT", "RAT", "HAT")
	var da Anagrammer
	var words []string
	collect := func(w string) error {
		words = append(words, w)
		return nil
	}
	da.Init(rack.FromString("AT?"), tr.MaxWordLength())
	is.NoErr(da.Subanagram(context.Background(), tr, collect))
	is.Equal(len(words), 4)

	words = nil
	da.Init(rack.FromString("TAR"), tr.MaxWordLength())
	is.NoErr(da.Subanagram(context.Background(), tr, collect))
	is.Equal(words, []string{"RAT"})
}

var errStop = errors.New("stop")

func TestCallbackErrorAborts(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("CAT", "BAT", "RAT", "HAT")
	var da Anagrammer
	da.Init(rack.FromString("AT?"), tr.MaxWordLength())
	calls := 0
	err := da.Subanagram(context.Background(), tr, func(string) error {
		calls++
		return errStop
	})
	is.Equal(err, errStop)
	is.Equal(calls, 1)
}

func TestCancelledContext(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("CAT")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Words(ctx, tr, rack.FromString("CAT"))
	is.True(errors.Is(err, context.Canceled))
}

func randomWord(rng *frand.RNG) string {
	n := 1 + rng.Intn(6)
	b := make([]byte, n)
	for i := range b {
		// a small alphabet makes for plenty of matches
		b[i] = "AEIRSTLN"[rng.Intn(8)]
	}
	return string(b)
}

func TestAgainstBruteForce(t *testing.T) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	vocab := make([]string, 2000)
	for i := range vocab {
		vocab[i] = randomWord(rng)
	}
	tr := makeTrie(vocab...)
	all := tr.Words()

	for i := 0; i < 200; i++ {
		tiles := []byte(randomWord(rng))
		for b := rng.Intn(3); b > 0; b-- {
			tiles = append(tiles, '?')
		}
		r := rack.FromString(string(tiles))
		words, err := Words(context.Background(), tr, r)
		assert.NoError(t, err)

		var expected []string
		for _, w := range all {
			if canMake(w, r) {
				expected = append(expected, w)
			}
		}
		if expected == nil {
			expected = []string{}
		}
		// Completeness, soundness and no duplicates all at once: the
		// sorted output must equal the brute-force list, which is
		// already sorted and duplicate-free.
		assert.Equal(t, expected, words, string(tiles))
	}
}

// benchWords makes n pseudo-words of 2 to 8 letters with English letter
// frequencies.
func benchWords(rng *frand.RNG, n int) []string {
	dist := rack.EnglishLetterDistribution().WithoutBlanks()
	words := make([]string, n)
	for i := range words {
		r, err := dist.DrawFrom(rng, 2+rng.Intn(7))
		if err != nil {
			panic(err)
		}
		w := []rune(r.String())
		rng.Shuffle(len(w), func(i, j int) { w[i], w[j] = w[j], w[i] })
		words[i] = string(w)
	}
	return words
}

func BenchmarkSubanagram(b *testing.B) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	tr := makeTrie(benchWords(rng, 100000)...)
	dist := rack.EnglishLetterDistribution()
	racks := make([]*rack.Rack, 256)
	for i := range racks {
		r, err := dist.DrawFrom(rng, 5+i%4)
		if err != nil {
			b.Fatal(err)
		}
		racks[i] = r
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Words(ctx, tr, racks[i%len(racks)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSubanagramTwoBlanks(b *testing.B) {
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	tr := makeTrie(benchWords(rng, 100000)...)
	r := rack.FromString("RETINA??")
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Words(ctx, tr, r); err != nil {
			b.Fatal(err)
		}
	}
}
