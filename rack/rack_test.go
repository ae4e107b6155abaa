package rack

import (
	"sort"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/frand"
)

func TestFromString(t *testing.T) {
	is := is.New(t)
	r := FromString("AAETR")
	is.Equal(r.Count('A'), 2)
	is.Equal(r.Count('E'), 1)
	is.Equal(r.Count('T'), 1)
	is.Equal(r.Count('R'), 1)
	is.Equal(r.Count('Z'), 0)
	is.Equal(r.NumBlanks(), 0)
	is.Equal(r.NumTiles(), 5)
}

func TestFromStringCaseInsensitive(t *testing.T) {
	is := is.New(t)
	r := FromString("AaEtR")
	is.Equal(r.Count('A'), 2)
	is.Equal(r.Count('a'), 2)
	is.Equal(r.Count('E'), 1)
	is.Equal(r.Count('e'), 1)
	is.Equal(r.Count('t'), 1)
}

func TestBlanks(t *testing.T) {
	type blanktest struct {
		tiles  string
		blanks int
		a      int
	}
	for _, tc := range []blanktest{
		{"AETR??", 2, 1},
		{"AETR**", 2, 1},
		{"AETR?*", 2, 1},
		{"??", 2, 0},
		{"A", 0, 1},
	} {
		r := FromString(tc.tiles)
		assert.Equal(t, tc.blanks, r.NumBlanks(), tc.tiles)
		assert.Equal(t, tc.a, r.Count('A'), tc.tiles)
		assert.Equal(t, 0, r.Count('?'), tc.tiles)
		assert.Equal(t, 0, r.Count('*'), tc.tiles)
	}
}

func TestFromCounts(t *testing.T) {
	is := is.New(t)
	r := FromCounts(map[rune]int{
		'A': 2, 'e': 1, 'E': 1, 'T': 0, 'R': -3, '?': 1, '*': 2,
	})
	is.Equal(r.Count('A'), 2)
	is.Equal(r.Count('E'), 2)
	is.Equal(r.Count('T'), 0)
	is.Equal(r.Count('R'), 0)
	is.Equal(r.NumBlanks(), 3)
	letters := r.Letters()
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	is.Equal(letters, []rune{'A', 'E'})
}

func TestFromCountsDropsNonPositiveBlanks(t *testing.T) {
	is := is.New(t)
	r := FromCounts(map[rune]int{'?': -1, '*': 0, 'Q': 1})
	is.Equal(r.NumBlanks(), 0)
	is.Equal(r.NumTiles(), 1)
}

func TestEmpty(t *testing.T) {
	is := is.New(t)
	r := FromString("")
	is.True(r.Empty())
	is.Equal(r.NumBlanks(), 0)
	is.Equal(len(r.Letters()), 0)
	is.Equal(r.String(), "")
	is.True(FromCounts(nil).Empty())
}

func TestCountsIsACopy(t *testing.T) {
	is := is.New(t)
	r := FromString("APEL")
	c := r.Counts()
	c['A']--
	c['Z'] = 4
	is.Equal(r.Count('A'), 1)
	is.Equal(r.Count('Z'), 0)
	is.Equal(len(r.Counts()), 4)
}

func TestString(t *testing.T) {
	is := is.New(t)
	is.Equal(FromString("rEt*aA?").String(), "AAERT??")
}

func TestNormalisedInput(t *testing.T) {
	is := is.New(t)
	// E followed by a combining acute accent is one tile.
	r := FromString("e\u0301t")
	is.Equal(r.Count('\u00c9'), 1)
	is.Equal(r.NumTiles(), 2)
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	is.Equal(ld.NumTiles(), 100)
	for i := 0; i < 50; i++ {
		r, err := ld.Draw(7)
		is.NoErr(err)
		is.Equal(r.NumTiles(), 7)
		is.True(r.NumBlanks() <= 2)
		for _, l := range r.Letters() {
			is.True(r.Count(l) <= ld[l])
		}
	}
	r, err := ld.Draw(100)
	is.NoErr(err)
	is.Equal(r.NumTiles(), 100)
	is.Equal(r.Count('E'), 12)

	_, err = ld.Draw(101)
	is.True(err != nil)
}

func TestDrawFromIsReproducible(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	seed := make([]byte, 32)
	r1, err := ld.DrawFrom(frand.NewCustom(seed, 1024, 12), 7)
	is.NoErr(err)
	r2, err := ld.DrawFrom(frand.NewCustom(seed, 1024, 12), 7)
	is.NoErr(err)
	is.Equal(r1.String(), r2.String())
}

func TestWithoutBlanks(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution().WithoutBlanks()
	is.Equal(ld.NumTiles(), 98)
	r, err := ld.Draw(98)
	is.NoErr(err)
	is.Equal(r.NumBlanks(), 0)
}

func TestReadLetterDistribution(t *testing.T) {
	is := is.New(t)
	ld, err := ReadLetterDistribution(strings.NewReader(`
name: tiny
tiles:
  a: 2
  B: 1
  "*": 1
  "?": 1
  "É": 1
`))
	is.NoErr(err)
	is.Equal(ld, LetterDistribution{'A': 2, 'B': 1, '?': 2, 'É': 1})
	is.Equal(ld.NumTiles(), 6)
}

func TestReadLetterDistributionErrors(t *testing.T) {
	for _, doc := range []string{
		"name: empty\n",
		"tiles:\n  AB: 2\n",
		"tiles:\n  A: 0\n",
		"tiles: [not, a, map]\n",
	} {
		_, err := ReadLetterDistribution(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}
