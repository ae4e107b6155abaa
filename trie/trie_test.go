package trie

import (
	"testing"

	"github.com/matryer/is"
)

type testpair struct {
	word  string
	found bool
}

var containsTests = []testpair{
	{"HELLO", true},
	{"hello", true},
	{"HeLLo", true},
	{"WORLD", true},
	{"TEST", true},
	{"HEL", false},
	{"HELLOS", false},
	{"ELLO", false},
	{"TESTS", false},
	{"", false},
	{"Z", false},
}

func TestContains(t *testing.T) {
	is := is.New(t)
	tr := New()
	for _, w := range []string{"HELLO", "world", "Test"} {
		tr.Insert(w)
	}
	for _, pair := range containsTests {
		is.Equal(tr.Contains(pair.word), pair.found) // pair.word
	}
}

func TestInsertIdempotent(t *testing.T) {
	is := is.New(t)
	tr := New()
	tr.Insert("CAT")
	states, arcs := tr.AllocStates, tr.AllocArcs
	tr.Insert("CAT")
	tr.Insert("cat")
	is.Equal(tr.AllocStates, states)
	is.Equal(tr.AllocArcs, arcs)
	is.Equal(tr.NumWords(), 1)
	is.Equal(tr.Words(), []string{"CAT"})
}

func TestSharedPrefixes(t *testing.T) {
	is := is.New(t)
	tr := New()
	for _, w := range []string{"CATS", "CAT", "CAST", "CA"} {
		tr.Insert(w)
	}
	// root, C, A, T, S(after T), S(after A), T(after S)
	is.Equal(tr.AllocStates, uint32(7))
	is.Equal(tr.AllocArcs, uint32(6))
	is.Equal(tr.NumWords(), 4)
	is.Equal(tr.MaxWordLength(), 4)
	is.True(tr.Contains("CA"))
	is.True(!tr.Contains("C"))
	is.Equal(tr.Words(), []string{"CA", "CAST", "CAT", "CATS"})
}

func TestArcsSorted(t *testing.T) {
	is := is.New(t)
	tr := New()
	for _, w := range []string{"ZA", "QI", "AA", "MU", "XI"} {
		tr.Insert(w)
	}
	var letters []rune
	for _, arc := range tr.Root.Arcs {
		letters = append(letters, arc.Letter)
	}
	is.Equal(string(letters), "AMQXZ")
	is.True(tr.Root.Child('Q') != nil)
	is.True(tr.Root.Child('B') == nil)
}

func TestEmptyWordIgnored(t *testing.T) {
	is := is.New(t)
	tr := New()
	tr.Insert("")
	is.Equal(tr.NumWords(), 0)
	is.True(!tr.Root.Terminal)
	is.True(!tr.Contains(""))
}

func TestMaxWordLengthCountsRunes(t *testing.T) {
	is := is.New(t)
	tr := New()
	tr.Insert("ÑANDÚ")
	is.Equal(tr.MaxWordLength(), 5)
	is.True(tr.Contains("ñandú"))
}

func TestEstimatedBytes(t *testing.T) {
	is := is.New(t)
	tr := New()
	empty := tr.EstimatedBytes()
	is.True(empty > 0)
	tr.Insert("QUIZ")
	is.True(tr.EstimatedBytes() > empty)
}
