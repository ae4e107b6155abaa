package rack

import (
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

const (
	// BlankToken is the canonical blank (wildcard) marker.
	BlankToken = '?'
	// AltBlankToken is also accepted as a blank. Both markers are fungible.
	AltBlankToken = '*'
)

// IsBlank reports whether r is one of the blank markers.
func IsBlank(r rune) bool {
	return r == BlankToken || r == AltBlankToken
}

// Rack is a multiset of letters plus a number of blanks. A Rack is never
// modified after it is built; use Counts to get a private copy to work on.
type Rack struct {
	counts map[rune]int
	blanks int
}

// FromCounts builds a rack from a letter -> count mapping. Letters are
// upper-cased, blank markers count towards the blanks, and non-positive
// counts are dropped.
func FromCounts(counts map[rune]int) *Rack {
	r := &Rack{counts: make(map[rune]int, len(counts))}
	for letter, ct := range counts {
		if ct <= 0 {
			continue
		}
		if IsBlank(letter) {
			r.blanks += ct
			continue
		}
		r.counts[unicode.ToUpper(letter)] += ct
	}
	return r
}

// FromString builds a rack where every rune of tiles is one tile, e.g.
// "AAETR?" is two As, an E, a T, an R and a blank.
func FromString(tiles string) *Rack {
	counts := map[rune]int{}
	for _, c := range norm.NFC.String(tiles) {
		counts[c]++
	}
	return FromCounts(counts)
}

// Count returns how many of the given letter are on the rack. The lookup
// is case-insensitive.
func (r *Rack) Count(letter rune) int {
	return r.counts[unicode.ToUpper(letter)]
}

// NumBlanks returns the number of blanks on the rack.
func (r *Rack) NumBlanks() int {
	return r.blanks
}

// Letters returns the distinct letters on the rack, in no particular order.
func (r *Rack) Letters() []rune {
	return lo.Keys(r.counts)
}

// Counts returns a copy of the letter counts that the caller may modify.
func (r *Rack) Counts() map[rune]int {
	cp := make(map[rune]int, len(r.counts))
	for k, v := range r.counts {
		cp[k] = v
	}
	return cp
}

// NumTiles is the total number of tiles, blanks included.
func (r *Rack) NumTiles() int {
	return lo.Sum(lo.Values(r.counts)) + r.blanks
}

// Empty is true if the rack has no letters and no blanks.
func (r *Rack) Empty() bool {
	return r.NumTiles() == 0
}

// String returns the rack in alphabetical order with the blanks at the end.
func (r *Rack) String() string {
	letters := r.Letters()
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	var sb strings.Builder
	for _, l := range letters {
		sb.WriteString(strings.Repeat(string(l), r.counts[l]))
	}
	sb.WriteString(strings.Repeat(string(BlankToken), r.blanks))
	return sb.String()
}
