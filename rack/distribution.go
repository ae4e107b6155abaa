package rack

import (
	"fmt"
	"sort"

	"lukechampine.com/frand"
)

// LetterDistribution is the number of tiles of each letter in a full bag.
// Blanks are keyed by BlankToken.
type LetterDistribution map[rune]int

func EnglishLetterDistribution() LetterDistribution {
	return LetterDistribution{
		'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2,
		'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2,
		'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1,
		'Y': 2, 'Z': 1, '?': 2,
	}
}

// NumTiles is the size of a full bag.
func (ld LetterDistribution) NumTiles() int {
	n := 0
	for _, ct := range ld {
		n += ct
	}
	return n
}

// tiles lays the bag out flat, in a stable order so that a seeded draw is
// reproducible.
func (ld LetterDistribution) tiles() []rune {
	letters := make([]rune, 0, len(ld))
	for l := range ld {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	bag := make([]rune, 0, ld.NumTiles())
	for _, l := range letters {
		for i := 0; i < ld[l]; i++ {
			bag = append(bag, l)
		}
	}
	return bag
}

// Draw draws n tiles from a full bag, without replacement.
func (ld LetterDistribution) Draw(n int) (*Rack, error) {
	return ld.draw(n, frand.Intn)
}

// DrawFrom is like Draw but uses the given source of randomness.
func (ld LetterDistribution) DrawFrom(rng *frand.RNG, n int) (*Rack, error) {
	return ld.draw(n, rng.Intn)
}

func (ld LetterDistribution) draw(n int, intn func(int) int) (*Rack, error) {
	bag := ld.tiles()
	if n < 0 || n > len(bag) {
		return nil, fmt.Errorf("tried to draw %v tiles, tile bag has %v", n, len(bag))
	}
	counts := map[rune]int{}
	for i := 0; i < n; i++ {
		// partial Fisher-Yates
		j := i + intn(len(bag)-i)
		bag[i], bag[j] = bag[j], bag[i]
		counts[bag[i]]++
	}
	return FromCounts(counts), nil
}

// WithoutBlanks returns a copy of the distribution with the blanks taken
// out of the bag.
func (ld LetterDistribution) WithoutBlanks() LetterDistribution {
	cp := LetterDistribution{}
	for l, ct := range ld {
		if !IsBlank(l) {
			cp[l] = ct
		}
	}
	return cp
}
