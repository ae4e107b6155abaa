package anagrammer

import (
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/lexlookup/rack"
)

func tinyDistribution() rack.LetterDistribution {
	return rack.LetterDistribution{'A': 4, 'B': 4, '?': 2}
}

func TestGenRack(t *testing.T) {
	is := is.New(t)
	dist := rack.EnglishLetterDistribution()
	for l := 7; l <= 8; l++ {
		for n := 0; n <= 2; n++ {
			for i := 0; i < 500; i++ {
				r, err := genRack(dist, l, n)
				is.NoErr(err)
				is.Equal(r.NumTiles(), l)
				is.Equal(r.NumBlanks(), n)
			}
		}
	}
}

func TestGenerateBlanks(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("AA", "AB", "BA", "BB")
	args := &BlankChallengeArgs{WordLength: 2, NumQuestions: 1, MaxSolutions: 4}
	qs, sols, err := GenerateBlanks(context.Background(), args, tr, tinyDistribution())
	is.NoErr(err)
	is.Equal(len(qs), 1)
	is.Equal(sols, 3)
	is.True(strings.HasSuffix(qs[0].Q, "?"))
	is.Equal(strings.Count(qs[0].Q, "?"), 1)

	args = &BlankChallengeArgs{WordLength: 2, NumQuestions: 1, MaxSolutions: 4, Num2Blanks: 1}
	qs, sols, err = GenerateBlanks(context.Background(), args, tr, tinyDistribution())
	is.NoErr(err)
	is.Equal(qs[0].Q, "??")
	is.Equal(qs[0].A, []string{"AA", "AB", "BA", "BB"})
	is.Equal(sols, 4)
}

func TestGenerateBlanksTooManyTries(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("QI")
	args := &BlankChallengeArgs{WordLength: 2, NumQuestions: 1, MaxSolutions: 4, MaxTries: 10}
	_, _, err := GenerateBlanks(context.Background(), args, tr, tinyDistribution())
	is.Equal(err, ErrTooManyTries)
}

func TestGenerateBuildChallenge(t *testing.T) {
	is := is.New(t)
	tr := makeTrie("A", "AB", "BA")
	args := &BuildChallengeArgs{WordLength: 2, MinSolutions: 1, MaxSolutions: 5}
	q, err := GenerateBuildChallenge(context.Background(), args, tr, tinyDistribution())
	is.NoErr(err)
	is.Equal(q.Q, "AB")
	is.Equal(q.A, []string{"A", "AB", "BA"})
}

func TestGenerateBuildChallengeCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	args := &BuildChallengeArgs{WordLength: 2, MinSolutions: 1, MaxSolutions: 5}
	_, err := GenerateBuildChallenge(ctx, args, makeTrie("QI"), tinyDistribution())
	is.Equal(err, context.Canceled)
}
