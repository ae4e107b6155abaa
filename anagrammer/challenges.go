package anagrammer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lexlookup/rack"
	"github.com/domino14/lexlookup/trie"
)

// A Question is a rack to solve, shown as its alphagram, with all of its
// answers.
type Question struct {
	Q string
	A []string
}

type BlankChallengeArgs struct {
	WordLength   int
	NumQuestions int
	// MaxSolutions is the most answers a question may have.
	MaxSolutions int
	// Num2Blanks of the questions get two blanks instead of one.
	Num2Blanks int
	// MaxTries bounds the number of racks drawn. Zero means no bound.
	MaxTries int
}

type BuildChallengeArgs struct {
	WordLength   int
	MinSolutions int
	MaxSolutions int
	MaxTries     int
}

var ErrTooManyTries = errors.New("could not generate challenge within the allowed tries")

// genRack draws a rack of wordLength tiles of which exactly blanks are
// blank.
func genRack(dist rack.LetterDistribution, wordLength, blanks int) (*rack.Rack, error) {
	r, err := dist.WithoutBlanks().Draw(wordLength - blanks)
	if err != nil {
		return nil, err
	}
	counts := r.Counts()
	counts[rack.BlankToken] = blanks
	return rack.FromCounts(counts), nil
}

// try draws one rack with nBlanks blanks and turns it into a question if
// it has between 1 and maxSolutions answers, none of which were already
// used by an earlier question.
func try(ctx context.Context, nBlanks int, dist rack.LetterDistribution, wordLength int,
	t *trie.Trie, maxSolutions int, answerMap map[string]bool) (*Question, error) {

	r, err := genRack(dist, wordLength, nBlanks)
	if err != nil {
		return nil, err
	}
	answers, err := Anagrams(ctx, t, r)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 || len(answers) > maxSolutions {
		log.Debug().Int("answers", len(answers)).Str("rack", r.String()).Msg("too many or few answers")
		return nil, nil
	}
	for _, answer := range answers {
		if answerMap[answer] {
			log.Debug().Str("answer", answer).Msg("duplicate answer")
			return nil, nil
		}
	}
	for _, answer := range answers {
		answerMap[answer] = true
	}
	return &Question{Q: r.String(), A: answers}, nil
}

// GenerateBlanks generates blank challenges: racks with one or two blanks
// that anagram to at least one and at most MaxSolutions words. It returns
// the questions and the total number of answers.
func GenerateBlanks(ctx context.Context, args *BlankChallengeArgs, t *trie.Trie,
	dist rack.LetterDistribution) ([]*Question, int, error) {

	if args.WordLength < 2 || args.Num2Blanks > args.NumQuestions {
		return nil, 0, fmt.Errorf("bad blank challenge arguments: %+v", *args)
	}
	answerMap := make(map[string]bool)
	questions := []*Question{}
	tries := 0
	for len(questions) < args.NumQuestions {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		if args.MaxTries > 0 && tries >= args.MaxTries {
			return nil, 0, ErrTooManyTries
		}
		tries++
		// 2-blank questions come last.
		nBlanks := 1
		if len(questions) >= args.NumQuestions-args.Num2Blanks {
			nBlanks = 2
		}
		q, err := try(ctx, nBlanks, dist, args.WordLength, t, args.MaxSolutions, answerMap)
		if err != nil {
			return nil, 0, err
		}
		if q != nil {
			questions = append(questions, q)
		}
	}
	log.Debug().Int("tries", tries).Msg("generated blank challenges")
	return questions, len(answerMap), nil
}

// GenerateBuildChallenge generates a rack with no blanks whose letters
// anagram exactly to at least one word, and from which between
// MinSolutions and MaxSolutions words can be built.
func GenerateBuildChallenge(ctx context.Context, args *BuildChallengeArgs, t *trie.Trie,
	dist rack.LetterDistribution) (*Question, error) {

	tries := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if args.MaxTries > 0 && tries >= args.MaxTries {
			return nil, ErrTooManyTries
		}
		tries++
		r, err := genRack(dist, args.WordLength, 0)
		if err != nil {
			return nil, err
		}
		answers, err := Anagrams(ctx, t, r)
		if err != nil {
			return nil, err
		}
		if len(answers) == 0 {
			continue
		}
		answers, err = Words(ctx, t, r)
		if err != nil {
			return nil, err
		}
		if len(answers) < args.MinSolutions || len(answers) > args.MaxSolutions {
			continue
		}
		log.Debug().Int("tries", tries).Msg("generated build challenge")
		return &Question{Q: r.String(), A: answers}, nil
	}
}
