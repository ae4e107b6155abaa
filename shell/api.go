package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/lexlookup/anagrammer"
	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/lexicon"
	"github.com/domino14/lexlookup/rack"
	"github.com/domino14/lexlookup/trie"
)

// Words are listed this many characters to a line.
const lineWidth = 80

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// formatWords lays out words in columns, with a count on the first line.
func formatWords(words []string) string {
	if len(words) == 0 {
		return "no words found"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d words:\n", len(words))
	width := lo.Max(lo.Map(words, func(w string, _ int) int {
		return utf8.RuneCountInString(w)
	})) + 1
	perLine := max(lineWidth/width, 1)
	for i, w := range words {
		if i > 0 && i%perLine == 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%-*s", width, w)
	}
	return strings.TrimRight(sb.String(), " ")
}

// sortWords orders by length, longest first, then alphabetically.
func sortWords(words []string) {
	sort.SliceStable(words, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(words[i]), utf8.RuneCountInString(words[j])
		if li != lj {
			return li > lj
		}
		return words[i] < words[j]
	})
}

func (sc *ShellController) lexiconName(cmd *shellcmd) string {
	if len(cmd.args) > 0 {
		return strings.ToUpper(cmd.args[0])
	}
	return sc.config.DefaultLexicon()
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	name := sc.lexiconName(cmd)
	ts := time.Now()
	lex, err := lexicon.Get(sc.config, name)
	if err != nil {
		return nil, err
	}
	sc.lexicon = lex
	sc.lastWords = nil
	info, err := lex.Info()
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("elapsed", time.Since(ts)).Msg("load")
	return msg(fmt.Sprintf("loaded lexicon %v (%d words)", info.Name, info.NumWords)), nil
}

func (sc *ShellController) reload(cmd *shellcmd) (*Response, error) {
	name := sc.lexiconName(cmd)
	if len(cmd.args) == 0 && sc.lexicon != nil {
		name = sc.lexicon.Name()
	}
	lex, err := lexicon.Reload(sc.config, name)
	if err != nil {
		return nil, err
	}
	sc.lexicon = lex
	sc.lastWords = nil
	info, err := lex.Info()
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("reloaded lexicon %v (%d words)", info.Name, info.NumWords)), nil
}

// distribution is the letter distribution random racks are drawn from.
func (sc *ShellController) distribution() (rack.LetterDistribution, error) {
	path := sc.config.GetString(config.ConfigLetterDistribution)
	if path == "" {
		return rack.EnglishLetterDistribution(), nil
	}
	return rack.LetterDistributionFromFile(path)
}

func (sc *ShellController) rackArg(cmd *shellcmd) (*rack.Rack, error) {
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("please provide exactly one rack, e.g. " + cmd.cmd + " AEINST?")
	}
	return rack.FromString(cmd.args[0]), nil
}

func (sc *ShellController) words(ctx context.Context, cmd *shellcmd) (*Response, error) {
	r, err := sc.rackArg(cmd)
	if err != nil {
		return nil, err
	}
	minLen, err := cmd.options.IntDefault("minlen", 1)
	if err != nil {
		return nil, err
	}
	ts := time.Now()
	words, err := sc.lexicon.FindWords(ctx, r)
	if err != nil {
		return nil, err
	}
	sc.stats.Record("words", time.Since(ts), len(words))
	words = lo.Filter(words, func(w string, _ int) bool {
		return utf8.RuneCountInString(w) >= minLen
	})
	sortWords(words)
	sc.lastWords = words
	return msg(formatWords(words)), nil
}

func (sc *ShellController) anagram(ctx context.Context, cmd *shellcmd) (*Response, error) {
	r, err := sc.rackArg(cmd)
	if err != nil {
		return nil, err
	}
	ts := time.Now()
	words, err := sc.lexicon.Anagrams(ctx, r)
	if err != nil {
		return nil, err
	}
	sc.stats.Record("anagram", time.Since(ts), len(words))
	sc.lastWords = words
	return msg(formatWords(words)), nil
}

func (sc *ShellController) batch(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("please provide one or more racks")
	}
	racks := lo.Map(cmd.args, func(s string, _ int) *rack.Rack {
		return rack.FromString(s)
	})
	ts := time.Now()
	results, err := sc.lexicon.FindWordsBatch(ctx, racks)
	if err != nil {
		return nil, err
	}
	sc.stats.Record("batch", time.Since(ts), len(lo.Flatten(results)))
	var sb strings.Builder
	for i, words := range results {
		sortWords(words)
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%v: %v", racks[i], strings.Join(words, " "))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("please provide one or more words to check")
	}
	invalid := []string{}
	for _, w := range cmd.args {
		ok, err := sc.lexicon.HasWord(w)
		if err != nil {
			return nil, err
		}
		if !ok {
			invalid = append(invalid, strings.ToUpper(w))
		}
	}
	if len(invalid) == 0 {
		return msg("valid in " + sc.lexicon.Name()), nil
	}
	return msg(fmt.Sprintf("not valid in %v: %v", sc.lexicon.Name(),
		strings.Join(invalid, ", "))), nil
}

// random draws a rack from the configured letter distribution and shows what
// can be made from it.
func (sc *ShellController) random(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	n, err := cmd.options.IntDefault("n", 7)
	if err != nil {
		return nil, err
	}
	dist, err := sc.distribution()
	if err != nil {
		return nil, err
	}
	r, err := dist.Draw(n)
	if err != nil {
		return nil, err
	}
	words, err := sc.lexicon.FindWords(ctx, r)
	if err != nil {
		return nil, err
	}
	sortWords(words)
	sc.lastWords = words
	return msg("rack: " + r.String() + "\n" + formatWords(words)), nil
}

func (sc *ShellController) blanks(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	args := &anagrammer.BlankChallengeArgs{MaxTries: 100000}
	var err error
	if args.WordLength, err = cmd.options.IntDefault("length", 7); err != nil {
		return nil, err
	}
	if args.NumQuestions, err = cmd.options.IntDefault("num", 5); err != nil {
		return nil, err
	}
	if args.MaxSolutions, err = cmd.options.IntDefault("maxsol", 5); err != nil {
		return nil, err
	}
	if args.Num2Blanks, err = cmd.options.IntDefault("twoblanks", 1); err != nil {
		return nil, err
	}
	t, err := sc.lexicon.Trie()
	if err != nil {
		return nil, err
	}
	dist, err := sc.distribution()
	if err != nil {
		return nil, err
	}
	qs, total, err := anagrammer.GenerateBlanks(ctx, args, t, dist)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	for i, q := range qs {
		fmt.Fprintf(&sb, "%d. %v (%d)\n", i+1, q.Q, len(q.A))
	}
	fmt.Fprintf(&sb, "%d answers in total", total)
	sc.lastWords = lo.FlatMap(qs, func(q *anagrammer.Question, _ int) []string {
		return q.A
	})
	return msg(sb.String()), nil
}

func (sc *ShellController) build(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.lexicon == nil {
		return nil, errNoLexicon
	}
	args := &anagrammer.BuildChallengeArgs{MaxTries: 100000}
	var err error
	if args.WordLength, err = cmd.options.IntDefault("length", 7); err != nil {
		return nil, err
	}
	if args.MinSolutions, err = cmd.options.IntDefault("minsol", 10); err != nil {
		return nil, err
	}
	if args.MaxSolutions, err = cmd.options.IntDefault("maxsol", 100); err != nil {
		return nil, err
	}
	t, err := sc.lexicon.Trie()
	if err != nil {
		return nil, err
	}
	dist, err := sc.distribution()
	if err != nil {
		return nil, err
	}
	q, err := anagrammer.GenerateBuildChallenge(ctx, args, t, dist)
	if err != nil {
		return nil, err
	}
	sortWords(q.A)
	sc.lastWords = q.A
	return msg(fmt.Sprintf("%v: %d words can be built; use `last` to see them",
		q.Q, len(q.A))), nil
}

func (sc *ShellController) last(cmd *shellcmd) (*Response, error) {
	if sc.lastWords == nil {
		return nil, errors.New("no words to show yet")
	}
	return msg(formatWords(sc.lastWords)), nil
}

func (sc *ShellController) info(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "lexlookup %v\n", sc.gitVersion)
	fmt.Fprintf(&sb, "lexicon path: %v\n", sc.config.LexiconPath())
	fmt.Fprintf(&sb, "host memory: %d MB", memory.TotalMemory()/1024/1024)
	if sc.lexicon == nil {
		sb.WriteString("\nno lexicon loaded")
		return msg(sb.String()), nil
	}
	info, err := sc.lexicon.Info()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&sb, "\nlexicon: %v\nwords: %d\nnodes: %d\nlongest word: %d\nestimated size: %d KB",
		info.Name, info.NumWords, info.NumNodes, info.MaxWordLength, info.EstimatedBytes/1024)
	return msg(sb.String()), nil
}

func (sc *ShellController) showStats(cmd *shellcmd) (*Response, error) {
	sums := sc.stats.Summaries()
	if len(sums) == 0 {
		return msg("no lookups yet"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-10s%8s%12s%12s%12s%10s", "lookup", "count", "mean ms", "95% ±", "max ms", "results")
	for _, s := range sums {
		fmt.Fprintf(&sb, "\n%-10s%8d%12.3f%12.3f%12.3f%10.1f", s.Kind, s.Count,
			s.MeanMs, s.MarginMs, s.MaxMs, s.MeanResults)
	}
	return msg(sb.String()), nil
}

// lengths draws a histogram of the word lengths in the lexicon, or of the
// words from the last command.
func (sc *ShellController) lengths(cmd *shellcmd) (*Response, error) {
	var lengths []float64
	if len(cmd.args) > 0 && cmd.args[0] == "last" {
		lengths = lo.Map(sc.lastWords, func(w string, _ int) float64 {
			return float64(utf8.RuneCountInString(w))
		})
	} else {
		if sc.lexicon == nil {
			return nil, errNoLexicon
		}
		t, err := sc.lexicon.Trie()
		if err != nil {
			return nil, err
		}
		t.Walk(func(word []rune, n *trie.Node) {
			if n.Terminal {
				lengths = append(lengths, float64(len(word)))
			}
		})
	}
	if len(lengths) == 0 {
		return nil, errors.New("no words to draw")
	}
	shortest, longest := lo.Min(lengths), lo.Max(lengths)
	if shortest == longest {
		return msg(fmt.Sprintf("%d words, all of length %d", len(lengths), int(shortest))), nil
	}
	bins := int(longest-shortest) + 1
	var sb strings.Builder
	if err := histogram.Fprint(&sb, histogram.Hist(bins, lengths), histogram.Linear(40)); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}
