package rack

import (
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

type distributionFile struct {
	Name  string         `yaml:"name"`
	Tiles map[string]int `yaml:"tiles"`
}

// ReadLetterDistribution reads a distribution in YAML, e.g.
//
//	name: english
//	tiles:
//	  A: 9
//	  B: 2
//	  "?": 2
//
// Every key must be a single letter or a blank marker.
func ReadLetterDistribution(r io.Reader) (LetterDistribution, error) {
	df := &distributionFile{}
	if err := yaml.NewDecoder(r).Decode(df); err != nil {
		return nil, err
	}
	if len(df.Tiles) == 0 {
		return nil, fmt.Errorf("letter distribution %q has no tiles", df.Name)
	}
	ld := LetterDistribution{}
	for key, ct := range df.Tiles {
		key = norm.NFC.String(key)
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("tile %q in distribution %q is not a single letter", key, df.Name)
		}
		if ct <= 0 {
			return nil, fmt.Errorf("tile %q in distribution %q has count %d", key, df.Name, ct)
		}
		letter, _ := utf8.DecodeRuneInString(key)
		if IsBlank(letter) {
			letter = BlankToken
		}
		ld[unicode.ToUpper(letter)] += ct
	}
	return ld, nil
}

func LetterDistributionFromFile(path string) (LetterDistribution, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLetterDistribution(f)
}
