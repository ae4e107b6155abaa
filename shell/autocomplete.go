package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/lexlookup/cache"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-minlen")
	Args    []string // Possible argument values (for non-option arguments)
}

// commandMetadata maps command names to their options and arguments.
var commandMetadata = map[string]CommandMetadata{
	"words": {
		Options: []string{"-minlen"},
	},
	"random": {
		Options: []string{"-n"},
	},
	"blanks": {
		Options: []string{"-length", "-num", "-maxsol", "-twoblanks"},
	},
	"build": {
		Options: []string{"-length", "-minsol", "-maxsol"},
	},
	"help": {
		Args: []string{"words", "anagram", "blanks", "build", "load", "script"},
	},
	"lengths": {
		Args: []string{"last"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "load", "reload", "words", "anagram", "batch", "check",
	"random", "blanks", "build", "last", "info", "stats", "lengths",
	"script", "exit",
}

// loadedLexica lists the names of the lexica already in the cache.
func loadedLexica() []string {
	return lo.FilterMap(cache.Keys(), func(k string, _ int) (string, bool) {
		name, ok := strings.CutPrefix(k, "lexicon:")
		return name, ok
	})
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		// Completing a command name
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		switch {
		case cmdName == "load" || cmdName == "reload":
			completions = append(loadedLexica(), c.sc.config.DefaultLexicon())
		default:
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	// Filter completions based on prefix
	var matches [][]rune
	for _, completion := range lo.Uniq(completions) {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
