package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lexlookup/config"
	"github.com/domino14/lexlookup/lexicon"
	"github.com/domino14/lexlookup/stats"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format for option")
	errNoLexicon         = errors.New("please load a lexicon first with the `load` command")
	errQuit              = errors.New("quitting")
)

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	execPath   string
	gitVersion string

	lexicon *lexicon.TrieLexicon
	// the words found by the last words/anagram command, for `last`
	lastWords []string
	stats     *stats.Recorder
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	return &ShellController{config: cfg, execPath: execPath, gitVersion: gitVersion,
		stats: stats.NewRecorder()}
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	prompt := "lexlookup> "
	sc := newShellController(cfg, execPath, gitVersion)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m" + prompt + "\033[0m",
		HistoryFile:     "/tmp/lexlookup_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a command line into the command name, its
// positional arguments, and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			// option
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[idx][1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) dispatch(ctx context.Context, cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit", "quit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "load":
		return sc.load(cmd)
	case "reload":
		return sc.reload(cmd)
	case "words":
		return sc.words(ctx, cmd)
	case "anagram":
		return sc.anagram(ctx, cmd)
	case "batch":
		return sc.batch(ctx, cmd)
	case "check":
		return sc.check(cmd)
	case "random":
		return sc.random(ctx, cmd)
	case "blanks":
		return sc.blanks(ctx, cmd)
	case "build":
		return sc.build(ctx, cmd)
	case "last":
		return sc.last(cmd)
	case "info":
		return sc.info(cmd)
	case "stats":
		return sc.showStats(cmd)
	case "lengths":
		return sc.lengths(cmd)
	case "script":
		return sc.script(ctx, cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
		return nil, errors.New("command " + strconv.Quote(cmd.cmd) + " not found")
	}
}

// Execute runs a single command line, as if typed into the shell, and
// writes its output to w.
func (sc *ShellController) Execute(ctx context.Context, w io.Writer, line string) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	} else if err != nil {
		return err
	}
	resp, err := sc.dispatch(ctx, cmd)
	if err != nil {
		return err
	}
	if resp != nil && resp.message != "" {
		showMessage(resp.message, w)
	}
	return nil
}

// Loop reads commands until the user quits, then signals sig. The
// readline instance is closed by Cleanup.
func (sc *ShellController) Loop(sig chan os.Signal) {
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		err = sc.Execute(context.Background(), sc.l.Stderr(), line)
		if err == errQuit {
			sig <- syscall.SIGINT
			break
		} else if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Debug().Msg("shell cleanup")
	if sc.l != nil {
		sc.l.Close()
	}
}
