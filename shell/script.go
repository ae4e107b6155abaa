package shell

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/lexlookup/lexicon"
	"github.com/domino14/lexlookup/rack"
)

// Scripts get a context through the shell global so that a long script
// can be cancelled between calls.
type scriptEnv struct {
	sc  *ShellController
	ctx context.Context
}

func getEnv(L *lua.LState) *scriptEnv {
	shell := L.GetGlobal("lexlookup_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	env, ok := ud.Value.(*scriptEnv)
	if !ok {
		panic("script env not right type")
	}
	return env
}

func stringsTable(L *lua.LState, strs []string) *lua.LTable {
	tbl := L.CreateTable(len(strs), 0)
	for _, s := range strs {
		tbl.Append(lua.LString(s))
	}
	return tbl
}

// Command runs any shell command line and returns its output.
func Command(L *lua.LState) int {
	line := L.CheckString(1)
	env := getEnv(L)
	cmd, err := extractFields(line)
	if err != nil {
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	r, err := env.sc.dispatch(env.ctx, cmd)
	if err != nil {
		log.Err(err).Msg("error-executing-command")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	if r == nil {
		return 0
	}
	L.Push(lua.LString(r.message))
	// return number of results pushed to stack.
	return 1
}

// Words returns a table of the words that can be made from a rack, or nil
// and an error message.
func Words(L *lua.LState) int {
	tiles := L.CheckString(1)
	env := getEnv(L)
	if env.sc.lexicon == nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(errNoLexicon.Error()))
		return 2
	}
	words, err := env.sc.lexicon.FindWords(env.ctx, rack.FromString(tiles))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(stringsTable(L, words))
	return 1
}

func Anagrams(L *lua.LState) int {
	tiles := L.CheckString(1)
	env := getEnv(L)
	if env.sc.lexicon == nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(errNoLexicon.Error()))
		return 2
	}
	words, err := env.sc.lexicon.Anagrams(env.ctx, rack.FromString(tiles))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(stringsTable(L, words))
	return 1
}

func Check(L *lua.LState) int {
	word := L.CheckString(1)
	env := getEnv(L)
	if env.sc.lexicon == nil {
		L.RaiseError("%s", errNoLexicon.Error())
		return 0
	}
	ok, err := env.sc.lexicon.HasWord(word)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LBool(ok))
	return 1
}

// Build makes the shell's current lexicon out of a string of words, one
// per line, such as a word list fetched with the http module.
func Build(L *lua.LState) int {
	name := L.CheckString(1)
	text := L.CheckString(2)
	env := getEnv(L)
	lex := lexicon.New(strings.ToUpper(name))
	if err := lex.Build(env.ctx, strings.NewReader(text)); err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	env.sc.lexicon = lex
	env.sc.lastWords = nil
	info, _ := lex.Info()
	L.Push(lua.LNumber(info.NumWords))
	return 1
}

func (sc *ShellController) script(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: 30 * time.Second}).Loader)
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = &scriptEnv{sc: sc, ctx: ctx}

	L.SetGlobal("lexlookup_shell", lsc)
	L.SetGlobal("lexlookup_command", L.NewFunction(Command))
	L.SetGlobal("lexlookup_words", L.NewFunction(Words))
	L.SetGlobal("lexlookup_anagrams", L.NewFunction(Anagrams))
	L.SetGlobal("lexlookup_check", L.NewFunction(Check))
	L.SetGlobal("lexlookup_build", L.NewFunction(Build))
	// script arguments, as in the standalone interpreter
	L.SetGlobal("arg", stringsTable(L, cmd.args[1:]))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
