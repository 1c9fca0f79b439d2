package shell

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/freecell/deal"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("freecell_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// shellFunc exposes a shell command to lua. The lua function takes the
// rest of the command line as one string and returns the command output,
// or a string starting with "ERROR: ".
func shellFunc(command string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := strings.TrimSpace(command + " " + L.OptString(1, ""))
		sc := getShell(L)
		r, err := sc.Execute(line)
		if err != nil {
			log.Err(err).Str("command", command).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

func Exec(L *lua.LState) int {
	line := L.ToString(1)
	sc := getShell(L)
	r, err := sc.Execute(line)
	if err != nil {
		log.Err(err).Msg("error-executing-exec")
		L.Push(lua.LString("ERROR: " + err.Error()))
		return 1
	}
	L.Push(lua.LString(r.message))
	return 1
}

func State(L *lua.LState) int {
	sc := getShell(L)
	s := sc.current()
	if s == nil {
		L.Push(lua.LNil)
		return 1
	}
	bts, err := json.Marshal(deal.LayoutFromState(s))
	if err != nil {
		L.RaiseError("cannot encode state: %v", err)
		return 0
	}
	L.Push(lua.LString(string(bts)))
	return 1
}

func Print(L *lua.LState) int {
	sc := getShell(L)
	sc.scriptOutput.WriteString(L.ToString(1))
	sc.scriptOutput.WriteString("\n")
	return 0
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	if sc.scriptOutput != nil {
		return nil, errors.New("scripts cannot run other scripts")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc
	sc.scriptOutput = &strings.Builder{}
	defer func() { sc.scriptOutput = nil }()

	args := L.NewTable()
	for _, a := range cmd.args[1:] {
		args.Append(lua.LString(a))
	}
	L.SetGlobal("args", args)
	L.SetGlobal("freecell_shell", lsc)
	L.SetGlobal("freecell_exec", L.NewFunction(Exec))
	L.SetGlobal("freecell_random", L.NewFunction(shellFunc("random")))
	L.SetGlobal("freecell_load", L.NewFunction(shellFunc("load")))
	L.SetGlobal("freecell_play", L.NewFunction(shellFunc("play")))
	L.SetGlobal("freecell_moves", L.NewFunction(shellFunc("moves")))
	L.SetGlobal("freecell_solve", L.NewFunction(shellFunc("solve")))
	L.SetGlobal("freecell_state", L.NewFunction(State))
	L.SetGlobal("freecell_print", L.NewFunction(Print))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg(strings.TrimRight(sc.scriptOutput.String(), "\n")), nil
}
