// Package shell is an interactive FreeCell console: deal or load a
// position, look at the legal moves, play and undo them, and run the
// solver or batches of deals.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/solver"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoPosition        = errors.New("please deal or load a position first")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	solver *solver.Solver

	// history holds every position since the last deal; the current one
	// is last. played[i] took history[i] to history[i+1].
	history []*game.State
	played  []move.Move

	curPlays []move.Move
	solution []move.Move
	// solutionFrom is the history length at which solution applies.
	solutionFrom int

	scriptOutput *strings.Builder
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

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mfreecell>\033[0m ",
		HistoryFile:     "/tmp/freecell-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func newController(cfg *config.Config) *ShellController {
	return &ShellController{config: cfg, solver: solver.NewSolver(cfg)}
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.l.Stderr())
}

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
	lastWasOption := false
	lastOption := ""
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if lastWasOption {
				return nil, errWrongOptionSyntax
			}
			lastWasOption = true
			lastOption = f[1:]
			continue
		}
		if lastWasOption {
			lastWasOption = false
			options[lastOption] = append(options[lastOption], f)
		} else {
			args = append(args, f)
		}
	}
	if lastWasOption {
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// current returns the position on screen, or nil before the first deal.
func (sc *ShellController) current() *game.State {
	if len(sc.history) == 0 {
		return nil
	}
	return sc.history[len(sc.history)-1]
}

// setPosition starts a new history from s.
func (sc *ShellController) setPosition(s *game.State) {
	sc.history = []*game.State{s}
	sc.played = nil
	sc.curPlays = nil
	sc.solution = nil
}

// Execute runs one command line and returns what should be shown.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("shell-command")
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "deal":
		return sc.deal(cmd)
	case "load":
		return sc.load(cmd)
	case "random":
		return sc.random(cmd)
	case "show":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "play":
		return sc.play(cmd)
	case "undo":
		return sc.undo(cmd)
	case "solve":
		return sc.solve(cmd)
	case "step":
		return sc.step(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	default:
		return nil, fmt.Errorf("command %v not found", cmd.cmd)
	}
}

// ExecuteAndShow runs one command line and prints its output or error.
func (sc *ShellController) ExecuteAndShow(line string) {
	resp, err := sc.Execute(line)
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		sc.ExecuteAndShow(line)
	}
	log.Debug().Msg("exiting readline loop")
}
