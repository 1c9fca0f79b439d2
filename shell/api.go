package shell

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/domino14/freecell/automatic"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
	"github.com/domino14/freecell/solver"
)

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

func (c CmdOptions) Uint64Default(key string, defaultU uint64) (uint64, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultU, nil
	}
	return strconv.ParseUint(v[0], 10, 64)
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: deal <file>")
	}
	s, err := deal.LoadDeal(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.setPosition(s)
	return msg(s.ToDisplayText()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <layout.yaml|layout.json>")
	}
	s, err := deal.LoadLayout(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.setPosition(s)
	return msg(s.ToDisplayText()), nil
}

func (sc *ShellController) random(cmd *shellcmd) (*Response, error) {
	var seed uint64
	seeded := len(cmd.args) > 0
	if seeded {
		var err error
		seed, err = strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed: %w", err)
		}
	}
	foundations, err := cmd.options.IntDefault("foundations", 0)
	if err != nil {
		return nil, err
	}
	var s *game.State
	switch {
	case foundations > 0:
		s, err = deal.PartiallySolved(foundations, seed)
		if err != nil {
			return nil, err
		}
	case seeded:
		s = deal.RandomState(seed)
	default:
		s, err = game.NewFromDeal(deal.Unseeded())
		if err != nil {
			return nil, err
		}
	}
	sc.setPosition(s)
	return msg(s.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	s := sc.current()
	if s == nil {
		return nil, errNoPosition
	}
	var sb strings.Builder
	sb.WriteString(s.ToDisplayText())
	fmt.Fprintf(&sb, "\nMoves played: %d  Cards left: %d  Free cells: %d  Empty columns: %d\n",
		len(sc.played), s.CardsRemaining(), s.CountFreeCells(), s.CountEmptyColumns())
	if s.IsWon() {
		sb.WriteString("Solved!\n")
	}
	return msg(sb.String()), nil
}

func moveTableRow(idx int, m move.Move) string {
	return fmt.Sprintf("%3d: %-20s%s", idx+1, m.String(), m.ShortDescription())
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	s := sc.current()
	if s == nil {
		return nil, errNoPosition
	}
	sc.curPlays = movegen.Generate(s)
	if len(sc.curPlays) == 0 {
		return msg("no moves"), nil
	}
	rows := make([]string, len(sc.curPlays))
	for i, m := range sc.curPlays {
		rows[i] = moveTableRow(i, m)
	}
	return msg(strings.Join(rows, "\n")), nil
}

// playMove plays m after checking it, so an illegal move typed by hand is
// an error rather than a crash.
func (sc *ShellController) playMove(m move.Move) (*game.State, error) {
	s := sc.current()
	if err := s.ValidateMove(m); err != nil {
		return nil, err
	}
	next := s.PlayMove(m)
	sc.history = append(sc.history, next)
	sc.played = append(sc.played, m)
	sc.curPlays = nil
	return next, nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	s := sc.current()
	if s == nil {
		return nil, errNoPosition
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <move> or play <number from the moves list>")
	}
	var m move.Move
	if idx, err := strconv.Atoi(cmd.args[0]); err == nil {
		if sc.curPlays == nil {
			sc.curPlays = movegen.Generate(s)
		}
		if idx < 1 || idx > len(sc.curPlays) {
			return nil, fmt.Errorf("move number %d out of range (1-%d)", idx, len(sc.curPlays))
		}
		m = sc.curPlays[idx-1]
	} else {
		m, err = move.Parse(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	next, err := sc.playMove(m)
	if err != nil {
		return nil, err
	}
	return msg(next.ToDisplayText()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.played) == 0 {
		return nil, errors.New("nothing to undo")
	}
	sc.history = sc.history[:len(sc.history)-1]
	sc.played = sc.played[:len(sc.played)-1]
	sc.curPlays = nil
	return msg(sc.current().ToDisplayText()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	s := sc.current()
	if s == nil {
		return nil, errNoPosition
	}
	maxNodes, err := cmd.options.IntDefault("maxnodes", sc.config.GetInt(config.ConfigMaxNodes))
	if err != nil {
		return nil, err
	}
	sc.solver.SetMaxNodes(maxNodes)
	defer sc.solver.SetMaxNodes(sc.config.GetInt(config.ConfigMaxNodes))

	sol, err := sc.solver.Solve(s)
	if errors.Is(err, solver.ErrNoSolution) || errors.Is(err, solver.ErrBudgetExceeded) {
		return msg(fmt.Sprintf("%v after %d nodes (%d states, %v)", err, sol.NodesExplored,
			sol.StatesSeen, sol.Elapsed)), nil
	}
	if err != nil {
		return nil, err
	}
	sc.solution = sol.Moves
	sc.solutionFrom = len(sc.history)
	return msg(sol.String()), nil
}

func (sc *ShellController) step(cmd *shellcmd) (*Response, error) {
	if sc.solution == nil {
		return nil, errors.New("no solution; run solve first")
	}
	next := len(sc.history) - sc.solutionFrom
	if next == len(sc.solution) && slices.Equal(sc.played[sc.solutionFrom-1:], sc.solution) {
		return msg("the solution has been played out"), nil
	}
	if next < 0 || next >= len(sc.solution) ||
		!slices.Equal(sc.played[sc.solutionFrom-1:], sc.solution[:next]) {
		return nil, errors.New("the position no longer follows the last solution; run solve again")
	}
	m := sc.solution[next]
	st, err := sc.playMove(m)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%d/%d: %s (%s)\n%s", next+1, len(sc.solution), m.String(),
		m.ShortDescription(), st.ToDisplayText())), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	settable := []string{config.ConfigMaxNodes, config.ConfigLogEvery,
		config.ConfigVerifyInvariants, config.ConfigResultsDB}
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range settable {
			fmt.Fprintf(&sb, "%-20s %v\n", k, sc.config.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%v", sc.config.Get(key))), nil
	}
	value := cmd.args[1]
	switch key {
	case config.ConfigMaxNodes, config.ConfigLogEvery:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, n)
	case config.ConfigVerifyInvariants:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, b)
	case config.ConfigResultsDB:
		sc.config.Set(key, value)
	default:
		return nil, fmt.Errorf("%v cannot be set from the shell", key)
	}
	sc.solver = solver.NewSolver(sc.config)
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: autoplay <number of deals> [-seed s] [-foundations k] [-threads t]")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("bad number of deals %q", cmd.args[0])
	}
	seed, err := cmd.options.Uint64Default("seed", 1)
	if err != nil {
		return nil, err
	}
	foundations, err := cmd.options.IntDefault("foundations", 0)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigBatchThreads))
	if err != nil {
		return nil, err
	}
	sc.config.Set(config.ConfigBatchThreads, threads)

	var sb strings.Builder
	if _, err := automatic.RunBatch(context.Background(), sc.config, &sb, seed, n,
		foundations); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}
