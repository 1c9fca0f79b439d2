package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/domino14/freecell/automatic"
	"github.com/domino14/freecell/bot"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/solver"
)

const remoteTimeout = 5 * time.Minute

type options struct {
	dealFile    string
	layoutFile  string
	seed        uint64
	foundations int
	batch       int
	seedsFile   string
	saveSeeds   string
	showLayout  bool
	remote      bool
}

func main() {
	opts := &options{}
	fs := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	fs.StringVar(&opts.dealFile, "deal-file", "", "text file with the 52 cards of a deal")
	fs.StringVar(&opts.layoutFile, "layout-file", "", "YAML or JSON file with a position")
	fs.Uint64Var(&opts.seed, "seed", 0, "solve the random deal with this seed (first seed with --batch)")
	fs.IntVar(&opts.foundations, "foundations", 0, "with --seed or --batch, start every foundation at this rank")
	fs.IntVar(&opts.batch, "batch", 0, "solve this many seeded deals and print a summary")
	fs.StringVar(&opts.seedsFile, "seeds-file", "", "solve the deals for the seeds listed in this file")
	fs.StringVar(&opts.saveSeeds, "save-seeds", "", "with --batch, use random seeds and write them to this file")
	fs.BoolVar(&opts.showLayout, "show-layout", false, "print the starting position as YAML")
	fs.BoolVar(&opts.remote, "remote", false, "send the position to a bot over NATS instead of solving here")

	cfg := &config.Config{}
	if err := cfg.LoadFlagSet(fs, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch {
	case opts.seedsFile != "":
		err = runSeedsFile(ctx, cfg, opts)
	case opts.batch > 0 && opts.saveSeeds != "":
		seeds := automatic.GenerateSeeds(opts.batch)
		if err = automatic.SaveSeeds(seeds, opts.saveSeeds); err == nil {
			_, err = automatic.RunSeeds(ctx, cfg, os.Stdout, seeds, opts.foundations,
				filepath.Base(opts.saveSeeds))
		}
	case opts.batch > 0:
		_, err = automatic.RunBatch(ctx, cfg, os.Stdout, opts.seed, opts.batch, opts.foundations)
	default:
		err = solveOne(ctx, cfg, fs, opts)
	}
	if err != nil {
		log.Error().Err(err).Msg("solve-failed")
		stop()
		os.Exit(1)
	}
}

func runSeedsFile(ctx context.Context, cfg *config.Config, opts *options) error {
	seeds, err := automatic.LoadSeeds(opts.seedsFile)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return errors.New("no seeds in " + opts.seedsFile)
	}
	_, err = automatic.RunSeeds(ctx, cfg, os.Stdout, seeds, opts.foundations,
		filepath.Base(opts.seedsFile))
	return err
}

func startingPosition(fs *pflag.FlagSet, opts *options) (*game.State, error) {
	given := 0
	for _, name := range []string{"deal-file", "layout-file", "seed"} {
		if fs.Changed(name) {
			given++
		}
	}
	if given != 1 {
		return nil, errors.New("give exactly one of --deal-file, --layout-file, --seed or use --batch")
	}
	switch {
	case opts.dealFile != "":
		return deal.LoadDeal(opts.dealFile)
	case opts.layoutFile != "":
		return deal.LoadLayout(opts.layoutFile)
	case opts.foundations > 0:
		return deal.PartiallySolved(opts.foundations, opts.seed)
	default:
		return deal.RandomState(opts.seed), nil
	}
}

func solveOne(ctx context.Context, cfg *config.Config, fs *pflag.FlagSet, opts *options) error {
	s, err := startingPosition(fs, opts)
	if err != nil {
		return err
	}
	if opts.showLayout {
		bts, err := deal.MarshalYAML(s)
		if err != nil {
			return err
		}
		fmt.Print(string(bts))
	}
	fmt.Println(s.ToDisplayText())

	var moves []move.Move
	if opts.remote {
		moves, err = solveRemote(ctx, cfg, s)
	} else {
		var sol *solver.Solution
		sol, err = solver.NewSolver(cfg).Solve(s)
		if err != nil {
			if sol != nil {
				log.Info().Int("explored", sol.NodesExplored).Int("states", sol.StatesSeen).
					Dur("elapsed", sol.Elapsed).Msg("search-effort")
			}
			return err
		}
		fmt.Print(sol.String())
		moves = sol.Moves
	}
	if err != nil {
		return err
	}

	final, err := game.Replay(s, moves)
	if err != nil {
		return fmt.Errorf("solution does not replay: %w", err)
	}
	if !final.IsWon() {
		return errors.New("solution does not win the game")
	}
	fmt.Printf("Verified: %d moves win the game.\n", len(moves))
	return nil
}

func solveRemote(ctx context.Context, cfg *config.Config, s *game.State) ([]move.Move, error) {
	nc, err := bot.Connect(ctx, cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		return nil, err
	}
	defer nc.Close()
	client := bot.NewClient(nc, cfg.GetString(config.ConfigNatsSubject))
	resp, err := client.RequestSolve(&bot.SolveRequest{
		Layout:   deal.LayoutFromState(s),
		MaxNodes: cfg.GetInt(config.ConfigMaxNodes),
	}, remoteTimeout)
	if err != nil {
		return nil, err
	}
	fmt.Printf("%s; %d moves; %d nodes; %d states; %v\n", resp.Outcome, len(resp.Moves),
		resp.NodesExplored, resp.StatesSeen, resp.Elapsed())
	if resp.Outcome != automatic.OutcomeSolved {
		return nil, errors.New(resp.Outcome)
	}
	fmt.Println(move.ListString(resp.Moves))
	return resp.Moves, nil
}
