package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/shell"
)

var (
	GitVersion string
)

func main() {
	fmt.Println("freecell", GitVersion)

	cfg := &config.Config{}
	// Flags come first; whatever is left over is run as a single command.
	args := os.Args[1:]
	if err := cfg.Load(configArgs(args)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	commandLine := strings.TrimSpace(strings.Join(commandArgs(args), " "))

	sc := shell.NewShellController(cfg)
	if commandLine == "" {
		go sc.Loop(sig)
	} else {
		sc.ExecuteAndShow(commandLine)
		sig <- syscall.SIGINT
	}

	<-idleConnsClosed
	log.Info().Msg("shell shutting down")
}

// configArgs returns the leading --flag or --flag=value arguments;
// commandArgs the rest.
func configArgs(args []string) []string {
	return args[:splitArgs(args)]
}

func commandArgs(args []string) []string {
	return args[splitArgs(args):]
}

func splitArgs(args []string) int {
	for i, a := range args {
		if !strings.HasPrefix(a, "--") {
			return i
		}
	}
	return len(args)
}
