package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hexxagon/engine"
	"hexxagon/experiments"
	"hexxagon/game"
	"hexxagon/meta"
	"hexxagon/storage"
)

var (
	// Self-play
	games      = flag.Int("games", meta.GAMES, "Number of self-play games")
	goroutines = flag.Int("goroutines", meta.GO_ROUTINES, "Number of games played in parallel")
	seed       = flag.Uint64("seed", 1, "Seed for the random move choices")
	outDir     = flag.String("out", meta.EXPERIMENTS_DIR, "Directory for experiment records (empty: don't write)")
	maxTurns   = flag.Int("max-turns", meta.MAX_TURNS, "Maximum number of turns per game")
	throughput = flag.String("throughput", "", "Comma separated goroutine counts to benchmark, e.g. '1,2,4,8'")

	// Save games
	loadFile     = flag.String("load", "", "Save game to inspect")
	continueGame = flag.Bool("continue", false, "Play the loaded game to its end")
	saveFile     = flag.String("save", "", "Where to write the loaded game (after -continue)")

	verbose = flag.Bool("v", false, "Log every turn")
)

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var err error
	switch {
	case *loadFile != "":
		err = runSaveGame()
	case *throughput != "":
		err = runThroughput()
	default:
		err = runSelfPlay()
	}
	if err != nil {
		log.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}

func config() experiments.Config {
	cfg := experiments.DefaultConfig()
	cfg.Games = *games
	cfg.Goroutines = *goroutines
	cfg.Seed = *seed
	cfg.MaxTurns = *maxTurns
	cfg.OutDir = *outDir
	return cfg
}

func runSelfPlay() error {
	summary, err := experiments.RunSelfPlay(config())
	if err != nil {
		return err
	}
	if summary.Dir != "" {
		log.Info().Msgf("records written to %s", summary.Dir)
	}
	return nil
}

func runThroughput() error {
	var counts []int
	for _, s := range strings.Split(*throughput, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid goroutine count %q", s)
		}
		counts = append(counts, n)
	}
	_, err := experiments.RunThroughputExperiment(config(), counts)
	return err
}

func runSaveGame() error {
	data, err := storage.ReadFile(*loadFile)
	if err != nil {
		return err
	}
	b, err := game.Deserialize(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", *loadFile, err)
	}
	describe(b)

	if *continueGame {
		agents := [2]engine.Agent{engine.NewGreedyAgent(*seed), engine.NewGreedyAgent(*seed + 1)}
		e := engine.LocalEngine(b, agents, engine.WithMaxTurns(*maxTurns))
		if _, err := e.Run(); err != nil {
			return err
		}
		describe(b)
	}

	if *saveFile != "" {
		out, err := b.MarshalBinary()
		if err != nil {
			return err
		}
		if err := storage.WriteFile(*saveFile, out); err != nil {
			return err
		}
		log.Info().Msgf("saved to %s", *saveFile)
	}
	return nil
}

func describe(b *game.Board) {
	log.Info().
		Int("width", b.Map.Width()).
		Int("height", b.Map.Height()).
		Int("ruby", b.RubyScore).
		Int("pearl", b.PearlScore).
		Bool("computer", b.ComputerControlled).
		Bool("ended", b.GameEnded()).
		Bool("stalled", b.Stalled()).
		Msgf("%s to move", b.CurrentPlayer)
	if w := b.Winner(); w != "" {
		log.Info().Msgf("winner: %s", w)
	}
}
