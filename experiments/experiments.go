package experiments

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"hexxagon/engine"
	"hexxagon/experiments/metrics"
	"hexxagon/game"
	"hexxagon/meta"
)

type Config struct {
	Name       string
	Games      int
	Goroutines int
	Seed       uint64
	MaxTurns   int
	OutDir     string // records are only written when set
}

func DefaultConfig() Config {
	return Config{
		Name:       "selfplay",
		Games:      meta.GAMES,
		Goroutines: meta.GO_ROUTINES,
		Seed:       1,
		MaxTurns:   meta.MAX_TURNS,
		OutDir:     meta.EXPERIMENTS_DIR,
	}
}

type Summary struct {
	Games      int
	RubyWins   int
	PearlWins  int
	Draws      int
	Stalled    int
	Unfinished int
	Moves      int
	Duration   time.Duration
	Dir        string // where the records were written
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
	res    engine.Result
	err    error
}

// RunSelfPlay plays cfg.Games greedy games on cfg.Goroutines workers. Every
// game gets seeds drawn from cfg.Seed, so a batch is reproducible whatever
// the number of workers.
func RunSelfPlay(cfg Config) (Summary, error) {
	if cfg.Games <= 0 {
		return Summary{}, fmt.Errorf("invalid number of games: %d", cfg.Games)
	}
	if cfg.Goroutines <= 0 {
		cfg.Goroutines = 1
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = meta.MAX_TURNS
	}

	seeds := make([]uint64, cfg.Games)
	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	log.Info().Msgf("starting %s experiment: %d games on %d goroutines...", cfg.Name, cfg.Games, cfg.Goroutines)
	start := time.Now()

	task := make(chan int, cfg.Games)
	for i := range cfg.Games {
		task <- i
	}
	close(task)

	results := make([]gameResult, cfg.Games)
	var wg sync.WaitGroup
	for range cfg.Goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				results[i] = runGame(i+1, seeds[i], cfg.MaxTurns)
			}
		}()
	}
	wg.Wait()

	summary := Summary{Games: cfg.Games, Duration: time.Since(start)}
	gameRecords := make([]metrics.GameRecord, 0, cfg.Games)
	var moveRecords []metrics.MoveRecord

	for _, r := range results {
		if r.err != nil {
			return summary, fmt.Errorf("game %d: %w", r.record.ID, r.err)
		}
		summary.tally(r.res)
		summary.Moves += r.res.Turns

		gameRecords = append(gameRecords, r.record)
		for _, mm := range r.moves {
			moveRecords = append(moveRecords, metrics.NewMoveRecord(r.record.ID, mm))
		}
	}

	log.Info().Msgf("completed %s experiment in %s: ruby %d, pearl %d, draws %d, stalled %d, unfinished %d",
		cfg.Name, summary.Duration, summary.RubyWins, summary.PearlWins, summary.Draws, summary.Stalled, summary.Unfinished)

	if cfg.OutDir == "" {
		return summary, nil
	}

	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, err
	}
	log.Info().Msg("stored move records")

	return summary, nil
}

func (s *Summary) tally(res engine.Result) {
	switch {
	case res.Winner == game.Ruby.String():
		s.RubyWins++
	case res.Winner == game.Pearl.String():
		s.PearlWins++
	case res.Winner == game.Draw:
		s.Draws++
	case res.Stalled:
		s.Stalled++
	default:
		s.Unfinished++
	}
}

// runGame plays one greedy game from the standard layout.
func runGame(id int, seed uint64, maxTurns int) gameResult {
	collector := metrics.NewCollector()
	agents := [2]engine.Agent{
		engine.NewGreedyAgent(seed),
		engine.NewGreedyAgent(seed ^ 0x9E3779B97F4A7C15),
	}
	e := engine.LocalEngine(game.NewGame(true), agents,
		engine.WithMaxTurns(maxTurns),
		engine.WithMetrics(collector),
	)

	res, err := e.Run()
	return gameResult{
		record: metrics.GameRecord{ID: id, Seed: seed, GameMetric: res.Game},
		moves:  res.Moves,
		res:    res,
		err:    err,
	}
}
