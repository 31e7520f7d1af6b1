package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Throughput struct {
	Goroutines  int
	Games       int
	Duration    time.Duration
	GamesPerSec float64
}

// RunThroughputExperiment plays the same batch once per worker count and
// reports how many games per second each setting sustains. No records are
// written.
func RunThroughputExperiment(cfg Config, goroutines []int) ([]Throughput, error) {
	cfg.OutDir = ""

	log.Info().Msg("starting throughput experiment...")

	var out []Throughput
	for _, n := range goroutines {
		cfg.Goroutines = n
		summary, err := RunSelfPlay(cfg)
		if err != nil {
			return out, fmt.Errorf("throughput with %d goroutines: %w", n, err)
		}

		t := Throughput{
			Goroutines:  n,
			Games:       summary.Games,
			Duration:    summary.Duration,
			GamesPerSec: float64(summary.Games) / summary.Duration.Seconds(),
		}
		out = append(out, t)
		log.Info().Msgf("%d goroutines: %d games in %s (%.1f games/s)", n, t.Games, t.Duration, t.GamesPerSec)
	}

	log.Info().Msg("completed throughput experiment")
	return out, nil
}
