package engine

import (
	"errors"

	"golang.org/x/exp/rand"

	"hexxagon/experiments/metrics"
	"hexxagon/game"
)

var (
	ErrRejectedMove = errors.New("move rejected")
	ErrGameOver     = errors.New("game is over")
)

// Agent chooses a move for the side to move. The board it receives is a
// copy and may be modified freely.
type Agent interface {
	FindMove(b *game.Board) game.Move
}

type AgentFunc func(b *game.Board) game.Move

func (f AgentFunc) FindMove(b *game.Board) game.Move { return f(b) }

type greedyAgent struct {
	rng *rand.Rand
}

// NewGreedyAgent plays the built-in computer strategy with its own seeded
// random source.
func NewGreedyAgent(seed uint64) Agent {
	return &greedyAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *greedyAgent) FindMove(b *game.Board) game.Move {
	return b.AIPlay(a.rng)
}

type Update struct {
	Turn     int
	Player   game.Player
	Move     game.Move
	Captures int
	Skipped  bool // the opponent had no move and lost its turn, while the mover still can
	Hash     game.StateHash
}

type Result struct {
	Winner     string // empty when the game was cut off or stalled
	RubyScore  int
	PearlScore int
	Turns      int
	Stalled    bool
	Updates    []Update
	Game       metrics.GameMetric
	Moves      []metrics.MoveMetric
}
