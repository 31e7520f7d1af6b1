package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hexxagon/experiments/metrics"
	"hexxagon/game"
	"hexxagon/hexmap"
	"hexxagon/meta"
	"hexxagon/storage"
)

type Engine struct {
	Board   *game.Board
	Agents  [2]Agent
	Updates []Update

	maxTurns  int
	turn      int
	saves     *storage.FS
	saveName  string
	collector metrics.Collector
}

type Option func(e *Engine)

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		e.maxTurns = turns
	}
}

// WithAutosave stores the board under name after every turn.
func WithAutosave(fs *storage.FS, name string) Option {
	return func(e *Engine) {
		e.saves = fs
		e.saveName = name
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(e *Engine) {
		e.collector = c
	}
}

// LocalEngine drives board with one agent per player, indexed by game.Player.
func LocalEngine(board *game.Board, agents [2]Agent, options ...Option) *Engine {
	if board == nil {
		panic("engine needs a board")
	}
	for i, a := range agents {
		if a == nil {
			panic(fmt.Sprintf("no agent for %s", game.Player(i)))
		}
	}

	e := &Engine{
		Board:     board,
		Agents:    agents,
		maxTurns:  meta.MAX_TURNS,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Over() bool {
	return e.Board.GameEnded() || e.Board.Stalled()
}

// Step plays one turn the way a front end does: the agent's source is
// selected and highlighted, the destination must be one of the highlights,
// then the move is applied and the turn passes on.
func (e *Engine) Step() (Update, error) {
	b := e.Board
	if e.Over() {
		return Update{}, ErrGameOver
	}

	// A loaded or reset board may hand the turn to a player without moves.
	if !b.CanMove() {
		boxed := b.CurrentPlayer
		b.NextPlayer()
		e.collector.AddSkip()
		log.Debug().Msgf("%s cannot move, turn goes to %s", boxed, b.CurrentPlayer)
	}

	player := b.CurrentPlayer
	b.ClearHighlights()

	start := time.Now()
	move := e.Agents[player].FindMove(b.Clone())
	elapsed := time.Since(start)

	if err := e.apply(move); err != nil {
		b.Deselect()
		b.ClearHighlights()
		return Update{}, fmt.Errorf("%w: %s played %v -> %v: %v", ErrRejectedMove, player, move.From, move.To, err)
	}
	captures := b.Captures(move.To)
	distance := hexmap.Distance(move.From, move.To)

	ok, err := b.TryMove(move.To.X, move.To.Y)
	b.ClearHighlights()
	if err != nil || !ok {
		b.Deselect()
		return Update{}, fmt.Errorf("%w: %s played %v -> %v", ErrRejectedMove, player, move.From, move.To)
	}

	b.NextPlayer()
	e.turn++

	u := Update{
		Turn:     e.turn,
		Player:   player,
		Move:     move,
		Captures: captures,
		Skipped:  b.CurrentPlayer == player && !b.GameEnded() && !b.Stalled(),
		Hash:     b.Hash(),
	}
	e.Updates = append(e.Updates, u)

	e.collector.AddMove(metrics.MoveMetric{
		Step:       e.turn,
		Player:     player.String(),
		Move:       move,
		Distance:   distance,
		Captures:   captures,
		RubyScore:  b.RubyScore,
		PearlScore: b.PearlScore,
		Duration:   elapsed,
	})
	if u.Skipped {
		e.collector.AddSkip()
		log.Debug().Msgf("%s cannot move, turn goes back to %s", player.Opponent(), player)
	}

	log.Debug().
		Int("turn", e.turn).
		Str("player", player.String()).
		Int("captures", captures).
		Int("ruby", b.RubyScore).
		Int("pearl", b.PearlScore).
		Msgf("%v -> %v", move.From, move.To)

	if e.saves != nil {
		if err := e.saves.Save(e.saveName, b); err != nil {
			return u, fmt.Errorf("autosave: %w", err)
		}
	}

	return u, nil
}

func (e *Engine) apply(move game.Move) error {
	b := e.Board
	if err := b.Select(move.From.X, move.From.Y); err != nil {
		return err
	}
	if err := b.HighlightMoves(move.From.X, move.From.Y); err != nil {
		return err
	}
	if !b.IsHighlighted(move.To.X, move.To.Y) {
		return fmt.Errorf("destination %v is not a legal target", move.To)
	}
	return nil
}

// Run plays until the game ends, nobody can move or the turn cap is reached.
func (e *Engine) Run() (Result, error) {
	b := e.Board
	e.collector.Start(b.CurrentPlayer.String())

	log.Info().Msgf("%s is starting", b.CurrentPlayer)

	for !e.Over() && e.turn < e.maxTurns {
		if _, err := e.Step(); err != nil {
			return e.result(), err
		}
	}

	res := e.result()
	switch {
	case res.Winner != "":
		log.Info().Msgf("game ended after %d turns with winner: %s (%d-%d)", e.turn, res.Winner, res.RubyScore, res.PearlScore)
	case res.Stalled:
		log.Info().Msgf("game stalled after %d turns, nobody can move", e.turn)
	default:
		log.Info().Msgf("stopped after %d turns (no winner yet)", e.turn)
	}
	return res, nil
}

func (e *Engine) result() Result {
	b := e.Board
	gm, moves := e.collector.Complete(b)
	return Result{
		Winner:     b.Winner(),
		RubyScore:  b.RubyScore,
		PearlScore: b.PearlScore,
		Turns:      e.turn,
		Stalled:    b.Stalled(),
		Updates:    e.Updates,
		Game:       gm,
		Moves:      moves,
	}
}
