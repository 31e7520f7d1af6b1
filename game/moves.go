package game

import (
	"hexxagon/hexmap"
	"hexxagon/utils"
)

// ring1 holds the six immediate neighbors as cube deltas.
var ring1 = [6]hexmap.Cube{
	{Q: 0, R: -1, S: 1},
	{Q: 1, R: -1, S: 0},
	{Q: 1, R: 0, S: -1},
	{Q: 0, R: 1, S: -1},
	{Q: -1, R: 1, S: 0},
	{Q: -1, R: 0, S: 1},
}

// ring2 holds ring 1 followed by the twelve second-ring cells.
var ring2 = [18]hexmap.Cube{
	// first layer
	{Q: 0, R: -1, S: 1},
	{Q: 1, R: -1, S: 0},
	{Q: 1, R: 0, S: -1},
	{Q: 0, R: 1, S: -1},
	{Q: -1, R: 1, S: 0},
	{Q: -1, R: 0, S: 1},

	// second layer
	{Q: 0, R: -2, S: 2},
	{Q: 1, R: -2, S: 1},
	{Q: 2, R: -2, S: 0},
	{Q: 2, R: -1, S: -1},
	{Q: 2, R: 0, S: -2},
	{Q: 1, R: 1, S: -2},
	{Q: 0, R: 2, S: -2},
	{Q: -1, R: 2, S: -1},
	{Q: -2, R: 2, S: 0},
	{Q: -2, R: 1, S: 1},
	{Q: -2, R: 0, S: 2},
	{Q: -1, R: -1, S: 2},
}

// PossibleMoves returns the empty cells the gem at (x, y) may move to. The
// result is empty unless the cell holds the current player's gem.
func (b *Board) PossibleMoves(x, y int) ([]hexmap.Offset, error) {
	from, err := b.Map.View(x, y)
	if err != nil {
		return nil, err
	}
	return b.movesFrom(from, b.CurrentPlayer), nil
}

func (b *Board) movesFrom(from hexmap.Cursor[Tile], p Player) []hexmap.Offset {
	if from.Get() != p.Gem() {
		return nil
	}

	var moves []hexmap.Offset
	for _, d := range ring2 {
		to, ok := from.Neighbor(d)
		if !ok {
			continue
		}
		if to.Get() == TileEmpty {
			moves = append(moves, to.Offset())
		}
	}
	return moves
}

// HighlightMoves replaces the highlights with the legal targets of (x, y).
// The old highlights are cleared even when (x, y) is out of range.
func (b *Board) HighlightMoves(x, y int) error {
	b.ClearHighlights()
	moves, err := b.PossibleMoves(x, y)
	if err != nil {
		return err
	}
	b.Highlights = append(b.Highlights, moves...)
	return nil
}

func (b *Board) ClearHighlights() {
	b.Highlights = nil
}

func (b *Board) IsHighlighted(x, y int) bool {
	return utils.Contains(b.Highlights, hexmap.Offset{X: x, Y: y})
}

// TryMove moves the selected gem to (toX, toY). A distance 1 move clones
// the gem, a distance 2 move hops it. Opponent gems around the destination
// are captured. It returns false, leaving the board untouched, when the move
// is illegal; err is only set for a destination outside the grid.
func (b *Board) TryMove(toX, toY int) (bool, error) {
	to, err := b.Map.At(toX, toY)
	if err != nil {
		return false, err
	}

	from, err := b.Map.At(b.Selected.X, b.Selected.Y)
	if err != nil {
		return false, nil
	}

	gem := b.CurrentPlayer.Gem()
	if from.Get() != gem {
		return false, nil
	}
	if to.Get() != TileEmpty {
		return false, nil
	}

	switch from.Distance(to) {
	case 1:
		// clone
		to.Set(gem)
	case 2:
		// hop
		from.Set(TileEmpty)
		to.Set(gem)
	default:
		return false, nil
	}

	opponent := b.CurrentPlayer.Opponent().Gem()
	for _, d := range ring1 {
		n, ok := to.Neighbor(d)
		if ok && n.Get() == opponent {
			n.Set(gem)
		}
	}

	b.updateScore()
	b.Selected = NoSelection

	return true, nil
}

// Captures counts the opponent gems the current player would flip by moving
// to the given cell.
func (b *Board) Captures(to hexmap.Offset) int {
	c, err := b.Map.View(to.X, to.Y)
	if err != nil {
		return 0
	}
	return b.capturesAt(c, b.CurrentPlayer)
}

func (b *Board) capturesAt(to hexmap.Cursor[Tile], p Player) int {
	opponent := p.Opponent().Gem()
	n := 0
	for _, d := range ring1 {
		c, ok := to.Neighbor(d)
		if ok && c.Get() == opponent {
			n++
		}
	}
	return n
}

// CanMove reports whether the current player has at least one legal move.
func (b *Board) CanMove() bool {
	return b.CanPlayerMove(b.CurrentPlayer)
}

func (b *Board) CanPlayerMove(p Player) bool {
	for c := range b.Map.ViewCells() {
		if len(b.movesFrom(c, p)) > 0 {
			return true
		}
	}
	return false
}

// GameEnded is true once either player has no gems left or the board has no
// empty cell.
func (b *Board) GameEnded() bool {
	var ruby, pearl, empty bool
	for c := range b.Map.ViewCells() {
		switch c.Get() {
		case TileRuby:
			ruby = true
		case TilePearl:
			pearl = true
		case TileEmpty:
			empty = true
		}
		if ruby && pearl && empty {
			return false
		}
	}
	return true
}

// Stalled is true when the game has not ended but no player can move.
func (b *Board) Stalled() bool {
	if b.GameEnded() {
		return false
	}
	for p := range Player(numPlayers) {
		if b.CanPlayerMove(p) {
			return false
		}
	}
	return true
}

// NextPlayer hands the turn to the next player able to move, skipping
// players without a legal move. After one full cycle with nobody able to
// move the turn returns to where it started and Stalled reports true.
func (b *Board) NextPlayer() {
	if b.GameEnded() {
		return
	}

	for range numPlayers {
		b.CurrentPlayer = b.CurrentPlayer.Opponent()
		if b.CanMove() || b.GameEnded() {
			return
		}
	}
}
