package game

import (
	"encoding/binary"
	"hash/fnv"

	"hexxagon/hexmap"
)

// NoSelection is the Selected value when no tile is selected.
var NoSelection = hexmap.Offset{X: -1, Y: -1}

// Board is the full state of one game. Scores are derived from the grid and
// recomputed after every change.
type Board struct {
	Map                *hexmap.HexMap[Tile]
	CurrentPlayer      Player
	RubyScore          int
	PearlScore         int
	Highlights         []hexmap.Offset // legal targets of the last highlighted tile
	Selected           hexmap.Offset   // move source used by TryMove
	ComputerControlled bool            // Pearl is played by the AI
}

// NewBoard returns a board reset to the given layout.
func NewBoard(m *hexmap.HexMap[Tile], computer bool) *Board {
	b := &Board{ComputerControlled: computer}
	b.Reset(m)
	return b
}

// Reset replaces the grid and starts a fresh game on it with Ruby to move.
func (b *Board) Reset(m *hexmap.HexMap[Tile]) {
	b.Map = m
	b.CurrentPlayer = Ruby
	b.Highlights = nil
	b.Selected = NoSelection
	b.updateScore()
}

func (b *Board) updateScore() {
	b.RubyScore = b.Count(TileRuby)
	b.PearlScore = b.Count(TilePearl)
}

// Count returns the number of cells holding t.
func (b *Board) Count(t Tile) int {
	n := 0
	for c := range b.Map.ViewCells() {
		if c.Get() == t {
			n++
		}
	}
	return n
}

func (b *Board) Score(p Player) int {
	if p == Ruby {
		return b.RubyScore
	}
	return b.PearlScore
}

// Select marks (x, y) as the source of the next TryMove.
func (b *Board) Select(x, y int) error {
	if _, err := b.Map.View(x, y); err != nil {
		return err
	}
	b.Selected = hexmap.Offset{X: x, Y: y}
	return nil
}

func (b *Board) Deselect() {
	b.Selected = NoSelection
}

func (b *Board) HasSelection() bool {
	return b.Selected != NoSelection
}

func (b *Board) IsComputerTurn() bool {
	return b.ComputerControlled && b.CurrentPlayer == ComputerPlayer
}

// Winner returns "Ruby", "Pearl" or Draw once the game has ended, "" before.
func (b *Board) Winner() string {
	if !b.GameEnded() {
		return ""
	}
	switch {
	case b.RubyScore > b.PearlScore:
		return Ruby.String()
	case b.PearlScore > b.RubyScore:
		return Pearl.String()
	default:
		return Draw
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	var highlights []hexmap.Offset
	if b.Highlights != nil {
		highlights = make([]hexmap.Offset, len(b.Highlights))
		copy(highlights, b.Highlights)
	}
	return &Board{
		Map:                b.Map.Clone(),
		CurrentPlayer:      b.CurrentPlayer,
		RubyScore:          b.RubyScore,
		PearlScore:         b.PearlScore,
		Highlights:         highlights,
		Selected:           b.Selected,
		ComputerControlled: b.ComputerControlled,
	}
}

// Hash identifies the position: side to move plus every tile.
func (b *Board) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, uint8(b.CurrentPlayer))
	binary.Write(hasher, binary.LittleEndian, int32(b.Map.Width()))
	binary.Write(hasher, binary.LittleEndian, int32(b.Map.Height()))

	for c := range b.Map.ViewCells() {
		hasher.Write([]byte{byte(c.Get())})
	}

	return StateHash(hasher.Sum64())
}
