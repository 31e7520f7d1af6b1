package game

import "hexxagon/hexmap"

// Tile is the content of one grid cell. The numeric values are part of the
// save format.
type Tile uint8

const (
	TileVoid  Tile = iota // outside the playable board, never changes
	TileEmpty             // playable, unoccupied
	TileRuby              // player A's gem
	TilePearl             // player B's gem
)

func (t Tile) String() string {
	switch t {
	case TileVoid:
		return "void"
	case TileEmpty:
		return "empty"
	case TileRuby:
		return "ruby"
	case TilePearl:
		return "pearl"
	default:
		return "unknown"
	}
}

// Player identifies a side. The numeric values are part of the save format.
type Player uint8

const (
	Ruby  Player = iota // player A, always moves first
	Pearl               // player B, the side the computer plays
)

const numPlayers = 2

// ComputerPlayer is the side driven by the AI when a board is computer controlled.
const ComputerPlayer = Pearl

func (p Player) String() string {
	if p == Ruby {
		return "Ruby"
	}
	return "Pearl"
}

// Gem returns the tile a player's pieces occupy.
func (p Player) Gem() Tile {
	if p == Ruby {
		return TileRuby
	}
	return TilePearl
}

func (p Player) Opponent() Player {
	if p == Ruby {
		return Pearl
	}
	return Ruby
}

// Move is a source/destination pair chosen by the AI or a front end.
type Move struct {
	From hexmap.Offset
	To   hexmap.Offset
}

type StateHash uint64

// Draw is reported by Winner when both players end with the same score.
const Draw = "Draw"
