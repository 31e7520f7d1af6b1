package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexxagon/hexmap"
)

// scenarioBoard is a 9x9 board with Ruby at (0,4), Pearl at (8,4) and void corners.
func scenarioBoard(t *testing.T) *Board {
	return NewBoard(layout(t,
		"-.......-",
		".........",
		".........",
		".........",
		"R.......P",
		".........",
		".........",
		".........",
		"-.......-",
	), false)
}

func TestPossibleMoves(t *testing.T) {
	t.Run("ring one then ring two in table order", func(t *testing.T) {
		b := scenarioBoard(t)
		moves, err := b.PossibleMoves(0, 4)
		require.NoError(t, err)
		require.Equal(t, []hexmap.Offset{
			{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 4}, {X: 0, Y: 5},
			{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 3}, {X: 2, Y: 4}, {X: 2, Y: 5}, {X: 1, Y: 5}, {X: 0, Y: 6},
		}, moves)

		for _, m := range moves {
			d := hexmap.Distance(hexmap.Offset{X: 0, Y: 4}, m)
			require.True(t, d == 1 || d == 2, "move %v at distance %d", m, d)
		}
	})

	t.Run("empty for the opponent's gem", func(t *testing.T) {
		b := scenarioBoard(t)
		moves, err := b.PossibleMoves(8, 4)
		require.NoError(t, err)
		require.Empty(t, moves)
	})

	t.Run("empty for empty and void cells", func(t *testing.T) {
		b := scenarioBoard(t)
		moves, err := b.PossibleMoves(4, 4)
		require.NoError(t, err)
		require.Empty(t, moves)
		moves, err = b.PossibleMoves(0, 0)
		require.NoError(t, err)
		require.Empty(t, moves)
	})

	t.Run("skips occupied and void targets", func(t *testing.T) {
		b := NewBoard(layout(t, "R-P....", "......."), false)
		moves, err := b.PossibleMoves(0, 0)
		require.NoError(t, err)
		require.NotContains(t, moves, hexmap.Offset{X: 1, Y: 0})
		require.NotContains(t, moves, hexmap.Offset{X: 2, Y: 0})
		require.Contains(t, moves, hexmap.Offset{X: 0, Y: 1})
	})

	t.Run("out of range", func(t *testing.T) {
		b := scenarioBoard(t)
		_, err := b.PossibleMoves(-1, 4)
		require.ErrorIs(t, err, hexmap.ErrOutOfRange)
		_, err = b.PossibleMoves(0, 9)
		require.ErrorIs(t, err, hexmap.ErrOutOfRange)
	})
}

func TestHighlightMoves(t *testing.T) {
	b := scenarioBoard(t)

	require.NoError(t, b.HighlightMoves(0, 4))
	require.Len(t, b.Highlights, 11)
	require.True(t, b.IsHighlighted(2, 4))
	require.False(t, b.IsHighlighted(3, 4))

	require.NoError(t, b.HighlightMoves(8, 4))
	require.Empty(t, b.Highlights, "highlights are rebuilt, not merged")

	require.NoError(t, b.HighlightMoves(0, 4))
	b.ClearHighlights()
	require.Empty(t, b.Highlights)

	require.NoError(t, b.HighlightMoves(0, 4))
	require.ErrorIs(t, b.HighlightMoves(9, 9), hexmap.ErrOutOfRange)
	require.Empty(t, b.Highlights, "out of range request still clears the highlights")
}

func TestTryMove(t *testing.T) {
	t.Run("distance one clones", func(t *testing.T) {
		b := scenarioBoard(t)
		require.NoError(t, b.Select(0, 4))

		ok, err := b.TryMove(1, 4)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, TileRuby, tileAt(t, b, 0, 4), "source should keep its gem")
		require.Equal(t, TileRuby, tileAt(t, b, 1, 4))
		require.Equal(t, 2, b.RubyScore)
		require.Equal(t, NoSelection, b.Selected, "selection is cleared")
	})

	t.Run("distance two hops", func(t *testing.T) {
		b := scenarioBoard(t)
		require.NoError(t, b.Select(0, 4))

		ok, err := b.TryMove(2, 4)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, TileEmpty, tileAt(t, b, 0, 4), "source should be vacated")
		require.Equal(t, TileRuby, tileAt(t, b, 2, 4))
		require.Equal(t, 1, b.RubyScore)
	})

	t.Run("does not change the turn", func(t *testing.T) {
		b := scenarioBoard(t)
		require.NoError(t, b.Select(0, 4))
		ok, err := b.TryMove(1, 4)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, Ruby, b.CurrentPlayer)
	})

	t.Run("destination out of range", func(t *testing.T) {
		b := scenarioBoard(t)
		require.NoError(t, b.Select(0, 4))
		before := b.Clone()

		ok, err := b.TryMove(0, 9)
		require.ErrorIs(t, err, hexmap.ErrOutOfRange)
		require.False(t, ok)
		requireSameBoard(t, before, b, "out of range move")
	})
}

func TestTryMoveRejected(t *testing.T) {
	tests := []struct {
		name     string
		selected hexmap.Offset
		to       hexmap.Offset
		setup    func(t *testing.T, b *Board)
	}{
		{name: "nothing selected", selected: NoSelection, to: hexmap.Offset{X: 1, Y: 4}},
		{name: "selection out of range", selected: hexmap.Offset{X: 12, Y: 4}, to: hexmap.Offset{X: 1, Y: 4}},
		{name: "selection holds opponent", selected: hexmap.Offset{X: 8, Y: 4}, to: hexmap.Offset{X: 7, Y: 4}},
		{name: "selection is empty", selected: hexmap.Offset{X: 4, Y: 4}, to: hexmap.Offset{X: 4, Y: 5}},
		{name: "destination is void", selected: hexmap.Offset{X: 0, Y: 4}, to: hexmap.Offset{X: 1, Y: 4},
			setup: func(t *testing.T, b *Board) { setTile(t, b, 1, 4, TileVoid) }},
		{name: "destination occupied by own gem", selected: hexmap.Offset{X: 0, Y: 4}, to: hexmap.Offset{X: 1, Y: 4},
			setup: func(t *testing.T, b *Board) { setTile(t, b, 1, 4, TileRuby) }},
		{name: "destination occupied by opponent", selected: hexmap.Offset{X: 0, Y: 4}, to: hexmap.Offset{X: 1, Y: 4},
			setup: func(t *testing.T, b *Board) { setTile(t, b, 1, 4, TilePearl) }},
		{name: "destination is the source", selected: hexmap.Offset{X: 0, Y: 4}, to: hexmap.Offset{X: 0, Y: 4}},
		{name: "distance three", selected: hexmap.Offset{X: 0, Y: 4}, to: hexmap.Offset{X: 3, Y: 4}},
		{name: "far away", selected: hexmap.Offset{X: 0, Y: 4}, to: hexmap.Offset{X: 6, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scenarioBoard(t)
			if tt.setup != nil {
				tt.setup(t, b)
			}
			require.NoError(t, b.HighlightMoves(0, 4))
			b.Selected = tt.selected
			before := b.Clone()

			ok, err := b.TryMove(tt.to.X, tt.to.Y)
			require.NoError(t, err)
			require.False(t, ok)
			requireSameBoard(t, before, b, "rejected move should not mutate the board")
		})
	}
}

func TestCapture(t *testing.T) {
	b := NewBoard(layout(t,
		".........",
		".........",
		"...P.....",
		"...P.....",
		"..R.R....",
		"..PP.P...",
		".........",
	), false)
	require.NoError(t, b.Select(2, 4))

	dest := hexmap.Offset{X: 3, Y: 4}
	require.Equal(t, 3, b.Captures(dest))

	var pearls []hexmap.Offset
	for c := range b.Map.ViewCells() {
		if c.Get() == TilePearl {
			pearls = append(pearls, c.Offset())
		}
	}

	ok, err := b.TryMove(dest.X, dest.Y)
	require.NoError(t, err)
	require.True(t, ok)

	for _, p := range pearls {
		want := TilePearl
		if hexmap.Distance(p, dest) == 1 {
			want = TileRuby
		}
		require.Equal(t, want, tileAt(t, b, p.X, p.Y), "tile at %v", p)
	}

	require.Equal(t, TileRuby, tileAt(t, b, 3, 3), "ring one above")
	require.Equal(t, TileRuby, tileAt(t, b, 3, 5), "ring one below")
	require.Equal(t, TileRuby, tileAt(t, b, 2, 5), "ring one lower left")
	require.Equal(t, TilePearl, tileAt(t, b, 3, 2), "ring two is untouched")
	require.Equal(t, TilePearl, tileAt(t, b, 5, 5), "ring two is untouched")
	require.Equal(t, 6, b.RubyScore)
	require.Equal(t, 2, b.PearlScore)
}

func TestScoreInvariant(t *testing.T) {
	b := NewGame(false)
	rng := &cyclingRand{}
	total := b.Map.Width() * b.Map.Height()

	check := func() {
		require.Equal(t, b.Count(TileRuby), b.RubyScore)
		require.Equal(t, b.Count(TilePearl), b.PearlScore)
		require.Equal(t, total, b.RubyScore+b.PearlScore+b.Count(TileEmpty)+b.Count(TileVoid))
	}
	check()

	for turn := 0; turn < 200 && !b.GameEnded() && !b.Stalled(); turn++ {
		move := b.AIPlay(rng)
		b.Selected = move.From
		ok, err := b.TryMove(move.To.X, move.To.Y)
		require.NoError(t, err)
		require.True(t, ok, "AI move %+v should be legal", move)
		require.Equal(t, 23, b.Count(TileVoid), "void tiles never change")
		check()
		b.NextPlayer()
	}
}

// cyclingRand walks through values deterministically.
type cyclingRand struct{ n int }

func (r *cyclingRand) Intn(n int) int {
	r.n++
	return r.n % n
}

func TestCanMove(t *testing.T) {
	b := NewBoard(layout(t, "PRR...."), false)
	require.True(t, b.CanMove())
	require.True(t, b.CanPlayerMove(Ruby))
	require.False(t, b.CanPlayerMove(Pearl))

	b.CurrentPlayer = Pearl
	require.False(t, b.CanMove())
}

func TestGameEnded(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		ended bool
	}{
		{name: "both players and empty cells", rows: []string{"R.P"}, ended: false},
		{name: "no ruby", rows: []string{"-.P"}, ended: true},
		{name: "no pearl", rows: []string{"R.-"}, ended: true},
		{name: "board full", rows: []string{"RP-", "PPR"}, ended: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(layout(t, tt.rows...), false)
			require.Equal(t, tt.ended, b.GameEnded())
		})
	}
}

func TestNextPlayer(t *testing.T) {
	t.Run("alternates", func(t *testing.T) {
		b := scenarioBoard(t)
		b.NextPlayer()
		require.Equal(t, Pearl, b.CurrentPlayer)
		b.NextPlayer()
		require.Equal(t, Ruby, b.CurrentPlayer)
	})

	t.Run("skips a player without moves", func(t *testing.T) {
		b := NewBoard(layout(t, "PRR...."), false)
		require.NoError(t, b.Select(2, 0))
		ok, err := b.TryMove(3, 0)
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, b.GameEnded())

		b.NextPlayer()
		require.Equal(t, Ruby, b.CurrentPlayer, "pearl is boxed in and should be skipped")
	})

	t.Run("no-op once the game ended", func(t *testing.T) {
		b := NewBoard(layout(t, "RR.."), false)
		b.NextPlayer()
		require.Equal(t, Ruby, b.CurrentPlayer)
	})

	t.Run("terminates when nobody can move", func(t *testing.T) {
		b := NewBoard(layout(t, "R--P--."), false)
		require.False(t, b.GameEnded())
		require.True(t, b.Stalled())

		b.NextPlayer()
		require.Equal(t, Ruby, b.CurrentPlayer)
	})

	t.Run("not stalled while someone can move", func(t *testing.T) {
		require.False(t, NewBoard(layout(t, "PRR...."), false).Stalled())
		require.False(t, NewBoard(layout(t, "RR.."), false).Stalled(), "ended games are not stalled")
	})
}
