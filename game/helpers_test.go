package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"hexxagon/hexmap"
)

// layout builds a map from rows of '-' (void), '.' (empty), 'R' and 'P'.
func layout(t *testing.T, rows ...string) *hexmap.HexMap[Tile] {
	t.Helper()
	var tiles []Tile
	for _, row := range rows {
		require.Len(t, row, len(rows[0]), "rows must have equal width")
		for _, ch := range row {
			switch ch {
			case '-':
				tiles = append(tiles, TileVoid)
			case '.':
				tiles = append(tiles, TileEmpty)
			case 'R':
				tiles = append(tiles, TileRuby)
			case 'P':
				tiles = append(tiles, TilePearl)
			default:
				t.Fatalf("unknown tile %q", ch)
			}
		}
	}
	m, err := hexmap.New(len(rows[0]), len(rows), tiles)
	require.NoError(t, err)
	return m
}

func tileAt(t *testing.T, b *Board, x, y int) Tile {
	t.Helper()
	c, err := b.Map.View(x, y)
	require.NoError(t, err)
	return c.Get()
}

func setTile(t *testing.T, b *Board, x, y int, tile Tile) {
	t.Helper()
	c, err := b.Map.At(x, y)
	require.NoError(t, err)
	c.Set(tile)
	b.updateScore()
}

var boardCmp = []cmp.Option{
	cmp.AllowUnexported(hexmap.HexMap[Tile]{}),
	cmpopts.EquateEmpty(),
}

func requireSameBoard(t *testing.T, want, got *Board, msg string) {
	t.Helper()
	if diff := cmp.Diff(want, got, boardCmp...); diff != "" {
		t.Fatalf("%s: mismatch (-want +got):\n%s", msg, diff)
	}
}

// scriptedRand returns queued values and records the bounds it was asked for.
type scriptedRand struct {
	t      *testing.T
	values []int
	bounds []int
}

func (r *scriptedRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	require.NotEmpty(r.t, r.values, "unexpected random draw with bound %d", n)
	v := r.values[0]
	r.values = r.values[1:]
	require.Less(r.t, v, n, "scripted value out of range")
	return v
}
