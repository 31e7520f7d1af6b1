package hexmap

import (
	"errors"
	"fmt"
	"iter"
)

var ErrOutOfRange = errors.New("tile position out of bounds")

// Offset is the (x, y) storage address of a cell in the odd-q layout,
// where every odd column is shifted down by half a row.
type Offset struct {
	X int
	Y int
}

// Cube is a cube coordinate. Q+R+S is always 0.
type Cube struct {
	Q int
	R int
	S int
}

func (c Cube) Add(d Cube) Cube {
	return Cube{Q: c.Q + d.Q, R: c.R + d.R, S: c.S + d.S}
}

func OffsetToCube(o Offset) Cube {
	q := o.X
	r := o.Y - (o.X-(o.X&1))/2
	return Cube{Q: q, R: r, S: -q - r}
}

func CubeToOffset(c Cube) Offset {
	return Offset{X: c.Q, Y: c.R + (c.Q-(c.Q&1))/2}
}

// Distance returns the hex distance between two offset coordinates.
func Distance(a, b Offset) int {
	ca, cb := OffsetToCube(a), OffsetToCube(b)
	return max(abs(ca.Q-cb.Q), abs(ca.R-cb.R), abs(ca.S-cb.S))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// HexMap is a hexagonal tile grid backed by a rectangular, row-major slice.
type HexMap[T any] struct {
	width  int
	height int
	tiles  []T
}

// New builds a map from row-major tiles. The slice is owned by the map afterwards.
func New[T any](width, height int, tiles []T) (*HexMap[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("provided tiles buffer size %d doesn't match %dx%d", len(tiles), width, height)
	}
	return &HexMap[T]{width: width, height: height, tiles: tiles}, nil
}

// Filled returns a width x height map with every tile set to fill. It panics
// on a non-positive size, so it is meant for sizes known to be valid.
func Filled[T any](width, height int, fill T) *HexMap[T] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid map size %dx%d", width, height))
	}
	tiles := make([]T, width*height)
	for i := range tiles {
		tiles[i] = fill
	}
	return &HexMap[T]{width: width, height: height, tiles: tiles}
}

func (m *HexMap[T]) Width() int  { return m.width }
func (m *HexMap[T]) Height() int { return m.height }

func (m *HexMap[T]) Clone() *HexMap[T] {
	tiles := make([]T, len(m.tiles))
	copy(tiles, m.tiles)
	return &HexMap[T]{width: m.width, height: m.height, tiles: tiles}
}

func (m *HexMap[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// At returns a mutable cursor to the tile at (x, y).
func (m *HexMap[T]) At(x, y int) (Cursor[T], error) {
	return m.cursor(x, y, false)
}

// View returns a read-only cursor to the tile at (x, y).
func (m *HexMap[T]) View(x, y int) (Cursor[T], error) {
	return m.cursor(x, y, true)
}

func (m *HexMap[T]) cursor(x, y int, readOnly bool) (Cursor[T], error) {
	if !m.InBounds(x, y) {
		return Cursor[T]{}, fmt.Errorf("(%d, %d) in %dx%d map: %w", x, y, m.width, m.height, ErrOutOfRange)
	}
	return Cursor[T]{m: m, pos: y*m.width + x, readOnly: readOnly}, nil
}

// Cells iterates mutable cursors left to right, top to bottom.
func (m *HexMap[T]) Cells() iter.Seq[Cursor[T]] {
	return m.walk(false)
}

// ViewCells iterates read-only cursors left to right, top to bottom.
func (m *HexMap[T]) ViewCells() iter.Seq[Cursor[T]] {
	return m.walk(true)
}

func (m *HexMap[T]) walk(readOnly bool) iter.Seq[Cursor[T]] {
	return func(yield func(Cursor[T]) bool) {
		for pos := range m.tiles {
			if !yield(Cursor[T]{m: m, pos: pos, readOnly: readOnly}) {
				return
			}
		}
	}
}

// Cursor points at one tile of a HexMap. Whether it may write is decided by
// the entry point that produced it and carries over to its neighbors.
type Cursor[T any] struct {
	m        *HexMap[T]
	pos      int
	readOnly bool
}

func (c Cursor[T]) X() int { return c.pos % c.m.width }
func (c Cursor[T]) Y() int { return c.pos / c.m.width }

func (c Cursor[T]) Offset() Offset {
	return Offset{X: c.X(), Y: c.Y()}
}

func (c Cursor[T]) Cube() Cube {
	return OffsetToCube(c.Offset())
}

func (c Cursor[T]) ReadOnly() bool { return c.readOnly }

func (c Cursor[T]) Get() T {
	return c.m.tiles[c.pos]
}

func (c Cursor[T]) Set(v T) {
	if c.readOnly {
		panic("hexmap: write through read-only cursor")
	}
	c.m.tiles[c.pos] = v
}

// Neighbor moves the cursor by a cube delta. ok is false when the target
// falls outside the map.
func (c Cursor[T]) Neighbor(d Cube) (Cursor[T], bool) {
	o := CubeToOffset(c.Cube().Add(d))
	if !c.m.InBounds(o.X, o.Y) {
		return Cursor[T]{}, false
	}
	return Cursor[T]{m: c.m, pos: o.Y*c.m.width + o.X, readOnly: c.readOnly}, true
}

func (c Cursor[T]) Distance(o Cursor[T]) int {
	return Distance(c.Offset(), o.Offset())
}
