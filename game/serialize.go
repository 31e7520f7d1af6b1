package game

import (
	"errors"
	"fmt"

	"hexxagon/codec"
	"hexxagon/hexmap"
)

const (
	Magic   uint32 = 0x26306B0A
	Version uint16 = 1
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("invalid version")
	ErrCorrupt        = errors.New("corrupt game state")
)

// MarshalBinary encodes the board in the save game format shared by every
// front end.
func (b *Board) MarshalBinary() ([]byte, error) {
	w := codec.NewWriter()
	w.WriteUint32(Magic)
	w.WriteUint16(Version)
	w.WriteUint8(boolByte(b.ComputerControlled))
	w.WriteInt32(int32(b.Map.Width()))
	w.WriteInt32(int32(b.Map.Height()))
	for c := range b.Map.ViewCells() {
		w.WriteUint8(uint8(c.Get()))
	}

	w.WriteUint8(uint8(b.CurrentPlayer))
	w.WriteUint32(uint32(len(b.Highlights)))
	for _, h := range b.Highlights {
		w.WriteInt32(int32(h.X))
		w.WriteInt32(int32(h.Y))
	}
	w.WriteInt32(int32(b.Selected.X))
	w.WriteInt32(int32(b.Selected.Y))
	w.WriteUint32(uint32(b.RubyScore))
	w.WriteUint32(uint32(b.PearlScore))

	return w.Bytes(), nil
}

// UnmarshalBinary replaces the board with the decoded state. On error the
// board is left as it was.
func (b *Board) UnmarshalBinary(data []byte) error {
	decoded, err := Deserialize(data)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}

// Deserialize decodes a board from the save game format.
func Deserialize(data []byte) (*Board, error) {
	r := codec.NewReader(data)

	magic, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading magic number: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: %#08x", ErrInvalidMagic, magic)
	}

	version, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	d := decoder{r: r}
	b := &Board{}

	b.ComputerControlled = d.u8("computer flag") != 0

	width := d.i32("width")
	height := d.i32("height")
	if d.err != nil {
		return nil, d.err
	}
	if width <= 0 || height <= 0 || int64(width)*int64(height) > int64(r.Remaining()) {
		return nil, fmt.Errorf("%w: map size %dx%d with %d bytes left", ErrCorrupt, width, height, r.Remaining())
	}

	tiles := make([]Tile, int(width)*int(height))
	for i := range tiles {
		t := Tile(d.u8("tile"))
		if t > TilePearl {
			return nil, fmt.Errorf("%w: tile value %d at index %d", ErrCorrupt, t, i)
		}
		tiles[i] = t
	}
	if d.err != nil {
		return nil, d.err
	}
	m, err := hexmap.New(int(width), int(height), tiles)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	b.Map = m

	player := d.u8("current player")
	if d.err == nil && player >= numPlayers {
		return nil, fmt.Errorf("%w: player value %d", ErrCorrupt, player)
	}
	b.CurrentPlayer = Player(player)

	count := d.u32("highlight count")
	if d.err != nil {
		return nil, d.err
	}
	if uint64(count)*8 > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: %d highlights with %d bytes left", ErrCorrupt, count, r.Remaining())
	}
	for range count {
		x := d.i32("highlight x")
		y := d.i32("highlight y")
		b.Highlights = append(b.Highlights, hexmap.Offset{X: int(x), Y: int(y)})
	}

	selX := d.i32("selected x")
	selY := d.i32("selected y")
	b.Selected = hexmap.Offset{X: int(selX), Y: int(selY)}

	ruby := d.u32("ruby score")
	pearl := d.u32("pearl score")
	if d.err != nil {
		return nil, d.err
	}
	b.RubyScore = int(ruby)
	b.PearlScore = int(pearl)

	if b.RubyScore != b.Count(TileRuby) || b.PearlScore != b.Count(TilePearl) {
		return nil, fmt.Errorf("%w: scores %d/%d do not match the grid", ErrCorrupt, ruby, pearl)
	}

	return b, nil
}

// decoder keeps the first read error so a run of fields can be checked once.
type decoder struct {
	r   *codec.Reader
	err error
}

func (d *decoder) fail(field string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("reading %s: %w", field, err)
	}
}

func (d *decoder) u8(field string) uint8 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadUint8()
	if err != nil {
		d.fail(field, err)
	}
	return v
}

func (d *decoder) u32(field string) uint32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadUint32()
	if err != nil {
		d.fail(field, err)
	}
	return v
}

func (d *decoder) i32(field string) int32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadInt32()
	if err != nil {
		d.fail(field, err)
	}
	return v
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
