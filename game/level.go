package game

import "hexxagon/hexmap"

// level1 is the shipped 9x9 layout.
//
//	- void, # empty, P pearl, R ruby
//	-   -   P   -   -
//	  -   #   #   -
//	-   #   #   #   -
//	  #   #   #   #
//	R   #   #   #   R
//	  #   #   #   #
//	#   #   -   #   #
//	  #   #   #   #
//	#   #   #   #   #
//	  #   -   -   #
//	#   #   #   #   #
//	  #   #   #   #
//	P   #   #   #   P
//	  #   #   #   #
//	-   #   #   #   -
//	  -   #   #   -
//	-   -   R   -   -
var level1 = [9][9]Tile{
	{TileVoid, TileVoid, TileVoid, TileEmpty, TilePearl, TileEmpty, TileVoid, TileVoid, TileVoid},
	{TileVoid, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileVoid},
	{TileRuby, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileRuby},
	{TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileVoid, TileEmpty, TileEmpty, TileEmpty, TileEmpty},
	{TileEmpty, TileEmpty, TileEmpty, TileVoid, TileEmpty, TileVoid, TileEmpty, TileEmpty, TileEmpty},
	{TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty},
	{TilePearl, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TilePearl},
	{TileVoid, TileVoid, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileEmpty, TileVoid, TileVoid},
	{TileVoid, TileVoid, TileVoid, TileVoid, TileRuby, TileVoid, TileVoid, TileVoid, TileVoid},
}

// Level1 returns a fresh copy of the standard starting layout.
func Level1() *hexmap.HexMap[Tile] {
	tiles := make([]Tile, 0, 81)
	for _, row := range level1 {
		tiles = append(tiles, row[:]...)
	}
	m, err := hexmap.New(9, 9, tiles)
	if err != nil {
		panic(err)
	}
	return m
}

// NewGame returns a board on the standard layout.
func NewGame(computer bool) *Board {
	return NewBoard(Level1(), computer)
}
