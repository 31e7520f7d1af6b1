// meta/meta.go
package meta

// MAX_TURNS caps the number of turns a game may last before it is abandoned.
const MAX_TURNS = 500

// GAMES is the default number of self-play games in a batch.
const GAMES = 100

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// SAVE_EXT is the file extension of save games.
const SAVE_EXT = ".hxs"

const EXPERIMENTS_DIR = "experiments"
