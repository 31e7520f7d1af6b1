package game

import "hexxagon/hexmap"

// Rand is the random source used by the AI fallback. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type candidate struct {
	from  hexmap.Offset
	moves []hexmap.Offset
}

// AIPlay picks a move for the current player: the move capturing the most
// opponent gems, the first one found on ties. When no move captures
// anything it picks a random source with a legal move, then a random
// destination for it. It panics if the current player cannot move.
func (b *Board) AIPlay(rng Rand) Move {
	player := b.CurrentPlayer
	gem := player.Gem()

	var (
		best       Move
		bestScore  int
		candidates []candidate
	)

	for from := range b.Map.ViewCells() {
		if from.Get() != gem {
			continue
		}

		moves := b.movesFrom(from, player)
		if len(moves) == 0 {
			continue
		}
		candidates = append(candidates, candidate{from: from.Offset(), moves: moves})

		for _, to := range moves {
			target, _ := b.Map.View(to.X, to.Y)
			score := b.capturesAt(target, player)
			if score > bestScore {
				bestScore = score
				best = Move{From: from.Offset(), To: to}
			}
		}
	}

	if bestScore > 0 {
		return best
	}

	if len(candidates) == 0 {
		panic("there's no possible moves!")
	}

	c := candidates[rng.Intn(len(candidates))]
	return Move{From: c.from, To: c.moves[rng.Intn(len(c.moves))]}
}
