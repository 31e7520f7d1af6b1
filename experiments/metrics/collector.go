package metrics

import (
	"time"

	"hexxagon/game"
)

type MoveMetric struct {
	Step       int
	Player     string
	Move       game.Move
	Distance   int // 1 for a clone, 2 for a hop
	Captures   int
	RubyScore  int
	PearlScore int
	Duration   time.Duration // time the agent took to choose
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "Ruby", "Pearl", "Draw" or empty when cut off
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Skips          int
	RubyScore      int
	PearlScore     int
}

// Collector gathers the metrics of one game as the engine plays it. A
// collector belongs to a single engine and is not safe for concurrent use.
type Collector interface {
	Start(startingPlayer string)
	AddMove(m MoveMetric)
	AddSkip()
	Complete(b *game.Board) (GameMetric, []MoveMetric)
}

type collector struct {
	startingPlayer string
	startTime      time.Time
	moves          []MoveMetric
	skips          int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(startingPlayer string) {
	m.startTime = time.Now()
	m.startingPlayer = startingPlayer
	m.moves = nil
	m.skips = 0
}

func (m *collector) AddMove(mm MoveMetric) {
	m.moves = append(m.moves, mm)
}

func (m *collector) AddSkip() {
	m.skips++
}

func (m *collector) Complete(b *game.Board) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		StartingPlayer: m.startingPlayer,
		Winner:         b.Winner(),
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
		TotalMoves:     len(m.moves),
		Skips:          m.skips,
		RubyScore:      b.RubyScore,
		PearlScore:     b.PearlScore,
	}, m.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(startingPlayer string) {}
func (m *dummyCollector) AddMove(mm MoveMetric)      {}
func (m *dummyCollector) AddSkip()                   {}
func (m *dummyCollector) Complete(b *game.Board) (GameMetric, []MoveMetric) {
	return GameMetric{}, nil
}
