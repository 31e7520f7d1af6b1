package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const (
	GameRecordsFile = "game_records.csv"
	MoveRecordsFile = "move_records.parquet"
)

type GameRecord struct {
	ID   int
	Seed uint64
	GameMetric
}

// MoveRecord is one row of the move records file.
type MoveRecord struct {
	Game       int32  `parquet:"game"`
	Step       int32  `parquet:"step"`
	Player     string `parquet:"player,dict"`
	FromX      int32  `parquet:"from_x"`
	FromY      int32  `parquet:"from_y"`
	ToX        int32  `parquet:"to_x"`
	ToY        int32  `parquet:"to_y"`
	Distance   int32  `parquet:"distance"`
	Captures   int32  `parquet:"captures"`
	RubyScore  int32  `parquet:"ruby_score"`
	PearlScore int32  `parquet:"pearl_score"`
	DurationNs int64  `parquet:"duration_ns"`
}

func NewMoveRecord(game int, m MoveMetric) MoveRecord {
	return MoveRecord{
		Game:       int32(game),
		Step:       int32(m.Step),
		Player:     m.Player,
		FromX:      int32(m.Move.From.X),
		FromY:      int32(m.Move.From.Y),
		ToX:        int32(m.Move.To.X),
		ToY:        int32(m.Move.To.Y),
		Distance:   int32(m.Distance),
		Captures:   int32(m.Captures),
		RubyScore:  int32(m.RubyScore),
		PearlScore: int32(m.PearlScore),
		DurationNs: m.Duration.Nanoseconds(),
	}
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the files of one run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, GameRecordsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"id", "seed", "starting_player", "winner", "ruby_score", "pearl_score",
		"total_moves", "skips", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.StartingPlayer,
			record.Winner,
			strconv.Itoa(record.RubyScore),
			strconv.Itoa(record.PearlScore),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Skips),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush game records: %w", err)
	}
	return nil
}

// WriteMoveRecords stores the rows as a zstd compressed parquet file. The
// file is written next to its final path and renamed into place.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, MoveRecordsFile)
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, records,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "hexxagon_move_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write move records: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename move records: %w", err)
	}
	return nil
}

func ReadMoveRecords(path string) ([]MoveRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open move records: %w", err)
	}

	reader := parquet.NewGenericReader[MoveRecord](pf)
	defer reader.Close()

	rows := make([]MoveRecord, reader.NumRows())
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read move records: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return rows[:read], nil
}
