// Package storage records completed simulation runs: run metadata in a
// sqlite index, per-step body states in one CSV file per run. It records
// trajectory output for later plotting and analysis; it does not
// checkpoint engine state.
package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	baseDir string
	db      *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	seed       INTEGER NOT NULL,
	dt         REAL NOT NULL,
	g          REAL NOT NULL,
	num_bodies INTEGER NOT NULL,
	adaptive   INTEGER NOT NULL,
	steps      INTEGER NOT NULL,
	masses     TEXT NOT NULL,
	metrics    TEXT NOT NULL
);`

func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", filepath.Join(baseDir, "orbitlab.db"))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing run index: %w", err)
	}
	return &Store{baseDir: baseDir, db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// BodyState is one body's position and velocity at a recorded step.
type BodyState struct {
	X, Y, VX, VY float64
}

// Frame is the recorded state of every body after one step, along with the
// effective dt that produced it.
type Frame struct {
	T      float64
	Dt     float64
	Bodies []BodyState
}

type RunMeta struct {
	ID        string
	Name      string
	Timestamp time.Time
	Seed      int64
	Dt        float64
	G         float64
	NumBodies int
	Adaptive  bool
	Steps     int
	Masses    []float64
	Metrics   map[string]float64
}

// SaveRun indexes the metadata and writes the frame CSV. The generated run
// id is returned.
func (s *Store) SaveRun(meta RunMeta, frames []Frame) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Name, time.Now().UnixNano())
	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = len(frames)

	if err := s.writeFrames(runID, frames); err != nil {
		return "", err
	}

	masses, err := json.Marshal(meta.Masses)
	if err != nil {
		return "", err
	}
	metricsJSON, err := json.Marshal(meta.Metrics)
	if err != nil {
		return "", err
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, name, created_at, seed, dt, g, num_bodies, adaptive, steps, masses, metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Name, meta.Timestamp, meta.Seed, meta.Dt, meta.G,
		meta.NumBodies, boolToInt(meta.Adaptive), meta.Steps, string(masses), string(metricsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("indexing run %s: %w", runID, err)
	}
	return runID, nil
}

func (s *Store) writeFrames(runID string, frames []Frame) error {
	f, err := os.Create(s.framePath(runID))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(frames) == 0 {
		return nil
	}

	header := []string{"time", "dt"}
	for i := range frames[0].Bodies {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range frames {
		row := make([]string, 0, 2+4*len(fr.Bodies))
		row = append(row, formatFloat(fr.T), formatFloat(fr.Dt))
		for _, b := range fr.Bodies {
			row = append(row, formatFloat(b.X), formatFloat(b.Y), formatFloat(b.VX), formatFloat(b.VY))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMeta, error) {
	rows, err := s.db.Query(
		`SELECT id, name, created_at, seed, dt, g, num_bodies, adaptive, steps, masses, metrics
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

func (s *Store) Load(runID string) (*RunMeta, error) {
	row := s.db.QueryRow(
		`SELECT id, name, created_at, seed, dt, g, num_bodies, adaptive, steps, masses, metrics
		 FROM runs WHERE id = ?`, runID)
	meta, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	return meta, err
}

// LoadFrames reads a run's frame CSV back into memory.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	f, err := os.Open(s.framePath(runID))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	numBodies := (len(records[0]) - 2) / 4
	frames := make([]Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		fr := Frame{Bodies: make([]BodyState, numBodies)}
		vals := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: bad field %q: %w", runID, field, err)
			}
			vals[i] = v
		}
		fr.T, fr.Dt = vals[0], vals[1]
		for i := 0; i < numBodies; i++ {
			fr.Bodies[i] = BodyState{vals[2+i*4], vals[3+i*4], vals[4+i*4], vals[5+i*4]}
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

func (s *Store) framePath(runID string) string {
	return filepath.Join(s.baseDir, runID+".csv")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (*RunMeta, error) {
	var meta RunMeta
	var adaptive int
	var masses, metricsJSON string
	err := r.Scan(&meta.ID, &meta.Name, &meta.Timestamp, &meta.Seed, &meta.Dt, &meta.G,
		&meta.NumBodies, &adaptive, &meta.Steps, &masses, &metricsJSON)
	if err != nil {
		return nil, err
	}
	meta.Adaptive = adaptive != 0
	if err := json.Unmarshal([]byte(masses), &meta.Masses); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(metricsJSON), &meta.Metrics); err != nil {
		return nil, err
	}
	return &meta, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
