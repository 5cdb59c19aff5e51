// Package walkstore persists generated walks and computed dynamic program
// snapshots in a sqlite database. Walks are grouped into runs; a run records
// the walker and kernel configuration that produced its walks.
package walkstore

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/monitoring"
	"github.com/banshee-data/walk.report/internal/walk"
)

// ErrUnknownSnapshotKind is returned when a stored snapshot row carries a
// kind the loader does not recognize.
var ErrUnknownSnapshotKind = errors.New("unknown dynamic program kind in snapshot")

// ErrSnapshotNotFound is returned when no snapshot with the requested name
// exists.
var ErrSnapshotNotFound = errors.New("no snapshot with that name")

type Store struct {
	*sql.DB
}

// Open opens (or creates) the sqlite database at path. The schema is managed
// through migrations; call MigrateUp before first use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open walk store: %w", err)
	}
	return &Store{db}, nil
}

// Run is one recorded walk generation run.
type Run struct {
	ID        string
	Walker    string
	Kernel    string
	TimeSteps int
	CreatedAt string
}

func (r Run) String() string {
	return fmt.Sprintf("%s | walker=%s kernel=%q steps=%d (%s)", r.ID, r.Walker, r.Kernel, r.TimeSteps, r.CreatedAt)
}

// InsertRun records a new run and returns its generated id.
func (s *Store) InsertRun(walkerName, kernelName string, timeSteps int) (string, error) {
	id := uuid.NewString()
	_, err := s.Exec(
		"INSERT INTO runs (run_id, walker, kernel, time_steps) VALUES (?, ?, ?, ?)",
		id, walkerName, kernelName, timeSteps,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// ListRuns returns all recorded runs, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.Query(
		"SELECT run_id, walker, kernel, time_steps, created_at FROM runs ORDER BY created_at DESC, run_id",
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Walker, &r.Kernel, &r.TimeSteps, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// InsertWalk stores one walk under the given run. seq orders walks within a
// run.
func (s *Store) InsertWalk(runID string, seq int, w walk.Walk) error {
	points, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode walk points: %w", err)
	}
	_, err = s.Exec(
		"INSERT INTO walks (run_id, seq, points) VALUES (?, ?, ?)",
		runID, seq, string(points),
	)
	if err != nil {
		return fmt.Errorf("insert walk: %w", err)
	}
	return nil
}

// InsertWalks stores a batch of walks under the given run in order.
func (s *Store) InsertWalks(runID string, walks []walk.Walk) error {
	for i, w := range walks {
		if err := s.InsertWalk(runID, i, w); err != nil {
			return err
		}
	}
	monitoring.Logf("[walkstore] stored %d walks for run %s", len(walks), runID)
	return nil
}

// ListWalks returns the walks of a run in insertion order.
func (s *Store) ListWalks(runID string) ([]walk.Walk, error) {
	rows, err := s.Query("SELECT points FROM walks WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, fmt.Errorf("list walks: %w", err)
	}
	defer rows.Close()

	var walks []walk.Walk
	for rows.Next() {
		var points string
		if err := rows.Scan(&points); err != nil {
			return nil, fmt.Errorf("scan walk: %w", err)
		}
		var w walk.Walk
		if err := json.Unmarshal([]byte(points), &w); err != nil {
			return nil, fmt.Errorf("decode walk points: %w", err)
		}
		walks = append(walks, w)
	}
	return walks, rows.Err()
}

// SaveSnapshot stores a computed dynamic program under a unique name. Saving
// again under the same name replaces the previous snapshot.
func (s *Store) SaveSnapshot(name string, prog dp.Program) error {
	var kind dp.Kind
	switch prog.(type) {
	case *dp.Simple:
		kind = dp.KindSimple
	case *dp.Multi:
		kind = dp.KindMulti
	default:
		return fmt.Errorf("%w: %T", ErrUnknownSnapshotKind, prog)
	}

	var buf bytes.Buffer
	if err := prog.Save(&buf); err != nil {
		return fmt.Errorf("encode snapshot %q: %w", name, err)
	}

	_, err := s.Exec(
		`INSERT INTO dp_snapshots (name, kind, data) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET kind = excluded.kind, data = excluded.data`,
		name, int(kind), buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot %q: %w", name, err)
	}
	monitoring.Logf("[walkstore] saved snapshot %q (%d bytes)", name, buf.Len())
	return nil
}

// LoadSnapshot restores the dynamic program stored under name. The program's
// field mask must have been saved as plain probabilities; use
// LoadSnapshotTyped for programs built from field types.
func (s *Store) LoadSnapshot(name string) (dp.Program, error) {
	return s.loadSnapshot(name, nil)
}

// LoadSnapshotTyped restores a dynamic program whose field mask was saved as
// field type ids, resolving them through the given probability table.
func (s *Store) LoadSnapshotTyped(name string, typeProbabilities map[int]float64) (dp.Program, error) {
	return s.loadSnapshot(name, typeProbabilities)
}

func (s *Store) loadSnapshot(name string, typeProbabilities map[int]float64) (dp.Program, error) {
	var kind int
	var data []byte
	err := s.QueryRow("SELECT kind, data FROM dp_snapshots WHERE name = ?", name).Scan(&kind, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}

	r := bytes.NewReader(data)
	switch dp.Kind(kind) {
	case dp.KindSimple:
		if typeProbabilities != nil {
			return dp.LoadSimpleTyped(r, typeProbabilities)
		}
		return dp.LoadSimple(r)
	case dp.KindMulti:
		if typeProbabilities != nil {
			return dp.LoadMultiTyped(r, typeProbabilities)
		}
		return dp.LoadMulti(r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSnapshotKind, kind)
	}
}

// ListSnapshots returns the names of all stored snapshots.
func (s *Store) ListSnapshots() ([]string, error) {
	rows, err := s.Query("SELECT name FROM dp_snapshots ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan snapshot name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
