package walkstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/walk.report/internal/dataset"
	"github.com/banshee-data/walk.report/internal/dp"
	"github.com/banshee-data/walk.report/internal/kernel"
	"github.com/banshee-data/walk.report/internal/walk"
)

const migrationsDir = "../../migrations"

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "walks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.MigrateUp(migrationsDir))
	return s
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	version, dirty, err := s.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(3), version)

	// Up again is a no-op.
	require.NoError(t, s.MigrateUp(migrationsDir))

	require.NoError(t, s.MigrateDown(migrationsDir))
	version, _, err = s.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestRunsAndWalks(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	runID, err := s.InsertRun("swg", "Simple Rw", 10)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	walks := []walk.Walk{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 0, Y: 1}},
	}
	require.NoError(t, s.InsertWalks(runID, walks))

	got, err := s.ListWalks(runID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, walks[0], got[0])
	assert.Equal(t, walks[1], got[1])

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "swg", runs[0].Walker)
	assert.Equal(t, "Simple Rw", runs[0].Kernel)
	assert.Equal(t, 10, runs[0].TimeSteps)

	// Walks of an unknown run come back empty.
	got, err = s.ListWalks("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	k, err := kernel.FromGenerator(kernel.SimpleRwGenerator{})
	require.NoError(t, err)
	prog, err := dp.NewBuilder().
		Simple().
		TimeLimit(5).
		Kernel(k).
		AddSingleBarrier(dataset.XYPoint{X: 1, Y: 0}).
		Build()
	require.NoError(t, err)
	prog.Compute()

	require.NoError(t, s.SaveSnapshot("test", prog))

	loaded, err := s.LoadSnapshot("test")
	require.NoError(t, err)

	sp, ok := loaded.(*dp.Simple)
	require.True(t, ok)
	assert.Equal(t, 5, sp.TimeLimit())

	for t_ := 0; t_ <= 5; t_++ {
		for x := -5; x <= 5; x++ {
			for y := -5; y <= 5; y++ {
				assert.Equal(t, prog.(*dp.Simple).AtOr(x, y, t_, -1), sp.AtOr(x, y, t_, -1))
			}
		}
	}
	assert.Equal(t, 0.0, sp.FieldProbabilityAt(1, 0))
}

func TestSnapshotReplaceAndList(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	k, err := kernel.FromGenerator(kernel.SimpleRwGenerator{})
	require.NoError(t, err)
	prog, err := dp.NewBuilder().Simple().TimeLimit(2).Kernel(k).Build()
	require.NoError(t, err)
	prog.Compute()

	require.NoError(t, s.SaveSnapshot("a", prog))
	require.NoError(t, s.SaveSnapshot("b", prog))

	// Saving under an existing name replaces the snapshot.
	require.NoError(t, s.SaveSnapshot("a", prog))

	names, err := s.ListSnapshots()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestSnapshotTyped(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	k, err := kernel.FromGenerator(kernel.SimpleRwGenerator{})
	require.NoError(t, err)

	types := make([][]int, 5)
	for i := range types {
		types[i] = make([]int, 5)
	}
	types[2][2] = 1

	probs := map[int]float64{0: 1.0, 1: 0.5}
	prog, err := dp.NewBuilder().
		Simple().
		TimeLimit(2).
		Kernel(k).
		FieldTypes(types, probs).
		Build()
	require.NoError(t, err)
	prog.Compute()

	require.NoError(t, s.SaveSnapshot("typed", prog))

	// Restoring with a different probability table rebinds the mask.
	loaded, err := s.LoadSnapshotTyped("typed", map[int]float64{0: 1.0, 1: 0.25})
	require.NoError(t, err)

	sp, ok := loaded.(*dp.Simple)
	require.True(t, ok)
	assert.Equal(t, 0.25, sp.FieldProbabilityAt(0, 0))
	assert.Equal(t, 1.0, sp.FieldProbabilityAt(1, 1))
}

func TestSnapshotNotFound(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	_, err := s.LoadSnapshot("missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
