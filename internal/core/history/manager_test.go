package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tilegrid/internal/region"
)

// snapOf builds a snapshot with n regions, each tagged by its width.
func snapOf(n int) region.Snapshot {
	regions := make([]region.Region, n)
	for i := range regions {
		regions[i] = region.Region{EndX: float64(i + 1), EndY: 1}
	}
	return region.NewSnapshot(regions)
}

func TestNewManagerIsEmpty(t *testing.T) {
	m := NewManager(0)
	assert.Equal(t, -1, m.Cursor())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	_, ok := m.Undo()
	assert.False(t, ok)
	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestUndoRedo(t *testing.T) {
	m := NewManager(10)
	for i := 0; i < 3; i++ {
		m.Record(snapOf(i))
	}
	cur, total := m.Stats()
	assert.Equal(t, 3, cur)
	assert.Equal(t, 3, total)

	snap, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, snap.Len())

	snap, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, 2, snap.Len())

	_, ok = m.Redo()
	assert.False(t, ok, "redo at the last entry is a no-op")
	assert.Equal(t, 2, m.Cursor())
}

func TestUndoAtFirstEntryIsNoop(t *testing.T) {
	m := NewManager(10)
	m.Record(snapOf(0))

	_, ok := m.Undo()
	assert.False(t, ok)
	assert.Equal(t, 0, m.Cursor())
}

func TestRecordAfterUndoTruncates(t *testing.T) {
	m := NewManager(10)
	m.Record(snapOf(1)) // A
	m.Record(snapOf(2)) // B
	m.Record(snapOf(3)) // C

	_, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, m.Cursor())

	m.Record(snapOf(4)) // D
	cur, total := m.Stats()
	assert.Equal(t, 3, cur)
	assert.Equal(t, 3, total, "history becomes [A,B,D]")
	assert.False(t, m.CanRedo())

	prev, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 2, prev.Len(), "entry before D is B")

	got, ok := m.Redo()
	require.True(t, ok)
	assert.Equal(t, 4, got.Len())
}

func TestEvictsOldestWhenFull(t *testing.T) {
	m := NewManager(3)
	for i := 0; i < 5; i++ {
		m.Record(snapOf(i))
	}
	cur, total := m.Stats()
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, cur)

	m.Undo()
	oldest, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 2, oldest.Len(), "entries 0 and 1 were evicted")
	assert.False(t, m.CanUndo())
}
