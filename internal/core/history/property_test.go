package history

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const (
	opRecord = iota
	opUndo
	opRedo
)

// replay applies ops to a fresh manager. Recorded snapshots get increasing
// sizes so every entry is distinguishable.
func replay(ops []int) *Manager {
	m := NewManager(DefaultMaxHistory)
	next := 0
	for _, op := range ops {
		switch op {
		case opRecord:
			m.Record(snapOf(next))
			next++
		case opUndo:
			m.Undo()
		case opRedo:
			m.Redo()
		}
	}
	return m
}

func TestHistoryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	opsGen := gen.SliceOf(gen.IntRange(opRecord, opRedo))

	properties.Property("redo after undo returns to the same entry", prop.ForAll(
		func(ops []int) bool {
			m := replay(ops)
			before := m.Cursor()
			undone, ok := m.Undo()
			if !ok {
				return m.Cursor() == before
			}
			redone, ok := m.Redo()
			if !ok || m.Cursor() != before {
				return false
			}
			again, ok := m.Undo()
			return ok && reflect.DeepEqual(undone.Regions(), again.Regions()) && redone.Len() != undone.Len()
		},
		opsGen,
	))

	properties.Property("cursor stays inside the log", prop.ForAll(
		func(ops []int) bool {
			m := replay(ops)
			cur, total := m.Stats()
			if total == 0 {
				return m.Cursor() == -1
			}
			return cur >= 1 && cur <= total
		},
		opsGen,
	))

	properties.Property("record leaves nothing to redo", prop.ForAll(
		func(ops []int) bool {
			m := replay(append(ops, opRecord))
			return !m.CanRedo()
		},
		opsGen,
	))

	properties.TestingRun(t)
}
