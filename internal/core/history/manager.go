// Package history provides linear undo/redo over full-state snapshots.
package history

import (
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/region"
)

// DefaultMaxHistory bounds the number of snapshots kept.
const DefaultMaxHistory = 100

// Manager is a snapshot log with a cursor. The cursor indexes the entry
// that matches the displayed state, or is -1 while the log is empty.
// Undo and redo only move the cursor; they never recompute state.
type Manager struct {
	entries    []region.Snapshot
	cursor     int
	maxHistory int
}

// NewManager creates an empty log holding at most maxHistory entries.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		entries:    make([]region.Snapshot, 0, maxHistory),
		cursor:     -1,
		maxHistory: maxHistory,
	}
}

// Record truncates everything after the cursor, appends snap and moves the
// cursor onto it. When the log is full the oldest entry is evicted.
func (m *Manager) Record(snap region.Snapshot) {
	if m.cursor < len(m.entries)-1 {
		m.entries = m.entries[:m.cursor+1]
	}
	m.entries = append(m.entries, snap)

	if len(m.entries) > m.maxHistory {
		m.entries = m.entries[len(m.entries)-m.maxHistory:]
	}
	m.cursor = len(m.entries) - 1

	logger.DebugTagf("history", "History: recorded %d regions. Cursor: %d, Count: %d", snap.Len(), m.cursor, len(m.entries))
}

// Undo steps back one entry. It returns false, leaving the cursor alone,
// when the cursor is at the first entry or the log is empty.
func (m *Manager) Undo() (region.Snapshot, bool) {
	if m.cursor <= 0 {
		logger.DebugTagf("history", "History: nothing to undo")
		return region.Snapshot{}, false
	}
	m.cursor--
	logger.DebugTagf("history", "History: undo to %d", m.cursor)
	return m.entries[m.cursor], true
}

// Redo steps forward one entry. It returns false at the last entry.
func (m *Manager) Redo() (region.Snapshot, bool) {
	if m.cursor >= len(m.entries)-1 {
		logger.DebugTagf("history", "History: nothing to redo. cursor=%d, count=%d", m.cursor, len(m.entries))
		return region.Snapshot{}, false
	}
	m.cursor++
	logger.DebugTagf("history", "History: redo to %d", m.cursor)
	return m.entries[m.cursor], true
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.entries)-1
}

// Cursor returns the raw cursor (-1 when empty).
func (m *Manager) Cursor() int {
	return m.cursor
}

// Stats returns the 1-based cursor position and the number of entries.
func (m *Manager) Stats() (current, total int) {
	return m.cursor + 1, len(m.entries)
}
