// Package clipboard keeps copied layout text, mirroring it to the system
// clipboard when one is available.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/tilegrid/internal/logger"
)

// ErrEmpty is returned by Paste when nothing has been copied.
var ErrEmpty = errors.New("clipboard is empty")

// Manager holds the last copied text. The internal copy always succeeds,
// so a missing system clipboard (headless, no xclip) only loses sharing.
type Manager struct {
	mu     sync.Mutex
	text   string
	system bool

	// Swappable for tests.
	writeAll func(string) error
	readAll  func() (string, error)
}

// NewManager creates a manager. useSystem mirrors copies to the OS clipboard.
func NewManager(useSystem bool) *Manager {
	return &Manager{
		system:   useSystem && !clipboard.Unsupported,
		writeAll: clipboard.WriteAll,
		readAll:  clipboard.ReadAll,
	}
}

// Copy stores text. It returns the system clipboard error, if any, after
// the internal copy has been kept.
func (m *Manager) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.text = text
	logger.Debugf("Clipboard: copied %d bytes", len(text))
	if !m.system {
		return nil
	}
	if err := m.writeAll(text); err != nil {
		logger.Warnf("Clipboard: system clipboard write failed: %v", err)
		return err
	}
	return nil
}

// Paste returns the system clipboard when enabled and non-empty, otherwise
// the internal copy.
func (m *Manager) Paste() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.system {
		if s, err := m.readAll(); err == nil && s != "" {
			return s, nil
		} else if err != nil {
			logger.Debugf("Clipboard: system clipboard read failed: %v", err)
		}
	}
	if m.text == "" {
		return "", ErrEmpty
	}
	return m.text, nil
}

// UsesSystem reports whether copies reach the OS clipboard.
func (m *Manager) UsesSystem() bool {
	return m.system
}
