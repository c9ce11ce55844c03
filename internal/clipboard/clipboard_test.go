package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalCopyAndPaste(t *testing.T) {
	m := NewManager(false)
	_, err := m.Paste()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, m.Copy(`[{"startX":1}]`))
	got, err := m.Paste()
	require.NoError(t, err)
	assert.Equal(t, `[{"startX":1}]`, got)
	assert.False(t, m.UsesSystem())
}

func TestSystemClipboardFailureKeepsInternalCopy(t *testing.T) {
	m := NewManager(false)
	m.system = true
	m.writeAll = func(string) error { return errors.New("no xclip") }
	m.readAll = func() (string, error) { return "", errors.New("no xclip") }

	assert.Error(t, m.Copy("prompt"))
	got, err := m.Paste()
	require.NoError(t, err)
	assert.Equal(t, "prompt", got)
}

func TestSystemClipboardPreferredOnPaste(t *testing.T) {
	var written string
	m := NewManager(false)
	m.system = true
	m.writeAll = func(s string) error { written = s; return nil }
	m.readAll = func() (string, error) { return "from os", nil }

	require.NoError(t, m.Copy("mine"))
	assert.Equal(t, "mine", written)
	got, err := m.Paste()
	require.NoError(t, err)
	assert.Equal(t, "from os", got)
}
