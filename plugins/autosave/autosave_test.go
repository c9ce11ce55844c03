package autosave

import (
	"errors"
	"testing"
	"time"

	"github.com/bethropolis/tilegrid/internal/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledByDefault(t *testing.T) {
	api := plugintest.New()
	p := New().(*AutoSave)
	require.NoError(t, p.Initialize(api))
	defer p.Shutdown()

	assert.False(t, p.Enabled())
	assert.Contains(t, api.CommandNames(), "autosave")
}

func TestTickSchedulesSaveOnMainLoop(t *testing.T) {
	api := plugintest.New()
	api.Config["autosave"] = map[string]interface{}{"enabled": true, "interval": 5 * time.Millisecond}
	api.Modified = true

	p := New().(*AutoSave)
	require.NoError(t, p.Initialize(api))
	require.True(t, p.Enabled())

	require.Eventually(t, func() bool { return api.Pending() > 0 }, time.Second, time.Millisecond)
	require.NoError(t, p.Shutdown())
	assert.Equal(t, 0, api.Saves, "nothing saves off the main loop")

	api.RunScheduled()
	assert.Equal(t, 1, api.Saves)
	assert.False(t, api.IsModified())

	api.RunScheduled()
	assert.Equal(t, 1, api.Saves)
}

func TestUnmodifiedLayoutIsNotSaved(t *testing.T) {
	api := plugintest.New()
	p := New().(*AutoSave)
	p.api = api
	p.saveIfModified()
	assert.Equal(t, 0, api.Saves)
}

func TestSaveFailureIsLogged(t *testing.T) {
	api := plugintest.New()
	api.Modified = true
	api.SaveErr = errors.New("disk full")
	p := New().(*AutoSave)
	p.api = api
	p.saveIfModified()
	assert.True(t, api.IsModified())
}

func TestIntervalParsing(t *testing.T) {
	d, err := parseInterval("1m")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	d, err = parseInterval(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	for _, bad := range []interface{}{"soon", "-1s", 0 * time.Second, 42} {
		_, err := parseInterval(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestToggleCommand(t *testing.T) {
	api := plugintest.New()
	p := New().(*AutoSave)
	require.NoError(t, p.Initialize(api))
	defer p.Shutdown()

	require.NoError(t, api.Run("autosave", "on"))
	assert.True(t, p.Enabled())
	assert.Equal(t, "Autosave on (every 30s)", api.LastMessage())

	require.NoError(t, api.Run("autosave"))
	assert.False(t, p.Enabled())
	assert.Equal(t, "Autosave off", api.LastMessage())

	require.NoError(t, api.Run("autosave", "maybe"))
	assert.Equal(t, "Usage: autosave [on|off]", api.LastMessage())
}
