package plugin_test

import (
	"errors"
	"testing"

	"github.com/bethropolis/tilegrid/internal/plugin"
	"github.com/bethropolis/tilegrid/internal/plugin/plugintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(plugin.EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *recordingPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestManagerLifecycleOrder(t *testing.T) {
	var log []string
	m := plugin.NewManager()
	require.NoError(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "b", log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "c", log: &log}))

	require.NoError(t, m.InitializePlugins(plugintest.New()))
	m.ShutdownPlugins()

	assert.Equal(t, []string{"init a", "init b", "init c", "shutdown c", "shutdown b", "shutdown a"}, log)
	assert.Equal(t, []string{"a", "b", "c"}, m.Names())
}

func TestManagerRejectsDuplicatesAndEmptyNames(t *testing.T) {
	var log []string
	m := plugin.NewManager()
	require.NoError(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{name: "", log: &log}))

	p, ok := m.GetPlugin("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Name())
}

func TestInitializeContinuesPastFailures(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	m := plugin.NewManager()
	require.NoError(t, m.Register(&recordingPlugin{name: "bad", initErr: boom, log: &log}))
	require.NoError(t, m.Register(&recordingPlugin{name: "good", log: &log}))

	err := m.InitializePlugins(plugintest.New())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"init bad", "init good"}, log)
}
