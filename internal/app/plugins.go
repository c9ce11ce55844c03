package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/plugin"

	// Import desired plugin packages here
	"github.com/bethropolis/tilegrid/plugins/autosave"
	"github.com/bethropolis/tilegrid/plugins/regionstats"
)

// pluginConstructors lists the built-in plugins. Adding a new plugin means
// adding its constructor here.
var pluginConstructors = []func() plugin.Plugin{
	regionstats.New,
	autosave.New,
}

// registerPlugins registers all known plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	var errs []error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			// Log the error but continue registering others
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			errs = append(errs, wrappedErr)
		}
	}
	return errors.Join(errs...)
}
