package autosave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 30 * time.Second

	saveTimeout = 10 * time.Second
)

// AutoSave periodically saves a modified layout. The ticker runs on its own
// goroutine; the save itself is scheduled onto the main loop.
type AutoSave struct {
	api plugin.EditorAPI

	// Configuration
	mutex    sync.RWMutex // Protects access to config fields below
	enabled  bool
	interval time.Duration

	// Runtime state
	stopChan chan struct{}  // Signals the saver goroutine to stop
	wg       sync.WaitGroup // Waits for the goroutine to finish
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the auto-save loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if interval, err := parseInterval(intervalVal); err != nil {
			logger.Warnf("%s: %v. Using default (%v)", pluginName, err, p.interval)
		} else {
			p.interval = interval
		}
	}
	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	if err := api.RegisterCommand("autosave", p.executeToggle); err != nil {
		logger.Warnf("%s: failed to register ':autosave': %v", pluginName, err)
	}

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)
	if isEnabled {
		p.start(interval)
	}
	return nil
}

// parseInterval accepts a time.Duration (decoded config) or a duration string.
func parseInterval(v interface{}) (time.Duration, error) {
	var d time.Duration
	switch val := v.(type) {
	case time.Duration:
		d = val
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, err
		}
		d = parsed
	default:
		return 0, fmt.Errorf("invalid type for 'interval' config (%T)", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("'interval' config must be positive, got %v", d)
	}
	return d, nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	p.stop()
	return nil
}

// Enabled reports whether the saver loop is running.
func (p *AutoSave) Enabled() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.enabled && p.stopChan != nil
}

func (p *AutoSave) start(interval time.Duration) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.stopChan != nil {
		return
	}
	p.enabled = true
	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval, p.stopChan)
	logger.Debugf("%s: Saver goroutine started.", p.Name())
}

func (p *AutoSave) stop() {
	p.mutex.Lock()
	stopChan := p.stopChan
	p.stopChan = nil
	p.enabled = false
	p.mutex.Unlock()

	if stopChan != nil {
		close(stopChan)
		p.wg.Wait()
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
}

// executeToggle implements ":autosave [on|off]".
func (p *AutoSave) executeToggle(args []string) error {
	want := !p.Enabled()
	if len(args) > 0 {
		switch args[0] {
		case "on":
			want = true
		case "off":
			want = false
		default:
			p.api.SetStatusMessage("Usage: autosave [on|off]")
			return nil
		}
	}
	p.mutex.RLock()
	interval := p.interval
	p.mutex.RUnlock()

	if want {
		p.start(interval)
		p.api.SetStatusMessage("Autosave on (every %v)", interval)
	} else {
		p.stop()
		p.api.SetStatusMessage("Autosave off")
	}
	return nil
}

// saverLoop ticks until stopChan closes.
func (p *AutoSave) saverLoop(interval time.Duration, stopChan <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.Schedule(p.saveIfModified)
		case <-stopChan:
			return
		}
	}
}

// saveIfModified runs on the main loop.
func (p *AutoSave) saveIfModified() {
	if !p.api.IsModified() {
		logger.DebugTagf("autosave", "%s: layout not modified, skipping.", p.Name())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	logger.Infof("%s: Auto-saving %d region(s)", p.Name(), p.api.RegionCount())
	if err := p.api.SaveLayout(ctx); err != nil {
		logger.Errorf("%s: Auto-save failed: %v", p.Name(), err)
	}
}
