package core

import (
	"context"
	"fmt"

	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/region"
	"github.com/bethropolis/tilegrid/internal/storage"
)

// LayoutJSON returns the live regions as the JSON that Save writes.
func (e *Editor) LayoutJSON() (string, error) {
	data, err := e.regions.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encode regions: %w", err)
	}
	return string(data), nil
}

// ImportLayout replaces the regions with a JSON layout, e.g. one copied
// with :yank. Unlike Load it is an edit, so it is recorded and undoable.
func (e *Editor) ImportLayout(data string) error {
	regions, err := region.Decode([]byte(data))
	if err != nil {
		e.notify(event.LevelError, "Paste failed: "+err.Error())
		return err
	}
	e.regions.Replace(regions)
	e.record()
	logger.Infof("Editor: imported %d region(s)", len(regions))
	e.regionsChanged()
	e.notify(event.LevelSuccess, fmt.Sprintf("Pasted %d region(s).", len(regions)))
	return nil
}

// Save writes the regions to the store under the "regions" key.
func (e *Editor) Save(ctx context.Context) error {
	if e.kv == nil {
		e.notify(event.LevelError, "Save failed: no storage configured.")
		return ErrNoStore
	}
	data, err := e.LayoutJSON()
	if err != nil {
		e.notify(event.LevelError, "Save failed: "+err.Error())
		return err
	}
	if err := e.kv.Set(ctx, storage.RegionsKey, data); err != nil {
		logger.Errorf("Editor: save failed: %v", err)
		e.notify(event.LevelError, "Save failed: "+err.Error())
		return fmt.Errorf("save layout: %w", err)
	}

	e.modified = false
	logger.Infof("Editor: saved %d region(s)", e.regions.Len())
	e.notify(event.LevelSuccess, "Configuration saved successfully!")
	e.eventManager.Dispatch(event.TypeLayoutSaved, event.LayoutSavedData{Key: storage.RegionsKey, Count: e.regions.Len()})
	return nil
}

// Load replaces the regions with the saved layout. History is untouched, so
// the load itself cannot be undone. A missing layout changes nothing.
func (e *Editor) Load(ctx context.Context) error {
	if e.kv == nil {
		e.notify(event.LevelError, "Load failed: no storage configured.")
		return ErrNoStore
	}
	data, ok, err := e.kv.Get(ctx, storage.RegionsKey)
	if err != nil {
		logger.Errorf("Editor: load failed: %v", err)
		e.notify(event.LevelError, "Load failed: "+err.Error())
		return fmt.Errorf("load layout: %w", err)
	}
	if !ok {
		e.notify(event.LevelWarning, "No saved configuration found.")
		return ErrNoSavedLayout
	}

	regions, err := region.Decode([]byte(data))
	if err != nil {
		logger.Errorf("Editor: stored layout is corrupt: %v", err)
		e.notify(event.LevelError, "Load failed: "+err.Error())
		return err
	}

	e.regions.Replace(regions)
	logger.Infof("Editor: loaded %d region(s)", len(regions))
	e.regionsChanged()
	e.modified = false
	e.notify(event.LevelSuccess, "Configuration loaded successfully!")
	e.eventManager.Dispatch(event.TypeLayoutLoaded, event.LayoutLoadedData{Key: storage.RegionsKey, Count: len(regions)})
	return nil
}
