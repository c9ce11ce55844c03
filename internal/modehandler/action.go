package modehandler

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tilegrid/internal/config"
	"github.com/bethropolis/tilegrid/internal/core"
	"github.com/bethropolis/tilegrid/internal/event"
	"github.com/bethropolis/tilegrid/internal/input"
	"github.com/bethropolis/tilegrid/internal/logger"
)

// HelpText summarizes the bindings for the status line.
const HelpText = "Drag: draw | drag edge: resize | wheel/+/-: zoom | Ctrl+Z/Y: undo/redo | " +
	"Ctrl+S/L: save/load | X: clear | g: generate | p: preview | y: copy JSON | [ ]: ratio | " +
	":help for commands | Esc: quit"

// executeAction handles actions when in ModeNormal. Commands reuse it, so
// key bindings and their command names behave identically.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	actionProcessed := true

	// Any other action cancels a pending clear confirmation.
	if action != input.ActionClear && action != input.ActionUnknown && action != input.ActionInsertRune {
		mh.editor.DisarmClear()
	}

	switch action {
	// --- Mode Switching ---
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetCommandLine(":")
		logger.Debugf("ModeHandler: Entering Command Mode")

	// --- Quit ---
	case input.ActionQuit:
		mh.RequestQuit(false)
	case input.ActionForceQuit:
		mh.RequestQuit(true)

	// --- History ---
	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// --- Persistence (editor publishes the outcome) ---
	case input.ActionSave:
		ctx, cancel := mh.storageContext()
		if err := mh.editor.Save(ctx); err != nil {
			logger.Debugf("ModeHandler: save failed: %v", err)
		}
		cancel()
	case input.ActionLoad:
		ctx, cancel := mh.storageContext()
		if err := mh.editor.Load(ctx); err != nil && !errors.Is(err, core.ErrNoSavedLayout) {
			logger.Debugf("ModeHandler: load failed: %v", err)
		}
		cancel()

	// --- Layout ---
	case input.ActionClear:
		mh.editor.RequestClear()
	case input.ActionGenerate:
		mh.generate()
	case input.ActionTogglePreview:
		if mh.editor.TogglePreview() {
			mh.statusBar.SetTemporaryMessage("Preview on")
		} else {
			mh.statusBar.SetTemporaryMessage("Preview off")
		}
	case input.ActionYank:
		mh.yankLayout()

	// --- View ---
	case input.ActionZoomIn:
		mh.editor.Wheel(-1)
	case input.ActionZoomOut:
		mh.editor.Wheel(1)
	case input.ActionRatioUp:
		mh.stepRatio(config.DivideRatioStep)
	case input.ActionRatioDown:
		mh.stepRatio(-config.DivideRatioStep)

	case input.ActionHelp:
		mh.statusBar.SetTemporaryMessage(HelpText)

	default:
		// Unbound runes, Enter and Backspace mean nothing outside command mode.
		actionProcessed = false
	}

	if action != input.ActionQuit && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// generate validates the layout and copies the prompt output.
func (mh *ModeHandler) generate() {
	out, err := mh.editor.Generate()
	if err != nil {
		logger.Debugf("ModeHandler: generate failed: %v", err)
		return
	}
	logger.Infof("Generated: template=%q ratio=%q prompt=%q", out.Template, out.Ratio, out.Prompt)
	if err := mh.clipboard.Copy(out.Prompt); err != nil {
		logger.Warnf("ModeHandler: prompt kept in internal clipboard only: %v", err)
	}
	mh.eventManager.Dispatch(event.TypeGenerated, event.GeneratedData{Template: out.Template, Ratio: out.Ratio, Prompt: out.Prompt})
}

// yankLayout copies the regions JSON.
func (mh *ModeHandler) yankLayout() {
	data, err := mh.editor.LayoutJSON()
	if err != nil {
		mh.statusBar.Notify(event.LevelError, "Copy failed: "+err.Error())
		return
	}
	if err := mh.clipboard.Copy(data); err != nil {
		mh.statusBar.Notify(event.LevelWarning, fmt.Sprintf("Copied %d region(s) internally; system clipboard failed: %v", mh.editor.RegionCount(), err))
		return
	}
	mh.statusBar.SetTemporaryMessage("Copied %d region(s) as JSON", mh.editor.RegionCount())
}

func (mh *ModeHandler) stepRatio(delta float64) {
	if err := mh.editor.SetDivideRatio(mh.editor.DivideRatio() + delta); err != nil {
		return // editor already notified
	}
	mh.statusBar.SetTemporaryMessage("Divide ratio: %.1f", mh.editor.DivideRatio())
}
