package modehandler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/tilegrid/internal/input"
	"github.com/bethropolis/tilegrid/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward: // Backspace
		if len(mh.cmdBuffer) > 0 {
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
		} else {
			mh.exitCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}

	case input.ActionInsertNewLine: // Enter: Execute command
		cmd := string(mh.cmdBuffer)
		mh.exitCommandMode()
		mh.ExecuteCommand(cmd)
		return true

	case input.ActionQuit: // Escape: Cancel command
		mh.exitCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	default:
		// Shortcut runes are typed literally while in command mode.
		if actionEvent.Rune != 0 {
			mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)
		} else {
			return false
		}
	}

	mh.statusBar.SetCommandLine(":" + string(mh.cmdBuffer))
	return true
}

func (mh *ModeHandler) exitCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.SetCommandLine("")
}

// ExecuteCommand parses and runs one command line, without the colon.
func (mh *ModeHandler) ExecuteCommand(cmdStr string) {
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return
	}
	cmdName := parts[0]
	args := parts[1:]

	if cmdName != "clear" {
		mh.editor.DisarmClear()
	}

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
}

// registerBuiltinCommands exposes the layout actions as commands.
func (mh *ModeHandler) registerBuiltinCommands() {
	actionCommands := map[string]input.Action{
		"undo":     input.ActionUndo,
		"redo":     input.ActionRedo,
		"save":     input.ActionSave,
		"w":        input.ActionSave,
		"load":     input.ActionLoad,
		"clear":    input.ActionClear,
		"generate": input.ActionGenerate,
		"preview":  input.ActionTogglePreview,
		"yank":     input.ActionYank,
	}
	for name, action := range actionCommands {
		_ = mh.RegisterCommand(name, func(args []string) error {
			mh.executeAction(input.ActionEvent{Action: action})
			return nil
		})
	}

	_ = mh.RegisterCommand("resize", mh.cmdResize)
	_ = mh.RegisterCommand("ratio", mh.cmdRatio)
	_ = mh.RegisterCommand("help", mh.cmdHelp)
	_ = mh.RegisterCommand("paste", mh.cmdPaste)
	_ = mh.RegisterCommand("q", func([]string) error {
		mh.RequestQuit(false)
		return nil
	})
	_ = mh.RegisterCommand("q!", func([]string) error {
		mh.RequestQuit(true)
		return nil
	})
	_ = mh.RegisterCommand("wq", func([]string) error {
		ctx, cancel := mh.storageContext()
		defer cancel()
		if err := mh.editor.Save(ctx); err != nil {
			return err
		}
		mh.RequestQuit(true)
		return nil
	})
}

// cmdPaste implements ":paste", replacing the layout with clipboard JSON.
func (mh *ModeHandler) cmdPaste(args []string) error {
	data, err := mh.clipboard.Paste()
	if err != nil {
		return err
	}
	return mh.editor.ImportLayout(data)
}

// cmdResize implements ":resize W H". The editor reports bad input.
func (mh *ModeHandler) cmdResize(args []string) error {
	if len(args) != 2 {
		w, h := mh.editor.CanvasSize()
		mh.statusBar.SetTemporaryMessage("Canvas is %dx%d. Usage: resize WIDTH HEIGHT", w, h)
		return nil
	}
	if err := mh.editor.ResizeCanvas(args[0], args[1]); err != nil {
		return nil
	}
	w, h := mh.editor.CanvasSize()
	mh.statusBar.SetTemporaryMessage("Canvas resized to %dx%d", w, h)
	return nil
}

// cmdRatio implements ":ratio V".
func (mh *ModeHandler) cmdRatio(args []string) error {
	if len(args) != 1 {
		mh.statusBar.SetTemporaryMessage("Divide ratio: %.1f. Usage: ratio VALUE", mh.editor.DivideRatio())
		return nil
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("ratio %q is not a number", args[0])
	}
	if err := mh.editor.SetDivideRatio(v); err != nil {
		return nil
	}
	mh.statusBar.SetTemporaryMessage("Divide ratio: %.1f", mh.editor.DivideRatio())
	return nil
}

func (mh *ModeHandler) cmdHelp(args []string) error {
	mh.statusBar.SetTemporaryMessage("Commands: %s", strings.Join(mh.Commands(), " "))
	return nil
}
