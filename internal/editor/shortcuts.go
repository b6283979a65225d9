package editor

import (
	"context"
	"strings"
)

type Shortcut string

const (
	ShortcutNone      Shortcut = ""
	ShortcutUndo      Shortcut = "undo"
	ShortcutRedo      Shortcut = "redo"
	ShortcutSave      Shortcut = "save"
	ShortcutDelete    Shortcut = "delete"
	ShortcutDeselect  Shortcut = "deselect"
	ShortcutDuplicate Shortcut = "duplicate"
	ShortcutSelectAll Shortcut = "select_all"
)

// ParseShortcut maps a key name, as reported by a keyboard event, and the held
// modifiers to an editor shortcut.
func ParseShortcut(key string, mods Modifiers) Shortcut {
	switch key {
	case "Delete", "Backspace":
		return ShortcutDelete
	case "Escape":
		return ShortcutDeselect
	}
	if !mods.command() {
		return ShortcutNone
	}

	switch strings.ToLower(key) {
	case "z":
		if mods.Shift {
			return ShortcutRedo
		}
		return ShortcutUndo
	case "y":
		return ShortcutRedo
	case "s":
		return ShortcutSave
	case "d":
		return ShortcutDuplicate
	case "a":
		return ShortcutSelectAll
	}
	return ShortcutNone
}

// HandleShortcut dispatches s. Shortcuts are only honoured while no gesture is
// active; handled reports whether s was acted on. Only save can fail.
func (e *Editor) HandleShortcut(ctx context.Context, s Shortcut) (handled bool, err error) {
	if s == ShortcutNone || e.Session().State != StateIdle {
		return false, nil
	}

	switch s {
	case ShortcutUndo:
		return e.Undo(), nil
	case ShortcutRedo:
		return e.Redo(), nil
	case ShortcutSave:
		return true, e.Save(ctx)
	case ShortcutDelete:
		return e.DeleteSelected() > 0, nil
	case ShortcutDeselect:
		e.ClearSelection()
		return true, nil
	case ShortcutDuplicate:
		copies, err := e.DuplicateSelected()
		return len(copies) > 0, err
	case ShortcutSelectAll:
		e.SelectAll()
		return true, nil
	}
	return false, nil
}
