package mechanics

// SaveOp classifies the persistence operations gated by ironman mode.
type SaveOp string

const (
	OpManualSave SaveOp = "manual_save"
	OpAutosave   SaveOp = "autosave"
	OpReload     SaveOp = "reload"
	OpUndo       SaveOp = "undo"
	OpCheat      SaveOp = "cheat"
)

// IronmanAllows is the save-policy lookup. Autosaves are always permitted;
// under ironman, manual saves, undo and cheats are refused and reloading is
// only possible when an autosave exists to reload from.
func IronmanAllows(ironman bool, op SaveOp, hasAutosave bool) bool {
	if op == OpAutosave {
		return true
	}
	if !ironman {
		return true
	}
	switch op {
	case OpReload:
		return hasAutosave
	default:
		return false
	}
}
