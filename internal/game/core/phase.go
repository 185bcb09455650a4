package core

// Phase is the current stage of the turn cycle. The literal strings are part
// of the save format and must never change.
type Phase string

const (
	// PhaseSetup - state construction, before the first player phase
	PhaseSetup Phase = "setup"

	// PhasePlayer - waiting for player actions
	PhasePlayer Phase = "player"

	// PhaseAI - AI nations acting during turn advance
	PhaseAI Phase = "ai"

	// PhaseEvents - upkeep, events and revolts during turn advance
	PhaseEvents Phase = "events"

	// PhaseGameOver - terminal, winner or defeated is set
	PhaseGameOver Phase = "gameover"
)

// IsTerminal returns true if the phase represents a terminal state
func (p Phase) IsTerminal() bool {
	return p == PhaseGameOver
}

// CanReceiveActions returns true if player actions may be applied in this phase
func (p Phase) CanReceiveActions() bool {
	return p == PhasePlayer
}

// ValidPhase reports whether s is one of the five known phase literals.
func ValidPhase(s string) bool {
	switch Phase(s) {
	case PhaseSetup, PhasePlayer, PhaseAI, PhaseEvents, PhaseGameOver:
		return true
	}
	return false
}
