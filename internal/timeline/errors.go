package timeline

import "fmt"

// InconsistentActionError reports a recorded action the hand state
// cannot absorb: an unknown player, a contribution beyond the starting
// stack, a street out of order, or an action from a player who already
// folded or is all-in.
type InconsistentActionError struct {
	ActionNumber int
	PlayerID     string
	Reason       string
}

func (e *InconsistentActionError) Error() string {
	if e.PlayerID != "" {
		return fmt.Sprintf("inconsistent action %d (player %s): %s", e.ActionNumber, e.PlayerID, e.Reason)
	}
	return fmt.Sprintf("inconsistent action %d: %s", e.ActionNumber, e.Reason)
}

func inconsistent(actionNumber int, playerID, format string, args ...any) error {
	return &InconsistentActionError{
		ActionNumber: actionNumber,
		PlayerID:     playerID,
		Reason:       fmt.Sprintf(format, args...),
	}
}
