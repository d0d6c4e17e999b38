package ohh

import "fmt"

// MalformedRecordError reports a record that cannot be turned into a
// Hand: invalid JSON, a missing required field, a wrong type, or an
// unparseable timestamp or number.
type MalformedRecordError struct {
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record: %s: %v", e.Reason, e.Err)
	}
	return "malformed record: " + e.Reason
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// UnsupportedVariantError reports a game variant or betting structure
// the target dialect cannot express.
type UnsupportedVariantError struct {
	GameType string
	BetType  string
}

func (e *UnsupportedVariantError) Error() string {
	if e.BetType != "" {
		return fmt.Sprintf("unsupported variant: game_type=%q bet_type=%q", e.GameType, e.BetType)
	}
	return fmt.Sprintf("unsupported variant: game_type=%q", e.GameType)
}

func malformed(reason string) error {
	return &MalformedRecordError{Reason: reason}
}

func malformedf(format string, args ...any) error {
	return &MalformedRecordError{Reason: fmt.Sprintf(format, args...)}
}
