package model

import "fmt"

// Action describes what the rewriter did with a single attribute value.
type Action int

const (
	// ActionVersioned means a local URL without a query string received
	// the version parameter.
	ActionVersioned Action = iota

	// ActionReplaced means a local URL had its existing query string dropped
	// and replaced by the version parameter.
	ActionReplaced

	// ActionSkipped means the URL points to an external host and was left
	// unchanged.
	ActionSkipped
)

// String returns the lowercase name of the action.
func (a Action) String() string {
	switch a {
	case ActionVersioned:
		return "versioned"
	case ActionReplaced:
		return "replaced"
	case ActionSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so actions are stored by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	switch string(text) {
	case "versioned":
		*a = ActionVersioned
	case "replaced":
		*a = ActionReplaced
	case "skipped":
		*a = ActionSkipped
	default:
		return fmt.Errorf("unknown action %q", string(text))
	}
	return nil
}
