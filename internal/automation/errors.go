package automation

import "errors"

// Pipeline-level failures abort the whole evaluation. Per-rule failures
// are reported in the result and never block other matched rules.
var (
	// ErrInvalidEvent means the raw input could not be turned into an event.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrUnsupportedAction means a matched rule names an action type that
	// is not registered.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrStorageUnavailable means the rule repository or state store could
	// not be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
