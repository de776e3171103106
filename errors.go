package historyfsm

import "errors"

var (
	// ErrConfiguration is returned when a machine is built without a usable configuration.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidState is returned by ChangeState for a state that is not configured.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidTransition is returned by Trigger when the active state has no
	// transition for the event.
	ErrInvalidTransition = errors.New("invalid transition")
)
