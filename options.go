package historyfsm

import "log/slog"

// Option configures an FSM via the functional options pattern.
type Option func(*FSM)

// WithLogger sets the logger used for transition and history events.
func WithLogger(l *slog.Logger) Option {
	return func(m *FSM) {
		if l != nil {
			m.logger = l
		}
	}
}
