package historyfsm

import "log/slog"

// StateID identifies a state. Comparison is exact string equality.
type StateID string

// EventID identifies an event.
type EventID string

// Logger is the default logger for machines created without WithLogger.
var Logger = slog.Default()
