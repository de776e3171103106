package historyfsm

import (
	"fmt"
	"log/slog"

	"github.com/comalice/historyfsm/internal/core"
)

// FSM is a finite state machine with linear undo/redo over visited states.
//
// An FSM is not safe for concurrent use; callers sharing one must serialize access.
type FSM struct {
	initial     StateID
	active      StateID
	states      StateTable
	history     core.Stack[StateID]
	undoHistory core.Stack[StateID]
	logger      *slog.Logger
}

// New creates a machine in cfg.Initial.
//
// The state table is copied, so later changes to cfg do not affect the
// machine. No shape validation is done; see Config.Validate.
func New(cfg *Config, opts ...Option) (*FSM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrConfiguration)
	}
	m := &FSM{
		initial: cfg.Initial,
		active:  cfg.Initial,
		states:  cfg.States.clone(),
		logger:  Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// State returns the active state.
func (m *FSM) State() StateID {
	return m.active
}

// Initial returns the state the machine starts in and resets to.
func (m *FSM) Initial() StateID {
	return m.initial
}

// ChangeState jumps to state, ignoring transition rules.
// The state must be configured.
func (m *FSM) ChangeState(state StateID) error {
	if !m.states.Has(state) {
		err := fmt.Errorf("%w: %q is not a configured state", ErrInvalidState, state)
		m.logger.Debug("change state rejected", "from", m.active, "to", state, "error", err)
		return err
	}
	from := m.active
	m.moveTo(state)
	m.logger.Debug("state changed", "from", from, "to", state)
	return nil
}

// Trigger follows the transition for event out of the active state.
func (m *FSM) Trigger(event EventID) error {
	to, stateOK, eventOK := m.states.target(m.active, event)
	if !eventOK {
		var err error
		if !stateOK {
			err = fmt.Errorf("%w: active state %q is not configured", ErrInvalidTransition, m.active)
		} else {
			err = fmt.Errorf("%w: no transition for event %q from state %q", ErrInvalidTransition, event, m.active)
		}
		m.logger.Debug("trigger rejected", "state", m.active, "event", event, "error", err)
		return err
	}
	from := m.active
	m.moveTo(to)
	m.logger.Debug("transition", "from", from, "event", event, "to", to)
	return nil
}

// moveTo records the active state in history, drops the redo stack and
// activates state.
func (m *FSM) moveTo(state StateID) {
	m.history.Push(m.active)
	m.undoHistory.Clear()
	m.active = state
}

// Reset returns to the initial state. History is kept, so Undo after Reset
// moves to whatever state preceded the last recorded transition.
func (m *FSM) Reset() {
	m.active = m.initial
	m.logger.Debug("reset", "to", m.initial)
}

// States returns the configured states in declaration order. If event is
// not empty, only states with a transition for event are returned.
// The result is never nil.
func (m *FSM) States(event EventID) []StateID {
	if event == "" {
		return m.states.IDs()
	}
	out := []StateID{}
	m.states.m.Range(func(id StateID, def StateDef) bool {
		if def.Transitions.Has(event) {
			out = append(out, id)
		}
		return true
	})
	return out
}

// Transitions returns the events state reacts to, in declaration order.
// Returns false if state is not configured.
func (m *FSM) Transitions(state StateID) ([]EventID, bool) {
	def, ok := m.states.m.Get(state)
	if !ok {
		return nil, false
	}
	return def.Transitions.Events(), true
}

// Undo moves back to the most recent history entry, saving the active state
// for Redo. Returns false if there is no history.
func (m *FSM) Undo() bool {
	prev, ok := m.history.Pop()
	if !ok {
		return false
	}
	m.undoHistory.Push(m.active)
	m.logger.Debug("undo", "from", m.active, "to", prev)
	m.active = prev
	return true
}

// Redo moves to the most recently undone state. Returns false if nothing
// has been undone since the last forward move.
//
// Redo does not push onto the history stack, so it does not give back the
// entry Undo consumed. With history a, b and active c, Undo moves to b,
// Redo returns to c, and the next Undo moves to a, skipping b.
func (m *FSM) Redo() bool {
	next, ok := m.undoHistory.Pop()
	if !ok {
		return false
	}
	m.logger.Debug("redo", "from", m.active, "to", next)
	m.active = next
	return true
}

// CanUndo reports whether Undo would move.
func (m *FSM) CanUndo() bool {
	return m.history.Len() > 0
}

// CanRedo reports whether Redo would move.
func (m *FSM) CanRedo() bool {
	return m.undoHistory.Len() > 0
}

// History returns a copy of the history stack, oldest entry first.
func (m *FSM) History() []StateID {
	return m.history.Items()
}

// UndoHistory returns a copy of the undo stack, oldest entry first.
func (m *FSM) UndoHistory() []StateID {
	return m.undoHistory.Items()
}

// ClearHistory empties both the history and undo stacks.
// The active state is unchanged.
func (m *FSM) ClearHistory() {
	m.history.Clear()
	m.undoHistory.Clear()
	m.logger.Debug("history cleared", "state", m.active)
}
