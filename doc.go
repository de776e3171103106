// Package historyfsm implements a small finite state machine with linear
// undo and redo over the states it has visited.
//
// A machine is built from a Config: an initial state and, for every state,
// a table of event to target state. Trigger follows that table; ChangeState
// jumps to any configured state regardless of it. Both record the previous
// state so Undo can return to it, and both discard anything Undo saved for
// Redo.
//
//	cfg := historyfsm.NewConfigBuilder("a").
//		State("a").On("go", "b").
//		State("b").On("back", "a").
//		State("c").
//		Build()
//
//	m, err := historyfsm.New(cfg)
//	if err != nil {
//		return err
//	}
//	_ = m.Trigger("go") // b
//	m.Undo()            // a
//	m.Redo()            // b
//
// Failures wrap one of ErrConfiguration, ErrInvalidState or
// ErrInvalidTransition; test them with errors.Is. A failed call leaves the
// machine unchanged. Undo and Redo report unavailability by returning false.
//
// Machines hold no locks. Use one from a single goroutine or guard it.
package historyfsm
