// Package console runs line-oriented commands against a machine.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/comalice/historyfsm"
)

var (
	// ErrUnknownCommand is returned for a command word the interpreter does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingArgument is returned when a command is given fewer arguments than it needs.
	ErrMissingArgument = errors.New("missing argument")
)

const helpText = `commands:
  state              print the active state
  initial            print the initial state
  trigger <event>    follow the transition for event
  change <state>     jump to state
  reset              return to the initial state
  states [event]     list states, optionally only those handling event
  undo               step back
  redo               step forward after undo
  clear              drop undo and redo history
  history            print both history stacks
  help               print this text
`

// Interpreter executes commands against an FSM and prints results to out.
type Interpreter struct {
	m      *historyfsm.FSM
	out    io.Writer
	logger *slog.Logger

	// StopOnError makes Run return the first command error instead of
	// reporting it and continuing.
	StopOnError bool
}

// New creates an Interpreter for m.
func New(m *historyfsm.FSM, out io.Writer, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{m: m, out: out, logger: logger}
}

// Run executes lines from r until EOF, ctx is done, or, with StopOnError,
// a command fails.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		err := in.Exec(sc.Text())
		if err == nil {
			continue
		}
		in.logger.Warn("command failed", "line", lineNo, "error", err)
		fmt.Fprintf(in.out, "error: %v\n", err)
		if in.StopOnError {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}

// Exec executes a single command line. Blank lines and lines starting with
// '#' are ignored.
func (in *Interpreter) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	in.logger.Debug("exec", "command", cmd, "args", args)

	switch cmd {
	case "state":
		fmt.Fprintln(in.out, in.m.State())
	case "initial":
		fmt.Fprintln(in.out, in.m.Initial())
	case "trigger":
		if len(args) == 0 {
			return fmt.Errorf("%w: trigger <event>", ErrMissingArgument)
		}
		if err := in.m.Trigger(historyfsm.EventID(args[0])); err != nil {
			return err
		}
		fmt.Fprintln(in.out, in.m.State())
	case "change":
		if len(args) == 0 {
			return fmt.Errorf("%w: change <state>", ErrMissingArgument)
		}
		if err := in.m.ChangeState(historyfsm.StateID(args[0])); err != nil {
			return err
		}
		fmt.Fprintln(in.out, in.m.State())
	case "reset":
		in.m.Reset()
		fmt.Fprintln(in.out, in.m.State())
	case "states":
		var event historyfsm.EventID
		if len(args) > 0 {
			event = historyfsm.EventID(args[0])
		}
		fmt.Fprintln(in.out, joinIDs(in.m.States(event)))
	case "undo":
		in.step(in.m.Undo(), "nothing to undo")
	case "redo":
		in.step(in.m.Redo(), "nothing to redo")
	case "clear":
		in.m.ClearHistory()
	case "history":
		fmt.Fprintf(in.out, "history: %s\n", joinIDs(in.m.History()))
		fmt.Fprintf(in.out, "undo:    %s\n", joinIDs(in.m.UndoHistory()))
	case "help":
		fmt.Fprint(in.out, helpText)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return nil
}

func (in *Interpreter) step(moved bool, msg string) {
	if !moved {
		fmt.Fprintln(in.out, msg)
		return
	}
	fmt.Fprintln(in.out, in.m.State())
}

func joinIDs(ids []historyfsm.StateID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " ")
}
