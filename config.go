package historyfsm

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/historyfsm/internal/primitives"
)

// Config is the static definition of a machine: its initial state and the
// transition table of every state.
type Config struct {
	Initial StateID    `yaml:"initial"`
	States  StateTable `yaml:"states"`
}

// StateDef defines a single state.
type StateDef struct {
	Transitions Transitions `yaml:"transitions"`
}

// UnmarshalYAML decodes a state definition. Keys other than "transitions"
// are rejected.
func (d *StateDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: state definition must be a mapping", node.Line)
	}
	var def StateDef
	seen := false
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "transitions":
			if seen {
				return fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
			}
			seen = true
			if err := val.Decode(&def.Transitions); err != nil {
				return fmt.Errorf("transitions: %w", err)
			}
		default:
			return fmt.Errorf("line %d: unknown state field %q", key.Line, key.Value)
		}
	}
	*d = def
	return nil
}

// Transitions maps events to target states in declaration order.
// The zero value is an empty table.
type Transitions struct {
	m primitives.OrderedMap[EventID, StateID]
}

// Set adds or replaces the transition for event.
func (t *Transitions) Set(event EventID, target StateID) {
	t.m.Set(event, target)
}

// Target returns the target state for event.
func (t *Transitions) Target(event EventID) (StateID, bool) {
	return t.m.Get(event)
}

// Has reports whether a transition exists for event.
func (t *Transitions) Has(event EventID) bool {
	return t.m.Has(event)
}

// Events returns the events with a transition, in declaration order.
func (t *Transitions) Events() []EventID {
	return t.m.Keys()
}

// Len returns the number of transitions.
func (t *Transitions) Len() int {
	return t.m.Len()
}

func (t *Transitions) clone() Transitions {
	return Transitions{m: *t.m.Clone(nil)}
}

// UnmarshalYAML decodes a mapping of event to target, keeping document order.
func (t *Transitions) UnmarshalYAML(node *yaml.Node) error {
	return t.m.UnmarshalYAML(node)
}

// StateTable maps state IDs to their definitions in declaration order.
// The zero value is an empty table.
type StateTable struct {
	m primitives.OrderedMap[StateID, StateDef]
}

// Set adds or replaces the definition of a state. The table stores a copy of def.
func (s *StateTable) Set(id StateID, def StateDef) {
	s.m.Set(id, StateDef{Transitions: def.Transitions.clone()})
}

// Get returns a copy of the definition of a state.
func (s *StateTable) Get(id StateID) (StateDef, bool) {
	def, ok := s.m.Get(id)
	if !ok {
		return StateDef{}, false
	}
	return StateDef{Transitions: def.Transitions.clone()}, true
}

// target resolves event from state without copying the definition.
func (s *StateTable) target(id StateID, event EventID) (to StateID, stateOK bool, eventOK bool) {
	def, ok := s.m.Get(id)
	if !ok {
		return "", false, false
	}
	to, ok = def.Transitions.Target(event)
	return to, true, ok
}

// Has reports whether id is a configured state.
func (s *StateTable) Has(id StateID) bool {
	return s.m.Has(id)
}

// IDs returns the configured state IDs in declaration order.
func (s *StateTable) IDs() []StateID {
	return s.m.Keys()
}

// Len returns the number of configured states.
func (s *StateTable) Len() int {
	return s.m.Len()
}

func (s *StateTable) clone() StateTable {
	return StateTable{m: *s.m.Clone(func(def StateDef) StateDef {
		return StateDef{Transitions: def.Transitions.clone()}
	})}
}

// UnmarshalYAML decodes a mapping of state ID to definition, keeping document order.
func (s *StateTable) UnmarshalYAML(node *yaml.Node) error {
	return s.m.UnmarshalYAML(node)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{
		Initial: c.Initial,
		States:  c.States.clone(),
	}
}

// Validate checks that the initial state and every transition target are
// configured. New does not call Validate; a machine may be built from a
// configuration that fails it.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrConfiguration)
	}

	var errs []error
	if c.Initial == "" {
		errs = append(errs, errors.New("no initial state defined"))
	} else if !c.States.Has(c.Initial) {
		errs = append(errs, fmt.Errorf("initial state %q not defined", c.Initial))
	}

	c.States.m.Range(func(id StateID, def StateDef) bool {
		def.Transitions.m.Range(func(event EventID, target StateID) bool {
			if !c.States.Has(target) {
				errs = append(errs, fmt.Errorf("state %q: event %q targets undefined state %q", id, event, target))
			}
			return true
		})
		return true
	})

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, errors.Join(errs...))
	}
	return nil
}
