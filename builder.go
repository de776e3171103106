package historyfsm

// ConfigBuilder provides a fluent API for constructing a Config.
type ConfigBuilder struct {
	initial StateID
	order   []StateID
	defs    map[StateID]*Transitions
}

// StateBuilder provides fluent methods for configuring one state.
type StateBuilder struct {
	b  *ConfigBuilder
	id StateID
}

// NewConfigBuilder creates a builder whose machine starts in initial.
// The initial state is not declared implicitly; add it with State.
func NewConfigBuilder(initial StateID) *ConfigBuilder {
	return &ConfigBuilder{
		initial: initial,
		defs:    make(map[StateID]*Transitions),
	}
}

// State declares a state, or returns the builder for an already declared one.
// States enumerate in the order they are first declared.
func (b *ConfigBuilder) State(id StateID) *StateBuilder {
	if _, ok := b.defs[id]; !ok {
		b.defs[id] = &Transitions{}
		b.order = append(b.order, id)
	}
	return &StateBuilder{b: b, id: id}
}

// On adds a transition from this state to target on event.
// Target states need not be declared yet.
func (sb *StateBuilder) On(event EventID, target StateID) *StateBuilder {
	sb.b.defs[sb.id].Set(event, target)
	return sb
}

// State continues with another state on the same builder.
func (sb *StateBuilder) State(id StateID) *StateBuilder {
	return sb.b.State(id)
}

// Build ends a chain and returns the configuration built so far.
func (sb *StateBuilder) Build() *Config {
	return sb.b.Build()
}

// Build returns the accumulated configuration.
// The builder can keep being used; later changes do not affect returned configs.
func (b *ConfigBuilder) Build() *Config {
	cfg := &Config{Initial: b.initial}
	for _, id := range b.order {
		cfg.States.Set(id, StateDef{Transitions: *b.defs[id]})
	}
	return cfg
}
