package historyfsm_test

import (
	"slices"
	"testing"

	. "github.com/comalice/historyfsm"
)

func TestBuilderTrafficLight(t *testing.T) {
	cfg := NewConfigBuilder("green").
		State("green").On("timer", "yellow").
		State("yellow").On("timer", "red").
		State("red").On("timer", "green").
		Build()

	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Initial != "green" {
		t.Errorf("initial = %q, want green", cfg.Initial)
	}
	if got, want := cfg.States.IDs(), []StateID{"green", "yellow", "red"}; !slices.Equal(got, want) {
		t.Errorf("states = %v, want %v", got, want)
	}

	m, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []StateID{"yellow", "red", "green", "yellow"} {
		if err := m.Trigger("timer"); err != nil {
			t.Fatal(err)
		}
		if m.State() != want {
			t.Errorf("state = %q, want %q", m.State(), want)
		}
	}
}

// A chain may end with Build on the state builder or on the config builder.
func TestBuilderChainEndsWithBuild(t *testing.T) {
	b := NewConfigBuilder("a")
	fromState := b.State("a").On("go", "b").State("b").Build()
	fromBuilder := b.Build()

	for name, cfg := range map[string]*Config{"state builder": fromState, "config builder": fromBuilder} {
		if cfg.Initial != "a" {
			t.Errorf("%s: initial = %q, want a", name, cfg.Initial)
		}
		if got := cfg.States.IDs(); !slices.Equal(got, []StateID{"a", "b"}) {
			t.Errorf("%s: states = %v, want [a b]", name, got)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestBuilderRedeclareKeepsOrderAndTransitions(t *testing.T) {
	b := NewConfigBuilder("a")
	b.State("a").On("go", "b")
	b.State("b")
	b.State("a").On("stay", "a")

	cfg := b.Build()
	if got := cfg.States.IDs(); !slices.Equal(got, []StateID{"a", "b"}) {
		t.Errorf("states = %v, want [a b]", got)
	}

	def, ok := cfg.States.Get("a")
	if !ok {
		t.Fatal("state a missing")
	}
	if got := def.Transitions.Events(); !slices.Equal(got, []EventID{"go", "stay"}) {
		t.Errorf("events = %v, want [go stay]", got)
	}
}

func TestBuilderLastTransitionWins(t *testing.T) {
	cfg := NewConfigBuilder("a").
		State("a").On("go", "b").On("go", "c").
		State("b").
		State("c").
		Build()

	def, _ := cfg.States.Get("a")
	target, ok := def.Transitions.Target("go")
	if !ok || target != "c" {
		t.Errorf("target = %q, %v, want c true", target, ok)
	}
	if def.Transitions.Len() != 1 {
		t.Errorf("expected 1 transition, got %d", def.Transitions.Len())
	}
}

func TestBuilderBuildIsSnapshot(t *testing.T) {
	b := NewConfigBuilder("a")
	b.State("a")
	first := b.Build()

	b.State("a").On("go", "b")
	b.State("b")
	second := b.Build()

	if first.States.Len() != 1 {
		t.Errorf("first config has %d states, want 1", first.States.Len())
	}
	def, _ := first.States.Get("a")
	if def.Transitions.Len() != 0 {
		t.Errorf("first config gained transitions: %v", def.Transitions.Events())
	}
	if second.States.Len() != 2 {
		t.Errorf("second config has %d states, want 2", second.States.Len())
	}
}
