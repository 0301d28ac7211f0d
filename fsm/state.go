package fsm

import "time"

// State defines the lifecycle hooks of a single machine state. Hooks receive
// the machine's owner so a state can be a stateless singleton shared by every
// owner instance.
type State[O any] interface {
	Enter(owner O)
	Update(owner O, dt time.Duration)
	Exit(owner O)
}

// Hooks adapts optional hook functions to State. Nil hooks are skipped, so the
// zero value is a valid terminal state that never does anything once entered.
type Hooks[O any] struct {
	OnEnter  func(owner O)
	OnUpdate func(owner O, dt time.Duration)
	OnExit   func(owner O)
}

func (h Hooks[O]) Enter(owner O) {
	if h.OnEnter != nil {
		h.OnEnter(owner)
	}
}

func (h Hooks[O]) Update(owner O, dt time.Duration) {
	if h.OnUpdate != nil {
		h.OnUpdate(owner, dt)
	}
}

func (h Hooks[O]) Exit(owner O) {
	if h.OnExit != nil {
		h.OnExit(owner)
	}
}

// Sink returns a state with no hooks.
func Sink[O any]() State[O] {
	return Hooks[O]{}
}
