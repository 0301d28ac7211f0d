// Package fsm implements a small finite state machine with deferred
// transitions. A transition requested while another one is running (from
// inside an Enter or Exit hook) is queued and drained one per Update tick, so
// Exit/Enter pairs never nest.
package fsm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnknownState is wrapped by every error reporting a transition to a state
// that was never registered.
var ErrUnknownState = errors.New("fsm: unknown state")

// UnknownStateError reports a transition request to an unregistered state.
type UnknownStateError struct {
	Machine string
	State   string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("fsm %s: unknown state %q", e.Machine, e.State)
}

func (e *UnknownStateError) Unwrap() error { return ErrUnknownState }

type namedState[O any] struct {
	name  string
	state State[O]
}

// Machine is a finite state machine owned by a single O.
type Machine[O any] struct {
	name    string
	owner   O
	log     logrus.FieldLogger
	states  map[string]State[O]
	current *namedState[O]
	queue   []string
	// switching is set while the Exit/Enter hooks of a transition run.
	switching bool
}

// Option configures a Machine.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger used for transition tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

// New creates an empty machine. The machine has no current state until the
// first SetState.
func New[O any](name string, owner O, opts ...Option) *Machine[O] {
	if name == "" {
		name = "default-fsm"
	}
	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Machine[O]{
		name:   name,
		owner:  owner,
		log:    o.log.WithField("fsm", name),
		states: make(map[string]State[O]),
	}
}

// Name returns the machine name used in logs and errors.
func (m *Machine[O]) Name() string { return m.name }

// AddState registers state under name, replacing any previous registration.
// It never triggers a transition.
func (m *Machine[O]) AddState(name string, state State[O]) *Machine[O] {
	if state == nil {
		state = Sink[O]()
	}
	m.states[name] = state
	if m.current != nil && m.current.name == name {
		m.current.state = state
	}
	return m
}

// Has reports whether name is registered.
func (m *Machine[O]) Has(name string) bool {
	_, ok := m.states[name]
	return ok
}

// Validate checks that every name is a registered state. Controllers call it
// once after registration with all of their transition targets.
func (m *Machine[O]) Validate(names ...string) error {
	var errs []error
	for _, name := range names {
		if !m.Has(name) {
			errs = append(errs, &UnknownStateError{Machine: m.name, State: name})
		}
	}
	return errors.Join(errs...)
}

// SetState requests a transition to name. A request made while another
// transition is running (from an Enter or Exit hook) is queued and nil is
// returned without changing the current state. Requests from an Update hook
// run immediately.
func (m *Machine[O]) SetState(name string) error {
	state, ok := m.states[name]
	if !ok {
		err := &UnknownStateError{Machine: m.name, State: name}
		m.log.WithField("to", name).Warn("transition to unknown state")
		return err
	}

	if m.switching {
		m.queue = append(m.queue, name)
		return nil
	}

	m.switching = true
	defer func() { m.switching = false }()

	from := ""
	if m.current != nil {
		from = m.current.name
		m.current.state.Exit(m.owner)
	}

	m.log.WithFields(logrus.Fields{"from": from, "to": name}).Debug("transition")

	m.current = &namedState[O]{name: name, state: state}
	state.Enter(m.owner)
	return nil
}

// IsCurrentState reports whether the machine is in state name.
func (m *Machine[O]) IsCurrentState(name string) bool {
	return m.current != nil && m.current.name == name
}

// Current returns the current state name, if any.
func (m *Machine[O]) Current() (string, bool) {
	if m.current == nil {
		return "", false
	}
	return m.current.name, true
}

// Pending returns the number of queued transitions.
func (m *Machine[O]) Pending() int { return len(m.queue) }

// Update drains at most one queued transition. When the queue is empty it runs
// the current state's Update hook instead.
func (m *Machine[O]) Update(dt time.Duration) {
	if len(m.queue) > 0 {
		name := m.queue[0]
		m.queue = m.queue[1:]
		_ = m.SetState(name)
		return
	}

	if m.current == nil {
		return
	}

	m.current.state.Update(m.owner, dt)
}
