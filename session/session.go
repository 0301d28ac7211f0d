// Package session tracks the lifecycle of a run around the live level:
// playing, paused, and the short defeated pause before the level restarts.
package session

import (
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Session states.
const (
	Playing  = "playing"
	Paused   = "paused"
	Defeated = "defeated"
)

// Session events.
const (
	EventPause   = "pause"
	EventResume  = "resume"
	EventDefeat  = "defeat"
	EventRestart = "restart"
)

var transitions = fsm.Events{
	{Name: EventPause, Src: []string{Playing}, Dst: Paused},
	{Name: EventResume, Src: []string{Paused}, Dst: Playing},
	{Name: EventDefeat, Src: []string{Playing, Paused}, Dst: Defeated},
	{Name: EventRestart, Src: []string{Paused, Defeated}, Dst: Playing},
}

// Session owns the game-level state machine. The rebuild callback runs before
// a restart lands in Playing; when it fails the session stays where it was.
type Session struct {
	fsm     *fsm.FSM
	rebuild func() error
	delay   time.Duration
	log     logrus.FieldLogger

	waited   time.Duration
	restarts int
	err      error
}

// New creates a session in the Playing state.
func New(delay time.Duration, rebuild func() error, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if rebuild == nil {
		rebuild = func() error { return nil }
	}
	s := &Session{
		rebuild: rebuild,
		delay:   delay,
		log:     log.WithField("fsm", "session"),
	}
	s.fsm = fsm.NewFSM(
		Playing,
		transitions,
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				s.log.WithFields(logrus.Fields{"event": e.Event, "from": e.Src, "to": e.Dst}).Debug("transition")
			},
			"enter_" + Defeated: func(*fsm.Event) {
				s.waited = 0
			},
			"before_" + EventRestart: func(e *fsm.Event) {
				if err := s.rebuild(); err != nil {
					s.err = err
					e.Cancel(err)
				}
			},
			"after_" + EventRestart: func(*fsm.Event) {
				s.restarts++
			},
		},
	)
	return s
}

// SetDelay changes how long Defeated lasts before the automatic restart.
func (s *Session) SetDelay(d time.Duration) { s.delay = d }

func (s *Session) State() string      { return s.fsm.Current() }
func (s *Session) Playing() bool      { return s.fsm.Is(Playing) }
func (s *Session) Paused() bool       { return s.fsm.Is(Paused) }
func (s *Session) Defeated() bool     { return s.fsm.Is(Defeated) }
func (s *Session) Restarts() int      { return s.restarts }
func (s *Session) Can(ev string) bool { return s.fsm.Can(ev) }

// TogglePause flips between Playing and Paused. It does nothing while
// defeated.
func (s *Session) TogglePause() {
	switch {
	case s.fsm.Is(Playing):
		s.fire(EventPause)
	case s.fsm.Is(Paused):
		s.fire(EventResume)
	}
}

// Defeat starts the restart countdown.
func (s *Session) Defeat() {
	s.fire(EventDefeat)
}

// Restart rebuilds the level now and returns to Playing.
func (s *Session) Restart() error {
	if !s.fsm.Can(EventRestart) {
		return fmt.Errorf("session: cannot restart while %s", s.fsm.Current())
	}
	s.err = nil
	if err := s.fsm.Event(EventRestart); err != nil {
		if s.err != nil {
			return fmt.Errorf("session: restart: %w", s.err)
		}
		return fmt.Errorf("session: restart: %w", err)
	}
	return nil
}

// Update advances the restart countdown while defeated.
func (s *Session) Update(dt time.Duration) error {
	if !s.fsm.Is(Defeated) {
		return nil
	}
	s.waited += dt
	if s.waited < s.delay {
		return nil
	}
	if err := s.Restart(); err != nil {
		// retry after another full delay
		s.waited = 0
		return err
	}
	return nil
}

func (s *Session) fire(ev string) {
	if !s.fsm.Can(ev) {
		return
	}
	if err := s.fsm.Event(ev); err != nil {
		s.log.WithError(err).WithField("event", ev).Warn("session event failed")
	}
}
