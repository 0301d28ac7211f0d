package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/penguin/controller"
)

// Step holds a set of actions for a number of ticks.
type Step struct {
	Ticks int
	Held  []controller.Action
	// Press fires a just-pressed edge on the first tick of the step.
	Press []controller.Action
	Pause bool
}

// Script replays steps tick by tick for headless runs. Once the steps run
// out nothing is held.
type Script struct {
	steps []Step
	step  int
	tick  int
	frame Frame
}

func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

func (s *Script) IsHeld(a controller.Action) bool         { return s.frame.IsHeld(a) }
func (s *Script) WasJustPressed(a controller.Action) bool { return s.frame.WasJustPressed(a) }

// PausePressed reports a pause edge on the first tick of a pause step.
func (s *Script) PausePressed() bool { return s.frame.Pause }

// Poll moves to the next tick.
func (s *Script) Poll() {
	s.frame = Frame{Held: map[controller.Action]bool{}, Pressed: map[controller.Action]bool{}}
	for s.step < len(s.steps) && s.tick >= s.steps[s.step].Ticks {
		s.step++
		s.tick = 0
	}
	if s.step >= len(s.steps) {
		return
	}
	cur := s.steps[s.step]
	for _, a := range cur.Held {
		s.frame.Held[a] = true
	}
	if s.tick == 0 {
		for _, a := range cur.Press {
			s.frame.Pressed[a] = true
			s.frame.Held[a] = true
		}
		s.frame.Pause = cur.Pause
	}
	s.tick++
}

// Done reports whether every step was replayed.
func (s *Script) Done() bool {
	return s.step >= len(s.steps) || (s.step == len(s.steps)-1 && s.tick >= s.steps[s.step].Ticks)
}

// ParseScript reads a compact step list such as "30:right,1:jump+right,60:".
// Each item is ticks:actions where actions are joined by '+'; "jump" and
// "pause" are presses, "left" and "right" are held.
func ParseScript(src string) (*Script, error) {
	var steps []Step
	for _, item := range strings.Split(src, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		n, actions, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("input: step %q: want ticks:actions", item)
		}
		ticks, err := strconv.Atoi(n)
		if err != nil || ticks <= 0 {
			return nil, fmt.Errorf("input: step %q: bad tick count", item)
		}
		st := Step{Ticks: ticks}
		for _, name := range strings.Split(actions, "+") {
			switch strings.TrimSpace(name) {
			case "":
			case "left":
				st.Held = append(st.Held, controller.ActionLeft)
			case "right":
				st.Held = append(st.Held, controller.ActionRight)
			case "jump":
				st.Press = append(st.Press, controller.ActionJump)
			case "pause":
				st.Pause = true
			default:
				return nil, fmt.Errorf("input: step %q: unknown action %q", item, name)
			}
		}
		steps = append(steps, st)
	}
	return NewScript(steps...), nil
}
