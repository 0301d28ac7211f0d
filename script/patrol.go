// Package script runs the tengo scripts that steer enemy behaviour.
package script

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/penguin/controller"
	"github.com/milk9111/penguin/prefabs"
)

// PatrolInput is what a patrol script sees.
type PatrolInput struct {
	// Roll is uniform in 1..100.
	Roll       int
	X, Y       float64
	LevelWidth float64
}

// Patrol is a compiled patrol script. The script reads roll, x, y and
// level_width and must set direction to "left" or "right".
type Patrol struct {
	name     string
	compiled *tengo.Compiled
	log      logrus.FieldLogger
}

// LoadPatrol compiles the named script from the prefab scripts.
func LoadPatrol(name string, log logrus.FieldLogger) (*Patrol, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return CompilePatrol(name, src, log)
}

func CompilePatrol(name string, src []byte, log logrus.FieldLogger) (*Patrol, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := &Patrol{name: name, log: log.WithField("script", name)}
	if err := p.Reload(src); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Patrol) Name() string { return p.name }

// Reload swaps in a new version of the script. On error the previous
// version stays active.
func (p *Patrol) Reload(src []byte) error {
	s := tengo.NewScript(src)
	_ = s.Add("roll", 0)
	_ = s.Add("x", 0.0)
	_ = s.Add("y", 0.0)
	_ = s.Add("level_width", 0.0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", p.name, err)
	}
	p.compiled = compiled
	p.log.Debug("patrol script compiled")
	return nil
}

// Pick runs the script once.
func (p *Patrol) Pick(in PatrolInput) (controller.Direction, error) {
	c := p.compiled
	if err := c.Set("roll", in.Roll); err != nil {
		return controller.Left, err
	}
	if err := c.Set("x", in.X); err != nil {
		return controller.Left, err
	}
	if err := c.Set("y", in.Y); err != nil {
		return controller.Left, err
	}
	if err := c.Set("level_width", in.LevelWidth); err != nil {
		return controller.Left, err
	}
	if err := c.Run(); err != nil {
		return controller.Left, fmt.Errorf("script: run %s: %w", p.name, err)
	}

	if !c.IsDefined("direction") {
		return controller.Left, fmt.Errorf("script: %s did not set direction", p.name)
	}
	switch dir := strings.ToLower(strings.TrimSpace(c.Get("direction").String())); dir {
	case "left":
		return controller.Left, nil
	case "right":
		return controller.Right, nil
	default:
		return controller.Left, fmt.Errorf("script: %s: bad direction %q", p.name, dir)
	}
}

// Picker binds a Patrol to one enemy spawn.
type Picker struct {
	patrol *Patrol
	rng    *rand.Rand
	in     PatrolInput
}

// Picker returns a controller.DirectionPicker for an enemy spawned at (x, y).
func (p *Patrol) Picker(seed uint64, x, y, levelWidth float64) *Picker {
	return &Picker{
		patrol: p,
		rng:    rand.New(rand.NewPCG(seed, seed^0x5bd1e995)),
		in:     PatrolInput{X: x, Y: y, LevelWidth: levelWidth},
	}
}

// PickDirection falls back to the plain roll when the script fails.
func (pk *Picker) PickDirection() controller.Direction {
	in := pk.in
	in.Roll = pk.rng.IntN(100) + 1
	dir, err := pk.patrol.Pick(in)
	if err != nil {
		pk.patrol.log.WithError(err).Warn("patrol script failed, using roll")
		return controller.DirectionForRoll(in.Roll)
	}
	return dir
}
