package level

import (
	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/physics"
	"github.com/milk9111/penguin/sprite"
)

// Pickup is the game object behind a star or health sensor.
type Pickup struct {
	kind   body.Kind
	amount int
	body   *physics.Body
	sprite *sprite.Sprite
	taken  bool
}

func (p *Pickup) Kind() body.Kind { return p.kind }
func (p *Pickup) Amount() int     { return p.amount }

// Destroy removes the pickup from the world and hides it.
func (p *Pickup) Destroy() {
	if p.taken {
		return
	}
	p.taken = true
	p.body.Destroy()
}

// Taken reports whether the pickup was collected.
func (p *Pickup) Taken() bool { return p.taken }
