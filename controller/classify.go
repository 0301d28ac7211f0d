package controller

import (
	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/obstacle"
)

// ContactKind is the semantic meaning of a contact from the player's point of
// view.
type ContactKind int

const (
	ContactNone ContactKind = iota
	ContactGround
	ContactHazard
	ContactEnemyStomp
	ContactEnemyHit
	ContactStar
	ContactHealth
)

func (k ContactKind) String() string {
	switch k {
	case ContactGround:
		return "ground"
	case ContactHazard:
		return "hazard"
	case ContactEnemyStomp:
		return "enemy-stomp"
	case ContactEnemyHit:
		return "enemy-hit"
	case ContactStar:
		return "star"
	case ContactHealth:
		return "health"
	default:
		return "none"
	}
}

// Outcome is the classification of one contact.
type Outcome struct {
	Kind ContactKind
	// Other is the root of the body the player touched.
	Other body.Body
	// Object is set for pickups.
	Object body.Object
}

// Classify decides what a contact means for the body identified by self.
// Hazards win over enemies, enemies over bare tiles, tiles over pickups. An
// enemy contact is a stomp when self is strictly above the enemy (smaller y).
// Contacts not involving self classify as ContactNone.
func Classify(self body.ID, c body.Contact, obstacles *obstacle.Registry) Outcome {
	var me, other body.Body
	switch {
	case body.InChain(c.A, self):
		me, other = c.A, c.B
	case body.InChain(c.B, self):
		me, other = c.B, c.A
	default:
		return Outcome{Kind: ContactNone}
	}
	if other == nil {
		return Outcome{Kind: ContactNone}
	}
	root := body.Root(other)

	if obstacles.Classify(obstacle.Hazard, other) {
		return Outcome{Kind: ContactHazard, Other: root}
	}

	if obstacles.Classify(obstacle.Enemy, other) {
		_, py := body.Root(me).Position()
		_, ey := root.Position()
		if py < ey {
			return Outcome{Kind: ContactEnemyStomp, Other: root}
		}
		return Outcome{Kind: ContactEnemyHit, Other: root}
	}

	obj, ok := body.ObjectOf(other)
	if !ok {
		return Outcome{Kind: ContactGround, Other: root}
	}

	switch obj.Kind() {
	case body.KindStar:
		return Outcome{Kind: ContactStar, Other: root, Object: obj}
	case body.KindHealth:
		return Outcome{Kind: ContactHealth, Other: root, Object: obj}
	}
	return Outcome{Kind: ContactNone, Other: root}
}
