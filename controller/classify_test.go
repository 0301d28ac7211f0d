package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/penguin/body"
	"github.com/milk9111/penguin/body/bodytest"
	"github.com/milk9111/penguin/obstacle"
)

func TestClassify(t *testing.T) {
	reg := obstacle.NewRegistry()
	reg.Register(obstacle.Hazard, 10)
	reg.Register(obstacle.Enemy, 20)
	// a body registered in both categories
	reg.Register(obstacle.Hazard, 30)
	reg.Register(obstacle.Enemy, 30)

	star := &bodytest.Object{ObjKind: body.KindStar}
	heal := &bodytest.Object{ObjKind: body.KindHealth, ObjAmount: 5}

	player := &bodytest.Body{BodyID: 1, X: 100, Y: 100}
	playerFoot := &bodytest.Body{BodyID: 2, Owner: player}

	enemy := &bodytest.Body{BodyID: 20, X: 100, Y: 140}
	enemyPart := &bodytest.Body{BodyID: 21, Owner: enemy}
	tallEnemy := &bodytest.Body{BodyID: 20, X: 100, Y: 60}

	cases := []struct {
		name  string
		c     body.Contact
		want  ContactKind
		other body.ID
	}{
		{"ground", body.Contact{A: player, B: &bodytest.Body{BodyID: 99}}, ContactGround, 99},
		{"ground_reversed", body.Contact{A: &bodytest.Body{BodyID: 99}, B: player}, ContactGround, 99},
		{"hazard", body.Contact{A: player, B: &bodytest.Body{BodyID: 10}}, ContactHazard, 10},
		{"hazard_beats_enemy", body.Contact{A: player, B: &bodytest.Body{BodyID: 30, Y: 200}}, ContactHazard, 30},
		{"hazard_beats_pickup", body.Contact{A: player, B: &bodytest.Body{BodyID: 10, Obj: star}}, ContactHazard, 10},
		{"stomp", body.Contact{A: player, B: enemy}, ContactEnemyStomp, 20},
		{"stomp_through_parts", body.Contact{A: enemyPart, B: playerFoot}, ContactEnemyStomp, 20},
		{"hit_from_below", body.Contact{A: player, B: tallEnemy}, ContactEnemyHit, 20},
		{"hit_level", body.Contact{A: player, B: &bodytest.Body{BodyID: 20, Y: 100}}, ContactEnemyHit, 20},
		{"star", body.Contact{A: player, B: &bodytest.Body{BodyID: 40, Obj: star}}, ContactStar, 40},
		{"health", body.Contact{A: &bodytest.Body{BodyID: 41, Obj: heal}, B: player}, ContactHealth, 41},
		{"other_object", body.Contact{A: player, B: &bodytest.Body{BodyID: 42, Obj: &bodytest.Object{ObjKind: body.KindPlayer}}}, ContactNone, 42},
		{"not_involved", body.Contact{A: &bodytest.Body{BodyID: 7}, B: &bodytest.Body{BodyID: 8}}, ContactNone, 0},
		{"missing_side", body.Contact{A: player}, ContactNone, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(1, c.c, reg)
			assert.Equal(t, c.want, got.Kind, "got %s", got.Kind)
			if c.other == 0 {
				assert.Nil(t, got.Other)
				return
			}
			if assert.NotNil(t, got.Other) {
				assert.Equal(t, c.other, got.Other.ID())
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	reg := obstacle.NewRegistry()
	reg.Register(obstacle.Enemy, 20)
	player := &bodytest.Body{BodyID: 1, Y: 10}
	enemy := &bodytest.Body{BodyID: 20, Y: 50}

	first := Classify(1, body.Contact{A: player, B: enemy}, reg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(1, body.Contact{A: player, B: enemy}, reg))
		assert.Equal(t, first, Classify(1, body.Contact{A: enemy, B: player}, reg))
	}
}

func TestClassifyNilRegistry(t *testing.T) {
	player := &bodytest.Body{BodyID: 1}
	got := Classify(1, body.Contact{A: player, B: &bodytest.Body{BodyID: 10}}, nil)
	assert.Equal(t, ContactGround, got.Kind)
}

func TestContactKindString(t *testing.T) {
	assert.Equal(t, "enemy-stomp", ContactEnemyStomp.String())
	assert.Equal(t, "none", ContactKind(99).String())
}
