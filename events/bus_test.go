package events

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus() *Bus {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewBus(l)
}

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	b := newBus()
	var got []string
	Subscribe(b, HealthChangedTopic, func(e HealthChanged) { got = append(got, "first") })
	Subscribe(b, HealthChangedTopic, func(e HealthChanged) { got = append(got, "second") })
	Subscribe(b, StarCollectedTopic, func(StarCollected) { got = append(got, "star") })

	Emit(b, HealthChangedTopic, HealthChanged{Previous: 100, Current: 90})

	assert.Equal(t, []string{"first", "second"}, got)
	assert.Equal(t, 2, b.Subscribers(HealthChangedTopic.Name()))
}

func TestBusPayload(t *testing.T) {
	b := newBus()
	var got EnemyStomped
	Subscribe(b, EnemyStompedTopic, func(e EnemyStomped) { got = e })

	Emit(b, EnemyStompedTopic, EnemyStomped{Enemy: 42})
	assert.EqualValues(t, 42, got.Enemy)
}

func TestBusUnsubscribe(t *testing.T) {
	cases := []struct {
		name  string
		emits int
		want  int
	}{
		{"before_emit", 0, 0},
		{"after_one_emit", 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := newBus()
			calls := 0
			sub := Subscribe(b, StarCollectedTopic, func(StarCollected) { calls++ })
			for i := 0; i < c.emits; i++ {
				Emit(b, StarCollectedTopic, StarCollected{})
			}
			sub.Unsubscribe()
			sub.Unsubscribe()
			Emit(b, StarCollectedTopic, StarCollected{})

			assert.Equal(t, c.want, calls)
			assert.False(t, sub.Active())
			assert.Zero(t, b.Subscribers(StarCollectedTopic.Name()))
		})
	}
}

func TestBusUnsubscribeDuringDelivery(t *testing.T) {
	b := newBus()
	var got []string
	var first *Subscription
	first = Subscribe(b, EnemyStompedTopic, func(EnemyStomped) {
		got = append(got, "first")
		first.Unsubscribe()
	})
	var second *Subscription
	second = Subscribe(b, EnemyStompedTopic, func(EnemyStomped) {
		got = append(got, "second")
	})
	Subscribe(b, EnemyStompedTopic, func(EnemyStomped) {
		got = append(got, "third")
		second.Unsubscribe()
	})

	Emit(b, EnemyStompedTopic, EnemyStomped{Enemy: 1})
	Emit(b, EnemyStompedTopic, EnemyStomped{Enemy: 1})

	assert.Equal(t, []string{"first", "second", "third", "third"}, got)
}

func TestBusUnsubscribeSkipsLaterHandlerInSameEmit(t *testing.T) {
	b := newBus()
	var got []string
	var later *Subscription
	Subscribe(b, StarCollectedTopic, func(StarCollected) {
		got = append(got, "early")
		later.Unsubscribe()
	})
	later = Subscribe(b, StarCollectedTopic, func(StarCollected) { got = append(got, "late") })

	Emit(b, StarCollectedTopic, StarCollected{})
	assert.Equal(t, []string{"early"}, got)
}

func TestBusClose(t *testing.T) {
	b := newBus()
	calls := 0
	sub := Subscribe(b, StarCollectedTopic, func(StarCollected) { calls++ })

	b.Close()
	Emit(b, StarCollectedTopic, StarCollected{})
	require.False(t, sub.Active())
	sub.Unsubscribe()

	late := Subscribe(b, StarCollectedTopic, func(StarCollected) { calls++ })
	Emit(b, StarCollectedTopic, StarCollected{})

	assert.False(t, late.Active())
	assert.Zero(t, calls)
}

func TestBusNil(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() {
		sub := Subscribe(b, StarCollectedTopic, func(StarCollected) {})
		Emit(b, StarCollectedTopic, StarCollected{})
		sub.Unsubscribe()
		b.Close()
	})
}
