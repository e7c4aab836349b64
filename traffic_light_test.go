package when

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lightColor string

const (
	red    lightColor = "red"
	green  lightColor = "green"
	yellow lightColor = "yellow"
)

const (
	ticksPerLight = 1
	lightCycles   = 2
)

// trafficLight cycles red → green → yellow → red, spending a fixed number of
// ticks on each color, and stops after a number of full cycles. Each light
// paces itself with its own RateLimit, so many lights tick concurrently.
type trafficLight struct {
	in       *Instance
	rl       *RateLimit
	sequence []lightColor
}

type trafficLightClass struct {
	class  *Class
	color  *Field[lightColor]
	ticks  *Field[int]
	cycles *Field[int]
}

func newTrafficLightClass() *trafficLightClass {
	c := &trafficLightClass{
		class:  NewClass("TrafficLight"),
		color:  NewField(red),
		ticks:  NewField(-1),
		cycles: NewField(0),
	}
	c.class.AddField("color", c.color)
	c.class.AddField("ticks", c.ticks)
	c.class.AddField("cycles", c.cycles)
	c.class.OnStart(func(in *Instance) error { return c.ticks.Set(in, 0) })
	return c
}

func (c *trafficLightClass) newLight(rate int) (*trafficLight, error) {
	l := &trafficLight{
		in: c.class.New(),
		rl: NewRateLimit(rate),
	}

	change := func(in *Instance, color lightColor) error {
		if err := c.ticks.Set(in, 0); err != nil {
			return err
		}
		if err := c.color.Set(in, color); err != nil {
			return err
		}
		l.sequence = append(l.sequence, color)
		return nil
	}

	transition := func(from, to lightColor) error {
		_, err := On(l.in, And(Eq(c.color, from), Eq(c.ticks, ticksPerLight)),
			func(ctx context.Context, ch Change) error {
				if from == yellow {
					if err := c.cycles.Set(ch.Instance, c.cycles.Get(ch.Instance)+1); err != nil {
						return err
					}
				}
				return change(ch.Instance, to)
			})
		return err
	}
	if err := transition(red, green); err != nil {
		return nil, err
	}
	if err := transition(green, yellow); err != nil {
		return nil, err
	}
	if err := transition(yellow, red); err != nil {
		return nil, err
	}

	_, err := On(l.in, Ne(c.ticks, -1), func(ctx context.Context, ch Change) error {
		if c.ticks.Get(ch.Instance) != as[int](ch.New) {
			// a transition reset ticks while this invocation was queued
			return nil
		}
		if c.cycles.Get(ch.Instance) == lightCycles {
			return ch.Instance.Stop(NoStopTimeout)
		}
		if err := l.rl.Delay(ctx); err != nil {
			return err
		}
		return c.ticks.Set(ch.Instance, c.ticks.Get(ch.Instance)+1)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func TestTrafficLight(t *testing.T) {
	const lights = 1000

	class := newTrafficLightClass()
	all := make([]*trafficLight, 0, lights)
	for i := 0; i < lights; i++ {
		l, err := class.newLight(200)
		require.NoError(t, err)
		all = append(all, l)
	}

	for _, l := range all {
		require.NoError(t, l.in.Start())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	expected := []lightColor{green, yellow, red, green, yellow, red}
	for _, l := range all {
		require.NoError(t, l.in.Wait(ctx))
		assert.Equal(t, expected, l.sequence)
	}
}
