package when

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustWhile(t *testing.T) {
	ctx := context.Background()

	t.Run("adds while the flag is held", func(t *testing.T) {
		c := NewClass("Car")
		boost := NewField(false)
		speed := NewField(10.0)
		c.AddField("boost", boost)
		c.AddField("speed", speed)

		AdjustWhile(c, boost, speed, 25)

		in := c.New()

		var seen []float64
		_, err := On(in, Ne(speed, nil), func(ctx context.Context, ch Change) error {
			seen = append(seen, as[float64](ch.New))
			return nil
		})
		require.NoError(t, err)

		require.NoError(t, in.Start())
		require.NoError(t, boost.Set(in, true))
		require.NoError(t, boost.Set(in, false))
		require.NoError(t, in.Stop(NoStopTimeout))
		require.NoError(t, in.Wait(ctx))

		assert.Equal(t, []float64{35, 10}, seen)
		assert.Equal(t, 10.0, speed.Get(in))
	})

	t.Run("repeated assignment adjusts nothing", func(t *testing.T) {
		c := NewClass("Car")
		boost := NewField(false)
		speed := NewField(10.0)
		c.AddField("boost", boost)
		c.AddField("speed", speed)

		AdjustWhile(c, boost, speed, 25)

		in := c.New()
		require.NoError(t, in.Start())
		require.NoError(t, boost.Set(in, true))
		require.NoError(t, boost.Set(in, true)) // no edge, no adjustment
		require.NoError(t, in.Stop(NoStopTimeout))
		require.NoError(t, in.Wait(ctx))

		assert.Equal(t, 35.0, speed.Get(in))
	})
}
