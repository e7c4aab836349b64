package internal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstance(t *testing.T, c *Class) *Instance {
	t.Helper()
	in, err := c.NewInstance(NewExecutor())
	require.NoError(t, err)
	return in
}

func TestField(t *testing.T) {
	t.Run("lazy initial value", func(t *testing.T) {
		c := NewClass("Lamp")
		state := NewField("off")
		require.NoError(t, c.AddField("state", state))

		in := newInstance(t, c)
		assert.Equal(t, "off", state.Get(in))
	})

	t.Run("edge triggered", func(t *testing.T) {
		c := NewClass("Lamp")
		level := NewField(0)
		require.NoError(t, c.AddField("level", level))

		var edges [][2]any
		level.Observe(func(in *Instance, f *Field, old, newValue any) error {
			edges = append(edges, [2]any{old, newValue})
			return nil
		})

		in := newInstance(t, c)
		require.NoError(t, level.Set(in, 1))
		require.NoError(t, level.Set(in, 1)) // same value, no edge
		require.NoError(t, level.Set(in, 2))
		require.NoError(t, level.Set(in, 2))

		assert.Equal(t, [][2]any{{0, 1}, {1, 2}}, edges)
		assert.Equal(t, 2, level.Get(in))
	})

	t.Run("observers run in registration order", func(t *testing.T) {
		c := NewClass("Lamp")
		level := NewField(0)
		require.NoError(t, c.AddField("level", level))

		var order []string
		level.Observe(func(*Instance, *Field, any, any) error {
			order = append(order, "first")
			return nil
		})
		level.Observe(func(*Instance, *Field, any, any) error {
			order = append(order, "second")
			return nil
		})

		in := newInstance(t, c)
		require.NoError(t, level.Set(in, 1))
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("observer error aborts the walk", func(t *testing.T) {
		c := NewClass("Lamp")
		level := NewField(0)
		require.NoError(t, c.AddField("level", level))

		boom := errors.New("boom")
		reached := false
		level.Observe(func(*Instance, *Field, any, any) error { return boom })
		level.Observe(func(*Instance, *Field, any, any) error {
			reached = true
			return nil
		})

		in := newInstance(t, c)
		assert.ErrorIs(t, level.Set(in, 1), boom)
		assert.False(t, reached)
		// the value itself is stored before observers run
		assert.Equal(t, 1, level.Get(in))
	})

	t.Run("unregistered fields get placeholder names", func(t *testing.T) {
		f := NewField(0)
		assert.True(t, strings.HasPrefix(f.Attr(), "field_"))
		assert.Contains(t, f.String(), "<no class associated>")
	})

	t.Run("registration names the field", func(t *testing.T) {
		c := NewClass("Lamp")
		level := NewField(0)
		require.NoError(t, c.AddField("level", level))

		assert.Equal(t, "level", level.Attr())
		assert.Equal(t, "Lamp.level", level.String())
	})

	t.Run("attribute name collision", func(t *testing.T) {
		c := NewClass("Lamp")
		require.NoError(t, c.AddField("level", NewField(0)))
		assert.ErrorIs(t, c.AddField("level", NewField(0)), ErrFieldConfiguration)
	})

	t.Run("field cannot join two classes", func(t *testing.T) {
		level := NewField(0)
		require.NoError(t, NewClass("Lamp").AddField("level", level))
		assert.ErrorIs(t, NewClass("Other").AddField("level", level), ErrFieldConfiguration)
	})

	t.Run("bind twice", func(t *testing.T) {
		c := NewClass("Lamp")
		level := NewField(0)
		require.NoError(t, c.AddField("level", level))

		in := newInstance(t, c)
		assert.ErrorIs(t, level.Bind(in), ErrFieldAlreadyBound)
	})
}

func TestBoundField(t *testing.T) {
	t.Run("instance observers copy on write", func(t *testing.T) {
		c := NewClass("Lamp")
		level := NewField(0)
		require.NoError(t, c.AddField("level", level))

		var fired []string
		record := func(name string) Observer {
			return func(*Instance, *Field, any, any) error {
				fired = append(fired, name)
				return nil
			}
		}

		level.Observe(record("class"))

		a := newInstance(t, c)
		b := newInstance(t, c)

		ba, err := a.Bound(level)
		require.NoError(t, err)
		ba.Observe(record("a only"))

		// registered after the copy, so a never sees it
		level.Observe(record("class late"))

		require.NoError(t, level.Set(a, 1))
		assert.Equal(t, []string{"class", "a only"}, fired)

		fired = nil
		require.NoError(t, level.Set(b, 1))
		assert.Equal(t, []string{"class", "class late"}, fired)
	})

	t.Run("class observers stay live until the copy", func(t *testing.T) {
		c := NewClass("Lamp")
		level := NewField(0)
		require.NoError(t, c.AddField("level", level))

		in := newInstance(t, c)

		fired := false
		level.Observe(func(*Instance, *Field, any, any) error {
			fired = true
			return nil
		})

		require.NoError(t, level.Set(in, 1))
		assert.True(t, fired)
	})

	t.Run("bound lookup rejects foreign fields", func(t *testing.T) {
		c := NewClass("Lamp")
		require.NoError(t, c.AddField("level", NewField(0)))

		other := NewField(0)
		require.NoError(t, NewClass("Other").AddField("level", other))

		in := newInstance(t, c)
		_, err := in.Bound(other)
		assert.ErrorIs(t, err, ErrFieldConfiguration)
	})
}
