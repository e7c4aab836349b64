package when

import "context"

// AdjustWhile makes target carry an extra adj while flag is true: one
// reaction adds adj when flag becomes true, a second removes it when flag
// becomes false. Edge triggering keeps the pair balanced; re-assigning the
// same flag value adjusts nothing. Models momentary controls: pressed adds,
// released takes back.
func AdjustWhile(c *Class, flag *Field[bool], target *Field[float64], adj float64) {
	apply := func(delta float64) Reaction {
		return func(ctx context.Context, ch Change) error {
			return target.Set(ch.Instance, target.Get(ch.Instance)+delta)
		}
	}
	c.When(Eq(flag, true), apply(adj))
	c.When(Eq(flag, false), apply(-adj))
}
