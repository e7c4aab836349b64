package internal

import (
	"fmt"
)

type slot struct {
	value any
	set   bool
}

// Instance is one constructed owner: a value slot per declared field, the
// bound fields, and the executor that serializes its reactions. All mutation
// of an instance's slots is confined to that executor (plus whatever
// goroutine drives the entry transition), so slots need no locking.
type Instance struct {
	class  *Class
	slots  []slot
	bounds []*BoundField
	exec   *Executor

	// Ext points back at whatever wrapper owns this instance. The engine
	// never inspects it.
	Ext any
}

// NewInstance allocates the slot arena and binds every declared field,
// exactly once each.
func (c *Class) NewInstance(exec *Executor) (*Instance, error) {
	in := &Instance{
		class:  c,
		slots:  make([]slot, len(c.fields)),
		bounds: make([]*BoundField, len(c.fields)),
		exec:   exec,
	}
	for _, f := range c.fields {
		if err := f.Bind(in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func (in *Instance) Class() *Class { return in.class }

func (in *Instance) Executor() *Executor { return in.exec }

// Bound returns the instance's BoundField for a declared field.
func (in *Instance) Bound(f *Field) (*BoundField, error) {
	if f.index < 0 || f.index >= len(in.bounds) || in.class.fields[f.index] != f {
		return nil, fmt.Errorf("%w: %s is not declared on %s", ErrFieldConfiguration, f, in.class.name)
	}
	return in.bounds[f.index], nil
}

func (in *Instance) String() string {
	return fmt.Sprintf("%s(%p)", in.class.name, in)
}
