package when

import "github.com/AnatoleLucet/when/internal"

// Class is the registry of fields and reactions declared on one owner type.
// Declare the class, register its fields and predicate bindings once at
// package init, then construct instances from it. Registration after
// instances exist is not supported.
type Class struct {
	class   *internal.Class
	onStart func(*Instance) error
}

func NewClass(name string) *Class {
	return &Class{class: internal.NewClass(name)}
}

func (c *Class) Name() string { return c.class.Name() }

// AddField registers a field under an attribute name. Registering the same
// name or the same field twice is a definition error and panics.
func (c *Class) AddField(attr string, f AnyField) {
	if err := c.class.AddField(attr, f.core()); err != nil {
		panic(err)
	}
}

// OnStart sets the entry-transition hook, called by Start once the executor
// is running. This is where the first field value is set to begin the
// predicate cascade.
func (c *Class) OnStart(fn func(*Instance) error) {
	c.onStart = fn
}

// When binds a reaction to a predicate for every instance of the class: each
// leaf field of the predicate gets an observer that re-tests the predicate
// on change and, when true, submits the reaction to the triggering
// instance's executor.
func (c *Class) When(pred Predicate, fn Reaction) *Handle {
	h := &Handle{name: funcName(fn), pred: pred, fn: fn}
	obs := h.observer(func(in *internal.Instance) *internal.Executor { return in.Executor() })
	for _, f := range internal.LeafFields(pred.node) {
		f.Observe(obs)
	}
	return h
}

// New constructs an instance with its own executor.
func (c *Class) New() *Instance {
	return c.NewWithExecutor(NewExecutor())
}

// NewWithExecutor constructs an instance on an explicitly shared executor.
// Instances sharing one executor are fully serialized with respect to each
// other.
func (c *Class) NewWithExecutor(ex *Executor) *Instance {
	in, err := c.class.NewInstance(ex.ex)
	if err != nil {
		panic(err)
	}
	pub := &Instance{class: c, in: in, exec: ex}
	in.Ext = pub
	return pub
}
