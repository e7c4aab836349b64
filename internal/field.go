package internal

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// Observer is called synchronously, in registration order, when a field's
// value changes. Observers must not block; reaction work they trigger is
// queued on an executor, not awaited here. A non-nil error aborts the
// notification walk and propagates to the Set call that caused it.
type Observer func(in *Instance, f *Field, old, newValue any) error

// observerList is shared by reference between a Field and its BoundFields
// until an instance-specific observer forces a copy.
type observerList struct {
	observers []Observer
}

// fieldCount provides default attribute names for fields that have not been
// registered on a class yet.
var fieldCount atomic.Uint64

// Field is an observable cell declared on a Class. It holds no per-instance
// state; values live in each Instance's slot arena. Field identity is the
// pointer, stable for its lifetime and usable as a map key.
type Field struct {
	classname string
	attr      string
	index     int
	initial   any
	observers *observerList

	// Ext points back at whatever typed wrapper owns this field. The engine
	// never inspects it.
	Ext any
}

// NewField creates a field with its initial value. The class and attribute
// names are filled in by class registration; the placeholders only exist so
// unregistered fields still log legibly.
func NewField(initial any) *Field {
	f := &Field{
		index:     -1,
		initial:   initial,
		observers: &observerList{},
	}
	f.SetNames("<no class associated>", fmt.Sprintf("field_%d", fieldCount.Add(1)-1))
	return f
}

// SetNames records the owning class and attribute names. Display only.
func (f *Field) SetNames(classname, attr string) {
	f.classname = classname
	f.attr = attr
}

func (f *Field) Attr() string { return f.attr }

func (f *Field) Initial() any { return f.initial }

func (f *Field) String() string {
	return f.classname + "." + f.attr
}

// Observe registers a class-level observer, seen by every instance that has
// not copied its list with instance-specific observers.
func (f *Field) Observe(obs Observer) {
	f.observers.observers = append(f.observers.observers, obs)
}

// Get returns the instance's value, initializing the slot to the declared
// initial value on first access. Never fails.
func (f *Field) Get(in *Instance) any {
	s := &in.slots[f.index]
	if !s.set {
		s.value = f.initial
		s.set = true
	}
	return s.value
}

// Set stores a new value and notifies the instance's observers. Assigning a
// value equal to the current one does nothing: fields are edge-triggered on
// value inequality, not on assignment.
func (f *Field) Set(in *Instance, value any) error {
	old := f.Get(in)
	if isEqual(old, value) {
		return nil
	}
	in.slots[f.index].value = value
	return in.bounds[f.index].React(in, f, old, value)
}

// Evaluate implements Expr: the field's value on the instance.
func (f *Field) Evaluate(in *Instance) (any, error) {
	return f.Get(in), nil
}

// Fields implements Expr: a field is its own only leaf.
func (f *Field) Fields() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		yield(f)
	}
}

// Bind creates the BoundField for a freshly constructed instance. Exactly
// one binding may exist per (field, instance) pair.
func (f *Field) Bind(in *Instance) error {
	if f.index < 0 || f.index >= len(in.bounds) || in.class.fields[f.index] != f {
		return fmt.Errorf("%w: %s is not declared on %s", ErrFieldConfiguration, f, in.class.name)
	}
	if in.bounds[f.index] != nil {
		return fmt.Errorf("%w: %s on instance %p", ErrFieldAlreadyBound, f, in)
	}
	in.bounds[f.index] = &BoundField{
		field:     f,
		instance:  in,
		observers: f.observers,
	}
	return nil
}
