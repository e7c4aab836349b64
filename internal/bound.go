package internal

import (
	"fmt"
	"slices"
)

// BoundField associates one Field with one Instance. All per-instance field
// state lives here so it is collected along with the instance; the Field
// keeps no reference to any instance.
type BoundField struct {
	field    *Field
	instance *Instance

	// observers aliases the class-level list until Observe copies it.
	observers *observerList
}

func (b *BoundField) Field() *Field { return b.field }

// Observe adds an instance-specific observer. The class-level list is copied
// on the first call so other instances are unaffected; class-level observers
// registered after that point are not seen by this instance.
func (b *BoundField) Observe(obs Observer) {
	if b.observers == b.field.observers {
		b.observers = &observerList{observers: slices.Clone(b.field.observers.observers)}
	}
	b.observers.observers = append(b.observers.observers, obs)
}

// React notifies every observer of a value change, in registration order.
// The first error stops the walk and propagates to the Set that triggered it.
func (b *BoundField) React(in *Instance, f *Field, old, newValue any) error {
	for _, obs := range b.observers.observers {
		if err := obs(in, f, old, newValue); err != nil {
			return err
		}
	}
	return nil
}

func (b *BoundField) String() string {
	return fmt.Sprintf("%s(%p).%s", b.field.classname, b.instance, b.field.attr)
}
