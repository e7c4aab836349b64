package when

import "github.com/AnatoleLucet/when/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// AnyField is the untyped view of a Field, for code that handles fields of
// mixed value types (predicate leaf sets, changes).
type AnyField interface {
	Name() string
	String() string

	core() *internal.Field
}

// Field is an observable cell declared on a Class. It holds no per-instance
// state; each Instance stores its own value, lazily initialized to the
// declared initial value on first read.
type Field[T any] struct {
	field *internal.Field
}

// NewField creates a field with its initial value. The field is anonymous
// until registered with Class.AddField.
func NewField[T any](initial T) *Field[T] {
	f := &Field[T]{internal.NewField(initial)}
	f.field.Ext = f
	return f
}

func (f *Field[T]) core() *internal.Field { return f.field }

// Name returns the attribute name given at registration.
func (f *Field[T]) Name() string { return f.field.Attr() }

func (f *Field[T]) String() string { return f.field.String() }

// Get returns the instance's current value. Never fails.
func (f *Field[T]) Get(in *Instance) T {
	return as[T](f.field.Get(in.in))
}

// Set stores a new value and notifies observers. Assigning a value equal to
// the current one is a no-op: fields trigger on value change, not on
// assignment. Set returns synchronously once the triggered reactions are
// queued; an error means a predicate failed to evaluate or a reaction could
// not be scheduled.
func (f *Field[T]) Set(in *Instance, v T) error {
	return f.field.Set(in.in, v)
}
