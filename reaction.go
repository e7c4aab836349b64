package when

import (
	"context"
	"fmt"
	"reflect"
	"runtime"

	"github.com/AnatoleLucet/when/internal"
)

// Change is one observed field transition: the instance it happened on, the
// field, and the values either side of the edge. Reactions receive the
// values captured at the moment their predicate was found true; the field
// may have moved on by the time the reaction runs.
type Change struct {
	Instance *Instance
	Old      any
	New      any

	field *internal.Field
}

// Field returns the field that changed.
func (c Change) Field() AnyField { return c.field.Ext.(AnyField) }

// FieldName returns the changed field's attribute name.
func (c Change) FieldName() string { return c.field.Attr() }

func (c Change) String() string {
	return fmt.Sprintf("%s.%s: %v -> %v", c.Instance, c.field.Attr(), c.Old, c.New)
}

// OldNew returns a change's values with their concrete type.
func OldNew[T any](c Change) (old, newValue T) {
	return as[T](c.Old), as[T](c.New)
}

// Reaction runs on an executor when its predicate is found true. Reactions
// on one executor run strictly in submission order, one at a time; ctx is
// cancelled when the executor is forcibly stopped. Returning a non-nil
// error terminates the executor.
type Reaction func(ctx context.Context, change Change) error

// StopReaction stops the instance the change happened on. Bind it to the
// exit predicate of a state machine that knows when it is done.
var StopReaction Reaction = func(ctx context.Context, change Change) error {
	return change.Instance.Stop(DefaultStopTimeout)
}

// Handle is the guarded placeholder a binding returns. The reaction function
// itself is reachable only through the executor; Invoke exists to make a
// direct call fail loudly instead of silently bypassing scheduling.
type Handle struct {
	name string
	pred Predicate
	fn   Reaction
}

// Invoke always fails: the executor's drain loop is the only legitimate
// caller of a bound reaction.
func (h *Handle) Invoke(context.Context, Change) error {
	return fmt.Errorf("%w: %s", ErrReactionCalledDirectly, h.name)
}

// Predicate returns the predicate the reaction is bound to.
func (h *Handle) Predicate() Predicate { return h.pred }

func (h *Handle) String() string { return h.name }

func funcName(fn Reaction) string {
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return "reaction"
}

// observer builds the change listener installed on each of the predicate's
// leaf fields: re-test the predicate and, when true, submit an invocation to
// the resolved executor. Submission failures propagate to the Set call.
func (h *Handle) observer(resolve func(*internal.Instance) *internal.Executor) internal.Observer {
	return func(in *internal.Instance, f *internal.Field, old, newValue any) error {
		ok, err := h.pred.node.Test(in)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		change := Change{
			Instance: in.Ext.(*Instance),
			Old:      old,
			New:      newValue,
			field:    f,
		}
		inv := internal.NewInvocation(func(ctx context.Context) error {
			return h.fn(ctx, change)
		}, fmt.Sprintf("%s(%s)", h.name, change))
		return resolve(in).Submit(inv)
	}
}

type binding struct {
	exec *Executor
}

// BindOption adjusts how On wires a reaction.
type BindOption func(*binding)

// WithExecutor submits the reaction's invocations to a specific executor
// instead of the triggering instance's own. This is how a watcher keeps its
// reactions in its own serialization domain while observing another
// instance's fields.
func WithExecutor(ex *Executor) BindOption {
	return func(b *binding) { b.exec = ex }
}

// On binds a reaction to a predicate for one specific instance: observers go
// on the instance's bound fields, so other instances of the class are
// unaffected. Every leaf field of the predicate must be declared on the
// instance's class. By default invocations run on the triggering instance's
// executor.
func On(in *Instance, pred Predicate, fn Reaction, opts ...BindOption) (*Handle, error) {
	var b binding
	for _, opt := range opts {
		opt(&b)
	}

	resolve := func(target *internal.Instance) *internal.Executor { return target.Executor() }
	if b.exec != nil {
		ex := b.exec.ex
		resolve = func(*internal.Instance) *internal.Executor { return ex }
	}

	h := &Handle{name: funcName(fn), pred: pred, fn: fn}
	obs := h.observer(resolve)
	for _, f := range internal.LeafFields(pred.node) {
		bound, err := in.in.Bound(f)
		if err != nil {
			return nil, err
		}
		bound.Observe(obs)
	}
	return h, nil
}
