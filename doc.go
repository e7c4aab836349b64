// Package when is a reactive-attribute engine: declare observable fields on
// a class, attach reactions to boolean predicates over those fields, and the
// engine turns field changes into ordered, asynchronous reaction runs. State
// machines fall out of field declarations and predicates; no event wiring or
// scheduling code is written by hand.
//
// A change to a field re-evaluates the predicates watching it; each
// predicate found true submits its reaction to the owning instance's
// executor, a queue that runs reactions strictly in submission order, one at
// a time. Separate instances run concurrently; one instance's reactions
// never overlap.
//
//	counter := when.NewClass("Counter")
//	count := when.NewField(-1)
//	counter.AddField("count", count)
//
//	counter.When(when.And(when.Ge(count, 0), when.Lt(count, 5)),
//		func(ctx context.Context, ch when.Change) error {
//			return count.Set(ch.Instance, count.Get(ch.Instance)+1)
//		})
//	counter.When(when.Eq(count, 5), when.StopReaction)
//
//	counter.OnStart(func(in *when.Instance) error {
//		return count.Set(in, 0)
//	})
//
//	in := counter.New()
//	err := in.Run(context.Background()) // returns once count reaches 5
//
// A reaction returning an error terminates its executor, discards the
// queued work, and surfaces the error to every Wait. There is no retry: a
// failed reaction means the modeled state is inconsistent and the owner
// must be restarted, not repaired in place.
package when
