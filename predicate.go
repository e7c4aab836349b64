package when

import (
	"fmt"

	"github.com/AnatoleLucet/when/internal"
)

// Predicate is an immutable boolean expression over fields. Constructing one
// never evaluates it; evaluation happens when a watched field changes, or
// explicitly through Test.
type Predicate struct {
	node internal.Predicate
}

// Operand wraps a plain value for use in a comparison. Comparisons wrap
// non-field, non-predicate arguments implicitly, so C is only needed when
// the value would otherwise be taken for something else.
type Operand struct {
	expr internal.Expr
}

// C wraps a value as a constant operand.
func C(v any) Operand {
	return Operand{internal.NewConstant(v)}
}

func toExpr(v any) internal.Expr {
	switch x := v.(type) {
	case AnyField:
		return x.core()
	case Predicate:
		return x.node
	case Operand:
		return x.expr
	default:
		return internal.NewConstant(v)
	}
}

// mustNotBePredicate rejects predicate operands where only values make
// sense. A predicate evaluates to a boolean; ordering or containment over
// one is always a construction mistake, so it fails here rather than
// producing a silently wrong expression.
func mustNotBePredicate(token string, v any) {
	if _, ok := v.(Predicate); ok {
		panic(fmt.Errorf("%w: predicate used as %q operand; combine predicates with And/Or/Not",
			internal.ErrInvalidPredicate, token))
	}
}

func comparison(op internal.CompareOp, left, right any) Predicate {
	return Predicate{internal.NewComparison(op, toExpr(left), toExpr(right))}
}

func ordered(op internal.CompareOp, left, right any) Predicate {
	mustNotBePredicate(op.Token(), left)
	mustNotBePredicate(op.Token(), right)
	return comparison(op, left, right)
}

// Eq is true when both operands evaluate equal.
func Eq(left, right any) Predicate { return comparison(internal.OpEq, left, right) }

// Ne is true when the operands evaluate unequal.
func Ne(left, right any) Predicate { return comparison(internal.OpNe, left, right) }

// Lt is true when left orders before right.
func Lt(left, right any) Predicate { return ordered(internal.OpLt, left, right) }

// Le is true when left orders before or equal to right.
func Le(left, right any) Predicate { return ordered(internal.OpLe, left, right) }

// Gt is true when left orders after right.
func Gt(left, right any) Predicate { return ordered(internal.OpGt, left, right) }

// Ge is true when left orders after or equal to right.
func Ge(left, right any) Predicate { return ordered(internal.OpGe, left, right) }

// Contains is true when the left operand's container holds the right
// operand's value: substring for strings, element for slices and arrays,
// key for maps.
func Contains(container, item any) Predicate {
	return ordered(internal.OpContains, container, item)
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return Predicate{internal.NewNot(p.node)}
}

// And is true when both predicates are. Both operands are always evaluated;
// there is no short-circuit.
func And(p, q Predicate) Predicate {
	return Predicate{internal.NewAnd(p.node, q.node)}
}

// Or is true when either predicate is. Both operands are always evaluated.
func Or(p, q Predicate) Predicate {
	return Predicate{internal.NewOr(p.node, q.node)}
}

// Test evaluates the predicate against an instance's current field values.
// Pure: evaluation never mutates anything.
func (p Predicate) Test(in *Instance) (bool, error) {
	return p.node.Test(in.in)
}

// Fields returns the deduplicated leaf fields the predicate depends on, in
// first-appearance order.
func (p Predicate) Fields() []AnyField {
	leaves := internal.LeafFields(p.node)
	out := make([]AnyField, 0, len(leaves))
	for _, f := range leaves {
		out = append(out, f.Ext.(AnyField))
	}
	return out
}

func (p Predicate) String() string {
	return p.node.String()
}
