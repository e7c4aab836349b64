package internal

import (
	"fmt"
	"iter"
)

// Expr is anything a predicate tree can evaluate: fields, constants, and
// nested predicates. Evaluation is a pure function of instance state at the
// time of the call and never mutates anything.
type Expr interface {
	Evaluate(in *Instance) (any, error)

	// Fields yields the leaf fields the expression depends on, with
	// duplicates; see LeafFields.
	Fields() iter.Seq[*Field]

	String() string
}

// Predicate is an Expr that evaluates to a boolean.
type Predicate interface {
	Expr
	Test(in *Instance) (bool, error)
}

// Constant always evaluates to its value.
type Constant struct {
	value any
}

func NewConstant(v any) Constant { return Constant{value: v} }

func (c Constant) Evaluate(*Instance) (any, error) { return c.value, nil }

func (c Constant) Fields() iter.Seq[*Field] {
	return func(func(*Field) bool) {}
}

func (c Constant) String() string { return fmt.Sprintf("%v", c.value) }

// IsPredicate reports whether an expression node is itself a predicate.
func IsPredicate(e Expr) bool {
	_, ok := e.(Predicate)
	return ok
}

// LeafFields returns the deduplicated leaf field set of an expression, in
// first-appearance order. This is the set of fields that need observers
// installed when a reaction is bound.
func LeafFields(e Expr) []*Field {
	seen := make(map[*Field]bool)
	var out []*Field
	for f := range e.Fields() {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// CompareOp enumerates the comparison node kinds.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpContains
)

func (op CompareOp) Token() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpContains:
		return "contains"
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// Comparison applies a comparison operator to two operands. Immutable once
// constructed.
type Comparison struct {
	op    CompareOp
	left  Expr
	right Expr
}

func NewComparison(op CompareOp, left, right Expr) *Comparison {
	return &Comparison{op: op, left: left, right: right}
}

func (p *Comparison) Test(in *Instance) (bool, error) {
	l, err := p.left.Evaluate(in)
	if err != nil {
		return false, err
	}
	r, err := p.right.Evaluate(in)
	if err != nil {
		return false, err
	}
	switch p.op {
	case OpEq:
		return isEqual(l, r), nil
	case OpNe:
		return !isEqual(l, r), nil
	case OpContains:
		ok, err := contains(l, r)
		if err != nil {
			return false, fmt.Errorf("%s: %w", p, err)
		}
		return ok, nil
	}
	c, err := order(l, r)
	if err != nil {
		return false, fmt.Errorf("%s: %w", p, err)
	}
	switch p.op {
	case OpLt:
		return c < 0, nil
	case OpLe:
		return c <= 0, nil
	case OpGt:
		return c > 0, nil
	case OpGe:
		return c >= 0, nil
	}
	return false, fmt.Errorf("%w: unknown comparison %s", ErrInvalidPredicate, p.op.Token())
}

func (p *Comparison) Evaluate(in *Instance) (any, error) {
	ok, err := p.Test(in)
	return ok, err
}

func (p *Comparison) Fields() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		for f := range p.left.Fields() {
			if !yield(f) {
				return
			}
		}
		for f := range p.right.Fields() {
			if !yield(f) {
				return
			}
		}
	}
}

func (p *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", p.left, p.op.Token(), p.right)
}

// LogicOp enumerates the logical node kinds.
type LogicOp int

const (
	OpNot LogicOp = iota
	OpAnd
	OpOr
)

func (op LogicOp) Token() string {
	switch op {
	case OpNot:
		return "!not!"
	case OpAnd:
		return "!and!"
	case OpOr:
		return "!or!"
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// Logical combines predicate operands with a boolean operator. Operands are
// fully evaluated before the operator applies; there is no short-circuit.
type Logical struct {
	op       LogicOp
	operands []Predicate
}

func NewNot(p Predicate) *Logical {
	return &Logical{op: OpNot, operands: []Predicate{p}}
}

func NewAnd(a, b Predicate) *Logical {
	return &Logical{op: OpAnd, operands: []Predicate{a, b}}
}

func NewOr(a, b Predicate) *Logical {
	return &Logical{op: OpOr, operands: []Predicate{a, b}}
}

func (p *Logical) Test(in *Instance) (bool, error) {
	values := make([]bool, len(p.operands))
	for i, operand := range p.operands {
		v, err := operand.Test(in)
		if err != nil {
			return false, err
		}
		values[i] = v
	}
	switch p.op {
	case OpNot:
		return !values[0], nil
	case OpAnd:
		return values[0] && values[1], nil
	case OpOr:
		return values[0] || values[1], nil
	}
	return false, fmt.Errorf("%w: unknown operator %s", ErrInvalidPredicate, p.op.Token())
}

func (p *Logical) Evaluate(in *Instance) (any, error) {
	ok, err := p.Test(in)
	return ok, err
}

func (p *Logical) Fields() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		for _, operand := range p.operands {
			for f := range operand.Fields() {
				if !yield(f) {
					return
				}
			}
		}
	}
}

func (p *Logical) String() string {
	if p.op == OpNot {
		return fmt.Sprintf("(%s %s)", p.op.Token(), p.operands[0])
	}
	return fmt.Sprintf("(%s %s %s)", p.operands[0], p.op.Token(), p.operands[1])
}
