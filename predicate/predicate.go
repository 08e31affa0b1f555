// Package predicate implements the predicate algebra and evaluator: leaf
// predicates bound to a field ordinal plus operator and literal operands,
// And/Or compounds over child predicates, and three evaluation substrates
// (columnar mask, single row, min/max/null-count stats triple). Structured
// as a small visitor over a typed tree.
package predicate

import (
	"fmt"

	"github.com/lakerow/rowbinary/errs"
	"github.com/lakerow/rowbinary/rowtype"
)

// Op identifies a leaf predicate's operator.
type Op uint8

// Recognized leaf operators.
const (
	OpEqual Op = iota
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpIsNull
	OpIsNotNull
	OpIn
	OpNotIn
	OpBetween
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	case OpLessThan:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpGreaterThan:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	case OpIn:
		return "IN"
	case OpNotIn:
		return "NOT IN"
	case OpBetween:
		return "BETWEEN"
	default:
		return "?"
	}
}

// CompoundKind distinguishes And from Or compounds.
type CompoundKind uint8

const (
	KindAnd CompoundKind = iota
	KindOr
)

// Predicate is either a leaf bound to one field, or a compound over children
//. Construct with Leaf/Between/In/NotIn/And/Or; the zero value is
// not valid.
type Predicate struct {
	// leaf fields
	isLeaf    bool
	op        Op
	fieldIdx  int
	fieldType rowtype.FieldType
	literals  []rowtype.Literal // len 1 for unary ops, 2 for Between, N for In/NotIn

	// compound fields
	kind     CompoundKind
	children []Predicate
}

// Leaf constructs a unary or binary leaf predicate (Equal, NotEqual,
// LessThan, LessOrEqual, GreaterThan, GreaterOrEqual, IsNull, IsNotNull).
func Leaf(op Op, fieldIdx int, fieldType rowtype.FieldType, lit rowtype.Literal) Predicate {
	var lits []rowtype.Literal
	if op != OpIsNull && op != OpIsNotNull {
		lits = []rowtype.Literal{lit}
	}

	return Predicate{isLeaf: true, op: op, fieldIdx: fieldIdx, fieldType: fieldType, literals: lits}
}

// IsNullLeaf constructs an IsNull predicate.
func IsNullLeaf(fieldIdx int, fieldType rowtype.FieldType) Predicate {
	return Predicate{isLeaf: true, op: OpIsNull, fieldIdx: fieldIdx, fieldType: fieldType}
}

// IsNotNullLeaf constructs an IsNotNull predicate.
func IsNotNullLeaf(fieldIdx int, fieldType rowtype.FieldType) Predicate {
	return Predicate{isLeaf: true, op: OpIsNotNull, fieldIdx: fieldIdx, fieldType: fieldType}
}

// Between constructs a Between(lo, hi) leaf predicate.
func Between(fieldIdx int, fieldType rowtype.FieldType, lo, hi rowtype.Literal) Predicate {
	return Predicate{isLeaf: true, op: OpBetween, fieldIdx: fieldIdx, fieldType: fieldType, literals: []rowtype.Literal{lo, hi}}
}

// In constructs an In({vi}) leaf predicate.
func In(fieldIdx int, fieldType rowtype.FieldType, values []rowtype.Literal) Predicate {
	return Predicate{isLeaf: true, op: OpIn, fieldIdx: fieldIdx, fieldType: fieldType, literals: values}
}

// NotIn constructs a NotIn({vi}) leaf predicate.
func NotIn(fieldIdx int, fieldType rowtype.FieldType, values []rowtype.Literal) Predicate {
	return Predicate{isLeaf: true, op: OpNotIn, fieldIdx: fieldIdx, fieldType: fieldType, literals: values}
}

// And constructs a conjunction over children. Zero children is an error; a
// single child is lifted to itself.
func And(children []Predicate) (Predicate, error) {
	return compound(KindAnd, children)
}

// Or constructs a disjunction over children. Zero children is an error; a
// single child is lifted to itself.
func Or(children []Predicate) (Predicate, error) {
	return compound(KindOr, children)
}

func compound(kind CompoundKind, children []Predicate) (Predicate, error) {
	if len(children) == 0 {
		return Predicate{}, errs.ErrEmptyCompound
	}
	if len(children) == 1 {
		return children[0], nil
	}

	return Predicate{kind: kind, children: children}, nil
}

// IsLeaf reports whether p is a leaf predicate.
func (p Predicate) IsLeaf() bool { return p.isLeaf }

// Negate returns p's logical negation: Equal<->NotEqual,
// LessThan<->GreaterOrEqual, LessOrEqual<->GreaterThan, IsNull<->IsNotNull,
// In<->NotIn, Between(lo,hi) negates to Or(LessThan(lo), GreaterThan(hi)), and
// And/Or distribute through De Morgan's laws with each child negated.
func (p Predicate) Negate() Predicate {
	if !p.isLeaf {
		negatedChildren := make([]Predicate, len(p.children))
		for i, c := range p.children {
			negatedChildren[i] = c.Negate()
		}

		dualKind := KindOr
		if p.kind == KindOr {
			dualKind = KindAnd
		}

		return Predicate{kind: dualKind, children: negatedChildren}
	}

	switch p.op {
	case OpEqual:
		return Predicate{isLeaf: true, op: OpNotEqual, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpNotEqual:
		return Predicate{isLeaf: true, op: OpEqual, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpLessThan:
		return Predicate{isLeaf: true, op: OpGreaterOrEqual, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpGreaterOrEqual:
		return Predicate{isLeaf: true, op: OpLessThan, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpLessOrEqual:
		return Predicate{isLeaf: true, op: OpGreaterThan, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpGreaterThan:
		return Predicate{isLeaf: true, op: OpLessOrEqual, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpIsNull:
		return Predicate{isLeaf: true, op: OpIsNotNull, fieldIdx: p.fieldIdx, fieldType: p.fieldType}
	case OpIsNotNull:
		return Predicate{isLeaf: true, op: OpIsNull, fieldIdx: p.fieldIdx, fieldType: p.fieldType}
	case OpIn:
		return Predicate{isLeaf: true, op: OpNotIn, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpNotIn:
		return Predicate{isLeaf: true, op: OpIn, fieldIdx: p.fieldIdx, fieldType: p.fieldType, literals: p.literals}
	case OpBetween:
		lo := Leaf(OpLessThan, p.fieldIdx, p.fieldType, p.literals[0])
		hi := Leaf(OpGreaterThan, p.fieldIdx, p.fieldType, p.literals[1])
		out, _ := Or([]Predicate{lo, hi})

		return out
	default:
		return p
	}
}

// Hash computes a cache key for p from its operator identity, field index,
// and literal sequence.
func (p Predicate) Hash() string {
	if p.isLeaf {
		return fmt.Sprintf("leaf(%d,%d,%v)", p.op, p.fieldIdx, p.literals)
	}

	s := fmt.Sprintf("compound(%d,[", p.kind)
	for i, c := range p.children {
		if i > 0 {
			s += ","
		}
		s += c.Hash()
	}

	return s + "])"
}
