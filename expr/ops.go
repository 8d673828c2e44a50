// Copyright 2023 The gmskit Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package expr

import (
	"fmt"
	"strings"
)

// Op is an operator token.
//
// The vocabulary is closed: operators outside
// this set are rejected by Check.
type Op int

const (
	OpInvalid Op = iota

	// arithmetic
	OpAdd // +
	OpSub // -
	OpMul // *
	OpDiv // /
	OpPow // **

	// relational
	OpLt // <
	OpGt // >
	OpLe // <=
	OpGe // >=
	OpEq // =e=
	OpNe // ne

	// logical
	OpAnd
	OpOr
	OpXor

	// unary
	OpNeg // -
	OpNot

	// equation relations; these are never produced
	// by the builders and only appear when a
	// definition statement normalizes its root
	OpLeq        // =l=
	OpGeq        // =g=
	OpNonbinding // =n=
	OpExternal   // =x=
	OpCone       // =c=
	OpBooleanEq  // =b=

	// statement composition
	OpAssign // =
	OpDefine // ..
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpEq:
		return "=e="
	case OpNe:
		return "ne"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpNeg:
		return "-"
	case OpNot:
		return "not"
	case OpLeq:
		return "=l="
	case OpGeq:
		return "=g="
	case OpNonbinding:
		return "=n="
	case OpExternal:
		return "=x="
	case OpCone:
		return "=c="
	case OpBooleanEq:
		return "=b="
	case OpAssign:
		return "="
	case OpDefine:
		return ".."
	default:
		return fmt.Sprintf("<Op=%d>", int(o))
	}
}

// inline is the spelling of o inside function
// argument lists and dollar conditions, where
// the equation relations are illegal and have
// operator equivalents.
func (o Op) inline() string {
	switch o {
	case OpEq:
		return "eq"
	case OpLeq:
		return "le"
	case OpGeq:
		return "ge"
	}
	return o.String()
}

// operator precedence, loosest first;
// an operand whose precedence is strictly lower
// than its parent operator gets parenthesized,
// as does a right-hand operand of equal precedence,
// so that the output re-parses to the same tree
const (
	precStmt = iota // = and ..
	precOr          // or, xor
	precAnd
	precNot
	precRel // relational tokens
	precAdd // binary + -
	precNeg // unary -
	precMul // * /
	precPow // **
	precAtom
)

func (o Op) prec() int {
	switch o {
	case OpAssign, OpDefine:
		return precStmt
	case OpOr, OpXor:
		return precOr
	case OpAnd:
		return precAnd
	case OpNot:
		return precNot
	case OpLt, OpGt, OpLe, OpGe, OpEq, OpNe,
		OpLeq, OpGeq, OpNonbinding, OpExternal, OpCone, OpBooleanEq:
		return precRel
	case OpAdd, OpSub:
		return precAdd
	case OpNeg:
		return precNeg
	case OpMul, OpDiv:
		return precMul
	case OpPow:
		return precPow
	}
	return precAtom
}

// prec is the effective precedence of n
// when it appears as an operand.
func prec(n Node) int {
	switch n := n.(type) {
	case *Binary:
		return n.Op.prec()
	case *Unary:
		return n.Op.prec()
	}
	return precAtom
}

// negative indicates a node whose rendering
// begins with a minus sign; the target language
// does not accept one directly after another
// operator, so such operands are parenthesized.
func negative(n Node) bool {
	switch n := n.(type) {
	case *Unary:
		return n.Op == OpNeg
	case Integer:
		return n < 0
	case Float:
		return n < 0
	}
	return false
}

// Unary is a unary expression (negation or not)
type Unary struct {
	Op    Op
	Child Node
}

// Neg yields -x.
func Neg(x any) *Unary { return &Unary{Op: OpNeg, Child: asNode(x)} }

// Not yields 'not x'.
func Not(x any) *Unary { return &Unary{Op: OpNot, Child: asNode(x)} }

func (u *Unary) text(dst *strings.Builder, inline bool) {
	dst.WriteString(u.Op.String())
	if u.Op == OpNot {
		dst.WriteByte(' ')
	}
	if prec(u.Child) <= u.Op.prec() {
		dst.WriteByte('(')
		u.Child.text(dst, inline)
		dst.WriteByte(')')
	} else {
		u.Child.text(dst, inline)
	}
}

func (u *Unary) walk(v Visitor) {
	if u.Child != nil {
		Walk(v, u.Child)
	}
}

func (u *Unary) rewrite(r Rewriter) Node {
	u.Child = Rewrite(r, u.Child)
	return u
}

func (u *Unary) Equals(x Node) bool {
	xu, ok := x.(*Unary)
	return ok && u.Op == xu.Op && u.Child.Equals(xu.Child)
}

// Binary is a binary expression: arithmetic,
// relational, logical, or statement-composing.
type Binary struct {
	Op          Op
	Left, Right Node
}

// NewBinary generates a binary expression
// from already-coerced operands.
func NewBinary(op Op, left, right Node) *Binary {
	return &Binary{Op: op, Left: left, Right: right}
}

func binop(op Op, left, right any) *Binary {
	return NewBinary(op, asNode(left), asNode(right))
}

func Add(left, right any) *Binary { return binop(OpAdd, left, right) }
func Sub(left, right any) *Binary { return binop(OpSub, left, right) }
func Mul(left, right any) *Binary { return binop(OpMul, left, right) }
func Div(left, right any) *Binary { return binop(OpDiv, left, right) }
func Pow(left, right any) *Binary { return binop(OpPow, left, right) }

func Lt(left, right any) *Binary { return binop(OpLt, left, right) }
func Gt(left, right any) *Binary { return binop(OpGt, left, right) }
func Le(left, right any) *Binary { return binop(OpLe, left, right) }
func Ge(left, right any) *Binary { return binop(OpGe, left, right) }

// Eq yields the equation relation 'left =e= right'.
// In inline positions it renders as 'left eq right'.
func Eq(left, right any) *Binary { return binop(OpEq, left, right) }

// Ne yields 'left ne right'.
func Ne(left, right any) *Binary { return binop(OpNe, left, right) }

func And(left, right any) *Binary { return binop(OpAnd, left, right) }
func Or(left, right any) *Binary  { return binop(OpOr, left, right) }
func Xor(left, right any) *Binary { return binop(OpXor, left, right) }

// Assign composes an assignment statement body 'target = rhs'.
// The right-hand side renders inline.
func Assign(target, rhs any) *Binary { return binop(OpAssign, target, rhs) }

// Define composes an equation definition body 'lhs .. body'.
func Define(lhs, body any) *Binary { return binop(OpDefine, lhs, body) }

func (b *Binary) text(dst *strings.Builder, inline bool) {
	p := b.Op.prec()
	rinline := inline
	switch b.Op {
	case OpAssign:
		rinline = true
	case OpDefine:
		rinline = false
	}
	if prec(b.Left) < p {
		dst.WriteByte('(')
		b.Left.text(dst, inline)
		dst.WriteByte(')')
	} else {
		b.Left.text(dst, inline)
	}
	dst.WriteByte(' ')
	if inline {
		dst.WriteString(b.Op.inline())
	} else {
		dst.WriteString(b.Op.String())
	}
	dst.WriteByte(' ')
	if prec(b.Right) <= p || negative(b.Right) {
		dst.WriteByte('(')
		b.Right.text(dst, rinline)
		dst.WriteByte(')')
	} else {
		b.Right.text(dst, rinline)
	}
}

func (b *Binary) walk(v Visitor) {
	if b.Left != nil {
		Walk(v, b.Left)
	}
	if b.Right != nil {
		Walk(v, b.Right)
	}
}

func (b *Binary) rewrite(r Rewriter) Node {
	b.Left = Rewrite(r, b.Left)
	b.Right = Rewrite(r, b.Right)
	return b
}

func (b *Binary) Equals(x Node) bool {
	xb, ok := x.(*Binary)
	if !ok {
		return false
	}
	return b.Op == xb.Op && b.Left.Equals(xb.Left) && b.Right.Equals(xb.Right)
}

// Wrapped is a computed value that always renders
// enclosed in its own parentheses, the way the
// conditional-value functions embed their results
// into surrounding expressions.
type Wrapped struct {
	Inner Node
}

func (w *Wrapped) text(dst *strings.Builder, inline bool) {
	dst.WriteByte('(')
	w.Inner.text(dst, true)
	dst.WriteString("  )")
}

func (w *Wrapped) walk(v Visitor) {
	if w.Inner != nil {
		Walk(v, w.Inner)
	}
}

func (w *Wrapped) rewrite(r Rewriter) Node {
	w.Inner = Rewrite(r, w.Inner)
	return w
}

func (w *Wrapped) Equals(x Node) bool {
	xw, ok := x.(*Wrapped)
	return ok && w.Inner.Equals(xw.Inner)
}
