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

package gms

import (
	"fmt"
	"strings"

	"github.com/gmskit/gmskit/expr"
)

// EquationType selects the relation convention an
// equation definition is normalized to.
type EquationType int

const (
	EqRegular EquationType = iota
	EqNonbinding
	EqExternal
	EqCone
	EqBoolean
)

func (t EquationType) String() string {
	switch t {
	case EqRegular:
		return "regular"
	case EqNonbinding:
		return "nonbinding"
	case EqExternal:
		return "external"
	case EqCone:
		return "cone"
	case EqBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("<EquationType=%d>", int(t))
	}
}

// relation is the equation relation token definitions
// of this type are rooted at.
func (t EquationType) relation() expr.Op {
	switch t {
	case EqNonbinding:
		return expr.OpNonbinding
	case EqExternal:
		return expr.OpExternal
	case EqCone:
		return expr.OpCone
	case EqBoolean:
		return expr.OpBooleanEq
	}
	return expr.OpEq
}

// DefinitionError reports an equation body whose root
// cannot anchor a definition of the equation's type.
type DefinitionError struct {
	Equation string
	Op       expr.Op
}

func (e *DefinitionError) Error() string {
	if e.Op == expr.OpInvalid {
		return fmt.Sprintf("equation %q: definition body has no relation", e.Equation)
	}
	return fmt.Sprintf("equation %q: cannot define with relation %q", e.Equation, e.Op)
}

// Equation is a declared equation.
type Equation struct {
	symbol
	typ EquationType
}

// NewEquation declares an equation of the given type
// over the given domain and stages its declaration:
// Equation supply(i);
func NewEquation(m *Model, name string, typ EquationType, indexedBy ...any) (*Equation, error) {
	base, err := newSymbol(m, name, expr.KindEquation, indexedBy)
	if err != nil {
		return nil, err
	}
	e := &Equation{symbol: base, typ: typ}
	if err := m.register(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Describe attaches the declaration description.
func (e *Equation) Describe(text string) *Equation {
	e.descr = text
	return e
}

// Type is the declared equation type.
func (e *Equation) Type() EquationType { return e.typ }

func (e *Equation) Text() string {
	var dst strings.Builder
	dst.WriteString("Equation ")
	dst.WriteString(e.name)
	if len(e.domain) > 0 {
		writeDeclDomain(&dst, e.domain)
	}
	writeDescr(&dst, e.descr)
	dst.WriteByte(';')
	return dst.String()
}

// Define stages the defining statement of e over its
// declared domain: name(domain) .. body;
func (e *Equation) Define(body expr.Node) error {
	return e.define(expr.NewRef(e, e.domain...), body)
}

// DefineWhere stages a definition restricted by a
// dollar condition on the domain:
// name(domain)$(filter) .. body;
func (e *Equation) DefineWhere(filter any, body expr.Node) error {
	return e.define(expr.Where(expr.NewRef(e, e.domain...), filter), body)
}

// DefineOver stages a definition over an explicit index
// tuple, for defining on labels or subsets of the
// declared domain. The tuple length must match the
// declared dimension.
func (e *Equation) DefineOver(indices []any, body expr.Node) error {
	if len(indices) != len(e.domain) {
		return errsymbol(e.name, fmt.Sprintf("definition over %d indices, dimension is %d",
			len(indices), len(e.domain)))
	}
	return e.define(expr.NewRef(e, indices...), body)
}

func (e *Equation) define(lhs, body expr.Node) error {
	root, err := e.normalize(body)
	if err != nil {
		return err
	}
	e.model.stage(&Definition{root: expr.Define(lhs, root)})
	return nil
}

// normalize rewrites the root of a definition body to
// the relation demanded by the equation type. Regular
// equations keep =e= and turn <=/>= into =l=/=g=; the
// special types replace a relational root with their own
// token and complete a plain expression to 'body REL 0'.
func (e *Equation) normalize(body expr.Node) (expr.Node, error) {
	b, ok := body.(*expr.Binary)
	if e.typ == EqRegular {
		if !ok {
			return nil, &DefinitionError{Equation: e.name}
		}
		switch b.Op {
		case expr.OpEq:
			return b, nil
		case expr.OpLe:
			return expr.NewBinary(expr.OpLeq, b.Left, b.Right), nil
		case expr.OpGe:
			return expr.NewBinary(expr.OpGeq, b.Left, b.Right), nil
		}
		return nil, &DefinitionError{Equation: e.name, Op: b.Op}
	}
	rel := e.typ.relation()
	if ok {
		switch b.Op {
		case expr.OpEq, expr.OpLe, expr.OpGe:
			return expr.NewBinary(rel, b.Left, b.Right), nil
		case expr.OpLt, expr.OpGt, expr.OpNe,
			expr.OpLeq, expr.OpGeq, expr.OpNonbinding, expr.OpExternal,
			expr.OpCone, expr.OpBooleanEq, expr.OpAssign, expr.OpDefine:
			return nil, &DefinitionError{Equation: e.name, Op: b.Op}
		}
	}
	return expr.NewBinary(rel, body, expr.Integer(0)), nil
}

// Whole-symbol attribute projections; indexed forms go
// through At: supply.At(i).M()

// L is the level attribute: e.l
func (e *Equation) L() *expr.Ref { return expr.NewRef(e).L() }

// M is the marginal attribute: e.m
func (e *Equation) M() *expr.Ref { return expr.NewRef(e).M() }

// Lo is the lower bound: e.lo
func (e *Equation) Lo() *expr.Ref { return expr.NewRef(e).Lo() }

// Up is the upper bound: e.up
func (e *Equation) Up() *expr.Ref { return expr.NewRef(e).Up() }

// Scale is the scale factor: e.scale
func (e *Equation) Scale() *expr.Ref { return expr.NewRef(e).Scale() }

// Stage is the stochastic stage: e.stage
func (e *Equation) Stage() *expr.Ref { return expr.NewRef(e).Stage() }

// Range is the distance between the bounds: e.range
func (e *Equation) Range() *expr.Ref { return expr.NewRef(e).Range() }

// SlackLo is the slack to the lower bound: e.slacklo
func (e *Equation) SlackLo() *expr.Ref { return expr.NewRef(e).SlackLo() }

// SlackUp is the slack to the upper bound: e.slackup
func (e *Equation) SlackUp() *expr.Ref { return expr.NewRef(e).SlackUp() }

// Slack is the minimum slack to either bound: e.slack
func (e *Equation) Slack() *expr.Ref { return expr.NewRef(e).Slack() }

// Infeas is the infeasibility amount: e.infeas
func (e *Equation) Infeas() *expr.Ref { return expr.NewRef(e).Infeas() }
