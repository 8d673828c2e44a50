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

// VariableType selects the bound convention of a
// declared variable.
type VariableType int

const (
	VarFree VariableType = iota
	VarPositive
	VarNegative
	VarBinary
	VarInteger
)

func (t VariableType) String() string {
	switch t {
	case VarFree:
		return "free"
	case VarPositive:
		return "positive"
	case VarNegative:
		return "negative"
	case VarBinary:
		return "binary"
	case VarInteger:
		return "integer"
	default:
		return fmt.Sprintf("<VariableType=%d>", int(t))
	}
}

// Variable is a declared decision variable.
type Variable struct {
	symbol
	typ VariableType
}

// NewVariable declares a variable of the given type over
// the given domain and stages its declaration:
// free Variable x(i,j);
func NewVariable(m *Model, name string, typ VariableType, indexedBy ...any) (*Variable, error) {
	base, err := newSymbol(m, name, expr.KindVariable, indexedBy)
	if err != nil {
		return nil, err
	}
	v := &Variable{symbol: base, typ: typ}
	if err := m.register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Describe attaches the declaration description.
func (v *Variable) Describe(text string) *Variable {
	v.descr = text
	return v
}

// Type is the declared variable type.
func (v *Variable) Type() VariableType { return v.typ }

func (v *Variable) Text() string {
	var dst strings.Builder
	dst.WriteString(v.typ.String())
	dst.WriteString(" Variable ")
	dst.WriteString(v.name)
	if len(v.domain) > 0 {
		writeDeclDomain(&dst, v.domain)
	}
	writeDescr(&dst, v.descr)
	dst.WriteByte(';')
	return dst.String()
}

// Whole-symbol attribute projections; indexed forms go
// through At: x.At(i).L()

// L is the level attribute: x.l
func (v *Variable) L() *expr.Ref { return expr.NewRef(v).L() }

// M is the marginal attribute: x.m
func (v *Variable) M() *expr.Ref { return expr.NewRef(v).M() }

// Lo is the lower bound: x.lo
func (v *Variable) Lo() *expr.Ref { return expr.NewRef(v).Lo() }

// Up is the upper bound: x.up
func (v *Variable) Up() *expr.Ref { return expr.NewRef(v).Up() }

// Scale is the scale factor: x.scale
func (v *Variable) Scale() *expr.Ref { return expr.NewRef(v).Scale() }

// Fx fixes both bounds: x.fx
func (v *Variable) Fx() *expr.Ref { return expr.NewRef(v).Fx() }

// Prior is the branching priority: x.prior
func (v *Variable) Prior() *expr.Ref { return expr.NewRef(v).Prior() }

// Stage is the stochastic stage: x.stage
func (v *Variable) Stage() *expr.Ref { return expr.NewRef(v).Stage() }
