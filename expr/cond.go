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
	"strings"
)

// Masked is a dollar-conditioned expression:
// the owner contributes its value only where
// the filter holds. It renders as owner$(filter).
type Masked struct {
	// Expr is the masked value.
	Expr Node
	// Filter is the dollar condition. It should
	// render to a boolean-valued fragment; this is
	// not checked here, and a non-boolean filter
	// surfaces as a compile error downstream.
	Filter Node
}

// Where masks owner with filter, yielding
// owner$(filter). Masking an already-masked
// expression nests: x$(a)$(b).
func Where(owner, filter any) *Masked {
	return &Masked{Expr: asNode(owner), Filter: asNode(filter)}
}

func (m *Masked) text(dst *strings.Builder, inline bool) {
	switch m.Expr.(type) {
	case *Binary, *Unary:
		dst.WriteByte('(')
		m.Expr.text(dst, inline)
		dst.WriteByte(')')
	default:
		m.Expr.text(dst, inline)
	}
	dst.WriteString("$(")
	m.Filter.text(dst, true)
	dst.WriteByte(')')
}

func (m *Masked) walk(v Visitor) {
	if m.Expr != nil {
		Walk(v, m.Expr)
	}
	if m.Filter != nil {
		Walk(v, m.Filter)
	}
}

func (m *Masked) rewrite(r Rewriter) Node {
	m.Expr = Rewrite(r, m.Expr)
	m.Filter = Rewrite(r, m.Filter)
	return m
}

func (m *Masked) Equals(x Node) bool {
	xm, ok := x.(*Masked)
	return ok && m.Expr.Equals(xm.Expr) && m.Filter.Equals(xm.Filter)
}
