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

// Ref is a reference to a declared symbol,
// optionally indexed by a tuple of set-likes
// and labels. A scalar reference renders as
// the bare symbol name; an indexed reference
// renders as name(i,j).
type Ref struct {
	// Name is the referent as it appears in the
	// output. Attribute projections bake their
	// suffix (and any index) into this field.
	Name string
	Kind SymbolKind
	// Index is the index tuple; nil for scalar
	// references. Members may be Symbols, set-valued
	// *Refs, label strings, or the universe literal *.
	Index []any
}

// NewRef returns a reference to sym at the
// given index tuple. The tuple is not checked
// here; symbol constructors validate arity
// before building references.
func NewRef(sym Symbol, index ...any) *Ref {
	return &Ref{Name: sym.Name(), Kind: sym.Kind(), Index: index}
}

func (r *Ref) text(dst *strings.Builder, inline bool) {
	dst.WriteString(r.Name)
	if len(r.Index) > 0 {
		dst.WriteByte('(')
		writeMembers(dst, r.Index)
		dst.WriteByte(')')
	}
}

func (r *Ref) walk(v Visitor) {
	for i := range r.Index {
		if n, ok := r.Index[i].(Node); ok {
			Walk(v, n)
		}
	}
}

func (r *Ref) rewrite(rw Rewriter) Node {
	for i := range r.Index {
		if n, ok := r.Index[i].(Node); ok {
			r.Index[i] = Rewrite(rw, n)
		}
	}
	return r
}

func (r *Ref) Equals(x Node) bool {
	xr, ok := x.(*Ref)
	if !ok {
		return false
	}
	return r.Name == xr.Name && r.Kind == xr.Kind && membersEqual(r.Index, xr.Index)
}

// attr projects an attribute of the referenced
// symbol: the index tuple is folded into the
// new referent name, so x(i).l is itself a
// scalar parameter-kind reference.
func (r *Ref) attr(name string) *Ref {
	var dst strings.Builder
	r.text(&dst, false)
	dst.WriteByte('.')
	dst.WriteString(name)
	return &Ref{Name: dst.String(), Kind: KindParameter}
}

// L is the level attribute of the referenced
// variable or equation.
func (r *Ref) L() *Ref { return r.attr("l") }

// M is the marginal attribute.
func (r *Ref) M() *Ref { return r.attr("m") }

// Lo is the lower-bound attribute.
func (r *Ref) Lo() *Ref { return r.attr("lo") }

// Up is the upper-bound attribute.
func (r *Ref) Up() *Ref { return r.attr("up") }

// Scale is the scale-factor attribute.
func (r *Ref) Scale() *Ref { return r.attr("scale") }

// Fx is the fixing attribute; assigning it sets
// both bounds of the referenced variable.
func (r *Ref) Fx() *Ref { return r.attr("fx") }

// Prior is the branching-priority attribute of a
// discrete variable.
func (r *Ref) Prior() *Ref { return r.attr("prior") }

// Stage is the stochastic-stage attribute.
func (r *Ref) Stage() *Ref { return r.attr("stage") }

// Range is the equation range attribute.
func (r *Ref) Range() *Ref { return r.attr("range") }

// SlackLo is the slack distance to the equation's
// lower bound.
func (r *Ref) SlackLo() *Ref { return r.attr("slacklo") }

// SlackUp is the slack distance to the equation's
// upper bound.
func (r *Ref) SlackUp() *Ref { return r.attr("slackup") }

// Slack is the minimum of the two slack distances.
func (r *Ref) Slack() *Ref { return r.attr("slack") }

// Infeas is the equation infeasibility attribute.
func (r *Ref) Infeas() *Ref { return r.attr("infeas") }
