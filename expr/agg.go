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

// AggOp is one of the index-ranged aggregation operations
type AggOp int

const (
	AggSum AggOp = iota
	AggProd
	AggSMin
	AggSMax
)

func (a AggOp) String() string {
	switch a {
	case AggSum:
		return "sum"
	case AggProd:
		return "prod"
	case AggSMin:
		return "smin"
	case AggSMax:
		return "smax"
	default:
		return fmt.Sprintf("<AggOp=%d>", int(a))
	}
}

// Agg is an aggregation of a body expression
// over an index tuple: sum(i,body), prod((i,j),body).
// The index part and the body join with a bare comma,
// and the body renders inline.
type Agg struct {
	Op AggOp
	// Over is the index tuple: set-likes, masked
	// sets, or set-valued references.
	Over []any
	Body Node
}

// overList flattens the accepted index-part forms
// into a member list: a Domain or explicit slice
// contributes its members, anything else ranges a
// single index.
func overList(over any) []any {
	switch o := over.(type) {
	case *Domain:
		return o.members
	case []any:
		return o
	default:
		return []any{over}
	}
}

func newAgg(op AggOp, over, body any) *Agg {
	return &Agg{Op: op, Over: overList(over), Body: asNode(body)}
}

// Sum yields sum(over,body).
func Sum(over, body any) *Agg { return newAgg(AggSum, over, body) }

// Product yields prod(over,body).
func Product(over, body any) *Agg { return newAgg(AggProd, over, body) }

// Smin yields smin(over,body), the minimum of
// body over the index tuple.
func Smin(over, body any) *Agg { return newAgg(AggSMin, over, body) }

// Smax yields smax(over,body), the maximum of
// body over the index tuple.
func Smax(over, body any) *Agg { return newAgg(AggSMax, over, body) }

func (a *Agg) text(dst *strings.Builder, inline bool) {
	dst.WriteString(a.Op.String())
	dst.WriteByte('(')
	if len(a.Over) == 1 {
		writeMember(dst, a.Over[0])
	} else {
		dst.WriteByte('(')
		writeMembers(dst, a.Over)
		dst.WriteByte(')')
	}
	dst.WriteByte(',')
	a.Body.text(dst, true)
	dst.WriteByte(')')
}

func (a *Agg) walk(v Visitor) {
	for i := range a.Over {
		if n, ok := a.Over[i].(Node); ok {
			Walk(v, n)
		}
	}
	if a.Body != nil {
		Walk(v, a.Body)
	}
}

func (a *Agg) rewrite(r Rewriter) Node {
	for i := range a.Over {
		if n, ok := a.Over[i].(Node); ok {
			a.Over[i] = Rewrite(r, n)
		}
	}
	a.Body = Rewrite(r, a.Body)
	return a
}

func (a *Agg) Equals(x Node) bool {
	xa, ok := x.(*Agg)
	if !ok {
		return false
	}
	return a.Op == xa.Op && membersEqual(a.Over, xa.Over) && a.Body.Equals(xa.Body)
}
