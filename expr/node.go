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
	"math"
	"strconv"
	"strings"
)

// Visitor is an interface that must
// be satisfied by the argument to Visit.
//
// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each of the children of node
// with the visitor w, followed by a call of w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(Node) Visitor
}

// Rewriter accepts a Node and returns
// a new node (or just its argument)
type Rewriter interface {
	// Rewrite is applied to nodes
	// in depth-first order, and each
	// node is re-written to use the
	// returned value.
	Rewrite(Node) Node

	// Walk is called during node traversal
	// and the returned Rewriter is used for
	// all the children of Node.
	// If the returned rewriter is nil,
	// then traversal does not proceed past Node.
	Walk(Node) Rewriter
}

type nonleaf interface {
	rewrite(r Rewriter) Node
}

// Rewrite recursively applies a Rewriter in depth-first order
func Rewrite(r Rewriter, n Node) Node {
	if n == nil {
		return nil
	}
	nl, ok := n.(nonleaf)
	if ok {
		rc := r.Walk(n)
		if rc != nil {
			n = nl.rewrite(rc)
		}
	}
	n = r.Rewrite(n)
	return n
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor w for
// each of the non-nil children of node, followed by a call of w.Visit(nil).
//
// (see also: ast.Walk)
func Walk(v Visitor, n Node) {
	w := v.Visit(n)
	if w != nil {
		n.walk(w)
		w.Visit(nil)
	}
}

// ToString returns the textual form
// of this AST node and its children
// in GAMS syntax.
func ToString(p Printable) string {
	if p == nil {
		return "<nil>"
	}
	var dst strings.Builder
	p.text(&dst, false)
	return dst.String()
}

// ToInline returns the textual form of
// this AST node and its children as it
// would appear inside a function argument
// list or a dollar condition, where the
// equation relations rewrite to their
// inline spellings (eq, le, ge).
func ToInline(p Printable) string {
	if p == nil {
		return "<nil>"
	}
	var dst strings.Builder
	p.text(&dst, true)
	return dst.String()
}

type Printable interface {
	// text should write the textual representation
	// of this node to dst; inline indicates that the
	// node appears in a position where equation
	// relations are spelled eq/le/ge
	text(dst *strings.Builder, inline bool)
}

// Node is an expression AST node
type Node interface {
	Printable
	// Equals returns whether this node
	// is equivalent to another node.
	// Nodes are Equal if they are
	// syntactically equivalent or correspond
	// to equal numeric values.
	Equals(Node) bool

	walk(Visitor)
}

// Equal returns whether a and b are equivalent.
// a or b may be nil.
func Equal(a, b Node) bool {
	if a == nil {
		return b == nil
	}
	return b != nil && a.Equals(b)
}

// SymbolKind describes what a declared
// symbol is, as far as expression
// construction is concerned.
type SymbolKind int

const (
	KindNone SymbolKind = iota
	KindSet
	KindAlias
	KindUniverse
	KindParameter
	KindVariable
	KindEquation
)

func (k SymbolKind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindAlias:
		return "alias"
	case KindUniverse:
		return "universe"
	case KindParameter:
		return "parameter"
	case KindVariable:
		return "variable"
	case KindEquation:
		return "equation"
	default:
		return fmt.Sprintf("<SymbolKind=%d>", int(k))
	}
}

// SetLike indicates whether a symbol of
// kind k carries set identity and may
// therefore index a domain.
func (k SymbolKind) SetLike() bool {
	return k == KindSet || k == KindAlias || k == KindUniverse
}

// Symbol is the view of a declared model symbol
// that expression construction needs: a stable
// name and the kind of the symbol.
//
// The concrete symbol types live in package gms.
type Symbol interface {
	Name() string
	Kind() SymbolKind
}

// Integer is a literal integer AST node
type Integer int64

func (i Integer) text(dst *strings.Builder, inline bool) {
	var buf [32]byte
	dst.Write(strconv.AppendInt(buf[:0], int64(i), 10))
}

func (i Integer) walk(v Visitor) {}

func (i Integer) Equals(e Node) bool {
	ei, ok := e.(Integer)
	if ok {
		return i == ei
	}
	ef, ok := e.(Float)
	if ok {
		return float64(i) == float64(ef)
	}
	return false
}

// Float is a literal float AST node.
//
// A Float keeps its floating-point identity
// in the output: Float(2) renders as 2.0,
// while Integer(2) renders as 2.
type Float float64

func (f Float) text(dst *strings.Builder, inline bool) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		dst.WriteString("inf")
		return
	case math.IsInf(v, -1):
		dst.WriteString("-inf")
		return
	case math.IsNaN(v):
		dst.WriteString("na")
		return
	}
	var buf [32]byte
	s := strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
	dst.Write(s)
	if !strings.ContainsAny(string(s), ".e") {
		dst.WriteString(".0")
	}
}

func (f Float) walk(v Visitor) {}

func (f Float) Equals(e Node) bool {
	ef, ok := e.(Float)
	if ok {
		return f == ef
	}
	ei, ok := e.(Integer)
	if ok {
		return float64(f) == float64(ei)
	}
	return false
}

// String is a literal label AST node.
// Labels render double-quoted.
type String string

func (s String) text(dst *strings.Builder, inline bool) {
	dst.WriteByte('"')
	dst.WriteString(string(s))
	dst.WriteByte('"')
}

func (s String) walk(v Visitor) {}

func (s String) Equals(e Node) bool {
	es, ok := e.(String)
	return ok && s == es
}

// Keyword is a bare modeling-language keyword
// used in value position (yes, no, inf, eps, na).
type Keyword string

const (
	Yes Keyword = "yes"
	No  Keyword = "no"
	Inf Keyword = "inf"
	Eps Keyword = "eps"
	NA  Keyword = "na"
)

func (k Keyword) text(dst *strings.Builder, inline bool) {
	dst.WriteString(string(k))
}

func (k Keyword) walk(v Visitor) {}

func (k Keyword) Equals(e Node) bool {
	ek, ok := e.(Keyword)
	return ok && k == ek
}

// asNode coerces v into a Node.
//
// Nodes pass through; Go numerics become literals;
// strings become quoted labels; bools become the
// yes/no keywords; declared symbols become scalar
// references to themselves. Anything else is a
// programming error and panics.
func asNode(v any) Node {
	switch v := v.(type) {
	case Node:
		return v
	case int:
		return Integer(v)
	case int64:
		return Integer(v)
	case float64:
		return Float(v)
	case string:
		return String(v)
	case bool:
		if v {
			return Yes
		}
		return No
	case Symbol:
		return NewRef(v)
	default:
		panic(fmt.Sprintf("expr: cannot use %T as an operand", v))
	}
}
