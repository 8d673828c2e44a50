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
)

// SyntaxError is the error type returned from
// Check when a tree is structurally invalid.
type SyntaxError struct {
	At  Node
	Msg string
}

// Error implements error
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%q: %s", ToString(s.At), s.Msg)
}

func errsyntax(at Node, msg string) *SyntaxError {
	return &SyntaxError{At: at, Msg: msg}
}

type checker interface {
	check() error
}

type checkwalk struct {
	errors []error
}

func (c *checkwalk) Visit(n Node) Visitor {
	if n == nil {
		return nil
	}
	ce, ok := n.(checker)
	if ok {
		err := ce.check()
		if err != nil {
			c.errors = append(c.errors, err)
			return nil
		}
	}
	return c
}

func combine(err []error) error {
	if len(err) == 1 {
		return err[0]
	}
	return fmt.Errorf("%w and %d other errors", err[0], len(err)-1)
}

// Check walks the AST given by n
// and performs rudimentary sanity-checking
// on all of the values in the tree.
func Check(n Node) error {
	c := &checkwalk{}
	Walk(c, n)
	if c.errors == nil {
		return nil
	}
	return combine(c.errors)
}

func (b *Binary) check() error {
	switch b.Op {
	case OpInvalid, OpNeg, OpNot:
		return errsyntax(b, fmt.Sprintf("%s is not a binary operator", b.Op))
	}
	if b.Op > OpDefine {
		return errsyntax(b, fmt.Sprintf("operator token %d outside the vocabulary", int(b.Op)))
	}
	return nil
}

func (u *Unary) check() error {
	if u.Op != OpNeg && u.Op != OpNot {
		return errsyntax(u, fmt.Sprintf("%s is not a unary operator", u.Op))
	}
	return nil
}

func (r *Ref) check() error {
	if r.Name == "" {
		return errsyntax(r, "reference to an unnamed symbol")
	}
	return nil
}

// aggMember indicates whether m may range an
// aggregation index: set-like members and masked
// set-valued references qualify.
func aggMember(m any) bool {
	if mm, ok := m.(*Masked); ok {
		if r, ok := mm.Expr.(*Ref); ok {
			return r.Kind.SetLike()
		}
		return false
	}
	return setlikeMember(m)
}

func (a *Agg) check() error {
	if len(a.Over) == 0 {
		return errsyntax(a, "aggregation over an empty index tuple")
	}
	for i := range a.Over {
		if !aggMember(a.Over[i]) {
			return errsyntax(a, fmt.Sprintf("index %d (%s) cannot range an aggregation", i, describeMember(a.Over[i])))
		}
	}
	return nil
}
