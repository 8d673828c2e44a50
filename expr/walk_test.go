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
	"testing"
)

type countVisitor struct {
	n int
}

func (c *countVisitor) Visit(e Node) Visitor {
	if e == nil {
		return nil
	}
	c.n++
	return c
}

func TestWalk(t *testing.T) {
	i := set("i")
	x := vrb("x")
	a := par("a")

	// index tuples hold raw symbols, so only nested
	// expression nodes count as children
	testcases := []struct {
		in   Node
		want int
	}{
		{Integer(1), 1},
		{NewRef(x, i), 1},
		{Neg(NewRef(x, i)), 2},
		{Add(NewRef(a, i), Mul(NewRef(a, i), Integer(2))), 5},
		{Where(NewRef(x, i), Gt(NewRef(a, i), Integer(0))), 5},
		{Sum(i, NewRef(x, i)), 2},
		{NewRef(x, NewRef(set("t"), i)), 2},
	}
	for n := range testcases {
		c := &countVisitor{}
		Walk(c, testcases[n].in)
		if c.n != testcases[n].want {
			t.Errorf("testcase %d: visited %d nodes, want %d", n, c.n, testcases[n].want)
		}
	}
}

// zeroRef replaces every reference to the named symbol
// with the integer zero
type zeroRef struct {
	name string
}

func (z zeroRef) Rewrite(e Node) Node {
	if r, ok := e.(*Ref); ok && r.Name == z.name {
		return Integer(0)
	}
	return e
}

func (z zeroRef) Walk(e Node) Rewriter { return z }

func TestRewrite(t *testing.T) {
	x := par("x")
	y := par("y")

	in := Add(NewRef(x), Mul(NewRef(x), NewRef(y)))
	out := Rewrite(zeroRef{name: "x"}, in)
	got := ToString(out)
	want := "0 + 0 * y"
	if got != want {
		t.Errorf("got  %q", got)
		t.Errorf("want %q", want)
	}
}
