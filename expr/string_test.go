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

// testSym is a minimal Symbol for expression tests;
// the declared symbol types live in package gms.
type testSym struct {
	name string
	kind SymbolKind
}

func (s testSym) Name() string     { return s.name }
func (s testSym) Kind() SymbolKind { return s.kind }

func set(name string) testSym { return testSym{name, KindSet} }
func par(name string) testSym { return testSym{name, KindParameter} }
func vrb(name string) testSym { return testSym{name, KindVariable} }

// ref builds an indexed reference to a parameter-kind
// symbol unless a kind is implied by the constructor used
func ref(sym testSym, index ...any) *Ref {
	return NewRef(sym, index...)
}

func TestString(t *testing.T) {
	i := set("i")
	j := set("j")
	o := set("o")
	p := set("p")
	tt := set("t")

	rd := par("rd")
	a := par("a")
	b := par("b")
	c := par("c")
	x := vrb("x")
	y := vrb("y")
	sumc := vrb("sumc")

	testcases := []struct {
		in   Node
		want string
	}{
		{
			Integer(2),
			"2",
		},
		{
			Integer(-7),
			"-7",
		},
		{
			Float(2),
			"2.0",
		},
		{
			Float(0.0084),
			"0.0084",
		},
		{
			Float(-2.5),
			"-2.5",
		},
		{
			String("b"),
			`"b"`,
		},
		{
			Yes,
			"yes",
		},
		{
			Neg(ref(x, i)),
			"-x(i)",
		},
		{
			Neg(Add(ref(a, i), ref(b, i))),
			"-(a(i) + b(i))",
		},
		{
			Add(Float(2.48), Mul(Float(0.0084), ref(rd, i, j))),
			"2.48 + 0.0084 * rd(i,j)",
		},
		{
			// parenthesize when left-associativity
			// would lead to a different expression
			Mul(Add(ref(a, i), ref(b, i)), ref(c, i)),
			"(a(i) + b(i)) * c(i)",
		},
		{
			Add(ref(a, i), Add(ref(b, i), ref(c, i))),
			"a(i) + (b(i) + c(i))",
		},
		{
			Add(Add(ref(a, i), ref(b, i)), ref(c, i)),
			"a(i) + b(i) + c(i)",
		},
		{
			Sub(ref(a, i), Sub(ref(b, i), ref(c, i))),
			"a(i) - (b(i) - c(i))",
		},
		{
			Div(Mul(Integer(90), ref(rd, i, j)), Integer(1000)),
			"90 * rd(i,j) / 1000",
		},
		{
			Div(ref(a, i), Mul(ref(b, i), ref(c, i))),
			"a(i) / (b(i) * c(i))",
		},
		{
			Pow(Neg(ref(x, i)), Integer(2)),
			"(-x(i)) ** 2",
		},
		{
			Pow(ref(a, i), Pow(ref(b, i), Integer(2))),
			"a(i) ** (b(i) ** 2)",
		},
		{
			Mul(ref(a, i), Integer(-1)),
			"a(i) * (-1)",
		},
		{
			Add(ref(a, i), Neg(ref(b, i))),
			"a(i) + (-b(i))",
		},
		{
			Eq(ref(x, i), Integer(1)),
			"x(i) =e= 1",
		},
		{
			Le(ref(sumc, o, p), Float(0.5)),
			"sumc(o,p) <= 0.5",
		},
		{
			Ne(Ord(tt), Card(tt)),
			"ord(t) ne card(t)",
		},
		{
			Le(Add(ref(x, i), ref(y, i)), Integer(5)),
			"x(i) + y(i) <= 5",
		},
		{
			Eq(ref(c, i), Eq(ref(a, i), ref(b, i))),
			"c(i) =e= (a(i) =e= b(i))",
		},
		{
			Or(And(ref(a, i), ref(b, i)), ref(c, i)),
			"a(i) and b(i) or c(i)",
		},
		{
			And(ref(a, i), Or(ref(b, i), ref(c, i))),
			"a(i) and (b(i) or c(i))",
		},
		{
			// relational binds tighter than and
			And(Lt(ref(a, i), Integer(3)), Gt(ref(a, i), Integer(0))),
			"a(i) < 3 and a(i) > 0",
		},
		{
			Not(SameAs(i, j)),
			"not sameas(i, j)",
		},
		{
			Not(And(ref(a, i), ref(b, i))),
			"not (a(i) and b(i))",
		},
		{
			Where(ref(x, i), Gt(ref(y, i), Integer(0))),
			"x(i)$(y(i) > 0)",
		},
		{
			// filters render without enforcing boolean shape
			Where(Add(Float(2.48), Mul(Float(0.0084), ref(rd, i, j))), ref(rd, i, j)),
			"(2.48 + 0.0084 * rd(i,j))$(rd(i,j))",
		},
		{
			Where(Where(ref(x, i), ref(a, i)), ref(b, i)),
			"x(i)$(a(i))$(b(i))",
		},
		{
			// masked owners parenthesize only unary and
			// binary expressions
			Where(Neg(ref(x, i)), ref(a, i)),
			"(-x(i))$(a(i))",
		},
		{
			Add(ref(x, i), Where(ref(y, i), ref(a, i))),
			"x(i) + y(i)$(a(i))",
		},
		{
			// equation relations spell eq/le/ge inside filters
			Where(ref(x, i), Eq(Ord(i), Card(i))),
			"x(i)$(ord(i) eq card(i))",
		},
		{
			Sum(i, ref(rd, i, j)),
			"sum(i,rd(i,j))",
		},
		{
			Sum(Where(NewRef(tt, i), Le(Ord(tt), Integer(5))), ref(x, tt)),
			"sum(t(i)$(ord(t) <= 5),x(t))",
		},
		{
			Sum(i, Eq(ref(x, i), Integer(1))),
			"sum(i,x(i) eq 1)",
		},
		{
			Smax(j, ref(rd, i, j)),
			"smax(j,rd(i,j))",
		},
		{
			Product(i, ref(a, i)),
			"prod(i,a(i))",
		},
		{
			IfThen(Eq(ref(a, i), ref(b, i)), Integer(1), Integer(0)),
			"(ifthen(a(i) eq b(i), 1, 0)  )",
		},
		{
			Sqrt(ref(a, i)),
			"sqrt(a(i))",
		},
		{
			Power(ref(a, i), Integer(3)),
			"power(a(i), 3)",
		},
		{
			Uniform(Integer(0), Integer(1)),
			"uniform(0, 1)",
		},
		{
			Round(ref(a, i), Integer(2)),
			"round(a(i), 2)",
		},
		{
			Min(ref(a, i), ref(b, i), Integer(0)),
			"min(a(i), b(i), 0)",
		},
		{
			ref(x, "b"),
			`x("b")`,
		},
		{
			NewRef(x, i, Universe),
			"x(i,*)",
		},
		{
			NewRef(x, i).L(),
			"x(i).l",
		},
		{
			NewRef(x).Fx(),
			"x.fx",
		},
		{
			Assign(NewRef(x, i).Up(), Integer(100)),
			"x(i).up = 100",
		},
		{
			// assignment right-hand sides render inline
			Assign(ref(a, i), Eq(ref(b, i), ref(c, i))),
			"a(i) = b(i) eq c(i)",
		},
		{
			Assign(ref(a, i), Integer(-1)),
			"a(i) = (-1)",
		},
	}
	for i := range testcases {
		got := ToString(testcases[i].in)
		want := testcases[i].want
		if got != want {
			t.Errorf("testcase %d: got  %q", i, got)
			t.Errorf("testcase %d: want %q", i, want)
		}
		if !testcases[i].in.Equals(testcases[i].in) {
			t.Errorf("testcase %d: not self-equal", i)
		}
	}
}

// the full definition body that an equation statement
// stages: every rendering rule at once
func TestDefinitionBody(t *testing.T) {
	o := set("o")
	p := set("p")
	defop := testSym{"defopLS", KindEquation}
	op := vrb("op")
	sumc := vrb("sumc")

	body := Define(
		NewRef(defop, o, p),
		Eq(NewRef(op, o, p), IfThen(Ge(NewRef(sumc, o, p), Float(0.5)), Integer(1), Integer(0))),
	)
	got := ToString(body)
	want := "defopLS(o,p) .. op(o,p) =e= (ifthen(sumc(o,p) >= 0.5, 1, 0)  )"
	if got != want {
		t.Errorf("got  %q", got)
		t.Errorf("want %q", want)
	}
}

func TestToInline(t *testing.T) {
	i := set("i")
	a := par("a")
	b := par("b")

	testcases := []struct {
		in   Node
		want string
	}{
		{
			Eq(NewRef(a, i), NewRef(b, i)),
			"a(i) eq b(i)",
		},
		{
			NewBinary(OpLeq, NewRef(a, i), NewRef(b, i)),
			"a(i) le b(i)",
		},
		{
			NewBinary(OpGeq, NewRef(a, i), NewRef(b, i)),
			"a(i) ge b(i)",
		},
		{
			Le(NewRef(a, i), NewRef(b, i)),
			"a(i) <= b(i)",
		},
		{
			Ne(NewRef(a, i), NewRef(b, i)),
			"a(i) ne b(i)",
		},
	}
	for n := range testcases {
		got := ToInline(testcases[n].in)
		if got != testcases[n].want {
			t.Errorf("testcase %d: got %q, want %q", n, got, testcases[n].want)
		}
	}
}

func TestFloatFormat(t *testing.T) {
	testcases := []struct {
		in   Node
		want string
	}{
		{Float(2), "2.0"},
		{Float(2.5), "2.5"},
		{Float(-3), "-3.0"},
		{Float(1e21), "1e+21"},
		{Float(0.0084), "0.0084"},
		{Integer(2), "2"},
		{Integer(0), "0"},
	}
	for n := range testcases {
		got := ToString(testcases[n].in)
		if got != testcases[n].want {
			t.Errorf("testcase %d: got %q, want %q", n, got, testcases[n].want)
		}
	}
}
