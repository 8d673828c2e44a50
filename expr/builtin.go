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

// BuiltinOp identifies an intrinsic function.
type BuiltinOp int

const (
	FnAbs BuiltinOp = iota
	FnCeil
	FnFloor
	FnRound
	FnMod
	FnMin
	FnMax
	FnPower
	FnSign
	FnSqr
	FnSqrt
	FnExp
	FnLog
	FnLog2
	FnLog10
	FnSin
	FnCos
	FnTan
	FnArctan
	FnErrorf
	FnGamma
	FnBeta
	FnEntropy
	FnUniform
	FnUniformInt
	FnNormal
	FnSameas
	FnOrd
	FnCard
	FnIfthen

	maxBuiltin
)

// builtin information; used in the builtin LUT
type fninfo struct {
	// text is the function name as it appears in output
	text string
	// minArgs/maxArgs bound the accepted argument count;
	// maxArgs < 0 means no upper bound
	minArgs, maxArgs int
}

var fnInfo = [maxBuiltin]fninfo{
	FnAbs:        {text: "abs", minArgs: 1, maxArgs: 1},
	FnCeil:       {text: "ceil", minArgs: 1, maxArgs: 1},
	FnFloor:      {text: "floor", minArgs: 1, maxArgs: 1},
	FnRound:      {text: "round", minArgs: 1, maxArgs: 2},
	FnMod:        {text: "mod", minArgs: 2, maxArgs: 2},
	FnMin:        {text: "min", minArgs: 2, maxArgs: -1},
	FnMax:        {text: "max", minArgs: 2, maxArgs: -1},
	FnPower:      {text: "power", minArgs: 2, maxArgs: 2},
	FnSign:       {text: "sign", minArgs: 1, maxArgs: 1},
	FnSqr:        {text: "sqr", minArgs: 1, maxArgs: 1},
	FnSqrt:       {text: "sqrt", minArgs: 1, maxArgs: 1},
	FnExp:        {text: "exp", minArgs: 1, maxArgs: 1},
	FnLog:        {text: "log", minArgs: 1, maxArgs: 1},
	FnLog2:       {text: "log2", minArgs: 1, maxArgs: 1},
	FnLog10:      {text: "log10", minArgs: 1, maxArgs: 1},
	FnSin:        {text: "sin", minArgs: 1, maxArgs: 1},
	FnCos:        {text: "cos", minArgs: 1, maxArgs: 1},
	FnTan:        {text: "tan", minArgs: 1, maxArgs: 1},
	FnArctan:     {text: "arctan", minArgs: 1, maxArgs: 1},
	FnErrorf:     {text: "errorf", minArgs: 1, maxArgs: 1},
	FnGamma:      {text: "gamma", minArgs: 1, maxArgs: 1},
	FnBeta:       {text: "beta", minArgs: 2, maxArgs: 2},
	FnEntropy:    {text: "entropy", minArgs: 1, maxArgs: 1},
	FnUniform:    {text: "uniform", minArgs: 2, maxArgs: 2},
	FnUniformInt: {text: "uniformint", minArgs: 2, maxArgs: 2},
	FnNormal:     {text: "normal", minArgs: 2, maxArgs: 2},
	FnSameas:     {text: "sameas", minArgs: 2, maxArgs: 2},
	FnOrd:        {text: "ord", minArgs: 1, maxArgs: 1},
	FnCard:       {text: "card", minArgs: 1, maxArgs: 1},
	FnIfthen:     {text: "ifthen", minArgs: 3, maxArgs: 3},
}

func (f BuiltinOp) String() string {
	if f >= 0 && f < maxBuiltin {
		return fnInfo[f].text
	}
	return "UNKNOWN"
}

// Builtin is a Node that represents
// a call to an intrinsic function
type Builtin struct {
	Func BuiltinOp
	Args []Node
}

// Call yields fn(args...).
// It panics if the argument count is outside
// the arity of fn; hand-built Builtin values
// are validated by Check instead.
func Call(fn BuiltinOp, args ...any) *Builtin {
	nodes := make([]Node, len(args))
	for i := range args {
		nodes[i] = asNode(args[i])
	}
	b := &Builtin{Func: fn, Args: nodes}
	if err := b.check(); err != nil {
		panic(err)
	}
	return b
}

func (b *Builtin) info() *fninfo {
	if b.Func >= 0 && b.Func < maxBuiltin {
		return &fnInfo[b.Func]
	}
	return nil
}

func (b *Builtin) check() error {
	info := b.info()
	if info == nil {
		return errsyntax(b, "unknown builtin function")
	}
	n := len(b.Args)
	if n < info.minArgs {
		return errsyntax(b, fmt.Sprintf("%s expects at least %d argument(s), got %d", info.text, info.minArgs, n))
	}
	if info.maxArgs >= 0 && n > info.maxArgs {
		return errsyntax(b, fmt.Sprintf("%s expects at most %d argument(s), got %d", info.text, info.maxArgs, n))
	}
	return nil
}

func (b *Builtin) text(dst *strings.Builder, inline bool) {
	dst.WriteString(b.Func.String())
	dst.WriteByte('(')
	for i := range b.Args {
		b.Args[i].text(dst, true)
		if i != len(b.Args)-1 {
			dst.WriteString(", ")
		}
	}
	dst.WriteByte(')')
}

func (b *Builtin) walk(v Visitor) {
	for i := range b.Args {
		Walk(v, b.Args[i])
	}
}

func (b *Builtin) rewrite(r Rewriter) Node {
	for i := range b.Args {
		b.Args[i] = Rewrite(r, b.Args[i])
	}
	return b
}

func (b *Builtin) Equals(x Node) bool {
	xb, ok := x.(*Builtin)
	if ok && b.Func == xb.Func && len(b.Args) == len(xb.Args) {
		for i := range b.Args {
			if !b.Args[i].Equals(xb.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func Abs(x any) *Builtin     { return Call(FnAbs, x) }
func Ceil(x any) *Builtin    { return Call(FnCeil, x) }
func Floor(x any) *Builtin   { return Call(FnFloor, x) }
func Mod(a, b any) *Builtin  { return Call(FnMod, a, b) }
func Sign(x any) *Builtin    { return Call(FnSign, x) }
func Sqr(x any) *Builtin     { return Call(FnSqr, x) }
func Sqrt(x any) *Builtin    { return Call(FnSqrt, x) }
func Exp(x any) *Builtin     { return Call(FnExp, x) }
func Log(x any) *Builtin     { return Call(FnLog, x) }
func Log2(x any) *Builtin    { return Call(FnLog2, x) }
func Log10(x any) *Builtin   { return Call(FnLog10, x) }
func Sin(x any) *Builtin     { return Call(FnSin, x) }
func Cos(x any) *Builtin     { return Call(FnCos, x) }
func Tan(x any) *Builtin     { return Call(FnTan, x) }
func Arctan(x any) *Builtin  { return Call(FnArctan, x) }
func Errorf(x any) *Builtin  { return Call(FnErrorf, x) }
func Gamma(x any) *Builtin   { return Call(FnGamma, x) }
func Beta(a, b any) *Builtin { return Call(FnBeta, a, b) }
func Entropy(x any) *Builtin { return Call(FnEntropy, x) }

// Round yields round(x) or, with a digit count,
// round(x, d).
func Round(x any, digits ...any) *Builtin {
	return Call(FnRound, append([]any{x}, digits...)...)
}

// Min yields min(args...); at least two arguments.
func Min(args ...any) *Builtin { return Call(FnMin, args...) }

// Max yields max(args...); at least two arguments.
func Max(args ...any) *Builtin { return Call(FnMax, args...) }

// Power yields power(base, exponent), the
// function form of the ** operator.
func Power(base, exponent any) *Builtin { return Call(FnPower, base, exponent) }

// Uniform yields uniform(lo, hi).
func Uniform(lo, hi any) *Builtin { return Call(FnUniform, lo, hi) }

// UniformInt yields uniformint(lo, hi).
func UniformInt(lo, hi any) *Builtin { return Call(FnUniformInt, lo, hi) }

// Normal yields normal(mean, stddev).
func Normal(mean, stddev any) *Builtin { return Call(FnNormal, mean, stddev) }

// SameAs yields sameas(a, b); label arguments
// render quoted.
func SameAs(a, b any) *Builtin { return Call(FnSameas, a, b) }

// Ord yields ord(s) for a set-like s.
func Ord(s any) *Builtin { return Call(FnOrd, s) }

// Card yields card(s) for a set-like s.
func Card(s any) *Builtin { return Call(FnCard, s) }

// IfThen yields the conditional value
// ifthen(cond, ifTrue, ifFalse). The condition
// renders inline (eq/le/ge spellings), and the
// result embeds into surrounding expressions
// enclosed in its own parentheses.
func IfThen(cond, ifTrue, ifFalse any) *Wrapped {
	return &Wrapped{Inner: Call(FnIfthen, cond, ifTrue, ifFalse)}
}
