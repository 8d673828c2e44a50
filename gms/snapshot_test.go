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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmskit/gmskit/expr"
)

// buildPortfolio stages a model touching every symbol
// kind and statement form.
func buildPortfolio(t *testing.T) *Model {
	t.Helper()
	m := New(WithName("portfolio"))

	i, err := NewSet(m, "i")
	require.NoError(t, err)
	i.Describe("assets")
	h, err := NewSingletonSet(m, "h", i)
	require.NoError(t, err)
	h.Describe("benchmark asset")
	j, err := NewAlias(m, "j", i)
	require.NoError(t, err)
	_, err = NewUniverseAlias(m, "u")
	require.NoError(t, err)
	_, err = NewSet(m, "k", "groups")
	require.NoError(t, err)

	mu, err := NewParameter(m, "mu", i)
	require.NoError(t, err)
	mu.Describe("expected returns")
	cov, err := NewParameter(m, "cov", i, j)
	require.NoError(t, err)
	cov.Describe("return covariances")
	rf, err := NewParameter(m, "rf")
	require.NoError(t, err)
	rf.Describe("risk-free rate")

	w, err := NewVariable(m, "w", VarPositive, i)
	require.NoError(t, err)
	w.Describe("portfolio weights")
	r, err := NewVariable(m, "r", VarFree)
	require.NoError(t, err)
	r.Describe("portfolio return")

	bal, err := NewEquation(m, "bal", EqRegular)
	require.NoError(t, err)
	bal.Describe("budget constraint")
	ret, err := NewEquation(m, "ret", EqRegular)
	require.NoError(t, err)
	ret.Describe("return definition")

	require.NoError(t, m.Assign(rf, 0.03))
	require.NoError(t, bal.Define(expr.Eq(expr.Sum(i, w.At(i)), 1)))
	require.NoError(t, ret.Define(expr.Eq(r, expr.Sum(i, expr.Mul(mu.At(i), w.At(i))))))
	require.NoError(t, m.Assign(w.At("cash").Fx(), 0))
	m.Stage(Raw("display w.l;"))
	return m
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := buildPortfolio(t)

	data, err := m.Snapshot()
	require.NoError(t, err)

	// compressed snapshots start with the zstd frame magic
	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, data[:4])

	got, err := Restore(data)
	require.NoError(t, err)
	assert.Equal(t, "portfolio", got.Name())
	assert.Equal(t, m.Listing(), got.Listing())
	assert.Equal(t, m.Fingerprint(), got.Fingerprint())
	assert.Equal(t, m.Symbols(), got.Symbols())

	sym, ok := got.Symbol("w")
	require.True(t, ok)
	w, ok := sym.(*Variable)
	require.True(t, ok)
	assert.Equal(t, VarPositive, w.Type())

	sym, ok = got.Symbol("j")
	require.True(t, ok)
	alias, ok := sym.(*Alias)
	require.True(t, ok)
	assert.Equal(t, "i", alias.With().Name())

	sym, ok = got.Symbol("h")
	require.True(t, ok)
	assert.Equal(t, `Singleton Set h(i) "benchmark asset";`, sym.Text())

	// a restored model accepts further statements
	gamma, err := NewParameter(got, "gamma")
	require.NoError(t, err)
	require.NoError(t, got.Assign(gamma, 2))
	assert.Equal(t, "gamma = 2;", lastText(got))
}

func TestRestoreOptions(t *testing.T) {
	m := buildPortfolio(t)

	data, err := m.Snapshot()
	require.NoError(t, err)

	got, err := Restore(data, WithName("renamed"))
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name())
	assert.Equal(t, m.Listing(), got.Listing())
}

func TestRestoreErrors(t *testing.T) {
	_, err := Restore([]byte("not a snapshot"))
	require.Error(t, err)

	// a valid frame holding broken JSON
	_, err = Restore(snapEncoder.EncodeAll([]byte("{"), nil))
	require.Error(t, err)

	pack := func(snap *snapshot) []byte {
		raw, err := json.Marshal(snap)
		require.NoError(t, err)
		return snapEncoder.EncodeAll(raw, nil)
	}

	var serr *SnapshotError

	_, err = Restore(pack(&snapshot{
		Name:       "bad",
		Statements: []statementRec{{Declare: "ghost"}},
	}))
	require.ErrorAs(t, err, &serr)
	assert.ErrorContains(t, err, "unknown symbol")

	_, err = Restore(pack(&snapshot{
		Name:       "bad",
		Symbols:    []symbolMeta{{Name: "q", Kind: "tensor"}},
		Statements: []statementRec{{Declare: "q"}},
	}))
	require.ErrorAs(t, err, &serr)
	assert.ErrorContains(t, err, "unknown kind")

	_, err = Restore(pack(&snapshot{
		Name:       "bad",
		Symbols:    []symbolMeta{{Name: "v1", Kind: "variable", Type: "hyper"}},
		Statements: []statementRec{{Declare: "v1"}},
	}))
	require.ErrorAs(t, err, &serr)
	assert.ErrorContains(t, err, "unknown variable type")

	_, err = Restore(pack(&snapshot{
		Name:       "bad",
		Symbols:    []symbolMeta{{Name: "e1", Kind: "equation", Type: "soft"}},
		Statements: []statementRec{{Declare: "e1"}},
	}))
	require.ErrorAs(t, err, &serr)
	assert.ErrorContains(t, err, "unknown equation type")

	_, err = Restore(pack(&snapshot{
		Name:       "bad",
		Symbols:    []symbolMeta{{Name: "a2", Kind: "alias", AliasWith: "nope"}},
		Statements: []statementRec{{Declare: "a2"}},
	}))
	require.ErrorAs(t, err, &serr)
	assert.ErrorContains(t, err, "undeclared")
}
