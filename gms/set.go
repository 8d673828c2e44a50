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
	"strings"

	"github.com/gmskit/gmskit/expr"
)

// Set is a declared index set.
type Set struct {
	symbol
	singleton bool
}

// NewSet declares a set over the given domain and stages
// its declaration. With no domain the set spans the
// universe: Set i(*);
func NewSet(m *Model, name string, indexedBy ...any) (*Set, error) {
	if len(indexedBy) == 0 {
		indexedBy = []any{expr.Universe}
	}
	base, err := newSymbol(m, name, expr.KindSet, indexedBy)
	if err != nil {
		return nil, err
	}
	s := &Set{symbol: base}
	if err := m.register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSingletonSet declares a set holding at most one
// element: Singleton Set h(i);
func NewSingletonSet(m *Model, name string, indexedBy ...any) (*Set, error) {
	if len(indexedBy) == 0 {
		indexedBy = []any{expr.Universe}
	}
	if len(indexedBy) != 1 {
		return nil, errsymbol(name, "singleton sets are one-dimensional")
	}
	base, err := newSymbol(m, name, expr.KindSet, indexedBy)
	if err != nil {
		return nil, err
	}
	s := &Set{symbol: base, singleton: true}
	if err := m.register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Describe attaches the declaration description.
func (s *Set) Describe(text string) *Set {
	s.descr = text
	return s
}

func (s *Set) Text() string {
	var dst strings.Builder
	if s.singleton {
		dst.WriteString("Singleton ")
	}
	dst.WriteString("Set ")
	dst.WriteString(s.name)
	writeDeclDomain(&dst, s.domain)
	writeDescr(&dst, s.descr)
	dst.WriteByte(';')
	return dst.String()
}

// Alias is an alternative name for a declared set.
type Alias struct {
	symbol
	with Symbol
}

// NewAlias declares name as an alias of the set with;
// an alias of an alias resolves to the root set. The
// declaration renders with the aliased set first:
// Alias(i,j);
func NewAlias(m *Model, name string, with Symbol) (*Alias, error) {
	for {
		a, ok := with.(*Alias)
		if !ok {
			break
		}
		with = a.with
	}
	var domain []any
	switch w := with.(type) {
	case *Set:
		domain = w.domain
	case *UniverseAlias:
		domain = []any{expr.Universe}
	default:
		return nil, errsymbol(name, "aliases reference declared sets")
	}
	base, err := newSymbol(m, name, expr.KindAlias, domain)
	if err != nil {
		return nil, err
	}
	a := &Alias{symbol: base, with: with}
	if err := m.register(a); err != nil {
		return nil, err
	}
	return a, nil
}

// With is the set this alias renames.
func (a *Alias) With() Symbol { return a.with }

func (a *Alias) Text() string {
	return "Alias(" + a.with.Name() + "," + a.name + ");"
}

// UniverseAlias is an alias for the universe set:
// Alias(*,h);
type UniverseAlias struct {
	symbol
}

func NewUniverseAlias(m *Model, name string) (*UniverseAlias, error) {
	base, err := newSymbol(m, name, expr.KindUniverse, []any{expr.Universe})
	if err != nil {
		return nil, err
	}
	u := &UniverseAlias{symbol: base}
	if err := m.register(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *UniverseAlias) Text() string {
	return "Alias(*," + u.name + ");"
}
