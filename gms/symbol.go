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
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gmskit/gmskit/expr"
)

// Symbol is a declared model symbol: it has expression
// identity and knows its own declaration statement.
type Symbol interface {
	expr.Symbol
	Statement
}

// SymbolError reports a symbol that could not be declared.
type SymbolError struct {
	Name string
	Msg  string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %q: %s", e.Name, e.Msg)
}

func errsymbol(name, msg string) error {
	return &SymbolError{Name: name, Msg: msg}
}

// symbol carries the declaration state shared by all
// symbol types. The domain holds the members given at
// declaration: set-like symbols, the universe literal,
// or plain strings (relaxed positions).
type symbol struct {
	model  *Model
	name   string
	kind   expr.SymbolKind
	domain []any
	descr  string
}

func newSymbol(m *Model, name string, kind expr.SymbolKind, domain []any) (symbol, error) {
	if name == "" {
		name = autoName(kind.String()[:1])
	}
	if err := checkName(name); err != nil {
		return symbol{}, err
	}
	if err := checkDeclDomain(name, domain); err != nil {
		return symbol{}, err
	}
	return symbol{model: m, name: name, kind: kind, domain: domain}, nil
}

func (s *symbol) Name() string          { return s.name }
func (s *symbol) Kind() expr.SymbolKind { return s.kind }

// Dim is the dimension of the declared domain;
// zero for scalar symbols.
func (s *symbol) Dim() int { return len(s.domain) }

// At returns a reference to the symbol at the given
// index tuple. The tuple length must match the declared
// dimension; a mismatch is a programming error.
func (s *symbol) At(index ...any) *expr.Ref {
	if len(index) != len(s.domain) {
		panic(fmt.Sprintf("gms: %s has dimension %d, referenced with %d indices",
			s.name, len(s.domain), len(index)))
	}
	return expr.NewRef(s, index...)
}

// autoName generates a name for symbols and models
// declared without one.
func autoName(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func checkName(name string) error {
	if !identStart(name[0]) {
		return errsymbol(name, "name must start with a letter")
	}
	for i := 1; i < len(name); i++ {
		if !identPart(name[i]) {
			return errsymbol(name, "name contains an invalid character")
		}
	}
	if len(name) > 63 {
		return errsymbol(name, "name is longer than 63 characters")
	}
	return nil
}

func identStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func identPart(c byte) bool {
	return identStart(c) || c >= '0' && c <= '9' || c == '_'
}

// checkDeclDomain validates a declaration domain:
// members are set-like symbols, the universe literal,
// or plain strings that relax their position.
func checkDeclDomain(name string, domain []any) error {
	for i := range domain {
		switch m := domain[i].(type) {
		case string:
		case expr.Symbol:
			if !m.Kind().SetLike() {
				return errsymbol(name, fmt.Sprintf("domain member %d (%s) is not a set", i, m.Name()))
			}
		default:
			return errsymbol(name, fmt.Sprintf("domain member %d has unsupported type %T", i, m))
		}
	}
	return nil
}

// writeDeclDomain renders a declaration domain list.
// Plain strings other than the universe literal render
// relaxed, as the universe.
func writeDeclDomain(dst *strings.Builder, domain []any) {
	dst.WriteByte('(')
	for i := range domain {
		if i > 0 {
			dst.WriteByte(',')
		}
		switch m := domain[i].(type) {
		case string:
			dst.WriteByte('*')
		case expr.Symbol:
			dst.WriteString(m.Name())
		}
	}
	dst.WriteByte(')')
}

func writeDescr(dst *strings.Builder, descr string) {
	if descr != "" {
		dst.WriteString(` "`)
		dst.WriteString(descr)
		dst.WriteByte('"')
	}
}

// domainNames flattens a declared domain to the member
// names recorded in snapshots.
func domainNames(domain []any) []string {
	if len(domain) == 0 {
		return nil
	}
	names := make([]string, len(domain))
	for i := range domain {
		switch m := domain[i].(type) {
		case string:
			names[i] = m
		case expr.Symbol:
			names[i] = m.Name()
		}
	}
	return names
}
