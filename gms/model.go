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

// Package gms declares model symbols and stages the
// statements of a generated program: declarations,
// assignments, and equation definitions, rendered
// through the expr package in staging order.
package gms

import (
	"io"
	"strings"

	"github.com/dchest/siphash"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gmskit/gmskit/expr"
	"github.com/gmskit/gmskit/logger"
)

// fixed keys so fingerprints are comparable across runs
const (
	fingerprintK0 = 0x676d736b69742d30
	fingerprintK1 = 0x676d736b69742d31
)

// Model holds declared symbols and the ordered statement
// list of the generated program.
type Model struct {
	name    string
	log     zerolog.Logger
	symbols map[string]Symbol
	stmts   []Statement
}

// Option configures a Model.
type Option func(*Model)

// WithName names the model; unnamed models get a
// generated name.
func WithName(name string) Option {
	return func(m *Model) { m.name = name }
}

// WithLogger routes the model's debug logging.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Model) { m.log = log }
}

// New creates an empty model.
func New(opts ...Option) *Model {
	m := &Model{
		log:     logger.Logger(),
		symbols: make(map[string]Symbol),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.name == "" {
		m.name = autoName("m")
	}
	return m
}

// Name is the model name.
func (m *Model) Name() string { return m.name }

// Symbol looks up a declared symbol by name.
func (m *Model) Symbol(name string) (Symbol, bool) {
	s, ok := m.symbols[name]
	return s, ok
}

// Symbols lists the declared symbol names, sorted.
func (m *Model) Symbols() []string {
	names := maps.Keys(m.symbols)
	slices.Sort(names)
	return names
}

func (m *Model) register(s Symbol) error {
	if _, ok := m.symbols[s.Name()]; ok {
		return errsymbol(s.Name(), "already declared")
	}
	m.symbols[s.Name()] = s
	m.stage(s)
	return nil
}

// Stage appends a statement to the program as-is.
func (m *Model) Stage(st Statement) {
	m.stage(st)
}

func (m *Model) stage(st Statement) {
	m.stmts = append(m.stmts, st)
	m.log.Debug().Str("model", m.name).Str("statement", st.Text()).Msg("staged")
}

// Assign stages 'target = value;'. The target must be a
// reference or attribute reference, optionally masked.
func (m *Model) Assign(target, value any) error {
	root := expr.Assign(target, value)
	switch l := root.Left.(type) {
	case *expr.Ref:
	case *expr.Masked:
		if _, ok := l.Expr.(*expr.Ref); !ok {
			return &AssignError{Target: root.Left}
		}
	default:
		return &AssignError{Target: root.Left}
	}
	m.stage(&Assignment{root: root})
	return nil
}

// AssignWhere stages 'target$(filter) = value;'.
func (m *Model) AssignWhere(target, filter, value any) error {
	return m.Assign(expr.Where(target, filter), value)
}

// Listing renders the staged program: one statement per
// line with a trailing newline.
func (m *Model) Listing() string {
	var dst strings.Builder
	for i := range m.stmts {
		dst.WriteString(m.stmts[i].Text())
		dst.WriteByte('\n')
	}
	return dst.String()
}

// WriteTo writes the listing to w.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.Listing())
	return int64(n), err
}

// Fingerprint hashes the listing; identical programs
// produce identical fingerprints across runs.
func (m *Model) Fingerprint() uint64 {
	return siphash.Hash(fingerprintK0, fingerprintK1, []byte(m.Listing()))
}
