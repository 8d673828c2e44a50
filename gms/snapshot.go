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
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/gmskit/gmskit/expr"
)

var (
	snapEncoder *zstd.Encoder
	snapDecoder *zstd.Decoder
)

func init() {
	e, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	snapEncoder = e
	d, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	snapDecoder = d
}

// SnapshotError reports malformed snapshot contents.
type SnapshotError struct {
	Msg string
}

func (e *SnapshotError) Error() string { return "snapshot: " + e.Msg }

// snapshot is the serialized model metadata: the symbol
// registry plus the statement list, with declarations
// recorded by symbol name and everything else by its
// rendered text.
type snapshot struct {
	Name       string         `json:"name"`
	Symbols    []symbolMeta   `json:"symbols,omitempty"`
	Statements []statementRec `json:"statements,omitempty"`
}

type symbolMeta struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Type      string   `json:"type,omitempty"`
	Singleton bool     `json:"singleton,omitempty"`
	AliasWith string   `json:"alias_with,omitempty"`
	Domain    []string `json:"domain,omitempty"`
	Descr     string   `json:"description,omitempty"`
}

type statementRec struct {
	Declare string `json:"declare,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Snapshot serializes the model as zstd-compressed JSON
// metadata. Expression trees are not serialized; the
// rendered statement text is.
func (m *Model) Snapshot() ([]byte, error) {
	snap := snapshot{Name: m.name}
	for _, st := range m.stmts {
		if sym, ok := st.(Symbol); ok {
			snap.Symbols = append(snap.Symbols, metaFor(sym))
			snap.Statements = append(snap.Statements, statementRec{Declare: sym.Name()})
			continue
		}
		snap.Statements = append(snap.Statements, statementRec{Text: st.Text()})
	}
	raw, err := json.Marshal(&snap)
	if err != nil {
		return nil, err
	}
	return snapEncoder.EncodeAll(raw, nil), nil
}

func metaFor(sym Symbol) symbolMeta {
	meta := symbolMeta{Name: sym.Name(), Kind: sym.Kind().String()}
	switch s := sym.(type) {
	case *Set:
		meta.Singleton = s.singleton
		meta.Domain = domainNames(s.domain)
		meta.Descr = s.descr
	case *Alias:
		meta.AliasWith = s.with.Name()
	case *Parameter:
		meta.Domain = domainNames(s.domain)
		meta.Descr = s.descr
	case *Variable:
		meta.Type = s.typ.String()
		meta.Domain = domainNames(s.domain)
		meta.Descr = s.descr
	case *Equation:
		meta.Type = s.typ.String()
		meta.Domain = domainNames(s.domain)
		meta.Descr = s.descr
	}
	return meta
}

// Restore rebuilds a model from a snapshot. Declarations
// are re-declared through the constructors; every other
// statement replays verbatim, so the restored listing
// matches the snapshotted one exactly.
func Restore(data []byte, opts ...Option) (*Model, error) {
	raw, err := snapDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	metas := make(map[string]*symbolMeta, len(snap.Symbols))
	for i := range snap.Symbols {
		metas[snap.Symbols[i].Name] = &snap.Symbols[i]
	}
	m := New(append([]Option{WithName(snap.Name)}, opts...)...)
	for _, rec := range snap.Statements {
		if rec.Declare == "" {
			m.Stage(Raw(rec.Text))
			continue
		}
		meta, ok := metas[rec.Declare]
		if !ok {
			return nil, &SnapshotError{Msg: fmt.Sprintf("statement declares unknown symbol %q", rec.Declare)}
		}
		if err := m.declare(meta); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Model) declare(meta *symbolMeta) error {
	domain := m.resolveDomain(meta.Domain)
	switch meta.Kind {
	case "set":
		construct := NewSet
		if meta.Singleton {
			construct = NewSingletonSet
		}
		s, err := construct(m, meta.Name, domain...)
		if err != nil {
			return err
		}
		s.Describe(meta.Descr)
	case "alias":
		with, ok := m.Symbol(meta.AliasWith)
		if !ok {
			return &SnapshotError{Msg: fmt.Sprintf("alias %q references undeclared %q", meta.Name, meta.AliasWith)}
		}
		if _, err := NewAlias(m, meta.Name, with); err != nil {
			return err
		}
	case "universe":
		if _, err := NewUniverseAlias(m, meta.Name); err != nil {
			return err
		}
	case "parameter":
		p, err := NewParameter(m, meta.Name, domain...)
		if err != nil {
			return err
		}
		p.Describe(meta.Descr)
	case "variable":
		typ, err := parseVariableType(meta.Type)
		if err != nil {
			return err
		}
		v, err := NewVariable(m, meta.Name, typ, domain...)
		if err != nil {
			return err
		}
		v.Describe(meta.Descr)
	case "equation":
		typ, err := parseEquationType(meta.Type)
		if err != nil {
			return err
		}
		e, err := NewEquation(m, meta.Name, typ, domain...)
		if err != nil {
			return err
		}
		e.Describe(meta.Descr)
	default:
		return &SnapshotError{Msg: fmt.Sprintf("symbol %q has unknown kind %q", meta.Name, meta.Kind)}
	}
	return nil
}

// resolveDomain maps recorded member names back to
// declared symbols where possible; unknown names stay
// as plain strings, which declaration rendering relaxes
// the same way the original positions were.
func (m *Model) resolveDomain(names []string) []any {
	if len(names) == 0 {
		return nil
	}
	domain := make([]any, len(names))
	for i, name := range names {
		if name == expr.Universe {
			domain[i] = expr.Universe
			continue
		}
		if sym, ok := m.Symbol(name); ok && sym.Kind().SetLike() {
			domain[i] = sym
			continue
		}
		domain[i] = name
	}
	return domain
}

func parseVariableType(s string) (VariableType, error) {
	for t := VarFree; t <= VarInteger; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &SnapshotError{Msg: fmt.Sprintf("unknown variable type %q", s)}
}

func parseEquationType(s string) (EquationType, error) {
	for t := EqRegular; t <= EqBoolean; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &SnapshotError{Msg: fmt.Sprintf("unknown equation type %q", s)}
}
