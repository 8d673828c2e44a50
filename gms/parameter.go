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

// Parameter is a declared parameter.
type Parameter struct {
	symbol
}

// NewParameter declares a parameter over the given
// domain and stages its declaration. With no domain the
// parameter is scalar.
func NewParameter(m *Model, name string, indexedBy ...any) (*Parameter, error) {
	base, err := newSymbol(m, name, expr.KindParameter, indexedBy)
	if err != nil {
		return nil, err
	}
	p := &Parameter{symbol: base}
	if err := m.register(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Describe attaches the declaration description.
func (p *Parameter) Describe(text string) *Parameter {
	p.descr = text
	return p
}

func (p *Parameter) Text() string {
	var dst strings.Builder
	dst.WriteString("Parameter ")
	dst.WriteString(p.name)
	if len(p.domain) > 0 {
		writeDeclDomain(&dst, p.domain)
	}
	writeDescr(&dst, p.descr)
	if uncontrolled(p.domain) {
		// parameters without a controlling set need an
		// empty data block to exist before assignment
		dst.WriteString(" / /")
	}
	dst.WriteByte(';')
	return dst.String()
}

// uncontrolled reports a domain with no controlling
// sets: scalar, universe, or fully relaxed.
func uncontrolled(domain []any) bool {
	for i := range domain {
		if _, ok := domain[i].(string); !ok {
			return false
		}
	}
	return true
}
