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

	"github.com/gmskit/gmskit/expr"
)

// Statement is one staged line of the generated program.
type Statement interface {
	// Text renders the statement without a trailing
	// newline.
	Text() string
}

// Assignment is a staged 'target = value;' statement.
type Assignment struct {
	root expr.Node
}

func (a *Assignment) Text() string {
	return expr.ToString(a.root) + ";"
}

// Definition is a staged equation definition:
// 'name(domain) .. lhs =e= rhs;'
type Definition struct {
	root expr.Node
}

func (d *Definition) Text() string {
	return expr.ToString(d.root) + ";"
}

// Raw is a verbatim program line, staged as-is.
type Raw string

func (r Raw) Text() string { return string(r) }

// AssignError reports an assignment target that is not
// a reference or a masked reference.
type AssignError struct {
	Target expr.Node
}

func (e *AssignError) Error() string {
	return fmt.Sprintf("cannot assign to %q", expr.ToString(e.Target))
}
