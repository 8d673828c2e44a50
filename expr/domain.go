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

	"golang.org/x/exp/slices"
)

// Universe is the wildcard domain member;
// it matches any label and renders as *.
const Universe = "*"

// Domain is a validated index tuple of two or
// more set-like entities, used to range an
// aggregation or a mask over several indices
// at once. It renders as (i,j).
type Domain struct {
	members []any
}

// MakeDomain builds a Domain from the given
// members. Every member must be set-like (a
// Set, Alias, or set-valued reference) or the
// Universe literal; single-index call sites
// pass the set itself and never build a Domain.
func MakeDomain(members ...any) (*Domain, error) {
	if len(members) < 2 {
		return nil, &DomainError{Kind: TooFewMembers, Count: len(members)}
	}
	for i := range members {
		if !setlikeMember(members[i]) {
			return nil, &DomainError{Kind: InvalidMember, Pos: i, Member: members[i]}
		}
	}
	return &Domain{members: members}, nil
}

// String renders the index tuple: (i,j).
func (d *Domain) String() string {
	var dst strings.Builder
	dst.WriteByte('(')
	writeMembers(&dst, d.members)
	dst.WriteByte(')')
	return dst.String()
}

// setlikeMember indicates whether m carries set
// identity: declared sets and aliases, set-valued
// references, and the universe literal qualify;
// plain labels do not.
func setlikeMember(m any) bool {
	switch m := m.(type) {
	case string:
		return m == Universe
	case *Ref:
		return m.Kind.SetLike()
	case Symbol:
		return m.Kind().SetLike()
	}
	return false
}

// writeMembers renders an index tuple body
// (without the enclosing parentheses), joining
// members with a bare comma.
func writeMembers(dst *strings.Builder, members []any) {
	for i := range members {
		if i > 0 {
			dst.WriteByte(',')
		}
		writeMember(dst, members[i])
	}
}

// writeMember renders one index member: the
// universe literal bare, labels double-quoted,
// symbols by name, and node members (set-valued
// or masked references) by their full text.
func writeMember(dst *strings.Builder, m any) {
	switch m := m.(type) {
	case string:
		if m == Universe {
			dst.WriteByte('*')
			return
		}
		dst.WriteByte('"')
		dst.WriteString(m)
		dst.WriteByte('"')
	case Node:
		m.text(dst, false)
	case Symbol:
		dst.WriteString(m.Name())
	default:
		// invalid members are caught by MakeDomain and
		// Check; render a placeholder rather than panic
		// so error text can include the tuple
		fmt.Fprintf(dst, "<%T>", m)
	}
}

func memberEqual(a, b any) bool {
	switch a := a.(type) {
	case string:
		bs, ok := b.(string)
		return ok && a == bs
	case Node:
		bn, ok := b.(Node)
		return ok && a.Equals(bn)
	case Symbol:
		bsym, ok := b.(Symbol)
		return ok && a.Name() == bsym.Name() && a.Kind() == bsym.Kind()
	}
	return false
}

func membersEqual(a, b []any) bool {
	return slices.EqualFunc(a, b, memberEqual)
}

// DomainErrorKind discriminates the ways an
// index tuple can be malformed.
type DomainErrorKind int

const (
	// TooFewMembers: a Domain needs at least two entities.
	TooFewMembers DomainErrorKind = iota
	// InvalidMember: a member without set identity.
	InvalidMember
)

// DomainError is returned when an index tuple
// cannot be constructed.
type DomainError struct {
	Kind DomainErrorKind
	// Pos is the position of the offending member
	// (InvalidMember only).
	Pos int
	// Member is the offending member (InvalidMember only).
	Member any
	// Count is the number of members supplied
	// (TooFewMembers only).
	Count int
}

func (e *DomainError) Error() string {
	switch e.Kind {
	case TooFewMembers:
		return fmt.Sprintf("domain: index tuple needs at least 2 entities, got %d", e.Count)
	case InvalidMember:
		return fmt.Sprintf("domain: member %d (%s) cannot index a domain", e.Pos, describeMember(e.Member))
	default:
		return fmt.Sprintf("domain: invalid (kind=%d)", int(e.Kind))
	}
}

func describeMember(m any) string {
	switch m := m.(type) {
	case string:
		return fmt.Sprintf("%q", m)
	case Symbol:
		return fmt.Sprintf("%s %s", m.Kind(), m.Name())
	case Node:
		return fmt.Sprintf("%q", ToString(m))
	default:
		return fmt.Sprintf("%T", m)
	}
}
