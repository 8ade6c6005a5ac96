// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pattern

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📦 Group is a named enumeration of subset values.
type Group struct {
	Name   string
	Values []string
}

// 🗂️ Subsets is an ordered, immutable collection of groups.
type Subsets struct {
	groups []Group
	index  map[string]int
}

// Subset identifies one concrete subset of a granule.
type Subset struct {
	Group string
	Value string
}

// NewSubsets builds a subset collection from explicit groups.
func NewSubsets(groups ...Group) (*Subsets, error) {
	s := &Subsets{index: make(map[string]int, len(groups))}
	for _, g := range groups {
		if g.Name == "" {
			return nil, errors.Errorf("%w: subset group with empty name", ErrPattern)
		}
		if _, dup := s.index[g.Name]; dup {
			return nil, errors.Errorf("%w: subset group %q declared twice", ErrPattern, g.Name)
		}
		if len(g.Values) == 0 {
			return nil, errors.Errorf("%w: subset group %q has no values", ErrPattern, g.Name)
		}
		values := make([]string, 0, len(g.Values))
		for _, v := range g.Values {
			if v == "" {
				return nil, errors.Errorf("%w: subset group %q has an empty value", ErrPattern, g.Name)
			}
			if !slices.Contains(values, v) {
				values = append(values, v)
			}
		}
		s.index[g.Name] = len(s.groups)
		s.groups = append(s.groups, Group{Name: g.Name, Values: values})
	}
	return s, nil
}

// 🔍 ParseSubsets parses a specification of the form
// "{NAME:{1..8}, OTHER:{a,b,c}}". An empty specification yields nil.
func ParseSubsets(spec string) (*Subsets, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	inner, ok := unwrapBraces(spec)
	if !ok {
		return nil, errors.Errorf("%w: subsets %q must be enclosed in braces", ErrPattern, spec)
	}

	items, err := splitTopLevel(inner)
	if err != nil {
		return nil, errors.Errorf("%w: subsets %q: %s", ErrPattern, spec, err.Error())
	}

	groups := make([]Group, 0, len(items))
	for _, item := range items {
		g, err := parseGroup(item)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return NewSubsets(groups...)
}

func parseGroup(item string) (Group, error) {
	name, body, found := strings.Cut(item, ":")
	name = strings.TrimSpace(name)
	if !found {
		return Group{}, errors.Errorf("%w: subset group %q has no enumeration", ErrPattern, name)
	}
	if name == "" {
		return Group{}, errors.Errorf("%w: subset group %q has no name", ErrPattern, item)
	}

	list, ok := unwrapBraces(strings.TrimSpace(body))
	if !ok {
		return Group{}, errors.Errorf("%w: subset group %q enumeration must be enclosed in braces", ErrPattern, name)
	}

	values, err := expandValues(list)
	if err != nil {
		return Group{}, errors.Errorf("%w: subset group %q: %s", ErrPattern, name, err.Error())
	}

	return Group{Name: name, Values: values}, nil
}

// expandValues expands "a..b" ranges and "a,b,c" lists.
func expandValues(list string) ([]string, error) {
	list = strings.TrimSpace(list)
	if lo, hi, isRange := strings.Cut(list, ".."); isRange && !strings.Contains(list, ",") {
		return expandRange(strings.TrimSpace(lo), strings.TrimSpace(hi))
	}

	var values []string
	for _, v := range strings.Split(list, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, errors.Errorf("empty value in %q", list)
		}
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	return values, nil
}

func expandRange(lo, hi string) ([]string, error) {
	a, err := strconv.Atoi(lo)
	if err != nil {
		return nil, errors.Errorf("range start %q is not an integer", lo)
	}
	b, err := strconv.Atoi(hi)
	if err != nil {
		return nil, errors.Errorf("range end %q is not an integer", hi)
	}
	if a > b {
		return nil, errors.Errorf("range %s..%s is descending", lo, hi)
	}

	width := 0
	if zeroPadded(lo) || zeroPadded(hi) {
		width = max(len(lo), len(hi))
	}

	values := make([]string, 0, b-a+1)
	for i := a; i <= b; i++ {
		values = append(values, fmt.Sprintf("%0*d", width, i))
	}
	return values, nil
}

func zeroPadded(s string) bool {
	return len(s) > 1 && s[0] == '0'
}

func unwrapBraces(s string) (string, bool) {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// splitTopLevel splits on commas that are not nested inside braces.
func splitTopLevel(s string) ([]string, error) {
	var (
		items []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced braces")
			}
		case ',':
			if depth == 0 {
				items = append(items, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New("unbalanced braces")
	}
	items = append(items, strings.TrimSpace(s[start:]))

	for _, it := range items {
		if it == "" {
			return nil, errors.New("empty group")
		}
	}
	return items, nil
}

// Groups returns a copy of the groups in declaration order.
func (s *Subsets) Groups() []Group {
	if s == nil {
		return nil
	}
	out := make([]Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = Group{Name: g.Name, Values: slices.Clone(g.Values)}
	}
	return out
}

// Lookup returns the group with the given name.
func (s *Subsets) Lookup(name string) (Group, bool) {
	if s == nil {
		return Group{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Group{}, false
	}
	return s.groups[i], true
}

// Contains reports whether value is enumerated by the named group.
func (s *Subsets) Contains(group, value string) bool {
	g, ok := s.Lookup(group)
	return ok && slices.Contains(g.Values, value)
}

// GroupOf returns the first declared group enumerating value.
func (s *Subsets) GroupOf(value string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, g := range s.groups {
		if slices.Contains(g.Values, value) {
			return g.Name, true
		}
	}
	return "", false
}

// Equal reports whether both collections declare identical groups in the same order.
func (s *Subsets) Equal(other *Subsets) bool {
	if s == nil || other == nil {
		return s == other
	}
	return slices.EqualFunc(s.groups, other.groups, func(a, b Group) bool {
		return a.Name == b.Name && slices.Equal(a.Values, b.Values)
	})
}

// 📝 String renders the canonical specification, with ranges expanded.
func (s *Subsets) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, len(s.groups))
	for i, g := range s.groups {
		parts[i] = g.Name + ":{" + strings.Join(g.Values, ",") + "}"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *Subsets) names() []string {
	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = g.Name
	}
	return names
}

func (s *Subsets) allValues() []string {
	var values []string
	for _, g := range s.groups {
		for _, v := range g.Values {
			if !slices.Contains(values, v) {
				values = append(values, v)
			}
		}
	}
	return values
}
