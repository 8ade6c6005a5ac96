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
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

const (
	// GroupSlot is the placeholder index bound to a subset group name.
	GroupSlot = 0
	// ValueSlot is the placeholder index bound to a subset group value.
	ValueSlot = 1
)

type segmentKind int

const (
	segLiteral segmentKind = iota
	segToken
	segPlaceholder
	// segPair captures adjacent group and value slots as one field; index is
	// the slot written first.
	segPair
)

type segment struct {
	kind  segmentKind
	text  string // literal text
	token byte   // time directive, e.g. 'Y'
	index int    // placeholder index
}

type slotKind int

const (
	slotWildcard slotKind = iota
	slotGroup
	slotValue
)

// tokenWidths holds the fixed digit width of every supported directive.
var tokenWidths = map[byte]int{
	'Y': 4,
	'y': 2,
	'm': 2,
	'd': 2,
	'j': 3,
	'H': 2,
	'M': 2,
	'S': 2,
}

// 🧩 Pattern is a compiled granule filename pattern. It is immutable and
// safe for concurrent use.
type Pattern struct {
	text     string
	subsets  *Subsets
	segments []segment
	slots    map[int]slotKind
	tokens   map[byte]bool
	re       *regexp.Regexp
	// captures maps regexp submatch i+1 to the segment that produced it.
	captures []segment
	// joins resolves the text of adjacent group and value slots, keyed by
	// whether the group slot comes first.
	joins map[bool]map[string]Subset
}

// 🏭 CompileSpec compiles text with a subset specification string; an empty
// specification compiles without subsets.
func CompileSpec(text, spec string) (*Pattern, error) {
	subsets, err := ParseSubsets(spec)
	if err != nil {
		return nil, err
	}
	return Compile(text, subsets)
}

// 🏭 Compile compiles text into a Pattern. subsets may be nil.
func Compile(text string, subsets *Subsets) (*Pattern, error) {
	segments, err := parseSegments(text)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		text:     text,
		subsets:  subsets,
		segments: segments,
		slots:    map[int]slotKind{},
		tokens:   map[byte]bool{},
	}

	for _, s := range segments {
		switch s.kind {
		case segToken:
			p.tokens[s.token] = true
		case segPlaceholder:
			p.slots[s.index] = p.classify(s.index)
		}
	}

	if subsets != nil && !p.HasSubsets() {
		return nil, errors.Errorf("%w: subsets %s given but %q has no {%d} or {%d} placeholder",
			ErrPattern, subsets, text, GroupSlot, ValueSlot)
	}

	if err := p.checkTimeTokens(); err != nil {
		return nil, err
	}
	if err := p.checkAdjacency(); err != nil {
		return nil, err
	}

	if err := p.buildRegexp(); err != nil {
		return nil, err
	}

	return p, nil
}

// MustCompileSpec is like CompileSpec but panics on error.
func MustCompileSpec(text, spec string) *Pattern {
	p, err := CompileSpec(text, spec)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) classify(index int) slotKind {
	if p.subsets == nil {
		return slotWildcard
	}
	switch index {
	case GroupSlot:
		return slotGroup
	case ValueSlot:
		return slotValue
	default:
		return slotWildcard
	}
}

func parseSegments(text string) ([]segment, error) {
	var (
		segments []segment
		lit      strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{kind: segLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '%':
			if i+1 >= len(text) {
				return nil, errors.Errorf("%w: %q ends with a dangling %%", ErrPattern, text)
			}
			i++
			d := text[i]
			if d == '%' {
				lit.WriteByte('%')
				continue
			}
			if _, ok := tokenWidths[d]; !ok {
				return nil, errors.Errorf("%w: %q uses unsupported time directive %%%c", ErrPattern, text, d)
			}
			flush()
			segments = append(segments, segment{kind: segToken, token: d})
		case '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return nil, errors.Errorf("%w: %q has an unterminated placeholder", ErrPattern, text)
			}
			body := text[i+1 : i+end]
			index, err := strconv.Atoi(body)
			if err != nil || index < 0 || strings.TrimSpace(body) != body {
				return nil, errors.Errorf("%w: %q has malformed placeholder {%s}", ErrPattern, text, body)
			}
			flush()
			segments = append(segments, segment{kind: segPlaceholder, index: index})
			i += end
		case '}':
			return nil, errors.Errorf("%w: %q has an unmatched '}'", ErrPattern, text)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return segments, nil
}

// checkTimeTokens ensures the tokens pin a timestamp down to the minute.
func (p *Pattern) checkTimeTokens() error {
	has := func(tokens ...byte) bool {
		for _, t := range tokens {
			if !p.tokens[t] {
				return false
			}
		}
		return true
	}

	switch {
	case has('Y', 'y'):
		return errors.Errorf("%w: %q uses both %%Y and %%y", ErrPattern, p.text)
	case !has('Y') && !has('y'):
		return errors.Errorf("%w: %q has no year directive", ErrPattern, p.text)
	case p.tokens['j'] && (p.tokens['m'] || p.tokens['d']):
		return errors.Errorf("%w: %q mixes day-of-year with month/day", ErrPattern, p.text)
	case !has('j') && !has('m', 'd'):
		return errors.Errorf("%w: %q does not determine a calendar day", ErrPattern, p.text)
	case !has('H', 'M'):
		return errors.Errorf("%w: %q does not determine a time at minute resolution", ErrPattern, p.text)
	}
	return nil
}

// checkAdjacency rejects placeholders that touch a wildcard.
func (p *Pattern) checkAdjacency() error {
	for i := 1; i < len(p.segments); i++ {
		a, b := p.segments[i-1], p.segments[i]
		if a.kind != segPlaceholder || b.kind != segPlaceholder {
			continue
		}
		if p.slots[a.index] == slotWildcard || p.slots[b.index] == slotWildcard {
			return errors.Errorf("%w: %q has adjacent placeholders {%d}{%d} with no separator",
				ErrPattern, p.text, a.index, b.index)
		}
	}
	return nil
}

func (p *Pattern) buildRegexp() error {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(p.segments); i++ {
		s := p.segments[i]
		if i+1 < len(p.segments) && p.joinsSubset(s, p.segments[i+1]) {
			groupFirst := p.slots[s.index] == slotGroup
			joins := p.subsetJoins(groupFirst)
			if p.joins == nil {
				p.joins = map[bool]map[string]Subset{}
			}
			p.joins[groupFirst] = joins
			b.WriteString(alternation(slices.Sorted(maps.Keys(joins))))
			p.captures = append(p.captures, segment{kind: segPair, index: s.index})
			i++
			continue
		}
		switch s.kind {
		case segLiteral:
			b.WriteString(regexp.QuoteMeta(s.text))
		case segToken:
			b.WriteString(`(\d{` + strconv.Itoa(tokenWidths[s.token]) + `})`)
			p.captures = append(p.captures, s)
		case segPlaceholder:
			switch p.slots[s.index] {
			case slotGroup:
				b.WriteString(alternation(p.subsets.names()))
			case slotValue:
				b.WriteString(alternation(p.subsets.allValues()))
			default:
				b.WriteString(`([^/]+)`)
			}
			p.captures = append(p.captures, s)
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return errors.Errorf("%w: %q: %s", ErrPattern, p.text, err.Error())
	}
	p.re = re
	return nil
}

// joinsSubset reports whether a and b are a group slot and a value slot with
// nothing in between.
func (p *Pattern) joinsSubset(a, b segment) bool {
	if a.kind != segPlaceholder || b.kind != segPlaceholder {
		return false
	}
	ka, kb := p.slots[a.index], p.slots[b.index]
	return (ka == slotGroup && kb == slotValue) || (ka == slotValue && kb == slotGroup)
}

// subsetJoins renders every group and value pair as it appears when the
// slots are adjacent. Pairs rendering the same text resolve to the longer
// group name, then to the group declared first.
func (p *Pattern) subsetJoins(groupFirst bool) map[string]Subset {
	joins := map[string]Subset{}
	for _, g := range p.subsets.groups {
		for _, v := range g.Values {
			text := g.Name + v
			if !groupFirst {
				text = v + g.Name
			}
			if prev, ok := joins[text]; ok && len(prev.Group) >= len(g.Name) {
				continue
			}
			joins[text] = Subset{Group: g.Name, Value: v}
		}
	}
	return joins
}

// alternation builds a capturing group trying longer alternatives first.
func alternation(options []string) string {
	sorted := slices.Clone(options)
	slices.SortStableFunc(sorted, func(a, b string) int { return len(b) - len(a) })
	quoted := make([]string, len(sorted))
	for i, o := range sorted {
		quoted[i] = regexp.QuoteMeta(o)
	}
	return "(" + strings.Join(quoted, "|") + ")"
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.text
}

// Subsets returns the subset collection the pattern was compiled with.
func (p *Pattern) Subsets() *Subsets {
	return p.subsets
}

// HasSubsets reports whether the pattern has a group or value slot.
func (p *Pattern) HasSubsets() bool {
	return p.hasSlot(slotGroup) || p.hasSlot(slotValue)
}

// HasWildcards reports whether the pattern has anonymous placeholders.
func (p *Pattern) HasWildcards() bool {
	return p.hasSlot(slotWildcard)
}

func (p *Pattern) hasSlot(kind slotKind) bool {
	for _, k := range p.slots {
		if k == kind {
			return true
		}
	}
	return false
}

// Resolution is the finest time unit the pattern encodes.
func (p *Pattern) Resolution() time.Duration {
	if p.tokens['S'] {
		return time.Second
	}
	return time.Minute
}
