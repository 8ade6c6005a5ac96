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
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🖨️ Format renders a single filename for t and the given fields. Fields may
// be nil when the pattern has no placeholders.
func (p *Pattern) Format(t time.Time, f *Fields) (string, error) {
	return p.render(p.segments, t, f, "")
}

// render substitutes segs; when wildcard is non-empty it stands in for
// every unresolved anonymous placeholder.
func (p *Pattern) render(segs []segment, t time.Time, f *Fields, wildcard string) (string, error) {
	if f == nil {
		f = &Fields{}
	}

	var b strings.Builder
	for _, s := range segs {
		switch s.kind {
		case segLiteral:
			b.WriteString(s.text)
		case segToken:
			b.WriteString(formatToken(s.token, t))
		case segPlaceholder:
			var v string
			switch p.slots[s.index] {
			case slotGroup:
				v = f.Group
			case slotValue:
				v = f.Value
			default:
				v = f.Wildcards[s.index]
				if v == "" {
					v = wildcard
				}
			}
			if v == "" {
				return "", errors.Errorf("%w: {%d} in %q", ErrUnresolved, s.index, p.text)
			}
			b.WriteString(v)
		}
	}
	return b.String(), nil
}

func formatToken(token byte, t time.Time) string {
	switch token {
	case 'Y':
		return fmt.Sprintf("%04d", t.Year())
	case 'y':
		return fmt.Sprintf("%02d", t.Year()%100)
	case 'm':
		return fmt.Sprintf("%02d", int(t.Month()))
	case 'd':
		return fmt.Sprintf("%02d", t.Day())
	case 'j':
		return fmt.Sprintf("%03d", t.YearDay())
	case 'H':
		return fmt.Sprintf("%02d", t.Hour())
	case 'M':
		return fmt.Sprintf("%02d", t.Minute())
	case 'S':
		return fmt.Sprintf("%02d", t.Second())
	}
	return ""
}

// combinations lists every group/value pair the slots present in segs can take.
func (p *Pattern) combinations(segs []segment) []Fields {
	var hasGroup, hasValue bool
	for _, s := range segs {
		if s.kind != segPlaceholder {
			continue
		}
		switch p.slots[s.index] {
		case slotGroup:
			hasGroup = true
		case slotValue:
			hasValue = true
		}
	}

	if !hasGroup && !hasValue {
		return []Fields{{}}
	}

	var out []Fields
	for _, g := range p.subsets.groups {
		if !hasValue {
			out = append(out, Fields{Group: g.Name})
			continue
		}
		for _, v := range g.Values {
			out = append(out, Fields{Group: g.Name, Value: v})
		}
	}
	return out
}

// 📚 FilenamesFromTime generates every filename consistent with t, one per
// subset combination. The result is sorted and free of duplicates.
func (p *Pattern) FilenamesFromTime(t time.Time) ([]string, error) {
	if p.HasWildcards() {
		return nil, errors.Errorf("%w: %q has anonymous placeholders", ErrUnresolved, p.text)
	}

	var names []string
	for _, f := range p.combinations(p.segments) {
		name, err := p.render(p.segments, t, &f, "")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

// 📂 Directories expands the directory part of the pattern for t. Anonymous
// placeholders are rendered as the glob "*". The prefix is kept as written,
// uncleaned. Results are ordered by depth, then lexically; a pattern without
// a separator yields "." and one starting with "./" yields "./".
func (p *Pattern) Directories(t time.Time) []string {
	prefix, ok := p.dirSegments()
	if !ok {
		return []string{"."}
	}

	var dirs []string
	for _, f := range p.combinations(prefix) {
		// wildcard substitution means render cannot fail here
		dir, _ := p.render(prefix, t, &f, "*")
		switch dir {
		case "":
			dir = "/"
		case ".":
			dir = "./"
		}
		dirs = append(dirs, dir)
	}

	slices.SortFunc(dirs, func(a, b string) int {
		if d := strings.Count(a, "/") - strings.Count(b, "/"); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return slices.Compact(dirs)
}

// Dir returns the directory portion of the pattern text, "." when it has none.
func (p *Pattern) Dir() string {
	i := strings.LastIndexByte(p.text, '/')
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	}
	return p.text[:i]
}

// Base returns the pattern text after the last separator.
func (p *Pattern) Base() string {
	return p.text[strings.LastIndexByte(p.text, '/')+1:]
}

// dirSegments returns the segments before the last separator.
func (p *Pattern) dirSegments() ([]segment, bool) {
	for i := len(p.segments) - 1; i >= 0; i-- {
		s := p.segments[i]
		if s.kind != segLiteral {
			continue
		}
		j := strings.LastIndexByte(s.text, '/')
		if j < 0 {
			continue
		}
		prefix := slices.Clone(p.segments[:i])
		if j > 0 {
			prefix = append(prefix, segment{kind: segLiteral, text: s.text[:j]})
		}
		return prefix, true
	}
	return nil, false
}
