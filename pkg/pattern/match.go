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
	"strconv"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📋 Fields holds every value decoded from a filename.
type Fields struct {
	Time  time.Time
	Group string
	Value string
	// Wildcards maps anonymous placeholder indices to their captured text.
	Wildcards map[int]string
}

// Subset returns the decoded group and value.
func (f *Fields) Subset() Subset {
	return Subset{Group: f.Group, Value: f.Value}
}

// 🔍 Fields decodes name. The error wraps ErrDecode.
func (p *Pattern) Fields(name string) (*Fields, error) {
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return nil, errors.Errorf("%w: %q does not match %q", ErrDecode, name, p.text)
	}

	var (
		nums   = map[byte]int{}
		byslot = map[int]string{}
	)
	for i, s := range p.captures {
		text := m[i+1]
		switch s.kind {
		case segToken:
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, errors.Errorf("%w: %q has non-numeric %%%c field %q", ErrDecode, name, s.token, text)
			}
			if prev, seen := nums[s.token]; seen && prev != n {
				return nil, errors.Errorf("%w: %q decodes %%%c as both %d and %d", ErrDecode, name, s.token, prev, n)
			}
			nums[s.token] = n
		case segPlaceholder:
			if prev, seen := byslot[s.index]; seen && prev != text {
				return nil, errors.Errorf("%w: %q captures {%d} as both %q and %q", ErrDecode, name, s.index, prev, text)
			}
			byslot[s.index] = text
		case segPair:
			sub, ok := p.joins[s.index == GroupSlot][text]
			if !ok {
				return nil, errors.Errorf("%w: %q has unknown subset %q", ErrDecode, name, text)
			}
			for index, part := range map[int]string{GroupSlot: sub.Group, ValueSlot: sub.Value} {
				if prev, seen := byslot[index]; seen && prev != part {
					return nil, errors.Errorf("%w: %q captures {%d} as both %q and %q", ErrDecode, name, index, prev, part)
				}
				byslot[index] = part
			}
		}
	}

	t, err := buildTime(nums)
	if err != nil {
		return nil, errors.Errorf("%w: %q: %s", ErrDecode, name, err.Error())
	}

	f := &Fields{Time: t, Wildcards: map[int]string{}}
	for index, text := range byslot {
		switch p.slots[index] {
		case slotGroup:
			f.Group = text
		case slotValue:
			f.Value = text
		default:
			f.Wildcards[index] = text
		}
	}

	if err := p.resolveSubset(f); err != nil {
		return nil, errors.Errorf("%w: %q: %s", ErrDecode, name, err.Error())
	}

	return f, nil
}

// resolveSubset checks enumeration membership and fills a missing group.
func (p *Pattern) resolveSubset(f *Fields) error {
	_, hasGroup := p.slots[GroupSlot]
	_, hasValue := p.slots[ValueSlot]
	if p.subsets == nil {
		return nil
	}

	switch {
	case hasGroup && hasValue:
		if !p.subsets.Contains(f.Group, f.Value) {
			return errors.Errorf("value %q is not enumerated by group %q", f.Value, f.Group)
		}
	case hasGroup:
		if _, ok := p.subsets.Lookup(f.Group); !ok {
			return errors.Errorf("unknown subset group %q", f.Group)
		}
	case hasValue:
		g, ok := p.subsets.GroupOf(f.Value)
		if !ok {
			return errors.Errorf("value %q is not enumerated by any group", f.Value)
		}
		f.Group = g
	}
	return nil
}

// buildTime assembles a naive UTC timestamp, rejecting impossible dates.
func buildTime(nums map[byte]int) (time.Time, error) {
	year, ok := nums['Y']
	if !ok {
		year = 2000 + nums['y']
	}

	hour, minute, second := nums['H'], nums['M'], nums['S']
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, errors.Errorf("time %02d:%02d:%02d out of range", hour, minute, second)
	}

	if doy, ok := nums['j']; ok {
		first := time.Date(year, time.January, 1, hour, minute, second, 0, time.UTC)
		t := first.AddDate(0, 0, doy-1)
		if doy < 1 || t.Year() != year {
			return time.Time{}, errors.Errorf("day of year %03d out of range for %d", doy, year)
		}
		return t, nil
	}

	month, day := nums['m'], nums['d']
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, errors.Errorf("date %04d-%02d-%02d does not exist", year, month, day)
	}
	return t, nil
}

// ✅ Validate reports whether name decodes under the pattern. It never fails.
func (p *Pattern) Validate(name string) bool {
	_, err := p.Fields(name)
	return err == nil
}

// ⏰ TimeFromFilename returns the timestamp encoded in name.
func (p *Pattern) TimeFromFilename(name string) (time.Time, error) {
	f, err := p.Fields(name)
	if err != nil {
		return time.Time{}, err
	}
	return f.Time, nil
}

// 🏷️ SubsetFromFilename returns the subset group and value encoded in name.
func (p *Pattern) SubsetFromFilename(name string) (Subset, error) {
	if !p.HasSubsets() {
		return Subset{}, errors.Errorf("%w: %q has no subset placeholder", ErrDecode, p.text)
	}
	f, err := p.Fields(name)
	if err != nil {
		return Subset{}, err
	}
	return f.Subset(), nil
}
