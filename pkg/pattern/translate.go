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
	"gitlab.com/tozd/go/errors"
)

// 🔄 Translate maps name from one pattern onto another. Timestamp, group and
// value carry over by slot; an anonymous placeholder in to takes the capture
// of the same index in from. Anything that cannot be carried over fails with
// ErrTranslation.
func Translate(name string, from, to *Pattern) (string, error) {
	src, err := from.Fields(name)
	if err != nil {
		return "", errors.Errorf("%w: %s", ErrTranslation, err.Error())
	}

	dst := &Fields{Time: src.Time, Wildcards: map[int]string{}}
	for index, kind := range to.slots {
		switch kind {
		case slotGroup:
			if src.Group == "" {
				return "", errors.Errorf("%w: %q has no subset group for {%d} of %q", ErrTranslation, name, index, to.text)
			}
			dst.Group = src.Group
		case slotValue:
			if src.Value == "" {
				return "", errors.Errorf("%w: %q has no subset value for {%d} of %q", ErrTranslation, name, index, to.text)
			}
			dst.Value = src.Value
		default:
			v, ok := src.Wildcards[index]
			if !ok {
				return "", errors.Errorf("%w: {%d} of %q has no counterpart in %q", ErrTranslation, index, to.text, from.text)
			}
			dst.Wildcards[index] = v
		}
	}

	out, err := to.Format(src.Time, dst)
	if err != nil {
		return "", errors.Errorf("%w: %s", ErrTranslation, err.Error())
	}

	if !to.Validate(out) {
		return "", errors.Errorf("%w: %q renders as %q which %q rejects", ErrTranslation, name, out, to.text)
	}

	return out, nil
}

// 🔄 TranslateAll translates every name, in order. It returns nil without
// error when either pattern is nil, meaning no mapping is configured;
// reverse swaps the roles of from and to.
func TranslateAll(names []string, from, to *Pattern, reverse bool) ([]string, error) {
	if from == nil || to == nil {
		return nil, nil
	}
	if reverse {
		from, to = to, from
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		t, err := Translate(name, from, to)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
