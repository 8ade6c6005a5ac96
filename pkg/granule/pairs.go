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

package granule

import (
	"github.com/walteh/granulerc/pkg/bidict"
	"github.com/walteh/granulerc/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

// 🔗 Pairs maps granule names to their counterparts. Keys are source names
// unless the pairs came from CheckDestination, in which case keys are
// destination names. A key with no counterpart is unpaired.
type Pairs struct {
	*bidict.BiDict[string, string]

	filter  *Filter
	reverse bool
}

func newPairs(f *Filter, reverse bool) *Pairs {
	return &Pairs{BiDict: bidict.New[string, string](), filter: f, reverse: reverse}
}

// Filter returns the filter that produced the pairs.
func (p *Pairs) Filter() *Filter {
	return p.filter
}

// Reverse reports whether keys are destination names.
func (p *Pairs) Reverse() bool {
	return p.reverse
}

// Sources returns the source side of every pair in key order.
func (p *Pairs) Sources() []string {
	if p.reverse {
		return p.Values()
	}
	return p.Keys()
}

// Destinations returns the destination side of every pair in key order.
func (p *Pairs) Destinations() []string {
	if p.reverse {
		return p.Keys()
	}
	return p.Values()
}

// 🔄 Derive re-translates key through the owning filter, independently of
// what is stored. It fails with pattern.ErrTranslation when the filter has no
// destination pattern.
func (p *Pairs) Derive(key string) (string, error) {
	from, to := p.filter.source, p.filter.destination
	if p.reverse {
		from, to = to, from
	}
	if from == nil || to == nil {
		return "", errors.Errorf("%w: %s has no destination pattern", pattern.ErrTranslation, p.filter.Name())
	}
	return pattern.Translate(key, from, to)
}
