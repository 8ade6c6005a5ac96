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
	"time"
)

// 🛰️ SamplingPredicate decides whether the swath recorded from start over
// period covers the area of interest.
type SamplingPredicate interface {
	DoesSwathSampleAOI(start time.Time, period time.Duration) (bool, error)
}

// SamplingFunc adapts a function to SamplingPredicate.
type SamplingFunc func(start time.Time, period time.Duration) (bool, error)

func (f SamplingFunc) DoesSwathSampleAOI(start time.Time, period time.Duration) (bool, error) {
	return f(start, period)
}

// AlwaysSample accepts every swath.
var AlwaysSample SamplingPredicate = SamplingFunc(func(time.Time, time.Duration) (bool, error) {
	return true, nil
})

// 🖼️ Display is implemented by predicates that can render the swaths of a
// set of granules against the area of interest.
type Display interface {
	ShowSwath(starts []time.Time, period time.Duration) error
}
