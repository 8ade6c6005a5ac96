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

// Package timegrid aligns granule timestamps to a fixed sampling grid.
package timegrid

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ErrMalformedClock is returned when a "HH:MM:SS" literal cannot be parsed.
var ErrMalformedClock = errors.New("malformed HH:MM:SS duration")

// 📐 FloorToStep returns the latest instant <= t lying on the grid defined by
// step and offset. The grid is anchored at midnight of t's calendar day in
// t's own location; no zone conversion is performed.
func FloorToStep(t time.Time, step, offset time.Duration) time.Time {
	if step <= 0 {
		panic(fmt.Sprintf("timegrid: non-positive step %s", step))
	}

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	since := t.Sub(midnight) - offset

	rem := since % step
	if rem < 0 {
		rem += step
	}

	return t.Add(-rem)
}

// 🎯 OnGrid reports whether t lies exactly on the grid.
func OnGrid(t time.Time, step, offset time.Duration) bool {
	return FloorToStep(t, step, offset).Equal(t)
}

// 🔍 ParseClock parses a "HH:MM:SS" literal into a duration.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, errors.Errorf("%w: %q", ErrMalformedClock, s)
	}

	var fields [3]int
	for i, p := range parts {
		if p == "" {
			return 0, errors.Errorf("%w: %q has an empty field", ErrMalformedClock, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, errors.Errorf("%w: %q field %q is not a non-negative integer", ErrMalformedClock, s, p)
		}
		fields[i] = n
	}

	if fields[1] >= 60 || fields[2] >= 60 {
		return 0, errors.Errorf("%w: %q minutes and seconds must be below 60", ErrMalformedClock, s)
	}

	return time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second, nil
}

// FormatClock renders d as "HH:MM:SS", truncating sub-second precision.
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}
