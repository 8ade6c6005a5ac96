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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/granulerc/pkg/timegrid"
)

func TestFromMap(t *testing.T) {
	d, err := FromMap(map[string]string{
		"config_name":          "DummySatData",
		"sat_name":             "NOAA 19",
		"file_source_pattern":  "/home/msg/archive/AVHRR/avhrr_%Y%m%d_%H%M00_noaa19.hrp.bz2",
		"time_step":            "00:01:00",
		"time_step_offset":     "00:00:00",
		"time_stamp_alignment": "0.5",
		"server":               "",
	})
	require.NoError(t, err)

	assert.Equal(t, "NOAA 19", d.SatName)
	assert.Equal(t, 0.5, d.TimeStampAlignment)
	assert.Empty(t, d.Server)

	v, err := d.Get("time_step")
	require.NoError(t, err)
	assert.Equal(t, "00:01:00", v)

	_, err = d.Get("bogus")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestFromMapRejectsUnknownKeys(t *testing.T) {
	_, err := FromMap(map[string]string{"config_name": "x", "time_stepp": "00:01:00"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Contains(t, err.Error(), "time_stepp")
}

func TestResolve(t *testing.T) {
	base := Definition{
		ConfigName:        "msg3",
		FileSourcePattern: "/data/in/H-000-MSG3__-MSG3________-{0}___-00000{1}___-%Y%m%d%H%M",
		TimeStep:          "00:15:00",
		Subsets:           "{IR_108:{1..8}}",
	}

	tests := []struct {
		name    string
		mutate  func(d *Definition)
		wantErr error
		check   func(t *testing.T, a *Acquisition)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, a *Acquisition) {
				assert.Equal(t, 15*time.Minute, a.TimeStep)
				assert.Zero(t, a.TimeStepOffset)
				assert.Equal(t, ProtocolNone, a.Protocol)
				assert.Empty(t, a.DestinationPattern)
				assert.Nil(t, a.AreaOfInterest)
				assert.Nil(t, a.PointOfInterest)
				require.NotNil(t, a.Subsets)
				assert.True(t, a.Subsets.Contains("IR_108", "8"))
			},
		},
		{
			name: "directory_destination_expanded",
			mutate: func(d *Definition) {
				d.FileDestinationPattern = "/data/out/%Y/"
			},
			check: func(t *testing.T, a *Acquisition) {
				assert.Equal(t, "/data/out/%Y/H-000-MSG3__-MSG3________-{0}___-00000{1}___-%Y%m%d%H%M", a.DestinationPattern)
				v, err := a.Get("file_destination_pattern")
				require.NoError(t, err)
				assert.Equal(t, a.DestinationPattern, v)
			},
		},
		{
			name: "area_and_point",
			mutate: func(d *Definition) {
				d.AreaOfInterest = "(-25,62.5),(-25,67),(-13,67),(-13,62.5)"
				d.PointOfInterest = "( -21.9, 64.1 )"
				d.Protocol = "local"
			},
			check: func(t *testing.T, a *Acquisition) {
				assert.Equal(t, []Coordinate{{-25, 62.5}, {-25, 67}, {-13, 67}, {-13, 62.5}}, a.AreaOfInterest)
				assert.Equal(t, &Coordinate{Lon: -21.9, Lat: 64.1}, a.PointOfInterest)
				assert.Equal(t, ProtocolLocal, a.Protocol)
			},
		},
		{
			name:    "missing_name",
			mutate:  func(d *Definition) { d.ConfigName = "" },
			wantErr: ErrInvalid,
		},
		{
			name:    "missing_source",
			mutate:  func(d *Definition) { d.FileSourcePattern = "" },
			wantErr: ErrInvalid,
		},
		{
			name:    "missing_step",
			mutate:  func(d *Definition) { d.TimeStep = "" },
			wantErr: ErrInvalid,
		},
		{
			name:    "zero_step",
			mutate:  func(d *Definition) { d.TimeStep = "00:00:00" },
			wantErr: ErrInvalid,
		},
		{
			name:    "offset_not_below_step",
			mutate:  func(d *Definition) { d.TimeStepOffset = "00:15:00" },
			wantErr: ErrInvalid,
		},
		{
			name:    "malformed_step",
			mutate:  func(d *Definition) { d.TimeStep = "15 minutes" },
			wantErr: timegrid.ErrMalformedClock,
		},
		{
			name:    "malformed_pass_duration",
			mutate:  func(d *Definition) { d.PassTimeDuration = "1:2" },
			wantErr: timegrid.ErrMalformedClock,
		},
		{
			name:    "malformed_area",
			mutate:  func(d *Definition) { d.AreaOfInterest = "(-25,62.5),(-25)" },
			wantErr: ErrMalformedArea,
		},
		{
			name:    "area_out_of_range",
			mutate:  func(d *Definition) { d.AreaOfInterest = "(200,0)" },
			wantErr: ErrMalformedArea,
		},
		{
			name:    "point_with_two_coordinates",
			mutate:  func(d *Definition) { d.PointOfInterest = "(1,2),(3,4)" },
			wantErr: ErrMalformedArea,
		},
		{
			name:    "unknown_protocol",
			mutate:  func(d *Definition) { d.Protocol = "gopher" },
			wantErr: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			if tt.mutate != nil {
				tt.mutate(&d)
			}
			a, err := d.Resolve()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, a)
		})
	}
}

func TestResolveRejectsBadSubsets(t *testing.T) {
	d := Definition{
		ConfigName:        "x",
		FileSourcePattern: "a_{0}_%Y%m%d%H%M",
		TimeStep:          "00:01:00",
		Subsets:           "{IR_108}",
	}
	_, err := d.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subsets")
}

func TestHashIgnoresName(t *testing.T) {
	d := Definition{ConfigName: "a", FileSourcePattern: "x_%Y%m%d%H%M", TimeStep: "00:01:00"}
	a1, err := d.Resolve()
	require.NoError(t, err)

	d.ConfigName = "b"
	a2, err := d.Resolve()
	require.NoError(t, err)
	assert.Equal(t, a1.Hash(), a2.Hash())

	d.TimeStep = "00:02:00"
	a3, err := d.Resolve()
	require.NoError(t, err)
	assert.NotEqual(t, a1.Hash(), a3.Hash())
	assert.Len(t, a1.Hash(), 16)
}

func TestParseArea(t *testing.T) {
	got, err := ParseArea("(-25, 62.5), (-13,67)")
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{{-25, 62.5}, {-13, 67}}, got)

	for _, bad := range []string{"", "(1,2", "1,2", "(a,2)", "(1,b)", "(1;2)"} {
		_, err := ParseArea(bad)
		assert.ErrorIs(t, err, ErrMalformedArea, bad)
	}
}
