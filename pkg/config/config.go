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
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/walteh/granulerc/pkg/pattern"
	"github.com/walteh/granulerc/pkg/timegrid"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnknownKey is returned for configuration keys outside Keys.
	ErrUnknownKey = errors.New("invalid configuration key")
	// ErrInvalid is returned for configuration values that fail validation.
	ErrInvalid = errors.New("invalid configuration")
	// ErrMalformedArea is returned for unparsable area or point of interest strings.
	ErrMalformedArea = errors.New("malformed coordinates")
)

// Keys lists every configuration key in declaration order.
var Keys = []string{
	"config_name",
	"sat_name",
	"sat_id",
	"type",
	"protocol",
	"server",
	"file_source_pattern",
	"time_stamp_alignment",
	"granule_time_step",
	"granule_time_offset",
	"time_step",
	"time_step_offset",
	"subsets",
	"area_of_interest",
	"point_of_interest",
	"pass_time_duration",
	"file_destination_pattern",
}

// 🔌 Protocol selects the file access layer of an acquisition.
type Protocol string

const (
	ProtocolNone   Protocol = ""
	ProtocolLocal  Protocol = "local"
	ProtocolMemory Protocol = "memory"
	ProtocolFTP    Protocol = "ftp"
	ProtocolSSH    Protocol = "ssh"
)

var knownProtocols = []Protocol{ProtocolLocal, ProtocolMemory, ProtocolFTP, ProtocolSSH}

// 📚 Definition is one acquisition definition as written in a config file.
// Empty strings mean "unset".
type Definition struct {
	ConfigName             string  `json:"config_name" yaml:"config_name" hcl:"config_name,label"`
	SatName                string  `json:"sat_name,omitempty" yaml:"sat_name,omitempty" hcl:"sat_name,optional"`
	SatID                  string  `json:"sat_id,omitempty" yaml:"sat_id,omitempty" hcl:"sat_id,optional"`
	Type                   string  `json:"type,omitempty" yaml:"type,omitempty" hcl:"type,optional"`
	Protocol               string  `json:"protocol,omitempty" yaml:"protocol,omitempty" hcl:"protocol,optional"`
	Server                 string  `json:"server,omitempty" yaml:"server,omitempty" hcl:"server,optional"`
	FileSourcePattern      string  `json:"file_source_pattern" yaml:"file_source_pattern" hcl:"file_source_pattern,optional"`
	TimeStampAlignment     float64 `json:"time_stamp_alignment,omitempty" yaml:"time_stamp_alignment,omitempty" hcl:"time_stamp_alignment,optional"`
	GranuleTimeStep        string  `json:"granule_time_step,omitempty" yaml:"granule_time_step,omitempty" hcl:"granule_time_step,optional"`
	GranuleTimeOffset      string  `json:"granule_time_offset,omitempty" yaml:"granule_time_offset,omitempty" hcl:"granule_time_offset,optional"`
	TimeStep               string  `json:"time_step" yaml:"time_step" hcl:"time_step,optional"`
	TimeStepOffset         string  `json:"time_step_offset,omitempty" yaml:"time_step_offset,omitempty" hcl:"time_step_offset,optional"`
	Subsets                string  `json:"subsets,omitempty" yaml:"subsets,omitempty" hcl:"subsets,optional"`
	AreaOfInterest         string  `json:"area_of_interest,omitempty" yaml:"area_of_interest,omitempty" hcl:"area_of_interest,optional"`
	PointOfInterest        string  `json:"point_of_interest,omitempty" yaml:"point_of_interest,omitempty" hcl:"point_of_interest,optional"`
	PassTimeDuration       string  `json:"pass_time_duration,omitempty" yaml:"pass_time_duration,omitempty" hcl:"pass_time_duration,optional"`
	FileDestinationPattern string  `json:"file_destination_pattern,omitempty" yaml:"file_destination_pattern,omitempty" hcl:"file_destination_pattern,optional"`
}

// fieldPtrs returns pointers to every string field keyed by configuration key.
func (d *Definition) fieldPtrs() map[string]*string {
	return map[string]*string{
		"config_name":              &d.ConfigName,
		"sat_name":                 &d.SatName,
		"sat_id":                   &d.SatID,
		"type":                     &d.Type,
		"protocol":                 &d.Protocol,
		"server":                   &d.Server,
		"file_source_pattern":      &d.FileSourcePattern,
		"granule_time_step":        &d.GranuleTimeStep,
		"granule_time_offset":      &d.GranuleTimeOffset,
		"time_step":                &d.TimeStep,
		"time_step_offset":         &d.TimeStepOffset,
		"subsets":                  &d.Subsets,
		"area_of_interest":         &d.AreaOfInterest,
		"point_of_interest":        &d.PointOfInterest,
		"pass_time_duration":       &d.PassTimeDuration,
		"file_destination_pattern": &d.FileDestinationPattern,
	}
}

// 🏗️ FromMap builds a definition from key/value pairs, rejecting unknown keys.
// Empty values are ignored.
func FromMap(values map[string]string) (*Definition, error) {
	d := &Definition{}
	fields := d.fieldPtrs()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := values[key]
		if !slices.Contains(Keys, key) {
			return nil, errors.Errorf("%w: %q", ErrUnknownKey, key)
		}
		if value == "" {
			continue
		}
		if key == "time_stamp_alignment" {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Errorf("%w: time_stamp_alignment %q is not a number", ErrInvalid, value)
			}
			d.TimeStampAlignment = f
			continue
		}
		*fields[key] = value
	}
	return d, nil
}

// Get returns the configured value for key as a string.
func (d *Definition) Get(key string) (string, error) {
	if key == "time_stamp_alignment" {
		return strconv.FormatFloat(d.TimeStampAlignment, 'f', -1, 64), nil
	}
	p, ok := d.fieldPtrs()[key]
	if !ok {
		return "", errors.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return *p, nil
}

// 📝 String lists every key and value in declaration order.
func (d *Definition) String() string {
	var b strings.Builder
	for _, key := range Keys {
		v, _ := d.Get(key)
		fmt.Fprintf(&b, "%s: %s\n", key, v)
	}
	return b.String()
}

// 📍 Coordinate is a (longitude, latitude) pair in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%g,%g)", c.Lon, c.Lat)
}

// 🎯 Acquisition is a validated, normalized definition.
type Acquisition struct {
	Definition Definition

	Name               string
	Protocol           Protocol
	SourcePattern      string
	DestinationPattern string
	Subsets            *pattern.Subsets

	TimeStep           time.Duration
	TimeStepOffset     time.Duration
	GranuleTimeStep    time.Duration
	GranuleTimeOffset  time.Duration
	PassTimeDuration   time.Duration
	TimeStampAlignment float64

	AreaOfInterest  []Coordinate
	PointOfInterest *Coordinate
}

// 🔍 Resolve validates the definition and returns the typed acquisition.
// A destination pattern ending in "/" is completed with the basename of the
// source pattern.
func (d Definition) Resolve() (*Acquisition, error) {
	a := &Acquisition{
		Definition:         d,
		Name:               d.ConfigName,
		Protocol:           Protocol(d.Protocol),
		SourcePattern:      d.FileSourcePattern,
		TimeStampAlignment: d.TimeStampAlignment,
	}

	if d.ConfigName == "" {
		return nil, errors.Errorf("%w: config_name is required", ErrInvalid)
	}
	if d.FileSourcePattern == "" {
		return nil, errors.Errorf("%w: %s: file_source_pattern is required", ErrInvalid, d.ConfigName)
	}
	if d.TimeStep == "" {
		return nil, errors.Errorf("%w: %s: time_step is required", ErrInvalid, d.ConfigName)
	}
	if a.Protocol != ProtocolNone && !slices.Contains(knownProtocols, a.Protocol) {
		return nil, errors.Errorf("%w: %s: unknown protocol %q", ErrInvalid, d.ConfigName, d.Protocol)
	}

	clocks := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"time_step", d.TimeStep, &a.TimeStep},
		{"time_step_offset", d.TimeStepOffset, &a.TimeStepOffset},
		{"granule_time_step", d.GranuleTimeStep, &a.GranuleTimeStep},
		{"granule_time_offset", d.GranuleTimeOffset, &a.GranuleTimeOffset},
		{"pass_time_duration", d.PassTimeDuration, &a.PassTimeDuration},
	}
	for _, c := range clocks {
		if c.value == "" {
			continue
		}
		v, err := timegrid.ParseClock(c.value)
		if err != nil {
			return nil, errors.Errorf("%s: %s: %w", d.ConfigName, c.key, err)
		}
		*c.dst = v
	}

	if a.TimeStep <= 0 {
		return nil, errors.Errorf("%w: %s: time_step must be positive", ErrInvalid, d.ConfigName)
	}
	if a.TimeStepOffset >= a.TimeStep {
		return nil, errors.Errorf("%w: %s: time_step_offset %s must be below time_step %s",
			ErrInvalid, d.ConfigName, d.TimeStepOffset, d.TimeStep)
	}

	subsets, err := pattern.ParseSubsets(d.Subsets)
	if err != nil {
		return nil, errors.Errorf("%s: subsets: %w", d.ConfigName, err)
	}
	a.Subsets = subsets

	if d.AreaOfInterest != "" {
		aoi, err := ParseArea(d.AreaOfInterest)
		if err != nil {
			return nil, errors.Errorf("%s: area_of_interest: %w", d.ConfigName, err)
		}
		a.AreaOfInterest = aoi
	}
	if d.PointOfInterest != "" {
		poi, err := ParseArea(d.PointOfInterest)
		if err != nil {
			return nil, errors.Errorf("%s: point_of_interest: %w", d.ConfigName, err)
		}
		if len(poi) != 1 {
			return nil, errors.Errorf("%w: %s: point_of_interest must hold exactly one coordinate", ErrMalformedArea, d.ConfigName)
		}
		a.PointOfInterest = &poi[0]
	}

	a.DestinationPattern = d.FileDestinationPattern
	if strings.HasSuffix(a.DestinationPattern, "/") {
		a.DestinationPattern += basename(d.FileSourcePattern)
		a.Definition.FileDestinationPattern = a.DestinationPattern
	}

	return a, nil
}

func basename(p string) string {
	return p[strings.LastIndexByte(p, '/')+1:]
}

// 🗺️ ParseArea parses "(lon,lat),(lon,lat),..." into coordinates.
func ParseArea(s string) ([]Coordinate, error) {
	compact := strings.Join(strings.Fields(s), "")
	if compact == "" {
		return nil, errors.Errorf("%w: empty", ErrMalformedArea)
	}

	var coords []Coordinate
	for _, part := range strings.Split(strings.ReplaceAll(compact, "),", ");"), ";") {
		if len(part) < 2 || part[0] != '(' || part[len(part)-1] != ')' {
			return nil, errors.Errorf("%w: %q is not a (lon,lat) pair", ErrMalformedArea, part)
		}
		lonStr, latStr, ok := strings.Cut(part[1:len(part)-1], ",")
		if !ok {
			return nil, errors.Errorf("%w: %q is not a (lon,lat) pair", ErrMalformedArea, part)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, errors.Errorf("%w: longitude %q in %q", ErrMalformedArea, lonStr, part)
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, errors.Errorf("%w: latitude %q in %q", ErrMalformedArea, latStr, part)
		}
		if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
			return nil, errors.Errorf("%w: %q out of range", ErrMalformedArea, part)
		}
		coords = append(coords, Coordinate{Lon: lon, Lat: lat})
	}
	return coords, nil
}

// #️⃣ Hash identifies the acquisition by the content of its normalized
// definition, ignoring its name.
func (a *Acquisition) Hash() string {
	d := a.Definition
	d.ConfigName = ""
	return fmt.Sprintf("%016x", xxhash.Sum64String(d.String()))
}

// Get returns the configured value for key, after normalization.
func (a *Acquisition) Get(key string) (string, error) {
	return a.Definition.Get(key)
}

func (a *Acquisition) String() string {
	return fmt.Sprintf("%s: %s -> %s every %s", a.Name, a.SourcePattern, a.DestinationPattern, timegrid.FormatClock(a.TimeStep))
}
