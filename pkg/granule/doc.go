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

// Package granule filters, pairs and checks satellite granule files for one
// acquisition definition.
//
// 🎯 A Filter owns the compiled source and destination patterns of an
// acquisition. A candidate file survives when
//
//  1. it matches the source pattern,
//  2. its timestamp lies exactly on the time_step/time_step_offset grid,
//  3. the sampling predicate, when one is set, accepts it.
//
// Survivors are paired with their destination names in a Pairs dictionary.
//
// 🔄 The check operations list directories through an access.Layer:
//
//	CheckSource(t)       source dirs ──► Filter ──► source → destination
//	CheckDestination(t)  local dirs  ──► valid  ──► destination → source
//	CheckNew(t)          CheckSource minus destinations already present
//
// Example:
//
//	acq, _ := config.Definition{
//		ConfigName:        "avhrr",
//		FileSourcePattern: "/archive/avhrr_%Y%m%d_%H%M00_noaa19.hrp.bz2",
//		TimeStep:          "00:01:00",
//	}.Resolve()
//	f, _ := granule.New(acq, granule.WithID(1))
//	pairs, _ := f.Filter(names)
package granule
