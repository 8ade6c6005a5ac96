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

/*
Package pattern compiles granule filename patterns.

A pattern mixes literal text, strftime-style time tokens and numbered
placeholders:

	/data/msg/%Y/%m/%d/H-000-MSG3__-MSG3________-{0}___-00000{1}___-%Y%m%d%H%M

	      literal ──┐    ┌── time token
	                │    │
	   /data/msg/ %Y / %m ... {0} ... {1} ... %Y%m%d%H%M
	                           │       │
	              group slot ──┘       └── value slot

When a subset specification such as

	{IR_108:{1..8}, WV_073:{1,2,3,4,5,6,7,8}}

is supplied, placeholder {0} takes a group name and {1} takes one of that
group's enumerated values. Every other placeholder is a wildcard matching
one or more characters up to the next path separator.

🔄 Flow:
 1. Compile parses the text into segments and builds an anchored regexp
 2. Validate / TimeFromFilename / SubsetFromFilename decode concrete names
 3. FilenamesFromTime / Directories generate names for a timestamp
 4. Translate maps a name from one pattern onto another

Adjacent placeholders are accepted only when both are enumerated slots; the
match then prefers the longest alternative at each slot, left to right.

🔍 Example:

	p, err := pattern.CompileSpec(
		"H-000-MSG3__-MSG3________-{0}___-00000{1}___-%Y%m%d%H%M",
		"{IR_108:{1..8}}",
	)
	if err != nil {
		return err
	}

	p.Validate("H-000-MSG3__-MSG3________-IR_108___-000003___-201401231300") // true
*/
package pattern
