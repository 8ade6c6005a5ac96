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
Package config loads acquisition definitions for granulerc.

	            +-------------+
	            |    File     |
	            | (one or more|
	            | definitions)|
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Parses definitions, rejecting unknown keys in every format
- Resolves "HH:MM:SS" steps, areas and points of interest eagerly
- Expands directory-only destination patterns with the source basename

🔍 Example:

	definitions:
	  - config_name: msg3
	    protocol: local
	    file_source_pattern: /data/in/H-000-MSG3__-MSG3________-{0}___-00000{1}___-%Y%m%d%H%M
	    file_destination_pattern: /data/out/%Y/%m/%d/
	    subsets: "{IR_108:{1..8}}"
	    time_step: "00:15:00"
	    time_step_offset: "00:00:00"

	cfg, err := config.Load(ctx, "granules.yaml")
	if err != nil {
		return err
	}
	acqs, err := cfg.Acquisitions()
*/
package config
