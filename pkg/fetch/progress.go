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

package fetch

import (
	"fmt"
	"sync"
)

// progress counts finished copies.
type progress struct {
	mu      sync.Mutex
	total   int
	current int
}

func newProgress(total int) *progress {
	return &progress{total: total}
}

// step records one finished copy and returns the progress message.
func (p *progress) step() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	return FormatProgress(p.current, p.total)
}

// FormatProgress formats a progress message with percentage
func FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// 📝 Summary formats a one-line report of r.
func (r *Result) Summary() string {
	switch {
	case len(r.Pending) > 0:
		return fmt.Sprintf("🔍 %s: %d new granules", r.Acquisition, len(r.Pending))
	case len(r.Failed) > 0:
		return fmt.Sprintf("❌ %s: %d copied, %d failed", r.Acquisition, len(r.Copied), len(r.Failed))
	case len(r.Copied) > 0:
		return fmt.Sprintf("✨ %s: %d copied", r.Acquisition, len(r.Copied))
	default:
		return fmt.Sprintf("👍 %s: up to date", r.Acquisition)
	}
}
