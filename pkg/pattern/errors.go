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

import "gitlab.com/tozd/go/errors"

var (
	// ErrPattern is returned when a pattern or subset specification cannot be compiled.
	ErrPattern = errors.New("invalid pattern")

	// ErrDecode is returned when a filename cannot be decoded under a pattern.
	ErrDecode = errors.New("filename does not match pattern")

	// ErrTranslation is returned when a filename cannot be mapped onto another pattern.
	ErrTranslation = errors.New("cannot translate filename")

	// ErrUnresolved is returned when generation hits a placeholder with no known value.
	ErrUnresolved = errors.New("unresolved placeholder")
)
