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

// Package access lists and copies granule files for an acquisition.
package access

import (
	"context"
	"slices"
	"strings"

	"github.com/walteh/granulerc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsupportedProtocol is returned when no layer is registered for a protocol.
var ErrUnsupportedProtocol = errors.New("unsupported protocol")

// 🔌 Layer is the file access boundary of a granule filter. Listing calls
// return full paths.
type Layer interface {
	// 📂 ListSourceDirectory lists the files of a directory on the source side
	ListSourceDirectory(ctx context.Context, dir string) ([]string, error)
	// 📂 ListLocalDirectory lists the files of a directory on the local side
	ListLocalDirectory(ctx context.Context, dir string) ([]string, error)
	// 🔍 CheckForLocalFile reports whether path exists on the local side
	CheckForLocalFile(ctx context.Context, path string) (bool, error)
	// 📥 FileCopy copies source into the local path destination
	FileCopy(ctx context.Context, source, destination string) error
}

// 🏭 Factory creates a layer for a server address.
type Factory func(ctx context.Context, server string) (Layer, error)

var (
	// 🗺️ factories maps protocols to layer factories
	factories = map[config.Protocol]Factory{}
)

// 📝 Register registers a layer factory for a protocol
func Register(protocol config.Protocol, factory Factory) {
	factories[protocol] = factory
}

// 🎯 New returns a layer for protocol.
func New(ctx context.Context, protocol config.Protocol, server string) (Layer, error) {
	factory, ok := factories[protocol]
	if !ok {
		options := make([]string, 0, len(factories))
		for k := range factories {
			options = append(options, string(k))
		}
		slices.Sort(options)
		return nil, errors.Errorf("%w: %q, options: %s", ErrUnsupportedProtocol, protocol, strings.Join(options, ", "))
	}
	return factory(ctx, server)
}
