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

// Package bidict provides an insertion-ordered two-way mapping with unique
// keys and unique values.
package bidict

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrDuplicateValue = errors.New("duplicate value")
	ErrKeyNotFound    = errors.New("key not found")
	ErrValueNotFound  = errors.New("value not found")
	// ErrNoValue is returned when a key exists but was inserted without a value.
	ErrNoValue = errors.New("key has no value")
)

type entry[V comparable] struct {
	value V
	set   bool
}

// 🔁 BiDict maps keys to values and values back to keys. The zero value is
// not usable; use New.
type BiDict[K comparable, V comparable] struct {
	order    []K
	forward  map[K]entry[V]
	backward map[V]K
}

// 🏭 New creates an empty dictionary.
func New[K comparable, V comparable]() *BiDict[K, V] {
	return &BiDict[K, V]{
		forward:  map[K]entry[V]{},
		backward: map[V]K{},
	}
}

// 📥 Insert pairs key with value. Re-inserting an identical pair is a no-op;
// a key or value already paired differently fails and leaves d unchanged.
// A key previously inserted without a value gains the value.
func (d *BiDict[K, V]) Insert(key K, value V) error {
	if e, ok := d.forward[key]; ok && e.set {
		if e.value == value {
			return nil
		}
		return errors.Errorf("%w: %v already maps to %v", ErrDuplicateKey, key, e.value)
	}
	if other, ok := d.backward[value]; ok {
		return errors.Errorf("%w: %v already maps back to %v", ErrDuplicateValue, value, other)
	}

	if _, ok := d.forward[key]; !ok {
		d.order = append(d.order, key)
	}
	d.forward[key] = entry[V]{value: value, set: true}
	d.backward[value] = key
	return nil
}

// 📥 InsertKey adds key without a value. Unpaired keys are not indexed
// backward, so any number of them may coexist. Re-inserting an unpaired key
// is a no-op; a key that already has a value fails with ErrDuplicateKey.
func (d *BiDict[K, V]) InsertKey(key K) error {
	if e, ok := d.forward[key]; ok {
		if !e.set {
			return nil
		}
		return errors.Errorf("%w: %v already maps to %v", ErrDuplicateKey, key, e.value)
	}
	d.order = append(d.order, key)
	d.forward[key] = entry[V]{}
	return nil
}

// 🗑️ RemoveByKey removes key and its paired value.
func (d *BiDict[K, V]) RemoveByKey(key K) error {
	e, ok := d.forward[key]
	if !ok {
		return errors.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	if e.set {
		delete(d.backward, e.value)
	}
	delete(d.forward, key)
	d.order = slices.DeleteFunc(d.order, func(k K) bool { return k == key })
	return nil
}

// 🗑️ RemoveByValue removes value and its paired key.
func (d *BiDict[K, V]) RemoveByValue(value V) error {
	key, ok := d.backward[value]
	if !ok {
		return errors.Errorf("%w: %v", ErrValueNotFound, value)
	}
	return d.RemoveByKey(key)
}

// GetByKey returns the value paired with key.
func (d *BiDict[K, V]) GetByKey(key K) (V, error) {
	var zero V
	e, ok := d.forward[key]
	if !ok {
		return zero, errors.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	if !e.set {
		return zero, errors.Errorf("%w: %v", ErrNoValue, key)
	}
	return e.value, nil
}

// GetByValue returns the key paired with value.
func (d *BiDict[K, V]) GetByValue(value V) (K, error) {
	key, ok := d.backward[value]
	if !ok {
		var zero K
		return zero, errors.Errorf("%w: %v", ErrValueNotFound, value)
	}
	return key, nil
}

// Has reports whether key is present, paired or not.
func (d *BiDict[K, V]) Has(key K) bool {
	_, ok := d.forward[key]
	return ok
}

// HasValue reports whether value is paired with some key.
func (d *BiDict[K, V]) HasValue(value V) bool {
	_, ok := d.backward[value]
	return ok
}

// Len returns the number of keys.
func (d *BiDict[K, V]) Len() int {
	return len(d.order)
}

// Keys returns the keys in insertion order.
func (d *BiDict[K, V]) Keys() []K {
	return slices.Clone(d.order)
}

// Values returns the values of paired keys in key insertion order.
func (d *BiDict[K, V]) Values() []V {
	values := make([]V, 0, len(d.backward))
	for _, k := range d.order {
		if e := d.forward[k]; e.set {
			values = append(values, e.value)
		}
	}
	return values
}

// All iterates over keys in insertion order; unpaired keys yield the zero value.
func (d *BiDict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range slices.Clone(d.order) {
			e, ok := d.forward[k]
			if !ok {
				continue
			}
			if !yield(k, e.value) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (d *BiDict[K, V]) Clone() *BiDict[K, V] {
	c := New[K, V]()
	c.order = slices.Clone(d.order)
	for k, e := range d.forward {
		c.forward[k] = e
	}
	for v, k := range d.backward {
		c.backward[v] = k
	}
	return c
}

// Inverse returns a new dictionary mapping values to keys. Unpaired keys are dropped.
func (d *BiDict[K, V]) Inverse() *BiDict[V, K] {
	inv := New[V, K]()
	for _, k := range d.order {
		if e := d.forward[k]; e.set {
			inv.order = append(inv.order, e.value)
			inv.forward[e.value] = entry[K]{value: k, set: true}
			inv.backward[k] = e.value
		}
	}
	return inv
}

func (d *BiDict[K, V]) String() string {
	parts := make([]string, 0, len(d.order))
	for _, k := range d.order {
		if e := d.forward[k]; e.set {
			parts = append(parts, fmt.Sprintf("%v: %v", k, e.value))
		} else {
			parts = append(parts, fmt.Sprintf("%v: <none>", k))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
