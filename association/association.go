/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package association infers plausible foreign-key values for "*_id" fields
// by sampling the referenced entity's existing identifiers.
package association

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/ffx/apis"
)

// Suffix is the conventional foreign-key suffix.
const Suffix = "_id"

// ErrUnknownEntity is wrapped by IDSource implementations when the
// referenced entity does not exist. Resolution treats it as a silent miss.
var ErrUnknownEntity = errors.New("ffx(association): unknown entity")

// Entity derives the referenced entity from a field: "author_id" -> "author".
func Entity(field string) (string, bool) {
	if !strings.HasSuffix(field, Suffix) {
		return "", false
	}
	e := strings.TrimSuffix(field, Suffix)
	if e == "" {
		return "", false
	}
	return e, true
}

// Map is an in-memory IDSource keyed by entity name. It is safe for
// concurrent use.
type Map struct {
	mu  sync.RWMutex
	ids map[string][]apis.Value
}

// Ensure Map implements apis.IDSource.
var _ apis.IDSource = (*Map)(nil)

// NewMap returns a Map seeded with ids.
func NewMap(ids map[string][]apis.Value) *Map {
	m := &Map{ids: make(map[string][]apis.Value, len(ids))}
	for k, v := range ids {
		m.Set(k, v...)
	}
	return m
}

// Set replaces the identifiers of entity.
func (m *Map) Set(entity string, ids ...apis.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ids == nil {
		m.ids = make(map[string][]apis.Value)
	}
	m.ids[entity] = append([]apis.Value(nil), ids...)
}

// IDs returns a copy of the identifiers of entity.
func (m *Map) IDs(_ context.Context, entity string) ([]apis.Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids, ok := m.ids[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	return append([]apis.Value(nil), ids...), nil
}
