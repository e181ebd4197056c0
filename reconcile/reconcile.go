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

// Package reconcile fits a resolved candidate into the valid options of a
// choice-style input.
package reconcile

import (
	"github.com/brianvoe/gofakeit/v6"

	"dirpx.dev/ffx/apis"
)

// Reconciler adjusts candidates against option sets.
type Reconciler struct {
	faker *gofakeit.Faker
}

// New returns a Reconciler drawing from f; nil means a crypto-seeded faker.
func New(f *gofakeit.Faker) *Reconciler {
	if f == nil {
		f = gofakeit.New(0)
	}
	return &Reconciler{faker: f}
}

// Reconcile returns the value to select:
//
//   - nil candidate: nothing.
//   - integer candidate present in options: the candidate.
//   - integer candidate absent: a uniformly random option (nothing if empty).
//   - any other type: the candidate, unvalidated.
//
// Integers compare by numeric value across integer kinds, so an int
// candidate matches an int64 id loaded from a database.
func (r *Reconciler) Reconcile(candidate apis.Value, options []apis.Value) (apis.Value, bool) {
	if candidate == nil {
		return nil, false
	}
	n, ok := apis.AsInt(candidate)
	if !ok {
		return candidate, true
	}
	if Contains(options, n) {
		return candidate, true
	}
	return Sample(r.faker, options)
}

// Contains reports whether options holds an integer equal to n.
func Contains(options []apis.Value, n int64) bool {
	for _, o := range options {
		if m, ok := apis.AsInt(o); ok && m == n {
			return true
		}
	}
	return false
}

// Sample returns a uniformly random element of values.
func Sample(f *gofakeit.Faker, values []apis.Value) (apis.Value, bool) {
	if len(values) == 0 {
		return nil, false
	}
	return values[f.Number(0, len(values)-1)], true
}
