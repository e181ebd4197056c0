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

package apis

import "math"

// Value is a generated or caller-pinned field value. In practice it is a
// scalar: string, one of the integer kinds, float64 or bool.
type Value = any

// Generator produces one Value per call. Resolution invokes a generator at
// most once.
type Generator func() Value

// Static returns a Generator that always yields v.
func Static(v Value) Generator {
	return func() Value { return v }
}

// AsInt reports whether v is one of the integer kinds and fits in an int64,
// and returns it widened to int64. Unsigned values above math.MaxInt64 are
// not integers here.
func AsInt(v Value) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}
