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

package apis_test

import (
	"math"
	"testing"

	"dirpx.dev/ffx/apis"
)

func TestAsInt(t *testing.T) {
	cases := []struct {
		in   apis.Value
		want int64
		ok   bool
	}{
		{7, 7, true},
		{int8(-3), -3, true},
		{int64(math.MinInt64), math.MinInt64, true},
		{uint8(200), 200, true},
		{uint64(math.MaxInt64), math.MaxInt64, true},
		{uint64(math.MaxUint64), 0, false},
		{uint64(math.MaxInt64) + 1, 0, false},
		{uint(42), 42, true},
		{1.0, 0, false},
		{"1", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := apis.AsInt(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("AsInt(%#v) = (%d, %v); want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
