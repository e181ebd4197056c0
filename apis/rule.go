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

// Matcher decides whether a rule applies to a field name.
type Matcher interface {
	// Match reports whether field is covered by this matcher.
	Match(field string) bool
	// Exact reports whether this is an exact-name matcher. Exact matchers
	// form their own tier and are consulted before pattern matchers.
	Exact() bool
	// String returns the name or expression the matcher was built from.
	String() string
}

// Rule pairs a Matcher with the Generator used for fields it matches.
// Rules are immutable once registered.
type Rule struct {
	// Matcher selects fields.
	Matcher Matcher
	// Generator produces the value for a matched field.
	Generator Generator
}
