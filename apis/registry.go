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

// Registry is the ordered rule store consulted by pattern resolution.
// Reads must be safe for concurrent use.
type Registry interface {
	// Register appends a caller rule. Re-registering a matcher of the same
	// kind and text is a no-op: the first registration wins.
	Register(m Matcher, g Generator) error
	// Find returns the generator of the highest-priority matching rule:
	// caller exact rules, then caller pattern rules, then built-in rules.
	Find(field string) (Generator, bool)
	// Lookup is Find reporting the matching rule and its tier.
	Lookup(field string) (Rule, Tier, bool)
	// Rules returns a snapshot of caller rules in registration order.
	Rules() []Rule
	// Runtime returns the caller rules registered after construction, that
	// is Rules minus the ones the configuration supplied.
	Runtime() []Rule
	// Defaults returns the active built-in rules (empty when overridden).
	Defaults() []Rule
	// Count returns the number of caller rules.
	Count() int
	// Reset removes all caller rules.
	Reset()
}
