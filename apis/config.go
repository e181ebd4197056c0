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

// Config carries the knobs of the process-wide (or per-Engine) policy.
// It is passed by value; Rules must not be mutated after construction.
type Config struct {
	// Environments lists the environment names in which values are injected.
	Environments []string

	// Rules are caller-registered rules in registration order. Exact rules
	// take priority over pattern rules regardless of their position.
	Rules []Rule

	// OverrideDefaults disables the built-in rule tier entirely.
	OverrideDefaults bool
}
