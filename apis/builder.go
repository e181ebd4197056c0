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

// Builder composes the Gate, Registry and Resolver for a Config.
// deps are already completed with defaults when passed in.
type Builder interface {
	// BuildGate constructs the environment gate.
	BuildGate(cfg Config, deps Deps) Gate
	// BuildRegistry constructs a Registry for Config. Entries of the previous
	// registry that are not part of cfg may be migrated.
	BuildRegistry(cfg Config, prev Registry, deps Deps) Registry
	// BuildResolver constructs a Resolver over reg.
	BuildResolver(cfg Config, reg Registry, deps Deps) Resolver
}
