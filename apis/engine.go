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

import "context"

// Engine is the read surface used by field-rendering call sites.
type Engine interface {
	// Enabled reports whether the environment gate is active.
	Enabled() bool
	// Resolve resolves req, returning false without consulting the resolver
	// when the gate is inactive.
	Resolve(ctx context.Context, req Request) (Value, bool)
	// Reconcile fits a candidate into the valid options of a choice input.
	Reconcile(candidate Value, options []Value) (Value, bool)
	// Generator compiles a namespace expression.
	Generator(expr string) (Generator, error)
}
