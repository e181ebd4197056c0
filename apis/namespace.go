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

// Namespace is a closed registry of named generators addressed by
// "Category.method(args)" expressions.
type Namespace interface {
	// Eval parses and invokes expr once.
	Eval(expr string) (Value, error)
	// Compile parses expr and returns a Generator bound to it.
	Compile(expr string) (Generator, error)
}
