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

// EnvSource reports the host's current environment name. ok is false when
// the host has no notion of an environment.
type EnvSource func() (name string, ok bool)

// Gate decides whether synthetic values are injected at all.
type Gate interface {
	// Active is cheap and side-effect free.
	Active() bool
}
