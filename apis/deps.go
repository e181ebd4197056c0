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

import (
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"
)

// Deps are the collaborators supplied by the host application. Nil members
// are replaced with defaults by the builder.
type Deps struct {
	// Logger receives non-fatal warnings.
	Logger *slog.Logger
	// Env reports the current environment name.
	Env EnvSource
	// IDs answers association lookups for "*_id" fields.
	IDs IDSource
	// Faker is the random source shared by generators and samplers.
	Faker *gofakeit.Faker
	// Generators evaluates override expressions.
	Generators Namespace
}
