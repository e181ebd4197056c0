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

// Package ffx fills form fields with synthetic values in non-production
// environments.
//
// Given a field identifier such as "user_email" and the caller's hints, ffx
// picks a value generator and produces one value, or reports that no value
// should be injected. Call sites merge the value into their own output only
// when they have not set one themselves.
//
// # Design
//
// An Engine binds four things together:
//
//   - Config: the environments in which injection is active (development
//     and staging by default), caller rules, and a flag disabling the
//     built-in rules.
//
//   - Gate: reports whether the current environment is enabled. An
//     unknown environment is treated as disabled.
//
//   - Registry: an ordered rule sequence in three tiers, highest first:
//     caller exact-name rules, caller regular expression rules, and the
//     built-in table. Within a tier the first registered rule wins. The
//     built-in table lists specific rules ("movie_name") before generic
//     ones ("name").
//
//   - Resolver: a chain of steps tried in order:
//     1. An override expression such as "Internet.password(min_length: 12)",
//     evaluated against a closed generator namespace. Invalid expressions
//     are logged and answered with the fallback.
//     2. An explicit generator.
//     3. A pinned integer or string literal, returned unchanged.
//     4. Nothing requested: no value.
//     5. The registry.
//     6. For "*_id" fields, a random existing identifier of the referenced
//     entity, taken from an apis.IDSource.
//     7. The caller's type default (e.g. an email generator for email
//     inputs).
//     8. A short random word.
//
// No step fails past the resolver: errors and panics degrade to the next
// step. Choice inputs additionally reconcile integer candidates against
// their option values.
//
// # Process-wide engine
//
// The package keeps one Engine behind an atomic pointer, created lazily on
// first use. Reads are lock-free:
//
//	v, ok := ffx.ResolveField(ctx, "user_email", true, "", nil)
//
// Writers (Configure, SetConfig, SetDeps, SetBuilder, Reset) serialize on a
// build lock, assemble a new Engine, and publish it atomically:
//
//	ffx.Configure(
//		config.WithEnvironments("development", "test"),
//		config.WithExact("superhero_name", apis.Static("Spider-Man")),
//	)
//
// RegisterExact and RegisterPattern add rules to the current registry. Reset
// restores the default configuration and drops runtime rules, which tests
// use for isolation. Programs that prefer explicit wiring construct their own
// Engine with New and never touch the global one.
//
// Package form wraps field-rendering functions with this behavior;
// cmd/ffx exposes it on the command line.
package ffx
