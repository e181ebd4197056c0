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

package builder

import (
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/gate"
	"dirpx.dev/ffx/mapping"
	"dirpx.dev/ffx/namespace"
	"dirpx.dev/ffx/registry"
	"dirpx.dev/ffx/resolver"
	"dirpx.dev/ffx/strategy"
)

// FallbackExpr is the generic short free-text generator used when nothing
// else applies.
const FallbackExpr = "Lorem.word"

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// Normalize fills unset dependencies: a discarding logger, the process
// environment lookup, a time-seeded faker and the built-in generator
// namespace bound to that faker. IDs stays nil when unset.
func Normalize(deps apis.Deps) apis.Deps {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Env == nil {
		deps.Env = gate.Lookup(gate.DefaultKeys...)
	}
	if deps.Faker == nil {
		deps.Faker = gofakeit.New(0)
	}
	if deps.Generators == nil {
		deps.Generators = namespace.New(deps.Faker)
	}
	return deps
}

// BuildGate builds the environment gate from cfg.Environments and deps.Env.
func (b *builder) BuildGate(cfg apis.Config, deps apis.Deps) apis.Gate {
	return gate.New(cfg.Environments, deps.Env)
}

// BuildRegistry builds a registry holding cfg rules and the built-in mapping
// table. Rules registered at runtime on a previous registry are migrated after
// cfg's own rules; the previous configuration's rules are not.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, deps apis.Deps) apis.Registry {
	deps = Normalize(deps)

	defaults, err := mapping.Defaults(deps.Generators)
	if err != nil {
		deps.Logger.Warn("ffx: built-in mappings skipped", "err", err)
	}

	reg := registry.New(cfg, defaults)
	if prev != nil {
		for _, rule := range prev.Runtime() {
			_ = reg.Register(rule.Matcher, rule.Generator)
		}
	}
	return reg
}

// BuildResolver builds the canonical resolution chain over reg.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, deps apis.Deps) apis.Resolver {
	deps = Normalize(deps)
	fallback := Fallback(deps)

	return resolver.New(
		deps.Logger,
		strategy.NewOverrideStrategy(deps.Generators, fallback, deps.Logger),
		strategy.NewCallableStrategy(),
		strategy.NewLiteralStrategy(),
		strategy.NewRequestStrategy(),
		strategy.NewPatternStrategy(reg),
		strategy.NewAssociationStrategy(deps.IDs, deps.Faker, deps.Logger),
		strategy.NewDefaultStrategy(),
		strategy.NewFallbackStrategy(fallback),
	)
}

// Fallback returns the generic free-text generator for deps. A namespace that
// does not know FallbackExpr falls back to the faker directly.
func Fallback(deps apis.Deps) apis.Generator {
	deps = Normalize(deps)
	if g, err := deps.Generators.Compile(FallbackExpr); err == nil {
		return g
	}
	f := deps.Faker
	return func() apis.Value { return f.Word() }
}
