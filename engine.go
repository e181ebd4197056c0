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

package ffx

import (
	"context"
	"errors"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/builder"
	"dirpx.dev/ffx/config"
	"dirpx.dev/ffx/reconcile"
)

var (
	// ErrNilGate is returned when a builder returns a nil gate.
	ErrNilGate = errors.New("ffx: builder returned nil gate")
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("ffx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("ffx: builder returned nil resolver")
)

// Engine is an explicitly constructed resolution engine: configuration,
// collaborators, gate, registry and resolver bound together. The registry
// accepts runtime registrations; everything else is fixed at construction.
// An Engine is safe for concurrent use.
type Engine struct {
	cfg  apis.Config
	deps apis.Deps
	bld  apis.Builder
	gate apis.Gate
	reg  apis.Registry
	res  apis.Resolver
	rec  *reconcile.Reconciler
}

// Ensure Engine implements apis.Engine.
var _ apis.Engine = (*Engine)(nil)

// New builds an Engine with the default builder. Unset deps are filled
// with builder.Normalize.
func New(cfg apis.Config, deps apis.Deps) *Engine {
	return NewWithBuilder(cfg, deps, nil)
}

// NewWithBuilder builds an Engine with b, or the default builder when b is
// nil. It panics with ErrNilGate, ErrNilRegistry or ErrNilResolver if b
// returns nil components.
func NewWithBuilder(cfg apis.Config, deps apis.Deps, b apis.Builder) *Engine {
	return build(cfg, deps, b, nil)
}

func build(cfg apis.Config, deps apis.Deps, b apis.Builder, prev apis.Registry) *Engine {
	if b == nil {
		b = builder.New()
	}
	cfg = config.Clone(cfg)
	deps = builder.Normalize(deps)

	e := &Engine{
		cfg:  cfg,
		deps: deps,
		bld:  b,
		gate: b.BuildGate(cfg, deps),
		reg:  b.BuildRegistry(cfg, prev, deps),
		rec:  reconcile.New(deps.Faker),
	}
	if e.gate == nil {
		panic(ErrNilGate)
	}
	if e.reg == nil {
		panic(ErrNilRegistry)
	}
	e.res = b.BuildResolver(cfg, e.reg, deps)
	if e.res == nil {
		panic(ErrNilResolver)
	}
	return e
}

// Enabled reports whether the current environment is in the enabled set.
func (e *Engine) Enabled() bool {
	return e.gate.Active()
}

// Resolve short-circuits on an inactive gate, otherwise runs the resolver.
func (e *Engine) Resolve(ctx context.Context, req apis.Request) (apis.Value, bool) {
	if !e.Enabled() {
		return nil, false
	}
	return e.res.Resolve(ctx, req)
}

// ResolveField resolves field with hints parsed from a raw option (bool,
// literal or generator) and an override expression.
func (e *Engine) ResolveField(ctx context.Context, field string, opt any, expr string, def apis.Generator) (apis.Value, bool) {
	return e.Resolve(ctx, apis.Request{Field: field, Hints: apis.ParseHints(opt, expr), Default: def})
}

// Reconcile fits candidate into options.
func (e *Engine) Reconcile(candidate apis.Value, options []apis.Value) (apis.Value, bool) {
	return e.rec.Reconcile(candidate, options)
}

// Select resolves req and reconciles the result against options.
func (e *Engine) Select(ctx context.Context, req apis.Request, options []apis.Value) (apis.Value, bool) {
	v, ok := e.Resolve(ctx, req)
	if !ok {
		return nil, false
	}
	return e.Reconcile(v, options)
}

// Generator compiles expr against the engine's generator namespace.
func (e *Engine) Generator(expr string) (apis.Generator, error) {
	return e.deps.Generators.Compile(expr)
}

// Register adds a caller rule to the engine's registry.
func (e *Engine) Register(m apis.Matcher, g apis.Generator) error {
	return e.reg.Register(m, g)
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() apis.Config { return config.Clone(e.cfg) }

// Deps returns the engine collaborators with defaults filled in.
func (e *Engine) Deps() apis.Deps { return e.deps }

// Builder returns the builder the engine was built with.
func (e *Engine) Builder() apis.Builder { return e.bld }

// Registry returns the engine registry.
func (e *Engine) Registry() apis.Registry { return e.reg }

// Resolver returns the engine resolver. It does not consult the gate.
func (e *Engine) Resolver() apis.Resolver { return e.res }
