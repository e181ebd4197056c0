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
	"sync"
	"sync/atomic"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/config"
	"dirpx.dev/ffx/matcher"
)

// Current returns the process-wide engine, creating it with the default
// configuration on first access.
func Current() *Engine {
	if e := st.Load(); e != nil {
		return e
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	if e := st.Load(); e != nil {
		return e
	}
	e := New(config.DefaultConfig(), apis.Deps{})
	st.Store(e)
	return e
}

// Enabled reports whether the process-wide gate is active.
func Enabled() bool {
	return Current().Enabled()
}

// Resolve resolves req with the process-wide engine.
func Resolve(ctx context.Context, req apis.Request) (apis.Value, bool) {
	return Current().Resolve(ctx, req)
}

// ResolveField resolves field with the process-wide engine.
func ResolveField(ctx context.Context, field string, opt any, expr string, def apis.Generator) (apis.Value, bool) {
	return Current().ResolveField(ctx, field, opt, expr, def)
}

// Select resolves req and reconciles it against options with the
// process-wide engine.
func Select(ctx context.Context, req apis.Request, options []apis.Value) (apis.Value, bool) {
	return Current().Select(ctx, req, options)
}

// Config returns the process-wide configuration.
func Config() apis.Config {
	return Current().Config()
}

// Registry returns the process-wide registry.
func Registry() apis.Registry {
	return Current().Registry()
}

// Configure applies opts on top of the current configuration and rebuilds.
func Configure(opts ...config.Option) {
	update(func(old *Engine) *Engine {
		cfg := config.Clone(old.cfg)
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg)
			}
		}
		return build(cfg, old.deps, old.bld, old.reg)
	})
}

// SetConfig replaces the configuration and rebuilds. Rules registered at
// runtime are carried over.
func SetConfig(cfg apis.Config) {
	update(func(old *Engine) *Engine {
		return build(cfg, old.deps, old.bld, old.reg)
	})
}

// SetDeps replaces the collaborators and rebuilds.
func SetDeps(deps apis.Deps) {
	update(func(old *Engine) *Engine {
		return build(old.cfg, deps, old.bld, old.reg)
	})
}

// SetBuilder replaces the builder and rebuilds. A nil builder is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(old *Engine) *Engine {
		return build(old.cfg, old.deps, b, old.reg)
	})
}

// RegisterExact adds an exact-name rule to the process-wide registry.
func RegisterExact(name string, g apis.Generator) error {
	if name == "" {
		return matcher.ErrEmptyName
	}
	return Current().Register(matcher.Exact(name), g)
}

// RegisterPattern adds a case-insensitive regular expression rule to the
// process-wide registry.
func RegisterPattern(expr string, g apis.Generator) error {
	m, err := matcher.Pattern(expr)
	if err != nil {
		return err
	}
	return Current().Register(m, g)
}

// Reset discards runtime rules and restores the default configuration.
// Collaborators and the builder are kept.
func Reset() {
	update(func(old *Engine) *Engine {
		return build(config.DefaultConfig(), old.deps, old.bld, nil)
	})
}

// Shared returns an apis.Engine that always delegates to the latest
// process-wide engine.
func Shared() apis.Engine {
	return shared{}
}

type shared struct{}

func (shared) Enabled() bool { return Current().Enabled() }

func (shared) Resolve(ctx context.Context, req apis.Request) (apis.Value, bool) {
	return Current().Resolve(ctx, req)
}

func (shared) Reconcile(candidate apis.Value, options []apis.Value) (apis.Value, bool) {
	return Current().Reconcile(candidate, options)
}

func (shared) Generator(expr string) (apis.Generator, error) {
	return Current().Generator(expr)
}

// update publishes the engine returned by fn under the build lock.
func update(fn func(old *Engine) *Engine) {
	old := Current()

	buildMu.Lock()
	defer buildMu.Unlock()

	if cur := st.Load(); cur != nil {
		old = cur
	}
	st.Store(fn(old))
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the process-wide engine. Published engines are never mutated except
// through their registry, which is itself copy-on-write.
var st atomic.Pointer[Engine]
