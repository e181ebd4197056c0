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
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/brianvoe/gofakeit/v6/data"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/association"
	"dirpx.dev/ffx/builder"
	"dirpx.dev/ffx/config"
	"dirpx.dev/ffx/gate"
	"dirpx.dev/ffx/matcher"
	"dirpx.dev/ffx/namespace"
)

var ctx = context.Background()

func testDeps(t testing.TB, env string) apis.Deps {
	f := gofakeit.New(42)
	return apis.Deps{
		Logger:     slogt.New(t),
		Env:        gate.Static(env),
		Faker:      f,
		Generators: namespace.New(f),
	}
}

// resetGlobal installs a clean process-wide engine for the test and drops it
// afterwards so the next access starts lazily again.
func resetGlobal(t testing.TB, deps apis.Deps) {
	t.Helper()
	buildMu.Lock()
	st.Store(New(config.DefaultConfig(), deps))
	buildMu.Unlock()
	t.Cleanup(func() {
		buildMu.Lock()
		st.Store(nil)
		buildMu.Unlock()
	})
}

// ---------------------- Test doubles (mocks) ----------------------

type countingBuilder struct {
	inner     apis.Builder
	registry  atomic.Int32
	resolvers atomic.Int32
	nilReg    bool
}

func newCountingBuilder() *countingBuilder {
	return &countingBuilder{inner: builder.New()}
}

func (b *countingBuilder) BuildGate(cfg apis.Config, deps apis.Deps) apis.Gate {
	return b.inner.BuildGate(cfg, deps)
}

func (b *countingBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry, deps apis.Deps) apis.Registry {
	b.registry.Add(1)
	if b.nilReg {
		return nil
	}
	return b.inner.BuildRegistry(cfg, prev, deps)
}

func (b *countingBuilder) BuildResolver(cfg apis.Config, reg apis.Registry, deps apis.Deps) apis.Resolver {
	b.resolvers.Add(1)
	return b.inner.BuildResolver(cfg, reg, deps)
}

// ---------------------- Engine ----------------------

func TestEngine_ExactRuleBeatsBuiltin(t *testing.T) {
	e := New(config.NewConfig(config.WithExact("name", apis.Static("CUSTOM"))), testDeps(t, "development"))
	v, ok := e.ResolveField(ctx, "name", true, "", nil)
	require.True(t, ok)
	require.Equal(t, "CUSTOM", v)
}

func TestEngine_SpecificBuiltinWins(t *testing.T) {
	e := New(config.DefaultConfig(), testDeps(t, "development"))
	for i := 0; i < 20; i++ {
		v, ok := e.ResolveField(ctx, "movie_name", true, "", nil)
		require.True(t, ok)
		require.Contains(t, data.Movies["name"], v)

		v, ok = e.ResolveField(ctx, "company_name", true, "", nil)
		require.True(t, ok)
		require.Contains(t, data.Company["name"], v)
	}
}

func TestEngine_NoRequestNoValue(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		e := New(config.DefaultConfig(), testDeps(t, env))
		for _, opt := range []any{nil, false, 3.5, []int{1}} {
			v, ok := e.ResolveField(ctx, "email", opt, "", apis.Static("x"))
			require.False(t, ok, "env=%s opt=%v", env, opt)
			require.Nil(t, v)
		}
	}
}

type spyResolver struct{ calls atomic.Int32 }

func (s *spyResolver) Resolve(context.Context, apis.Request) (apis.Value, bool) {
	s.calls.Add(1)
	return "spy", true
}

type spyBuilder struct {
	apis.Builder
	res *spyResolver
}

func (b spyBuilder) BuildResolver(apis.Config, apis.Registry, apis.Deps) apis.Resolver { return b.res }

func TestEngine_GateShortCircuit(t *testing.T) {
	spy := &spyResolver{}
	b := spyBuilder{Builder: builder.New(), res: spy}

	for _, env := range []apis.EnvSource{gate.Static("production"), gate.Unavailable()} {
		deps := testDeps(t, "")
		deps.Env = env
		e := NewWithBuilder(config.DefaultConfig(), deps, b)
		require.False(t, e.Enabled())
		for _, opt := range []any{true, 123, "x"} {
			_, ok := e.ResolveField(ctx, "email", opt, "Internet.email", nil)
			require.False(t, ok)
		}
		_, ok := e.Select(ctx, apis.Request{Field: "author_id", Hints: apis.Hints{Enabled: true}}, []apis.Value{1})
		require.False(t, ok)
	}
	require.Zero(t, spy.calls.Load())

	e := NewWithBuilder(config.DefaultConfig(), testDeps(t, "staging"), b)
	v, ok := e.ResolveField(ctx, "email", true, "", nil)
	require.True(t, ok)
	require.Equal(t, "spy", v)
	require.EqualValues(t, 1, spy.calls.Load())
}

func TestEngine_LiteralPassThrough(t *testing.T) {
	deps := testDeps(t, "development")
	deps.IDs = association.NewMap(map[string][]apis.Value{"user": {1, 2}})
	e := New(config.NewConfig(config.WithPattern("_id$", apis.Static("rule"))), deps)

	for i := 0; i < 10; i++ {
		v, ok := e.ResolveField(ctx, "user_id", 123, "", nil)
		require.True(t, ok)
		require.Equal(t, 123, v)
	}
}

func TestEngine_SelectReconciles(t *testing.T) {
	e := New(config.DefaultConfig(), testDeps(t, "development"))
	opts := []apis.Value{1, 2}

	for i := 0; i < 50; i++ {
		v, ok := e.Select(ctx, apis.Request{Field: "category_id", Hints: apis.ParseHints(999, "")}, opts)
		require.True(t, ok)
		require.Contains(t, opts, v)
	}

	v, ok := e.Select(ctx, apis.Request{Field: "category_id", Hints: apis.ParseHints(2, "")}, opts)
	require.True(t, ok)
	require.Equal(t, 2, v)

	v, ok = e.Select(ctx, apis.Request{Field: "status", Hints: apis.ParseHints("active", "")}, opts)
	require.True(t, ok)
	require.Equal(t, "active", v)

	_, ok = e.Select(ctx, apis.Request{Field: "category_id", Hints: apis.ParseHints(999, "")}, nil)
	require.False(t, ok)
}

func TestEngine_TypeDefaultBeforeFallback(t *testing.T) {
	e := New(config.DefaultConfig(), testDeps(t, "development"))
	v, ok := e.ResolveField(ctx, "status", true, "", apis.Static("string-default"))
	require.True(t, ok)
	require.Equal(t, "string-default", v)

	v, ok = e.ResolveField(ctx, "status", true, "", nil)
	require.True(t, ok)
	require.NotEmpty(t, v)
}

func TestEngine_OverrideExpression(t *testing.T) {
	e := New(config.DefaultConfig(), testDeps(t, "development"))
	v, ok := e.ResolveField(ctx, "secret", nil, "Faker::Internet.password(min_length: 20, max_length: 20)", nil)
	require.True(t, ok)
	require.Len(t, v, 20)

	v, ok = e.ResolveField(ctx, "secret", nil, "Kernel.exit", nil)
	require.True(t, ok, "invalid override degrades to the fallback")
	require.IsType(t, "", v)
}

func TestEngine_IdempotentRegistration(t *testing.T) {
	e := New(config.DefaultConfig(), testDeps(t, "development"))
	g := apis.Static("hero")
	require.NoError(t, e.Register(matcher.Exact("superhero_name"), g))
	require.NoError(t, e.Register(matcher.Exact("superhero_name"), apis.Static("other")))
	require.Equal(t, 1, e.Registry().Count())

	v, ok := e.ResolveField(ctx, "superhero_name", true, "", nil)
	require.True(t, ok)
	require.Equal(t, "hero", v)
}

func TestNewWithBuilder_PanicsOnNilRegistry(t *testing.T) {
	b := newCountingBuilder()
	b.nilReg = true
	require.PanicsWithValue(t, ErrNilRegistry, func() {
		NewWithBuilder(config.DefaultConfig(), apis.Deps{}, b)
	})
}

// ---------------------- Process-wide engine ----------------------

func TestCurrent_Lazy(t *testing.T) {
	buildMu.Lock()
	st.Store(nil)
	buildMu.Unlock()
	t.Cleanup(func() { st.Store(nil) })

	e := Current()
	require.NotNil(t, e)
	require.Same(t, e, Current())
	require.Equal(t, config.DefaultEnvironments(), Config().Environments)
}

func TestReset_Isolation(t *testing.T) {
	resetGlobal(t, testDeps(t, "development"))

	require.NoError(t, RegisterExact("name", apis.Static("CUSTOM")))
	Configure(config.WithOverrideDefaults(true))

	v, ok := ResolveField(ctx, "name", true, "", nil)
	require.True(t, ok)
	require.Equal(t, "CUSTOM", v)
	_, found := Registry().Find("email")
	require.False(t, found, "defaults disabled")

	Reset()

	require.Zero(t, Registry().Count())
	require.False(t, Config().OverrideDefaults)
	v, ok = ResolveField(ctx, "name", true, "", nil)
	require.True(t, ok)
	require.NotEqual(t, "CUSTOM", v)
	_, found = Registry().Find("email")
	require.True(t, found)
}

func TestConfigure_KeepsRuntimeRules(t *testing.T) {
	resetGlobal(t, testDeps(t, "development"))

	require.NoError(t, RegisterPattern("^hero_", apis.Static("Spider-Man")))
	Configure(config.WithEnvironments("test"))
	require.False(t, Enabled())

	SetDeps(testDeps(t, "test"))
	require.True(t, Enabled())

	v, ok := ResolveField(ctx, "hero_alias", true, "", nil)
	require.True(t, ok)
	require.Equal(t, "Spider-Man", v)
}

func TestConfigure_DropsRemovedConfigRules(t *testing.T) {
	resetGlobal(t, testDeps(t, "development"))

	Configure(config.WithExact("name", apis.Static("CUSTOM")))
	require.NoError(t, RegisterExact("nickname", apis.Static("runtime")))
	v, _ := ResolveField(ctx, "name", true, "", nil)
	require.Equal(t, "CUSTOM", v)

	Configure(config.WithoutRules())
	require.Empty(t, Config().Rules)
	require.Equal(t, 1, Registry().Count())
	v, ok := ResolveField(ctx, "name", true, "", nil)
	require.True(t, ok)
	require.NotEqual(t, "CUSTOM", v)
	v, _ = ResolveField(ctx, "nickname", true, "", nil)
	require.Equal(t, "runtime", v)

	Configure(config.WithExact("name", apis.Static("CUSTOM")))
	SetConfig(config.DefaultConfig())
	v, _ = ResolveField(ctx, "name", true, "", nil)
	require.NotEqual(t, "CUSTOM", v)
	v, _ = ResolveField(ctx, "nickname", true, "", nil)
	require.Equal(t, "runtime", v)
}

func TestRegister_Errors(t *testing.T) {
	resetGlobal(t, testDeps(t, "development"))
	require.Error(t, RegisterExact("", apis.Static(1)))
	require.Error(t, RegisterPattern("(", apis.Static(1)))
	require.Error(t, RegisterExact("x", nil))
}

func TestSetBuilder_Rebuilds(t *testing.T) {
	resetGlobal(t, testDeps(t, "development"))
	b := newCountingBuilder()

	SetBuilder(nil)
	SetBuilder(b)
	require.EqualValues(t, 1, b.registry.Load())
	require.EqualValues(t, 1, b.resolvers.Load())

	SetConfig(config.NewConfig(config.WithEnvironments("staging")))
	require.EqualValues(t, 2, b.registry.Load())

	Reset()
	require.EqualValues(t, 3, b.registry.Load(), "reset keeps the builder")
	require.Same(t, b, Current().Builder())
}

func TestShared_FollowsSnapshot(t *testing.T) {
	resetGlobal(t, testDeps(t, "development"))
	h := Shared()
	require.True(t, h.Enabled())

	SetDeps(testDeps(t, "production"))
	require.False(t, h.Enabled())

	g, err := h.Generator("Number.between(from: 3, to: 3)")
	require.NoError(t, err)
	require.Equal(t, 3, g())
}

func TestConcurrentResolveDuringReconfigure(t *testing.T) {
	resetGlobal(t, testDeps(t, "development"))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if v, ok := ResolveField(ctx, "email", true, "", nil); ok {
					if _, isString := v.(string); !isString {
						t.Errorf("email resolved to %T", v)
						return
					}
				}
			}
		}()
	}
	for i := 0; i < 200; i++ {
		if i%2 == 0 {
			Configure(config.WithEnvironments("development"))
		} else {
			Configure(config.WithEnvironments("staging"))
		}
		_ = RegisterExact("field_"+string(rune('a'+i%26)), apis.Static(i))
	}
	close(stop)
	wg.Wait()
}
