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

package strategy_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/association"
	"dirpx.dev/ffx/config"
	"dirpx.dev/ffx/matcher"
	"dirpx.dev/ffx/namespace"
	"dirpx.dev/ffx/registry"
	"dirpx.dev/ffx/strategy"
)

var ctx = context.Background()

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestOverride(t *testing.T) {
	ns := namespace.New(gofakeit.New(5))
	s := strategy.NewOverrideStrategy(ns, apis.Static("fallback"), slogt.New(t))

	_, ok := s.TryResolve(ctx, apis.Request{Field: "x"})
	require.False(t, ok, "no expression, not handled")

	v, ok := s.TryResolve(ctx, apis.Request{Field: "pw", Hints: apis.Hints{Expr: "Internet.password(min_length: 12, max_length: 12)"}})
	require.True(t, ok)
	require.Len(t, v, 12)
}

func TestOverride_InvalidFallsBackAndWarns(t *testing.T) {
	log, buf := bufferLogger()
	ns := namespace.New(gofakeit.New(5))
	s := strategy.NewOverrideStrategy(ns, apis.Static("fallback"), log)

	for _, expr := range []string{"Nope.nothing", "Name.nothing", "Name.first_name(", "system('rm')"} {
		buf.Reset()
		v, ok := s.TryResolve(ctx, apis.Request{Field: "f", Hints: apis.Hints{Expr: expr}})
		require.True(t, ok, expr)
		require.Equal(t, "fallback", v, expr)
		require.Contains(t, buf.String(), "ffx: invalid generator override", expr)
		require.Contains(t, buf.String(), "level=WARN", expr)
	}
}

func TestOverride_PanickingGeneratorFallsBack(t *testing.T) {
	log, buf := bufferLogger()
	ns := namespace.New(gofakeit.New(5))
	require.NoError(t, ns.Register("Broken", "name", func(*gofakeit.Faker, namespace.Args) (apis.Value, error) {
		panic("boom")
	}))
	s := strategy.NewOverrideStrategy(ns, apis.Static("fallback"), log)

	v, ok := s.TryResolve(ctx, apis.Request{Field: "name", Hints: apis.Hints{Expr: "Broken.name"}})
	require.True(t, ok)
	require.Equal(t, "fallback", v)
	require.Contains(t, buf.String(), "ffx: invalid generator override")
	require.Contains(t, buf.String(), "boom")
}

func TestOverride_NilNamespace(t *testing.T) {
	s := strategy.NewOverrideStrategy(nil, apis.Static("fallback"), nil)
	v, ok := s.TryResolve(ctx, apis.Request{Hints: apis.Hints{Expr: "Name.name"}})
	require.True(t, ok)
	require.Equal(t, "fallback", v)
}

func TestCallable(t *testing.T) {
	s := strategy.NewCallableStrategy()
	_, ok := s.TryResolve(ctx, apis.Request{})
	require.False(t, ok)

	v, ok := s.TryResolve(ctx, apis.Request{Hints: apis.Hints{Generator: apis.Static(42)}})
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestLiteral(t *testing.T) {
	s := strategy.NewLiteralStrategy()
	v, ok := s.TryResolve(ctx, apis.Request{Field: "user_id", Hints: apis.ParseHints(123, "")})
	require.True(t, ok)
	require.Equal(t, 123, v)

	v, ok = s.TryResolve(ctx, apis.Request{Hints: apis.ParseHints("pinned", "")})
	require.True(t, ok)
	require.Equal(t, "pinned", v)

	_, ok = s.TryResolve(ctx, apis.Request{Hints: apis.ParseHints(true, "")})
	require.False(t, ok)
}

func TestRequest(t *testing.T) {
	s := strategy.NewRequestStrategy()
	for _, h := range []apis.Hints{{}, apis.ParseHints(false, ""), apis.ParseHints(3.5, ""), apis.ParseHints(nil, "")} {
		v, ok := s.TryResolve(ctx, apis.Request{Field: "email", Hints: h})
		require.True(t, ok, "unrequested hints stop the chain")
		require.Nil(t, v)
	}
	_, ok := s.TryResolve(ctx, apis.Request{Hints: apis.Hints{Enabled: true}})
	require.False(t, ok)
}

func TestPattern(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), nil)
	require.NoError(t, reg.Register(matcher.Exact("name"), apis.Static("CUSTOM")))
	require.NoError(t, reg.Register(matcher.MustPattern("^nil_"), apis.Static(nil)))
	s := strategy.NewPatternStrategy(reg)

	v, ok := s.TryResolve(ctx, apis.Request{Field: "name"})
	require.True(t, ok)
	require.Equal(t, "CUSTOM", v)

	_, ok = s.TryResolve(ctx, apis.Request{Field: "other"})
	require.False(t, ok)

	_, ok = s.TryResolve(ctx, apis.Request{Field: "nil_value"})
	require.False(t, ok, "nil generator output falls through")

	_, ok = strategy.NewPatternStrategy(nil).TryResolve(ctx, apis.Request{Field: "name"})
	require.False(t, ok)
}

type failingIDs struct{ err error }

func (f failingIDs) IDs(context.Context, string) ([]apis.Value, error) { return nil, f.err }

func TestAssociation(t *testing.T) {
	ids := association.NewMap(map[string][]apis.Value{
		"author": {int64(1), int64(2), int64(3)},
		"tag":    {},
	})
	s := strategy.NewAssociationStrategy(ids, gofakeit.New(9), slogt.New(t))

	for i := 0; i < 20; i++ {
		v, ok := s.TryResolve(ctx, apis.Request{Field: "author_id"})
		require.True(t, ok)
		require.Contains(t, []apis.Value{int64(1), int64(2), int64(3)}, v)
	}

	_, ok := s.TryResolve(ctx, apis.Request{Field: "tag_id"})
	require.False(t, ok, "empty id set")
	_, ok = s.TryResolve(ctx, apis.Request{Field: "author"})
	require.False(t, ok, "no suffix")
	_, ok = s.TryResolve(ctx, apis.Request{Field: "_id"})
	require.False(t, ok, "no entity")
}

func TestAssociation_Errors(t *testing.T) {
	log, buf := bufferLogger()

	s := strategy.NewAssociationStrategy(failingIDs{err: association.ErrUnknownEntity}, nil, log)
	_, ok := s.TryResolve(ctx, apis.Request{Field: "ghost_id"})
	require.False(t, ok)
	require.Empty(t, buf.String(), "unknown entities are silent")

	s = strategy.NewAssociationStrategy(failingIDs{err: errors.New("db down")}, nil, log)
	_, ok = s.TryResolve(ctx, apis.Request{Field: "author_id"})
	require.False(t, ok)
	require.Contains(t, buf.String(), "ffx: association lookup failed")
	require.Contains(t, buf.String(), "entity=author")

	_, ok = strategy.NewAssociationStrategy(nil, nil, nil).TryResolve(ctx, apis.Request{Field: "author_id"})
	require.False(t, ok)
}

func TestDefaultAndFallback(t *testing.T) {
	d := strategy.NewDefaultStrategy()
	_, ok := d.TryResolve(ctx, apis.Request{})
	require.False(t, ok)
	_, ok = d.TryResolve(ctx, apis.Request{Default: apis.Static(nil)})
	require.False(t, ok)
	v, ok := d.TryResolve(ctx, apis.Request{Default: apis.Static("string-default")})
	require.True(t, ok)
	require.Equal(t, "string-default", v)

	f := strategy.NewFallbackStrategy(apis.Static("word"))
	v, ok = f.TryResolve(ctx, apis.Request{})
	require.True(t, ok)
	require.Equal(t, "word", v)
}
