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

// Package strategy implements the resolution steps chained by a Resolver.
//
// The canonical order is: Override, Callable, Literal, Request, Pattern,
// Association, Default, Fallback. Steps before Request act on explicit
// hints; Request stops the chain when nothing was asked for.
package strategy

import (
	"context"
	"log/slog"

	"dirpx.dev/ffx/apis"
)

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return log
}

// NewCallableStrategy invokes an explicit Hints.Generator.
func NewCallableStrategy() apis.Strategy {
	return callableStrategy{}
}

type callableStrategy struct{}

// Ensure callableStrategy implements apis.Strategy.
var _ apis.Strategy = callableStrategy{}

func (callableStrategy) TryResolve(_ context.Context, req apis.Request) (apis.Value, bool) {
	if req.Hints.Generator == nil {
		return nil, false
	}
	return req.Hints.Generator(), true
}

// NewLiteralStrategy returns a pinned integer or string literal unchanged.
func NewLiteralStrategy() apis.Strategy {
	return literalStrategy{}
}

type literalStrategy struct{}

// Ensure literalStrategy implements apis.Strategy.
var _ apis.Strategy = literalStrategy{}

func (literalStrategy) TryResolve(_ context.Context, req apis.Request) (apis.Value, bool) {
	return req.Hints.Literal()
}

// NewRequestStrategy ends the chain with "no value" unless the hints ask for
// resolution.
func NewRequestStrategy() apis.Strategy {
	return requestStrategy{}
}

type requestStrategy struct{}

// Ensure requestStrategy implements apis.Strategy.
var _ apis.Strategy = requestStrategy{}

func (requestStrategy) TryResolve(_ context.Context, req apis.Request) (apis.Value, bool) {
	if req.Hints.Enabled {
		return nil, false
	}
	return nil, true
}

// NewDefaultStrategy invokes the request's type-based default generator.
func NewDefaultStrategy() apis.Strategy {
	return defaultStrategy{}
}

type defaultStrategy struct{}

// Ensure defaultStrategy implements apis.Strategy.
var _ apis.Strategy = defaultStrategy{}

func (defaultStrategy) TryResolve(_ context.Context, req apis.Request) (apis.Value, bool) {
	if req.Default == nil {
		return nil, false
	}
	if v := req.Default(); v != nil {
		return v, true
	}
	return nil, false
}

// NewFallbackStrategy always handles the request with g, the generic short
// free-text generator.
func NewFallbackStrategy(g apis.Generator) apis.Strategy {
	return fallbackStrategy{g: g}
}

type fallbackStrategy struct {
	g apis.Generator
}

// Ensure fallbackStrategy implements apis.Strategy.
var _ apis.Strategy = fallbackStrategy{}

func (s fallbackStrategy) TryResolve(_ context.Context, _ apis.Request) (apis.Value, bool) {
	if s.g == nil {
		return nil, true
	}
	return s.g(), true
}
