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

package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"dirpx.dev/ffx/apis"
)

// NewOverrideStrategy evaluates Hints.Expr against ns. An expression that
// fails to evaluate is logged and answered with fallback instead of
// continuing down the chain.
func NewOverrideStrategy(ns apis.Namespace, fallback apis.Generator, log *slog.Logger) apis.Strategy {
	return &overrideStrategy{ns: ns, fallback: fallback, log: orDiscard(log)}
}

type overrideStrategy struct {
	ns       apis.Namespace
	fallback apis.Generator
	log      *slog.Logger
}

// Ensure overrideStrategy implements apis.Strategy.
var _ apis.Strategy = (*overrideStrategy)(nil)

func (s *overrideStrategy) TryResolve(_ context.Context, req apis.Request) (apis.Value, bool) {
	expr := req.Hints.Expr
	if expr == "" {
		return nil, false
	}

	v, err := s.eval(expr)
	if err != nil {
		s.log.Warn("ffx: invalid generator override", "field", req.Field, "expr", expr, "err", err)
		return s.fallbackValue(), true
	}
	if v == nil {
		return s.fallbackValue(), true
	}
	return v, true
}

// eval runs expr, turning a panicking generator into an error so that the
// override still answers with the fallback.
func (s *overrideStrategy) eval(expr string) (v apis.Value, err error) {
	if s.ns == nil {
		return nil, errNoNamespace
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: %v", errGeneratorPanicked, r)
		}
	}()
	return s.ns.Eval(expr)
}

func (s *overrideStrategy) fallbackValue() apis.Value {
	if s.fallback == nil {
		return nil
	}
	return s.fallback()
}
