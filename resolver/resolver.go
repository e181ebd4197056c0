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

package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"dirpx.dev/ffx/apis"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(log *slog.Logger, strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return chain{strats: out, log: log}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
	log    *slog.Logger
}

// Resolve runs strategies in order until one handles the request. A handled
// nil value, or no handler at all, means no value.
func (r chain) Resolve(ctx context.Context, req apis.Request) (apis.Value, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, s := range r.strats {
		if v, ok := r.try(ctx, s, req); ok {
			return v, v != nil
		}
	}
	return nil, false
}

// try contains a panicking step so resolution degrades to the next one.
func (r chain) try(ctx context.Context, s apis.Strategy, req apis.Request) (v apis.Value, handled bool) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn("ffx: resolution step panicked",
				"field", req.Field, "step", fmt.Sprintf("%T", s), "panic", fmt.Sprint(p))
			v, handled = nil, false
		}
	}()
	return s.TryResolve(ctx, req)
}
