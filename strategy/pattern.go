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
	"errors"

	"dirpx.dev/ffx/apis"
)

var (
	errNoNamespace       = errors.New("ffx(strategy): no generator namespace configured")
	errGeneratorPanicked = errors.New("ffx(strategy): generator panicked")
)

// NewPatternStrategy consults the rule registry.
func NewPatternStrategy(reg apis.Registry) apis.Strategy {
	return &patternStrategy{reg: reg}
}

// patternStrategy invokes the generator of the best matching rule.
type patternStrategy struct {
	reg apis.Registry
}

// Ensure patternStrategy implements apis.Strategy.
var _ apis.Strategy = (*patternStrategy)(nil)

func (s *patternStrategy) TryResolve(_ context.Context, req apis.Request) (apis.Value, bool) {
	if s.reg == nil {
		return nil, false
	}
	g, ok := s.reg.Find(req.Field)
	if !ok {
		return nil, false
	}
	if v := g(); v != nil {
		return v, true
	}
	return nil, false
}
