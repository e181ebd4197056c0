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

package registry

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/matcher"
)

var (
	// ErrNilMatcher is returned when a rule has no matcher.
	ErrNilMatcher = errors.New("ffx(registry): nil matcher provided")
	// ErrNilGenerator is returned when a rule has no generator.
	ErrNilGenerator = errors.New("ffx(registry): nil generator provided")
)

// New constructs a Registry holding cfg.Rules (in order) and, unless
// cfg.OverrideDefaults is set, the given built-in rules as the last tier.
// Invalid rules in cfg are skipped; config.NewConfig never produces them.
func New(cfg apis.Config, defaults []apis.Rule) apis.Registry {
	r := &registry{}
	if !cfg.OverrideDefaults {
		r.defaults = make([]apis.Rule, len(defaults))
		copy(r.defaults, defaults)
	}
	r.snap.Store(&tiers{})
	r.config = make(map[string]struct{}, len(cfg.Rules))
	for _, rule := range cfg.Rules {
		if r.Register(rule.Matcher, rule.Generator) == nil {
			r.config[matcher.Key(rule.Matcher)] = struct{}{}
		}
	}
	return r
}

// registry keeps caller rules in a copy-on-write snapshot: readers load it
// atomically and never block, writers rebuild it under mu.
type registry struct {
	// defaults is the built-in tier; nil when overridden. Never mutated.
	defaults []apis.Rule
	// config holds matcher keys supplied by the configuration. Never mutated.
	config map[string]struct{}
	// mu serializes writers.
	mu sync.Mutex
	// snap is the current caller-rule snapshot.
	snap atomic.Pointer[tiers]
}

// tiers is an immutable snapshot of caller rules.
type tiers struct {
	// exact holds exact-name rules in registration order.
	exact []apis.Rule
	// pattern holds regular expression rules in registration order.
	pattern []apis.Rule
	// all holds every caller rule in registration order.
	all []apis.Rule
	// keys indexes matcher.Key of registered rules.
	keys map[string]struct{}
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register appends a caller rule. It is idempotent per matcher key.
func (r *registry) Register(m apis.Matcher, g apis.Generator) error {
	if m == nil {
		return ErrNilMatcher
	}
	if g == nil {
		return ErrNilGenerator
	}
	key := matcher.Key(m)

	// Fast read path for repeated registrations.
	if _, ok := r.snap.Load().keys[key]; ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snap.Load()
	if _, ok := old.keys[key]; ok {
		return nil
	}

	rule := apis.Rule{Matcher: m, Generator: g}
	next := &tiers{
		exact:   old.exact,
		pattern: old.pattern,
		all:     append(clip(old.all), rule),
		keys:    make(map[string]struct{}, len(old.keys)+1),
	}
	for k := range old.keys {
		next.keys[k] = struct{}{}
	}
	next.keys[key] = struct{}{}
	if m.Exact() {
		next.exact = append(clip(old.exact), rule)
	} else {
		next.pattern = append(clip(old.pattern), rule)
	}

	r.snap.Store(next)
	return nil
}

// Find scans caller exact rules, then caller pattern rules, then built-ins.
func (r *registry) Find(field string) (apis.Generator, bool) {
	rule, _, ok := r.Lookup(field)
	if !ok {
		return nil, false
	}
	return rule.Generator, true
}

// Lookup returns the first matching rule and the tier it was found in.
func (r *registry) Lookup(field string) (apis.Rule, apis.Tier, bool) {
	s := r.snap.Load()
	for _, rule := range s.exact {
		if rule.Matcher.Match(field) {
			return rule, apis.TierExact, true
		}
	}
	for _, rule := range s.pattern {
		if rule.Matcher.Match(field) {
			return rule, apis.TierPattern, true
		}
	}
	for _, rule := range r.defaults {
		if rule.Matcher.Match(field) {
			return rule, apis.TierBuiltin, true
		}
	}
	return apis.Rule{}, 0, false
}

// Rules returns caller rules in registration order.
func (r *registry) Rules() []apis.Rule {
	return clone(r.snap.Load().all)
}

// Runtime returns caller rules that did not come from the configuration.
func (r *registry) Runtime() []apis.Rule {
	all := r.snap.Load().all
	out := make([]apis.Rule, 0, len(all))
	for _, rule := range all {
		if _, ok := r.config[matcher.Key(rule.Matcher)]; !ok {
			out = append(out, rule)
		}
	}
	return out
}

// Defaults returns the active built-in rules.
func (r *registry) Defaults() []apis.Rule {
	return clone(r.defaults)
}

// Count returns the number of caller rules.
func (r *registry) Count() int {
	return len(r.snap.Load().all)
}

// Reset removes all caller rules. Built-ins are untouched.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Store(&tiers{})
}

// clip drops spare capacity so append always copies and never writes into
// a slice shared with a published snapshot.
func clip(s []apis.Rule) []apis.Rule {
	return s[:len(s):len(s)]
}

func clone(s []apis.Rule) []apis.Rule {
	out := make([]apis.Rule, len(s))
	copy(out, s)
	return out
}
