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

package config

import (
	"slices"
	"strings"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/matcher"
)

const (
	// EnvDevelopment is the conventional development environment name.
	EnvDevelopment = "development"
	// EnvStaging is the conventional staging environment name.
	EnvStaging = "staging"
	// DefaultOverrideDefaults represents the default for OverrideDefaults.
	// Built-in rules are active unless explicitly disabled.
	DefaultOverrideDefaults = false
)

// DefaultEnvironments returns the environments enabled by default.
func DefaultEnvironments() []string {
	return []string{EnvDevelopment, EnvStaging}
}

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Environments:     DefaultEnvironments(),
		OverrideDefaults: DefaultOverrideDefaults,
	}
}

// Clone returns a copy of cfg whose slices can be appended to safely.
func Clone(cfg apis.Config) apis.Config {
	cfg.Environments = slices.Clone(cfg.Environments)
	cfg.Rules = slices.Clone(cfg.Rules)
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithEnvironments replaces the enabled environment set. Blank names are
// dropped; names are trimmed.
func WithEnvironments(envs ...string) Option {
	return func(c *apis.Config) {
		out := make([]string, 0, len(envs))
		for _, e := range envs {
			if e = strings.TrimSpace(e); e != "" && !slices.Contains(out, e) {
				out = append(out, e)
			}
		}
		c.Environments = out
	}
}

// WithRule appends a caller rule. Nil matchers or generators are ignored.
func WithRule(m apis.Matcher, g apis.Generator) Option {
	return func(c *apis.Config) {
		if m == nil || g == nil {
			return
		}
		c.Rules = append(slices.Clip(c.Rules), apis.Rule{Matcher: m, Generator: g})
	}
}

// WithExact appends an exact-name rule.
func WithExact(name string, g apis.Generator) Option {
	if name == "" {
		return func(*apis.Config) {}
	}
	return WithRule(matcher.Exact(name), g)
}

// WithPattern appends a case-insensitive regular expression rule.
// An invalid expression is ignored; build the matcher with matcher.Pattern
// and use WithRule to see the error.
func WithPattern(expr string, g apis.Generator) Option {
	m, err := matcher.Pattern(expr)
	if err != nil {
		return func(*apis.Config) {}
	}
	return WithRule(m, g)
}

// WithOverrideDefaults sets the OverrideDefaults option.
func WithOverrideDefaults(override bool) Option {
	return func(c *apis.Config) {
		c.OverrideDefaults = override
	}
}

// WithoutRules drops every caller rule.
func WithoutRules() Option {
	return func(c *apis.Config) {
		c.Rules = nil
	}
}
