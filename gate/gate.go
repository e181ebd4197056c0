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

// Package gate decides whether synthetic values are injected in the current
// environment.
package gate

import (
	"os"
	"slices"
	"strings"

	"dirpx.dev/ffx/apis"
)

// New returns a Gate that is active iff src reports an environment name
// contained in envs. A nil src means "no environment": never active.
func New(envs []string, src apis.EnvSource) apis.Gate {
	return &gate{envs: slices.Clone(envs), src: src}
}

type gate struct {
	envs []string
	src  apis.EnvSource
}

// Ensure gate implements apis.Gate.
var _ apis.Gate = (*gate)(nil)

func (g *gate) Active() bool {
	if g.src == nil {
		return false
	}
	name, ok := g.src()
	if !ok {
		return false
	}
	return slices.Contains(g.envs, strings.TrimSpace(name))
}

// Static reports a fixed environment name.
func Static(name string) apis.EnvSource {
	return func() (string, bool) { return name, true }
}

// Unavailable reports that the host has no environment.
func Unavailable() apis.EnvSource {
	return func() (string, bool) { return "", false }
}

// DefaultKeys are the variables consulted by Lookup when none are given.
var DefaultKeys = []string{"FFX_ENV", "APP_ENV", "GO_ENV"}

// Lookup reads the first non-empty process environment variable among keys
// (DefaultKeys when empty). It reports unavailable when none is set.
func Lookup(keys ...string) apis.EnvSource {
	if len(keys) == 0 {
		keys = DefaultKeys
	}
	keys = slices.Clone(keys)
	return func() (string, bool) {
		for _, k := range keys {
			if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), true
			}
		}
		return "", false
	}
}
