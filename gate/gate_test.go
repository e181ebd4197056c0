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

package gate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/ffx/config"
	"dirpx.dev/ffx/gate"
)

func TestActive_DefaultEnvironments(t *testing.T) {
	envs := config.DefaultEnvironments()

	cases := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"staging", true},
		{" staging ", true},
		{"production", false},
		{"test", false},
		{"Development", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.env, func(t *testing.T) {
			require.Equal(t, tc.want, gate.New(envs, gate.Static(tc.env)).Active())
		})
	}
}

func TestActive_CustomEnvironments(t *testing.T) {
	g := gate.New([]string{"test"}, gate.Static("test"))
	require.True(t, g.Active())

	g = gate.New(nil, gate.Static("development"))
	require.False(t, g.Active())
}

func TestActive_NoEnvironment(t *testing.T) {
	envs := config.DefaultEnvironments()

	require.False(t, gate.New(envs, nil).Active())
	require.False(t, gate.New(envs, gate.Unavailable()).Active())
}

func TestNew_CopiesEnvironments(t *testing.T) {
	envs := []string{"development"}
	g := gate.New(envs, gate.Static("development"))
	envs[0] = "production"

	require.True(t, g.Active())
}

func TestLookup(t *testing.T) {
	t.Setenv("FFX_TEST_PRIMARY", "")
	t.Setenv("FFX_TEST_SECONDARY", " staging ")

	name, ok := gate.Lookup("FFX_TEST_PRIMARY", "FFX_TEST_SECONDARY")()
	require.True(t, ok)
	require.Equal(t, "staging", name)

	_, ok = gate.Lookup("FFX_TEST_UNSET_VARIABLE")()
	require.False(t, ok)

	t.Setenv("FFX_ENV", "development")
	g := gate.New(config.DefaultEnvironments(), gate.Lookup())
	require.True(t, g.Active())
}
