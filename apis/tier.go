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

package apis

import (
	"fmt"
	"strings"
)

// Tier is the priority class of a rule. Lower values win.
//
// The tiers are, highest priority first:
//
//   - TierExact: caller-registered exact-name rules.
//   - TierPattern: caller-registered regular expression rules.
//   - TierBuiltin: the built-in rule table.
//
// Within a tier, registration (or declaration) order decides.
type Tier int

const (
	// TierExact holds caller exact-name rules.
	TierExact Tier = iota
	// TierPattern holds caller regular expression rules.
	TierPattern
	// TierBuiltin holds the built-in rules.
	TierBuiltin
)

// String returns the canonical name of the tier.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPattern:
		return "pattern"
	case TierBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("ffx: empty tier")
	}

	switch strings.ToLower(trimmed) {
	case "exact":
		return TierExact, nil
	case "pattern":
		return TierPattern, nil
	case "builtin":
		return TierBuiltin, nil
	default:
		return 0, fmt.Errorf("ffx: unknown tier %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	switch t {
	case TierExact, TierPattern, TierBuiltin:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("ffx: cannot marshal unknown tier %d", int(t))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	v, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
