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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v3"

	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/matcher"
)

// Format is a configuration file format.
type Format string

const (
	// FormatYAML is YAML (.yaml, .yml).
	FormatYAML Format = "yaml"
	// FormatJSONC is JSON with comments (.json, .jsonc).
	FormatJSONC Format = "jsonc"
)

var (
	// ErrUnknownFormat is returned for unsupported file extensions.
	ErrUnknownFormat = errors.New("ffx(config): unknown config format")
	// ErrInvalidMapping is returned for mapping entries that are not exactly
	// one of field/pattern with exactly one of value/generator.
	ErrInvalidMapping = errors.New("ffx(config): invalid mapping")
)

// file is the on-disk structure. Mappings are a list because order matters.
type file struct {
	Environments     []string      `yaml:"environments" json:"environments"`
	OverrideDefaults bool          `yaml:"override_defaults" json:"override_defaults"`
	Mappings         []fileMapping `yaml:"mappings" json:"mappings"`
}

type fileMapping struct {
	Field     string `yaml:"field" json:"field"`
	Pattern   string `yaml:"pattern" json:"pattern"`
	Value     any    `yaml:"value" json:"value"`
	Generator string `yaml:"generator" json:"generator"`
}

// FormatOf derives the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads a configuration file. Generator expressions are compiled
// against ns, so a file referencing an unknown generator fails to load.
func Load(path string, ns apis.Namespace) (apis.Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return apis.Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("ffx(config): read %s: %w", path, err)
	}
	cfg, err := Parse(data, format, ns)
	if err != nil {
		return apis.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes configuration content. Absent keys keep their defaults;
// an explicit empty environment list disables every environment.
func Parse(data []byte, format Format, ns apis.Namespace) (apis.Config, error) {
	var f file
	var envSet bool
	switch format {
	case FormatYAML:
		var keys map[string]any
		if err := yaml.Unmarshal(data, &keys); err != nil {
			return apis.Config{}, fmt.Errorf("ffx(config): invalid YAML: %w", err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return apis.Config{}, fmt.Errorf("ffx(config): invalid YAML: %w", err)
		}
		_, envSet = keys["environments"]
	case FormatJSONC:
		raw := jsonc.ToJSON(data)
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(raw, &keys); err != nil {
			return apis.Config{}, fmt.Errorf("ffx(config): invalid JSON: %w", err)
		}
		if err := json.Unmarshal(raw, &f); err != nil {
			return apis.Config{}, fmt.Errorf("ffx(config): invalid JSON: %w", err)
		}
		_, envSet = keys["environments"]
	default:
		return apis.Config{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	opts := []Option{WithOverrideDefaults(f.OverrideDefaults)}
	if envSet {
		opts = append(opts, WithEnvironments(f.Environments...))
	}
	for i, m := range f.Mappings {
		rule, err := m.rule(ns)
		if err != nil {
			return apis.Config{}, fmt.Errorf("mappings[%d]: %w", i, err)
		}
		opts = append(opts, WithRule(rule.Matcher, rule.Generator))
	}
	return NewConfig(opts...), nil
}

func (m fileMapping) rule(ns apis.Namespace) (apis.Rule, error) {
	var r apis.Rule

	switch {
	case m.Field != "" && m.Pattern == "":
		r.Matcher = matcher.Exact(m.Field)
	case m.Pattern != "" && m.Field == "":
		pm, err := matcher.Pattern(m.Pattern)
		if err != nil {
			return r, fmt.Errorf("%w: %w", ErrInvalidMapping, err)
		}
		r.Matcher = pm
	default:
		return r, fmt.Errorf("%w: need exactly one of field or pattern", ErrInvalidMapping)
	}

	switch {
	case m.Generator != "" && m.Value == nil:
		if ns == nil {
			return r, fmt.Errorf("%w: generator %q without a namespace", ErrInvalidMapping, m.Generator)
		}
		g, err := ns.Compile(m.Generator)
		if err != nil {
			return r, fmt.Errorf("%w: %w", ErrInvalidMapping, err)
		}
		r.Generator = g
	case m.Value != nil && m.Generator == "":
		r.Generator = apis.Static(scalar(m.Value))
	default:
		return r, fmt.Errorf("%w: need exactly one of value or generator for %q", ErrInvalidMapping, r.Matcher)
	}
	return r, nil
}

// scalar turns JSON numbers that are whole into ints so they behave as
// association ids; YAML already decodes them as int.
func scalar(v any) any {
	if f, ok := v.(float64); ok && f == float64(int(f)) {
		return int(f)
	}
	return v
}
