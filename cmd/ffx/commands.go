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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"dirpx.dev/ffx"
	"dirpx.dev/ffx/apis"
	"dirpx.dev/ffx/config"
	"dirpx.dev/ffx/form"
	"dirpx.dev/ffx/gate"
	"dirpx.dev/ffx/mapping"
	"dirpx.dev/ffx/namespace"
	"dirpx.dev/ffx/sqlitestore"
)

var errUnknownKind = errors.New("unknown input kind")

func NewRootCmd(log *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "ffx SUBCOMMAND",

		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},

		SilenceUsage: true,

		Long: `ffx produces synthetic form field values the way the ffx library does.

Examples:
  $ ffx resolve user_email
  $ ffx resolve movie_name --env staging
  $ ffx resolve secret --expr 'Internet.password(min_length: 12)'
  $ ffx resolve author_id --db app.sqlite3
  $ ffx resolve category_id --value 999 --options 1,2,3
  $ ffx rules --tier builtin
  $ ffx explain movie_name
  $ ffx generators
`,
	}

	rootCmd.AddCommand(
		NewResolveCmd(log),
		NewRulesCmd(log),
		NewExplainCmd(log),
		NewGeneratorsCmd(log),
	)

	return rootCmd
}

func NewResolveCmd(log *slog.Logger) *cobra.Command {
	var (
		env        string
		configPath string
		expr       string
		value      string
		kind       string
		options    []string
		seed       int64
		dsn        string
	)

	cmd := &cobra.Command{
		Use: "resolve FIELD",

		Short: "Resolve one field name to a synthetic value",

		Long: `Resolve one field name to a synthetic value and print it.

Nothing is printed when no value would be injected, e.g. when --env is not
one of the enabled environments.`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			faker := gofakeit.New(seed)
			ns := namespace.New(faker)

			cfg, err := loadConfig(configPath, ns)
			if err != nil {
				return err
			}

			deps := apis.Deps{
				Logger:     log,
				Env:        gate.Static(env),
				Faker:      faker,
				Generators: ns,
			}
			if dsn != "" {
				store, err := sqlitestore.Open(cmd.Context(), dsn)
				if err != nil {
					return err
				}
				defer store.Close()
				deps.IDs = store
			}

			var def apis.Generator
			if kind != "" {
				e, ok := form.DefaultExpr(form.Kind(kind))
				if !ok {
					return fmt.Errorf("%w: %q", errUnknownKind, kind)
				}
				def = ns.MustCompile(e)
			}

			var opt any = true
			if cmd.Flags().Changed("value") {
				opt = literal(value)
			}
			req := apis.Request{Field: args[0], Hints: apis.ParseHints(opt, expr), Default: def}

			engine := ffx.New(cfg, deps)
			var (
				v  apis.Value
				ok bool
			)
			if cmd.Flags().Changed("options") {
				vals := make([]apis.Value, len(options))
				for i, o := range options {
					vals[i] = literal(o)
				}
				v, ok = engine.Select(cmd.Context(), req, vals)
			} else {
				v, ok = engine.Resolve(cmd.Context(), req)
			}

			if !ok {
				log.Info("No value", "field", args[0], "enabled", engine.Enabled())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&env, "env", config.EnvDevelopment, "current environment name")
	f.StringVar(&configPath, "config", "", "YAML or JSONC configuration file")
	f.StringVar(&expr, "expr", "", "generator override expression, e.g. 'Name.first_name'")
	f.StringVar(&value, "value", "", "literal value to pin (integers are parsed)")
	f.StringVar(&kind, "kind", "", "input kind whose default generator applies (email, phone, number, password, text, url, string)")
	f.StringSliceVar(&options, "options", nil, "valid option values of a choice input")
	f.Int64Var(&seed, "seed", 0, "random seed; 0 picks one")
	f.StringVar(&dsn, "db", "", "SQLite database answering *_id lookups")

	return cmd
}

func NewRulesCmd(log *slog.Logger) *cobra.Command {
	var (
		dump       bool
		configPath string
		tierName   string
	)

	cmd := &cobra.Command{
		Use: "rules",

		Short: "List field rules in match order",

		Long: `List field rules in match order: caller exact rules, caller pattern
rules (both from --config), then the built-in table.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, namespace.New(nil))
			if err != nil {
				return err
			}

			var only *apis.Tier
			if tierName != "" {
				t, err := apis.ParseTier(tierName)
				if err != nil {
					return err
				}
				only = &t
			}

			rows := listRules(cfg)
			if only != nil {
				kept := rows[:0]
				for _, r := range rows {
					if r.Tier == *only {
						kept = append(kept, r)
					}
				}
				rows = kept
			}

			if dump {
				spew.Fdump(cmd.OutOrStdout(), rows)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTIER\tMATCHER\tGENERATOR")
			for i, r := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.Tier, r.Matcher, r.Expr)
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.BoolVar(&dump, "dump", false, "dump rule values in full")
	f.StringVar(&configPath, "config", "", "YAML or JSONC configuration file")
	f.StringVar(&tierName, "tier", "", "only list one tier (exact, pattern, builtin)")

	return cmd
}

// ruleRow is one listed rule. Expr is empty for caller rules, whose
// generators are opaque.
type ruleRow struct {
	Tier    apis.Tier
	Matcher string
	Expr    string
}

func listRules(cfg apis.Config) []ruleRow {
	var exact, pattern, builtin []ruleRow
	for _, r := range cfg.Rules {
		if r.Matcher.Exact() {
			exact = append(exact, ruleRow{Tier: apis.TierExact, Matcher: r.Matcher.String()})
		} else {
			pattern = append(pattern, ruleRow{Tier: apis.TierPattern, Matcher: r.Matcher.String()})
		}
	}
	if !cfg.OverrideDefaults {
		for _, e := range mapping.Entries() {
			builtin = append(builtin, ruleRow{Tier: apis.TierBuiltin, Matcher: e.Matcher.String(), Expr: e.Expr})
		}
	}
	return append(append(exact, pattern...), builtin...)
}

func NewExplainCmd(log *slog.Logger) *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use: "explain FIELD",

		Short: "Show which rule a field name matches",

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			ns := namespace.New(nil)
			cfg, err := loadConfig(configPath, ns)
			if err != nil {
				return err
			}
			reg := ffx.New(cfg, apis.Deps{Logger: log, Generators: ns}).Registry()

			out := explanation{Field: args[0]}
			if rule, tier, ok := reg.Lookup(args[0]); ok {
				out.Matched = true
				out.Tier = &tier
				out.Matcher = rule.Matcher.String()
				if tier == apis.TierBuiltin {
					out.Expr, _ = mapping.Lookup(args[0])
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			if !out.Matched {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no rule\n", out.Field)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s %s\n", out.Field, out.Tier, out.Matcher, out.Expr)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML or JSONC configuration file")
	f.BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

type explanation struct {
	Field   string     `json:"field"`
	Matched bool       `json:"matched"`
	Tier    *apis.Tier `json:"tier,omitempty"`
	Matcher string     `json:"matcher,omitempty"`
	Expr    string     `json:"expr,omitempty"`
}

func loadConfig(path string, ns apis.Namespace) (apis.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path, ns)
}

func NewGeneratorsCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use: "generators",

		Short: "List the generator namespace usable in override expressions",

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			names := namespace.New(nil).Names()
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return nil
		},
	}
}

// literal parses s as an integer when possible.
func literal(s string) apis.Value {
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return n
	}
	return s
}
