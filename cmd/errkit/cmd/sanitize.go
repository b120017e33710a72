/*
   Copyright 2025 The DIRPX Authors

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

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dirpx.dev/errkit/environ"
	"dirpx.dev/errkit/rtconfig"
	"dirpx.dev/errkit/sanitize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSanitizeCommand() *cobra.Command {
	var (
		keys   []string
		asJSON bool
	)
	c := &cobra.Command{
		Use:   "sanitize [file]",
		Short: "Redact sensitive keys from a YAML or JSON document",
		Long: `Sanitize reads a YAML or JSON document from a file or stdin and writes
it back with sensitive values replaced by "***".

Examples:
  errkit sanitize payload.json --json
  kubectl get secret x -o yaml | errkit sanitize --keys data`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var doc any
			if err := yaml.NewDecoder(in).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("decode: %w", err)
			}
			out := sanitize.New(keys...).Sanitize(doc)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	c.Flags().StringSliceVar(&keys, "keys", nil, "extra sensitive keys")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
	return c
}

func newConfigCommand() *cobra.Command {
	var (
		environment string
		file        string
		preset      bool
	)
	c := &cobra.Command{
		Use:   "config",
		Short: "Print the effective runtime logging configuration",
		Long: `Config prints the runtime logging configuration a process would start
with, given its environment and an optional patch file.

Environment and file default to ENVIRONMENT and LOG_CONFIG_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := environ.Load()
			if err != nil {
				return err
			}
			if environment != "" {
				s.Environment = environment
			}
			if file == "" {
				file = s.RuntimeConfigFile
			}

			store := rtconfig.NewStore(rtconfig.Defaults(s.Development()))
			if preset {
				store.Initialize(s.Development())
			}
			if file != "" {
				p, err := rtconfig.LoadPatchFile(filepath.Clean(file))
				if err != nil {
					return err
				}
				store.Set(p)
			}

			b, err := rtconfig.EncodeYAML(store.Load())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	c.Flags().StringVar(&environment, "environment", "", "development, production, ...")
	c.Flags().StringVar(&file, "file", "", "patch file (.yaml, .yml, .json, .toml)")
	c.Flags().BoolVar(&preset, "preset", false, "start from the full development or production preset")
	return c
}
