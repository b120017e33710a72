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

// Package cmd implements the errkit command line tool.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand returns the errkit command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "errkit",
		Short: "Inspect the error taxonomy, status mapping and logging setup",
		Long: `errkit inspects the error kit of a service.

Commands:
  codes     - list the error taxonomy with default statuses
  explain   - show how a code and origin resolve to HTTP and gRPC statuses
  rules     - list the origin prefix rules of a mapping file
  sanitize  - redact sensitive keys from a YAML or JSON document
  config    - print the effective runtime logging configuration
  serve     - run a demo HTTP server using the kit`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newCodesCommand(),
		newExplainCommand(),
		newRulesCommand(),
		newSanitizeCommand(),
		newConfigCommand(),
		newServeCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
