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
	"fmt"
	"text/tabwriter"

	"dirpx.dev/errkit/apis"
	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/mapper"
	"dirpx.dev/errkit/origin"
	"github.com/spf13/cobra"
)

type codeRow struct {
	Code    string `json:"code"`
	HTTP    int    `json:"http"`
	GRPC    string `json:"grpc"`
	Message string `json:"message"`
}

func newCodesCommand() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "codes",
		Short: "List the error taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := make([]codeRow, 0, len(code.All()))
			for _, c := range code.All() {
				rows = append(rows, codeRow{
					Code:    string(c),
					HTTP:    mapper.DefaultHTTP(c),
					GRPC:    mapper.DefaultGRPC(c).String(),
					Message: c.Message(),
				})
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tHTTP\tGRPC\tMESSAGE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Code, r.HTTP, r.GRPC, r.Message)
			}
			return tw.Flush()
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newExplainCommand() *cobra.Command {
	var mappingFile string
	c := &cobra.Command{
		Use:   "explain <code> [origin]",
		Short: "Explain how a code resolves to transport statuses",
		Long: `Explain prints the tier (override, prefix, default or fallback) that
decides the HTTP and gRPC status of a code for an origin.

Examples:
  errkit explain NOT_FOUND
  errkit explain database_error "billing -> chargeCard" --mapping mapping.yaml
  errkit explain DATABASE_ERROR billing.refund.create`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMapper(mappingFile)
			if err != nil {
				return err
			}
			// Unknown codes are explained too: they show the fallback.
			c := code.Code(code.Normalize(args[0]))
			var o origin.Origin
			if len(args) == 2 {
				if o, err = origin.Parse(args[1]); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), m.Explain(c, o))
			return err
		},
	}
	c.Flags().StringVar(&mappingFile, "mapping", "", "mapping file (YAML or JSON)")
	return c
}

func newRulesCommand() *cobra.Command {
	var mappingFile string
	c := &cobra.Command{
		Use:   "rules",
		Short: "List the origin prefix rules of a mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadMapper(mappingFile)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tTRANSPORT\tPREFIX\tSTATUS")
			for _, r := range mapper.Rules(m) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", r.Code, r.Transport, r.Pattern, r.Status)
			}
			return tw.Flush()
		},
	}
	c.Flags().StringVar(&mappingFile, "mapping", "", "mapping file (YAML or JSON)")
	return c
}

func loadMapper(path string) (apis.Mapper, error) {
	if path == "" {
		return mapper.New()
	}
	opts, err := mapper.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return mapper.New(opts...)
}
