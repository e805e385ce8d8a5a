package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/corporate-reports/internal/services/valuation"
)

func newValuationCmd(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "valuation",
		Short: "Compute valuation metrics and DCF scenarios from a facts file",
		Example: `  corporate-reports valuation --input reports/5819/facts.json
  corporate-reports valuation --input facts.json --output valuation.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := valuation.LoadInput(input)
			if err != nil {
				return err
			}

			result, err := valuation.Calculate(in)
			if err != nil {
				return err
			}

			out, err := valuation.FormatOutput(result)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			if err := os.WriteFile(output, []byte(out+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info().Str("path", output).Msg("Valuation written")
			writeCompactJSON(cmd.OutOrStdout(), statusMessage{Status: "success", File: output})
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Facts JSON file")
	cmd.Flags().StringVar(&output, "output", "", "Write the result to this file instead of stdout")
	cmd.MarkFlagRequired("input")
	return cmd
}
