package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/corporate-reports/internal/services/extract"
	"github.com/ternarybob/corporate-reports/internal/services/valuation"
)

func newExtractCmd(a *app) *cobra.Command {
	var dir, archive, year string
	var facts, trends bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Read summary-of-business-results figures from an EDINET CSV export",
		Long: `Reads the jpcrp CSV of an EDINET type-5 download and prints the figures of
the summary of business results per fiscal year (current, prior1..prior4).
With --facts, prints a partial valuation input for one year instead; with
--trends, the compound annual growth of the main metrics.`,
		Example: `  corporate-reports extract --dir reports/5819/S100TR7I
  corporate-reports extract --archive S100TR7I.zip --dir reports/5819/S100TR7I --facts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if facts && trends {
				return fmt.Errorf("--facts and --trends are mutually exclusive")
			}
			if archive != "" {
				files, err := extract.ExtractArchive(archive, dir)
				if err != nil {
					return err
				}
				a.logger.Info().Str("archive", archive).Int("files", len(files)).Msg("Archive extracted")
			}

			summary, err := extract.NewExtractor(a.logger).Extract(dir)
			if err != nil {
				return err
			}

			var result any = summary
			if trends {
				result = extract.Trends(summary)
			}
			if facts {
				metrics, ok := summary[year]
				if !ok {
					return fmt.Errorf("no figures for fiscal year %q", year)
				}
				result = extract.PrefillFacts(metrics)
			}

			out, err := valuation.FormatOutput(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding the unpacked CSV export")
	cmd.Flags().StringVar(&archive, "archive", "", "Downloaded ZIP to unpack into --dir first")
	cmd.Flags().StringVar(&year, "year", extract.YearCurrent, "Fiscal year used by --facts (current, prior1..prior4)")
	cmd.Flags().BoolVar(&facts, "facts", false, "Print a partial valuation input instead of the summary")
	cmd.Flags().BoolVar(&trends, "trends", false, "Print growth rates (CAGR) instead of the summary")
	cmd.MarkFlagRequired("dir")
	return cmd
}
