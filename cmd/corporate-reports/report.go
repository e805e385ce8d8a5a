package main

import (
	"github.com/spf13/cobra"
	"github.com/ternarybob/corporate-reports/internal/services/report"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report assembly",
	}
	cmd.AddCommand(newReportBuildCmd(a))
	return cmd
}

func newReportBuildCmd(a *app) *cobra.Command {
	var dir string
	var noCharts, noTOC bool

	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Build report.html from report.md and chart_config.json",
		Example: `  corporate-reports report build --dir reports/5819`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Report
			path, err := report.NewBuilder(a.logger).Build(dir, report.BuildOptions{
				NoCharts:      noCharts,
				NoTOC:         noTOC,
				CSSPath:       cfg.CSSPath,
				TOCScriptPath: cfg.TOCScriptPath,
				AnalyticsID:   cfg.AnalyticsID,
				TemplatesDir:  cfg.TemplatesDir,
			})
			if err != nil {
				return err
			}
			writeCompactJSON(cmd.OutOrStdout(), statusMessage{Status: "success", File: path})
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Report directory containing report.md")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip chart_config.json")
	cmd.Flags().BoolVar(&noTOC, "no-toc", false, "Omit the TOC sidebar")
	cmd.MarkFlagRequired("dir")
	return cmd
}
