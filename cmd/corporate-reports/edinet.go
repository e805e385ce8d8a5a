package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/ternarybob/corporate-reports/internal/common"
	"github.com/ternarybob/corporate-reports/internal/edinet"
	"github.com/ternarybob/corporate-reports/internal/httpclient"
	"github.com/ternarybob/corporate-reports/internal/services/extract"
	"github.com/ternarybob/corporate-reports/internal/services/valuation"
)

func newEdinetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edinet",
		Short: "EDINET API operations",
	}
	cmd.AddCommand(newEdinetSearchCmd(a), newEdinetDownloadCmd(a))
	return cmd
}

// client builds an EDINET client from configuration.
func (a *app) client() *edinet.Client {
	cfg := a.config.Edinet
	return edinet.NewClient(cfg.APIKey,
		edinet.WithBaseURL(cfg.BaseURL),
		edinet.WithHTTPClient(httpclient.NewClient(
			common.ParseDuration(cfg.Timeout, edinet.DefaultTimeout),
			"corporate-reports/"+common.GetVersion(),
		)),
		edinet.WithRequestInterval(common.ParseDuration(cfg.RequestInterval, edinet.DefaultRequestInterval)),
		edinet.WithLogger(a.logger),
	)
}

func newEdinetSearchCmd(a *app) *cobra.Command {
	var date, secCode, ordinanceCode, formCode string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search filings submitted on a date",
		Example: `  corporate-reports edinet search --date 2024-06-27 --sec-code 5819 --form-code 030000
  corporate-reports edinet search --date 2024-06-27 --sec-code TSE:7203`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := time.Parse(time.DateOnly, date); err != nil {
				return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", date)
			}

			filters := edinet.SearchFilters{
				OrdinanceCode: ordinanceCode,
				FormCode:      formCode,
			}
			if secCode != "" {
				ticker := common.ParseTicker(secCode)
				filters.SecCode = ticker.SecCode()
				a.logger.Debug().Str("ticker", ticker.String()).Str("sec_code", filters.SecCode).Msg("Filtering by securities code")
			}

			docs, err := a.client().SearchDocuments(cmd.Context(), date, filters)
			if err != nil {
				return err
			}

			out, err := valuation.FormatOutput(docs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Submission date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&secCode, "sec-code", "", "Securities code (4 or 5 digits, or TSE:CODE)")
	cmd.Flags().StringVar(&ordinanceCode, "ordinance-code", "", "Ordinance code (e.g. "+edinet.OrdinanceCodeFIEA+")")
	cmd.Flags().StringVar(&formCode, "form-code", "", "Form code (e.g. "+edinet.FormCodeAnnualReport+" for annual reports)")
	cmd.MarkFlagRequired("date")
	return cmd
}

func newEdinetDownloadCmd(a *app) *cobra.Command {
	var docID, docType, output string
	var unpack bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a filing",
		Example: `  corporate-reports edinet download --doc-id S100TR7I --type 5 --output reports/5819/S100TR7I.zip --extract`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := edinet.DocumentType(docType)
			if !t.Valid() {
				return fmt.Errorf("invalid --type %q (want 1, 2, 3 or 5)", docType)
			}
			if unpack && t != edinet.DocumentTypeXBRL && t != edinet.DocumentTypeCSV {
				return fmt.Errorf("--extract needs a ZIP document type (1 or 5), got %s", docType)
			}

			path, err := a.client().DownloadDocument(cmd.Context(), docID, t, output)
			if err != nil {
				return err
			}

			result := statusMessage{Status: "success", File: path}
			if unpack {
				dest := strings.TrimSuffix(path, filepath.Ext(path))
				files, err := extract.ExtractArchive(path, dest)
				if err != nil {
					return err
				}
				a.logger.Info().Str("dir", dest).Int("files", len(files)).Msg("Archive extracted")
				result.Extracted = files
			}

			writeCompactJSON(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "doc-id", "", "Document ID (docID)")
	cmd.Flags().StringVar(&docType, "type", "", "Format: 1 (XBRL ZIP), 2 (PDF), 3 (alternative PDF), 5 (CSV ZIP)")
	cmd.Flags().StringVar(&output, "output", "", "Output file path")
	cmd.Flags().BoolVar(&unpack, "extract", false, "Unpack the downloaded ZIP next to the output file")
	cmd.MarkFlagRequired("doc-id")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("output")
	return cmd
}
