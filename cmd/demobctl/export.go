package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"demob-match/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download all demob profiles as CSV or JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", export.FormatJSON, "export format: json or csv")
	exportCmd.Flags().Bool("include-matches", false, "include match records (json only)")
	exportCmd.Flags().StringP("out", "o", "", "output file, - for stdout (default demob_export_<date>.<format>)")
}

func exportPath(format string, includeMatches bool) string {
	q := url.Values{}
	q.Set("format", format)
	if includeMatches {
		q.Set("include_matches", "true")
	}
	return "/api/exportDemobData?" + q.Encode()
}

func runExport(cmd *cobra.Command) error {
	rawFormat, _ := cmd.Flags().GetString("format")
	includeMatches, _ := cmd.Flags().GetBool("include-matches")
	out, _ := cmd.Flags().GetString("out")

	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return err
	}
	if out == "" {
		out = fmt.Sprintf("demob_export_%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	client, err := apiClient(5 * time.Minute)
	if err != nil {
		return err
	}
	resp, err := client.Get(cmd.Context(), exportPath(format, includeMatches))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var w io.Writer = cmd.OutOrStdout()
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if out != "-" {
		log.Info("export written", zap.String("file", out), zap.String("format", format), zap.Int64("bytes", n))
	}
	return nil
}
