package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"demob-match/internal/api"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Bulk import demob profiles from a JSON file",
	Long: `Reads a JSON array of demob profiles (or an object with a "profiles" array)
and posts it to /api/bulkImportDemobProfiles. Re-matching for the imported
profiles is queued by the server.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// readImportFile accepts either a bare array or a {"profiles": [...]} object
// and returns the array with its length.
func readImportFile(raw []byte) (json.RawMessage, int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, 0, errors.New("import file is empty")
	}
	if raw[0] == '{' {
		var wrapper api.BulkImportRequest
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, 0, fmt.Errorf("parsing import file: %w", err)
		}
		raw = bytes.TrimSpace(wrapper.Profiles)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, 0, errors.New(`import file must hold an array of profiles or a "profiles" array`)
	}
	return raw, len(items), nil
}

func runImport(cmd *cobra.Command, path string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	profiles, n, err := readImportFile(raw)
	if err != nil {
		return err
	}

	client, err := apiClient(2 * time.Minute)
	if err != nil {
		return err
	}

	log.Info("importing profiles", zap.String("file", path), zap.Int("count", n))
	var resp api.BulkImportResponse
	if err := client.PostJSON(cmd.Context(), "/api/bulkImportDemobProfiles", api.BulkImportRequest{Profiles: profiles}, &resp); err != nil {
		return err
	}

	for _, e := range resp.Errors {
		log.Warn("profile rejected", zap.Int("index", e.Index), zap.String("employee_id", e.EmployeeID), zap.String("error", e.Error))
	}
	log.Info("import finished",
		zap.Int("imported", resp.Imported),
		zap.Int("failed", resp.Failed),
		zap.Int("rematch_queued", resp.Queued),
	)
	if resp.Imported == 0 && resp.Failed > 0 {
		return fmt.Errorf("all %d profiles were rejected", resp.Failed)
	}
	return nil
}
