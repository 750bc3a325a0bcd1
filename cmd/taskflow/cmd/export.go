package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/taskflow/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks and activity to a backup file",
	RunE:  runExport,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: taskflow-backup-<date>.json)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	doc := st.Export()
	data, err := snapshot.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	path := exportOutput
	if path == "" {
		path = snapshot.Filename(time.Now())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	fmt.Printf("Exported %d tasks and %d activity entries to %s\n",
		len(doc.Tasks), len(doc.Activity), path)
	return nil
}
