package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/taskflow/internal/snapshot"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a backup file",
	Long: `Import a backup file produced by export.

Replace mode swaps the whole collection for the backup contents. Merge
mode keeps existing tasks and adds backup entries with unseen ids.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importMode string

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importMode, "mode", "replace", "Import mode (replace, merge)")
}

func runImport(cmd *cobra.Command, args []string) error {
	mode := snapshot.ImportMode(importMode)
	if !mode.IsValid() {
		return fmt.Errorf("unknown import mode %q (want replace or merge)", importMode)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}
	doc, err := snapshot.Decode(data)
	if err != nil {
		return err
	}

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

	if err := st.Import(ctx, doc, mode); err != nil {
		return err
	}

	fmt.Printf("Imported %d tasks (%s mode)\n", len(doc.Tasks), mode)
	return nil
}
