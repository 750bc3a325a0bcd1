package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate task statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
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

	stats := st.Stats()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total\t%d\n", stats.Total)
	fmt.Fprintf(w, "Pending\t%d\n", stats.Pending)
	fmt.Fprintf(w, "In progress\t%d\n", stats.InProgress)
	fmt.Fprintf(w, "Completed\t%d\n", stats.Completed)
	fmt.Fprintf(w, "Overdue\t%d\n", stats.Overdue)
	fmt.Fprintf(w, "Completion rate\t%d%%\n", stats.CompletionRate)
	return w.Flush()
}
