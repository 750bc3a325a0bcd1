package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity, newest first",
	RunE:  runActivity,
}

var activityClear bool

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.Flags().BoolVar(&activityClear, "clear", false, "Clear the activity log")
}

func runActivity(cmd *cobra.Command, _ []string) error {
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

	if activityClear {
		if err := st.ClearActivity(ctx); err != nil {
			return err
		}
		fmt.Println("Activity log cleared.")
		return nil
	}

	entries := st.Activity()
	if len(entries) == 0 {
		fmt.Println("No activity.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTION\tTASK\tDETAIL")
	for _, e := range entries {
		detail := e.Detail
		if detail == "" {
			detail = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Action, e.TaskTitle, detail)
	}
	return w.Flush()
}
