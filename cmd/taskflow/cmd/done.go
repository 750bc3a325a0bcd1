package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
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

	id, err := resolveTaskID(st, args[0])
	if err != nil {
		return err
	}

	status := core.TaskStatusCompleted
	task, ok, err := st.Update(ctx, id, core.TaskUpdate{Status: &status})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no task matches %q", args[0])
	}

	fmt.Printf("Completed %s: %s\n", shortID(task.ID), task.Title)
	return nil
}
