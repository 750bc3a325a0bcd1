package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var (
	addDescription string
	addPriority    string
	addCategory    string
	addTags        []string
	addDue         string
	addRecurrence  string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "Tags (comma separated)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addRecurrence, "recurrence", "", "Recurrence label (none, daily, weekly, monthly, custom)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	due, err := parseDueDate(addDue)
	if err != nil {
		return err
	}

	category := addCategory
	if category == "" {
		category = cfg.Tasks.DefaultCategory
	}

	draft := core.TaskDraft{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		Priority:    core.Priority(addPriority),
		Category:    category,
		Tags:        addTags,
		DueDate:     due,
		Recurrence:  core.Recurrence(addRecurrence),
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	st, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := st.Create(ctx, draft)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s: %s\n", shortID(task.ID), task.Title)
	return nil
}
