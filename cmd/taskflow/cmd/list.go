package cmd

import (
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
	"github.com/hugo-lorenzo-mato/taskflow/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runList,
}

var (
	listCategory string
	listStatus   string
	listPriority string
	listSearch   string
	listFuzzy    string
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Substring search over title, description and tags")
	listCmd.Flags().StringVar(&listFuzzy, "fuzzy", "", "Fuzzy match on task titles")
}

func runList(cmd *cobra.Command, _ []string) error {
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

	tasks := st.List(store.Filter{
		Category: listCategory,
		Status:   listStatus,
		Priority: listPriority,
		Search:   listSearch,
	})
	if listFuzzy != "" {
		tasks = fuzzyByTitle(tasks, listFuzzy)
	}

	printTasks(tasks)
	return nil
}

// fuzzyByTitle narrows tasks to fuzzy title matches, ranked best first.
func fuzzyByTitle(tasks []core.Task, pattern string) []core.Task {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}

	matches := fuzzy.Find(pattern, titles)
	out := make([]core.Task, 0, len(matches))
	for _, m := range matches {
		out = append(out, tasks[m.Index])
	}
	return out
}
