package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/taskflow/internal/adapters/storage"
	"github.com/hugo-lorenzo-mato/taskflow/internal/config"
	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
	"github.com/hugo-lorenzo-mato/taskflow/internal/logging"
	"github.com/hugo-lorenzo-mato/taskflow/internal/store"
)

func loadConfig() (*config.Config, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	format := cfg.Log.Format
	if noColor && format == "auto" {
		format = "text"
	}
	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: format,
		Output: os.Stderr,
	})
}

// openStore builds the configured repository and loads the store. The
// returned cleanup closes the repository when it holds resources.
func openStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*store.Store, func(), error) {
	repo, err := storage.NewRepository(storage.Options{
		Backend: storage.Backend(cfg.Storage.Backend),
		Dir:     cfg.Storage.Dir,
		DSN:     cfg.Storage.DSN,
		UserID:  cfg.Storage.UserID,
		Logger:  logger.Logger,
	})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = storage.CloseRepository(repo) }

	st, err := store.New(ctx, repo,
		store.WithLogger(logger.Logger),
		store.WithActivityCap(cfg.Tasks.ActivityCap),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return st, cleanup, nil
}

func printTasks(tasks []core.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tCATEGORY\tDUE\tSUBTASKS")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		subtasks := "-"
		if len(t.Subtasks) > 0 {
			done := 0
			for _, s := range t.Subtasks {
				if s.Completed {
					done++
				}
			}
			subtasks = fmt.Sprintf("%d/%d", done, len(t.Subtasks))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), t.Title, t.Priority, t.Status, t.Category, due, subtasks)
	}
	_ = w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTaskID matches an id argument against the collection, accepting
// unique id prefixes so short ids from list output work.
func resolveTaskID(st *store.Store, arg string) (string, error) {
	var match string
	for _, t := range st.Tasks() {
		if t.ID == arg {
			return t.ID, nil
		}
		if len(arg) >= 4 && len(t.ID) >= len(arg) && t.ID[:len(arg)] == arg {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task matches %q", arg)
	}
	return match, nil
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", s)
}
