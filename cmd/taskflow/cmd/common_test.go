package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
	"github.com/hugo-lorenzo-mato/taskflow/internal/store"
	"github.com/hugo-lorenzo-mato/taskflow/internal/testutil"
)

func newCmdStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(context.Background(), testutil.NewMemRepository(),
		store.WithIDFunc(testutil.SequentialIDs("task")))
	require.NoError(t, err)
	return st
}

func TestResolveTaskID(t *testing.T) {
	st := newCmdStore(t)
	ctx := context.Background()

	first, err := st.Create(ctx, core.TaskDraft{Title: "first"}) // task-1
	require.NoError(t, err)
	_, err = st.Create(ctx, core.TaskDraft{Title: "second"}) // task-2
	require.NoError(t, err)

	id, err := resolveTaskID(st, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)

	// Unique prefix resolves.
	id, err = resolveTaskID(st, "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)

	// Ambiguous prefix fails.
	_, err = resolveTaskID(st, "task")
	assert.Error(t, err)

	// Unknown id fails.
	_, err = resolveTaskID(st, "zzzz")
	assert.Error(t, err)
}

func TestFuzzyByTitle(t *testing.T) {
	tasks := []core.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Build release"},
		{ID: "3", Title: "Morning run"},
	}

	got := fuzzyByTitle(tasks, "bml")
	require.NotEmpty(t, got)
	assert.Equal(t, "Buy milk", got[0].Title)

	got = fuzzyByTitle(tasks, "zzz")
	assert.Empty(t, got)
}
