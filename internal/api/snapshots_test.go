package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
	"github.com/hugo-lorenzo-mato/taskflow/internal/snapshot"
)

func TestExportSnapshot(t *testing.T) {
	srv, st := newTestServer(t)
	_, _ = st.Create(context.Background(), core.TaskDraft{Title: "Buy milk"})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/snapshot/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if disp := rec.Header().Get("Content-Disposition"); !strings.Contains(disp, "taskflow-backup-") {
		t.Fatalf("Content-Disposition = %q", disp)
	}

	var doc snapshot.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(doc.Tasks) != 1 || len(doc.Activity) != 1 {
		t.Fatalf("doc = %d tasks, %d entries", len(doc.Tasks), len(doc.Activity))
	}
}

func TestImportSnapshot_RoundTrip(t *testing.T) {
	source, st := newTestServer(t)
	_, _ = st.Create(context.Background(), core.TaskDraft{Title: "Buy milk"})
	exported := doRequest(t, source, http.MethodGet, "/api/v1/snapshot/export", nil)

	target, targetStore := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/import?mode=replace", bytes.NewReader(exported.Body.Bytes()))
	rec := httptest.NewRecorder()
	target.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	tasks := targetStore.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestImportSnapshot_DefaultsToMerge(t *testing.T) {
	srv, st := newTestServer(t)
	local, _ := st.Create(context.Background(), core.TaskDraft{Title: "local"})

	doc := snapshot.Document{
		Tasks:    []core.Task{{ID: "remote-1", Title: "remote"}},
		Activity: []core.ActivityEntry{},
	}
	data, _ := snapshot.Encode(doc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/import", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	tasks := st.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("merge should keep both tasks, got %d", len(tasks))
	}
	if tasks[0].ID != local.ID {
		t.Fatal("merge must not displace the local task")
	}
}

func TestImportSnapshot_RejectsMalformed(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/import", strings.NewReader(`{"tasks": "nope"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestImportSnapshot_UnknownMode(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshot/import?mode=overwrite", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
