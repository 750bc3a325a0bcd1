package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hugo-lorenzo-mato/taskflow/internal/snapshot"
)

// maxSnapshotBytes bounds imported documents.
const maxSnapshotBytes = 32 << 20

// handleExportSnapshot streams the full backup document as a download.
func (s *Server) handleExportSnapshot(w http.ResponseWriter, _ *http.Request) {
	doc := s.store.Export()
	data, err := snapshot.Encode(doc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "encoding snapshot: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", snapshot.Filename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImportSnapshot validates and applies a backup document. The mode
// query param selects replace or merge; merge is the default here since
// the server may be shared by several clients.
func (s *Server) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	mode := snapshot.ImportMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = snapshot.ImportModeMerge
	}
	if !mode.IsValid() {
		respondError(w, http.StatusUnprocessableEntity, "unknown import mode: "+string(mode))
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return
	}

	doc, err := snapshot.Decode(data)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := s.store.Import(r.Context(), doc, mode); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(doc.Tasks),
		"mode":     mode,
	})
}
