package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
	"github.com/hugo-lorenzo-mato/taskflow/internal/store"
)

// handleListTasks returns the task collection, optionally filtered by
// category, status, priority and search query params.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.Filter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Search:   q.Get("search"),
	}
	respondJSON(w, http.StatusOK, s.store.List(filter))
}

// handleCreateTask creates a task from the posted draft.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var draft core.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := draft.Validate(); err != nil {
		respondDomainError(w, err)
		return
	}

	task, err := s.store.Create(r.Context(), draft)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// handleGetTask returns a single task by id.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	for _, task := range s.store.Tasks() {
		if task.ID == taskID {
			respondJSON(w, http.StatusOK, task)
			return
		}
	}
	respondError(w, http.StatusNotFound, "task not found: "+taskID)
}

// handleUpdateTask applies a partial update. The store treats an unknown
// id as a miss; the API surfaces that as 404.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	var upd core.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validateUpdate(upd); err != nil {
		respondDomainError(w, err)
		return
	}

	task, ok, err := s.store.Update(r.Context(), taskID, upd)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "task not found: "+taskID)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// handleDeleteTask removes a task. Deletion is idempotent: deleting an
// absent task still returns 204.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	if err := s.store.Delete(r.Context(), taskID); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addSubtaskRequest struct {
	Title string `json:"title"`
}

// handleAddSubtask appends a checklist item to the task.
func (s *Server) handleAddSubtask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	var req addSubtaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusUnprocessableEntity, "subtask title cannot be empty")
		return
	}

	task, ok, err := s.store.AddSubtask(r.Context(), taskID, req.Title)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "task not found: "+taskID)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// handleToggleSubtask flips a subtask's completed flag.
func (s *Server) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	subtaskID := chi.URLParam(r, "subtaskID")

	task, ok, err := s.store.ToggleSubtask(r.Context(), taskID, subtaskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "subtask not found: "+subtaskID)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// handleDeleteSubtask removes a checklist item.
func (s *Server) handleDeleteSubtask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	subtaskID := chi.URLParam(r, "subtaskID")

	task, ok, err := s.store.DeleteSubtask(r.Context(), taskID, subtaskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "subtask not found: "+subtaskID)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

type reorderRequest struct {
	MovedID  string `json:"movedId"`
	TargetID string `json:"targetId"`
}

// handleReorderTasks moves a task to another task's position.
func (s *Server) handleReorderTasks(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.MovedID == "" || req.TargetID == "" {
		respondError(w, http.StatusUnprocessableEntity, "movedId and targetId are required")
		return
	}

	if err := s.store.Reorder(r.Context(), req.MovedID, req.TargetID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.store.Tasks())
}

// handleStats returns aggregate statistics for the collection.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Stats())
}

// handleListCategories returns the fixed category set.
func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, core.DefaultCategories)
}

func validateUpdate(upd core.TaskUpdate) error {
	if upd.Title != nil && *upd.Title == "" {
		return core.ErrValidation(core.CodeTitleRequired, "task title cannot be empty")
	}
	if upd.Priority != nil && !upd.Priority.IsValid() {
		return core.ErrValidation(core.CodeInvalidPriority, "unknown priority: "+string(*upd.Priority))
	}
	if upd.Status != nil && !upd.Status.IsValid() {
		return core.ErrValidation(core.CodeInvalidStatus, "unknown status: "+string(*upd.Status))
	}
	if upd.Recurrence != nil && !upd.Recurrence.IsValid() {
		return core.ErrValidation(core.CodeInvalidRecurrence, "unknown recurrence: "+string(*upd.Recurrence))
	}
	return nil
}
