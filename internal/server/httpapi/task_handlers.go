package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type createTaskRequest struct {
	Title string `json:"title"`
}

type renameTaskRequest struct {
	Title string `json:"title"`
}

type toggleTaskRequest struct {
	Completed *bool `json:"completed"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := s.subject(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	task, err := s.tasks.Create(r.Context(), subjectID, req.Title)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := s.subject(w, r)
	if !ok {
		return
	}

	list, err := s.tasks.List(r.Context(), subjectID)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := s.subject(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var req toggleTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if req.Completed == nil {
		writeError(w, http.StatusUnprocessableEntity, "completed is required")
		return
	}

	task, err := s.tasks.SetCompletion(r.Context(), subjectID, taskID, *req.Completed)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleRenameTask(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := s.subject(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var req renameTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	task, err := s.tasks.Rename(r.Context(), subjectID, taskID, req.Title)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := s.subject(w, r)
	if !ok {
		return
	}
	taskID, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := s.tasks.Delete(r.Context(), subjectID, taskID); err != nil {
		s.writeTaskError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func taskIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid task id")
		return "", false
	}
	return id, true
}

// writeTaskError maps task-service failures to status codes. The 404-before-
// 403 ordering is decided in the service; here each sentinel simply gets its
// code.
func (s *Server) writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		s.logger.Error(r.Context(), "task operation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
