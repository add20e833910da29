package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/domain"
	"github.com/jhoownogueira/TaskFlowAPI/internal/api/service"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/httpx"
	"github.com/jhoownogueira/TaskFlowAPI/pkg/slogx"
)

// TasksHandler serves the bearer-protected task CRUD endpoints. Every
// operation is scoped to the authenticated user.
type TasksHandler struct {
	Tasks *service.TaskService
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := service.ListTasksQuery{
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
		Page:     parseIntOrDefault(r.URL.Query().Get("page"), 1),
		PageSize: parseIntOrDefault(r.URL.Query().Get("pageSize"), service.DefaultPageSize),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		query.Status = status
	}

	page, err := h.Tasks.List(ctx, user.ID, query)
	if err != nil {
		log.Error("list tasks failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := h.Tasks.Create(ctx, user.ID, req.Title, req.Description)
	if err != nil {
		log.Error("create task failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, task)
}

func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if !status.Valid() {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		input.Status = &status
	}

	task, err := h.Tasks.Update(ctx, user.ID, r.PathValue("id"), input)
	if err != nil {
		writeTaskError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, task)
}

func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.Tasks.Delete(ctx, user.ID, r.PathValue("id")); err != nil {
		writeTaskError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeTaskError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrTaskForbidden):
		httpx.WriteError(w, http.StatusForbidden, "Forbidden")
	default:
		log.Error("task operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func parseIntOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
