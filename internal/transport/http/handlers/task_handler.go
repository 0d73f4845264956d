package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/vedran77/taskdeck/internal/domain"
	"github.com/vedran77/taskdeck/internal/service"
	"github.com/vedran77/taskdeck/internal/transport/http/middleware"
	"github.com/vedran77/taskdeck/pkg/validator"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	var input service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateTask(input.Title, input.Status, input.Priority); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	task, err := h.taskService.Create(r.Context(), identity.UserID, input)
	if err != nil {
		log.Printf("ERROR create task: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"task": task})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	q := r.URL.Query()
	filter := domain.TaskFilter{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	tasks, err := h.taskService.List(r.Context(), identity.UserID, filter)
	if err != nil {
		log.Printf("ERROR list tasks: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(r.Context(), identity.UserID, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
		} else {
			log.Printf("ERROR get task: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	var patch domain.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateTaskPatch(patch); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	task, err := h.taskService.Update(r.Context(), identity.UserID, taskID, patch)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
		} else {
			log.Printf("ERROR update task: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	if err := h.taskService.Delete(r.Context(), identity.UserID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
		} else {
			log.Printf("ERROR delete task: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Task deleted"})
}
