package handler

import (
	"net/http"
	"strconv"

	"workflowhub/internal/middleware"
	"workflowhub/internal/model"
	"workflowhub/internal/repository"
	"workflowhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks   TaskService
	kanban  KanbanService
	history Timeline
}

func NewTaskHandler(tasks TaskService, kanban KanbanService, history Timeline) *TaskHandler {
	return &TaskHandler{tasks: tasks, kanban: kanban, history: history}
}

// TaskMoveRequest представляет перенос карточки в другую колонку
type TaskMoveRequest struct {
	// From is the column the drag started in; optional.
	From model.TaskStatus `json:"from"`
	To   model.TaskStatus `json:"to" binding:"required"`
}

// Create создает новую задачу
// @Summary      Create a task
// @Tags         Tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body service.CreateTaskInput true "Task"
// @Success      201 {object} model.Task
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.CreateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetAll возвращает задачи с фильтрами
// @Summary      List tasks
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        project_id  query string false "Project ID"
// @Param        status      query string false "Status"
// @Param        priority    query string false "Priority"
// @Param        assignee_id query string false "Assignee ID"
// @Param        search      query string false "Text in title or description"
// @Param        expand      query bool   false "Include project, type and assignee"
// @Success      200 {array} model.Task
// @Failure      400 {object} ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	filter := repository.TaskFilter{
		Status:   model.TaskStatus(c.Query("status")),
		Priority: model.Priority(c.Query("priority")),
		Search:   c.Query("search"),
	}

	// Разбираем необязательные идентификаторы
	for param, target := range map[string]**uuid.UUID{
		"project_id":  &filter.ProjectID,
		"assignee_id": &filter.AssigneeID,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   service.CodeValidation,
				Message: "Invalid " + param + " format",
				Details: map[string]any{"field": param},
			})
			return
		}
		*target = &id
	}
	if raw := c.Query("expand"); raw != "" {
		expand, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		filter.Expand = expand
	}

	tasks, err := h.tasks.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetByID получает задачу по ID
// @Summary      Get a task
// @Tags         Tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {object} model.Task
// @Failure      404 {object} ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Update частично обновляет задачу
// @Summary      Update a task
// @Description  Fields left out are unchanged; null clears a nullable field. A stale version yields 409.
// @Tags         Tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        request body service.TaskPatch true "Fields to change"
// @Success      200 {object} model.Task
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req service.TaskPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Delete удаляет задачу; повторное удаление не считается ошибкой
// @Summary      Delete a task
// @Tags         Tasks
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MoveTask переносит задачу в другую колонку доски
// @Summary      Move a task to another column
// @Tags         Tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Task ID"
// @Param        request body TaskMoveRequest true "Target column"
// @Success      200 {object} service.MoveResult
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /tasks/{id}/move [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.kanban.Move(c.Request.Context(), middleware.ActorFrom(c), id, req.From, req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Activity возвращает историю задачи, включая удаленные
// @Summary      Task activity timeline
// @Tags         Activity
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Task ID"
// @Success      200 {array} audit.TimelineEntry
// @Router       /tasks/{id}/activity [get]
func (h *TaskHandler) Activity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	entries, err := h.history.Timeline(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
