package handler

import (
	"net/http"

	"workflowhub/internal/middleware"
	"workflowhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects ProjectService
	kanban   KanbanService
	history  Timeline
}

func NewProjectHandler(projects ProjectService, kanban KanbanService, history Timeline) *ProjectHandler {
	return &ProjectHandler{projects: projects, kanban: kanban, history: history}
}

// Create создает новый проект
// @Summary      Create a project
// @Tags         Projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body service.CreateProjectInput true "Project"
// @Success      201 {object} model.Project
// @Failure      400 {object} ErrorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// GetAll возвращает все проекты, новые первыми
// @Summary      List projects
// @Tags         Projects
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} model.Project
// @Router       /projects [get]
func (h *ProjectHandler) GetAll(c *gin.Context) {
	projects, err := h.projects.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetByID получает проект по ID
// @Summary      Get a project
// @Tags         Projects
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} model.Project
// @Failure      404 {object} ErrorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Update частично обновляет проект
// @Summary      Update a project
// @Tags         Projects
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body service.ProjectPatch true "Fields to change"
// @Success      200 {object} model.Project
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req service.ProjectPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.projects.UpdateProject(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete удаляет проект вместе с задачами
// @Summary      Delete a project
// @Tags         Projects
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      204
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.projects.DeleteProject(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Board возвращает задачи проекта по колонкам
// @Summary      Kanban board of a project
// @Tags         Projects
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} service.Board
// @Failure      404 {object} ErrorResponse
// @Router       /projects/{id}/board [get]
func (h *ProjectHandler) Board(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	board, err := h.kanban.Board(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Activity возвращает историю проекта
// @Summary      Project activity timeline
// @Tags         Activity
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {array} audit.TimelineEntry
// @Router       /projects/{id}/activity [get]
func (h *ProjectHandler) Activity(c *gin.Context) {
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
